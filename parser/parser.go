/*
File    : cgoc/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

The parser consumes the full token stream up front (the grammar never
needs more than a handful of tokens of lookahead) and builds the AST with a
single recursive-descent driver plus one precedence-climbing function for
expressions. Parsing halts on the first diagnostic: a malformed program
cannot be usefully recovered from without risking cascades of spurious
errors, so the parser reports exactly one Diagnostic and returns.
*/
package parser

import (
	"fmt"

	"github.com/go-cgoc/cgoc/diag"
	"github.com/go-cgoc/cgoc/lexer"
)

// ParseError signals that the parser stopped after reporting its single
// fatal diagnostic. Callers read the diagnostic from the Parser's Diags.
type ParseError struct {
	Diagnostic diag.Diagnostic
}

func (e *ParseError) Error() string { return e.Diagnostic.Error() }

// Parser walks a fixed token slice produced by the lexer.
type Parser struct {
	tokens []lexer.Token
	pos    int
	Diags  diag.Bag
}

// NewParser builds a Parser over toks. toks must end with an EOF_TYPE
// token, as produced by lexer.Lexer.ConsumeTokens.
func NewParser(toks []lexer.Token) *Parser {
	return &Parser{tokens: toks}
}

func (p *Parser) peek() lexer.Token {
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) lexer.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[idx]
}

func (p *Parser) advance() lexer.Token {
	tok := p.tokens[p.pos]
	if tok.Type != lexer.EOF_TYPE {
		p.pos++
	}
	return tok
}

func (p *Parser) check(tt lexer.TokenType) bool {
	return p.peek().Type == tt
}

func (p *Parser) fail(tok lexer.Token, format string, args ...interface{}) *ParseError {
	d := diag.Diagnostic{
		Kind:    diag.Parse,
		Pos:     diag.Position{Line: tok.Line, Column: tok.Column},
		Message: fmt.Sprintf(format, args...),
	}
	p.Diags.Add(d)
	return &ParseError{Diagnostic: d}
}

// expect consumes the next token if it matches tt, otherwise fails.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, *ParseError) {
	tok := p.peek()
	if tok.Type != tt {
		return tok, p.fail(tok, "expected %s, found %s %q", tt, tok.Type, tok.Literal)
	}
	return p.advance(), nil
}

// expectIdentifier consumes an IDENTIFIER_ID token and returns its text.
func (p *Parser) expectIdentifier() (string, *ParseError) {
	tok, err := p.expect(lexer.IDENTIFIER_ID)
	if err != nil {
		return "", err
	}
	return tok.Literal, nil
}

// isTypeKeyword reports whether tok begins a type specifier.
func isTypeKeyword(tt lexer.TokenType) bool {
	switch tt {
	case lexer.INT_KEY, lexer.LONG_KEY, lexer.UNSIGNED_KEY, lexer.SIGNED_KEY, lexer.DOUBLE_KEY, lexer.VOID_KEY:
		return true
	default:
		return false
	}
}

// ParseProgram parses the entire token stream as a translation unit: zero
// or more function definitions followed by EOF.
func (p *Parser) ParseProgram() (*Program, *ParseError) {
	startTok := p.peek()
	prog := &Program{Position: Position{Line: startTok.Line, Column: startTok.Column}}
	for !p.check(lexer.EOF_TYPE) {
		fn, err := p.parseFunction()
		if err != nil {
			return nil, err
		}
		prog.Functions = append(prog.Functions, fn)
	}
	return prog, nil
}

// parseTypeSpec consumes a type specifier (ignoring signedness
// redundancies like `signed int`) and returns the corresponding TypeSpec.
func (p *Parser) parseTypeSpec() (TypeSpec, *ParseError) {
	tok := p.peek()
	switch tok.Type {
	case lexer.VOID_KEY:
		p.advance()
		return TypeInt, nil // TypeSpec has no void; only parseFunction recognises a `(void)` parameter list separately
	case lexer.INT_KEY:
		p.advance()
		return TypeInt, nil
	case lexer.LONG_KEY:
		p.advance()
		return TypeLong, nil
	case lexer.DOUBLE_KEY:
		p.advance()
		return TypeDouble, nil
	case lexer.UNSIGNED_KEY:
		p.advance()
		if p.check(lexer.LONG_KEY) {
			p.advance()
			return TypeULong, nil
		}
		if p.check(lexer.INT_KEY) {
			p.advance()
		}
		return TypeUInt, nil
	case lexer.SIGNED_KEY:
		p.advance()
		if p.check(lexer.LONG_KEY) {
			p.advance()
			return TypeLong, nil
		}
		if p.check(lexer.INT_KEY) {
			p.advance()
		}
		return TypeInt, nil
	default:
		_, err := p.expect(lexer.INT_KEY)
		return TypeInt, err
	}
}

func (p *Parser) parseStorageClass() StorageClass {
	switch p.peek().Type {
	case lexer.STATIC_KEY:
		p.advance()
		return StorageStatic
	case lexer.EXTERN_KEY:
		p.advance()
		return StorageExtern
	default:
		return StorageNone
	}
}

// parseFunction parses `[storage] type Name ( Params ) { Body }`.
func (p *Parser) parseFunction() (*Function, *ParseError) {
	startTok := p.peek()
	storage := p.parseStorageClass()
	retType, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	var params []Param
	if p.check(lexer.VOID_KEY) && p.peekAt(1).Type == lexer.RIGHT_PAREN {
		p.advance()
	} else if !p.check(lexer.RIGHT_PAREN) {
		for {
			pType, err := p.parseTypeSpec()
			if err != nil {
				return nil, err
			}
			pName, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			params = append(params, Param{Type: pType, Name: pName})
			if p.check(lexer.COMMA_DELIM) {
				p.advance()
				continue
			}
			break
		}
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	_ = storage // storage class is retained on declarations; top-level functions in this subset are always external
	return &Function{
		Position:   Position{Line: startTok.Line, Column: startTok.Column},
		Name:       name,
		ReturnType: retType,
		Params:     params,
		Body:       body,
	}, nil
}
