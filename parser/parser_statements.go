/*
File    : cgoc/parser/parser_statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/go-cgoc/cgoc/lexer"

// parseCompound parses a brace-delimited block of declarations and
// statements.
func (p *Parser) parseCompound() (*Compound, *ParseError) {
	startTok := p.peek()
	if _, err := p.expect(lexer.LEFT_BRACE); err != nil {
		return nil, err
	}
	block := &Compound{Position: tokPos(startTok)}
	for !p.check(lexer.RIGHT_BRACE) {
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		block.Items = append(block.Items, *item)
	}
	if _, err := p.expect(lexer.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return block, nil
}

func (p *Parser) parseBlockItem() (*BlockItem, *ParseError) {
	tok := p.peek()
	if isTypeKeyword(tok.Type) || tok.Type == lexer.STATIC_KEY || tok.Type == lexer.EXTERN_KEY {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		return &BlockItem{Decl: decl}, nil
	}
	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &BlockItem{Stmt: stmt}, nil
}

// parseDeclaration parses `[storage] type Name [= Init] ;`.
func (p *Parser) parseDeclaration() (*Declaration, *ParseError) {
	startTok := p.peek()
	storage := p.parseStorageClass()
	typ, err := p.parseTypeSpec()
	if err != nil {
		return nil, err
	}
	name, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	decl := &Declaration{Position: tokPos(startTok), Storage: storage, Type: typ, Name: name}
	if p.check(lexer.ASSIGN_OP) {
		p.advance()
		init, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}
	if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseStatement parses a single statement, dispatching on its leading token.
func (p *Parser) parseStatement() (Stmt, *ParseError) {
	tok := p.peek()
	switch tok.Type {
	case lexer.SEMICOLON_DELIM:
		p.advance()
		return &Null{Position: tokPos(tok)}, nil

	case lexer.RETURN_KEY:
		p.advance()
		var value Expr
		if !p.check(lexer.SEMICOLON_DELIM) {
			v, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			value = v
		}
		if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
			return nil, err
		}
		return &Return{Position: tokPos(tok), Value: value}, nil

	case lexer.LEFT_BRACE:
		return p.parseCompound()

	case lexer.IF_KEY:
		return p.parseIf()

	case lexer.WHILE_KEY:
		return p.parseWhile()

	case lexer.DO_KEY:
		return p.parseDoWhile()

	case lexer.FOR_KEY:
		return p.parseFor()

	case lexer.BREAK_KEY:
		p.advance()
		if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
			return nil, err
		}
		return &Break{Position: tokPos(tok)}, nil

	case lexer.CONTINUE_KEY:
		p.advance()
		if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
			return nil, err
		}
		return &Continue{Position: tokPos(tok)}, nil

	case lexer.GOTO_KEY:
		p.advance()
		target, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
			return nil, err
		}
		return &Goto{Position: tokPos(tok), Target: target}, nil

	case lexer.SWITCH_KEY:
		return p.parseSwitch()

	case lexer.IDENTIFIER_ID:
		if p.peekAt(1).Type == lexer.COLON_DELIM {
			p.advance()
			p.advance()
			inner, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			return &LabelStatement{Position: tokPos(tok), Name: tok.Literal, Inner: inner}, nil
		}
		return p.parseExpressionStatement()

	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseExpressionStatement() (Stmt, *ParseError) {
	tok := p.peek()
	expr, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
		return nil, err
	}
	return &ExpressionStatement{Position: tokPos(tok), Expr: expr}, nil
}

func (p *Parser) parseIf() (Stmt, *ParseError) {
	tok := p.peek()
	p.advance()
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	then, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt := &If{Position: tokPos(tok), Cond: cond, Then: then}
	if p.check(lexer.ELSE_KEY) {
		p.advance()
		els, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmt.Else = els
	}
	return stmt, nil
}

func (p *Parser) parseWhile() (Stmt, *ParseError) {
	tok := p.peek()
	p.advance()
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	return &While{Position: tokPos(tok), Cond: cond, Body: body}, nil
}

func (p *Parser) parseDoWhile() (Stmt, *ParseError) {
	tok := p.peek()
	p.advance()
	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.WHILE_KEY); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
		return nil, err
	}
	return &DoWhile{Position: tokPos(tok), Body: body, Cond: cond}, nil
}

func (p *Parser) parseFor() (Stmt, *ParseError) {
	tok := p.peek()
	p.advance()
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}

	stmt := &For{Position: tokPos(tok)}

	if p.check(lexer.SEMICOLON_DELIM) {
		p.advance()
	} else if isTypeKeyword(p.peek().Type) {
		decl, err := p.parseDeclaration()
		if err != nil {
			return nil, err
		}
		stmt.Init.Decl = decl
	} else {
		expr, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Init.Expr = expr
		if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
			return nil, err
		}
	}

	if !p.check(lexer.SEMICOLON_DELIM) {
		cond, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Cond = cond
	}
	if _, err := p.expect(lexer.SEMICOLON_DELIM); err != nil {
		return nil, err
	}

	if !p.check(lexer.RIGHT_PAREN) {
		post, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		stmt.Post = post
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}

	body, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmt.Body = body
	return stmt, nil
}

func (p *Parser) parseSwitch() (Stmt, *ParseError) {
	tok := p.peek()
	p.advance()
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	cond, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LEFT_BRACE); err != nil {
		return nil, err
	}

	sw := &Switch{Position: tokPos(tok), Cond: cond}
	for !p.check(lexer.RIGHT_BRACE) {
		switch p.peek().Type {
		case lexer.CASE_KEY:
			p.advance()
			valTok := p.peek()
			valExpr, err := p.parsePrimary()
			if err != nil {
				return nil, err
			}
			constVal, ok := valExpr.(*Constant)
			if !ok {
				return nil, p.fail(valTok, "case label must be a constant expression")
			}
			if _, err := p.expect(lexer.COLON_DELIM); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, SwitchCase{Value: constVal, Body: body})
		case lexer.DEFAULT_KEY:
			p.advance()
			if _, err := p.expect(lexer.COLON_DELIM); err != nil {
				return nil, err
			}
			body, err := p.parseCaseBody()
			if err != nil {
				return nil, err
			}
			sw.Cases = append(sw.Cases, SwitchCase{Value: nil, Body: body})
		default:
			return nil, p.fail(p.peek(), "expected case or default inside switch body")
		}
	}
	if _, err := p.expect(lexer.RIGHT_BRACE); err != nil {
		return nil, err
	}
	return sw, nil
}

// parseCaseBody collects block items until the next `case`, `default`, or
// the closing brace of the switch.
func (p *Parser) parseCaseBody() ([]BlockItem, *ParseError) {
	var items []BlockItem
	for !p.check(lexer.CASE_KEY) && !p.check(lexer.DEFAULT_KEY) && !p.check(lexer.RIGHT_BRACE) {
		item, err := p.parseBlockItem()
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}
