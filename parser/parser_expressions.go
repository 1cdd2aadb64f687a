/*
File    : cgoc/parser/parser_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/go-cgoc/cgoc/lexer"
)

// ParseExpr parses a full expression via precedence climbing, starting at
// the loosest level (assignment).
func (p *Parser) ParseExpr() (Expr, *ParseError) {
	return p.parseExpr(precAssignment)
}

// parseExpr implements precedence climbing: it parses one unary/primary
// term, then repeatedly folds in infix operators whose precedence is no
// looser than minPrec (lower numbers bind tighter). Left-associative
// operators recurse into their right-hand operand with opPrec-1, one level
// tighter (so operators of the same level bind left); right-associative
// operators (assignment, ternary) recurse with opPrec (allowing same-level
// chaining to bind right).
func (p *Parser) parseExpr(minPrec int) (Expr, *ParseError) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}

	for {
		tok := p.peek()
		opPrec := binaryOpPrecedence(tok.Type)
		if opPrec == precNotBinary || opPrec > minPrec {
			break
		}

		switch {
		case tok.Type == lexer.ASSIGN_OP:
			p.advance()
			right, err := p.parseExpr(opPrec)
			if err != nil {
				return nil, err
			}
			left = &Assignment{Position: exprPos(left), Target: left, Value: right}

		case isAssignmentOp(tok.Type):
			p.advance()
			right, err := p.parseExpr(opPrec)
			if err != nil {
				return nil, err
			}
			left = &CompoundAssignment{
				Position: exprPos(left),
				Op:       compoundAssignBinaryOp(tok.Type),
				Target:   left,
				Value:    right,
			}

		case tok.Type == lexer.QUESTION_DELIM:
			p.advance()
			then, err := p.ParseExpr()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(lexer.COLON_DELIM); err != nil {
				return nil, err
			}
			els, err := p.parseExpr(opPrec)
			if err != nil {
				return nil, err
			}
			left = &Conditional{Position: exprPos(left), Cond: left, Then: then, Else: els}

		default:
			p.advance()
			nextMinPrec := opPrec
			if !isRightAssociative(tok.Type) {
				nextMinPrec = opPrec - 1
			}
			right, err := p.parseExpr(nextMinPrec)
			if err != nil {
				return nil, err
			}
			left = &Binary{Position: exprPos(left), Op: binaryOpFor(tok.Type), Left: left, Right: right}
		}
	}

	return left, nil
}

func exprPos(e Expr) Position {
	return e.Pos()
}

// parseUnary parses a prefix unary expression, a prefix ++/--, or falls
// through to a postfix expression.
func (p *Parser) parseUnary() (Expr, *ParseError) {
	tok := p.peek()
	switch tok.Type {
	case lexer.PLUS_OP:
		p.advance()
		return p.parseExpr(precPrefix)
	case lexer.MINUS_OP:
		p.advance()
		inner, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Position: tokPos(tok), Op: OpNegate, Inner: inner}, nil
	case lexer.BIT_NOT_OP:
		p.advance()
		inner, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Position: tokPos(tok), Op: OpComplement, Inner: inner}, nil
	case lexer.NOT_OP:
		p.advance()
		inner, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &Unary{Position: tokPos(tok), Op: OpNot, Inner: inner}, nil
	case lexer.INCREMENT:
		p.advance()
		target, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &PrefixIncDec{Position: tokPos(tok), Increment: true, Target: target}, nil
	case lexer.DECREMENT:
		p.advance()
		target, err := p.parseExpr(precPrefix)
		if err != nil {
			return nil, err
		}
		return &PrefixIncDec{Position: tokPos(tok), Increment: false, Target: target}, nil
	default:
		return p.parsePostfix()
	}
}

// parsePostfix parses a primary expression followed by zero or more
// postfix ++/-- applications.
func (p *Parser) parsePostfix() (Expr, *ParseError) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch tok.Type {
		case lexer.INCREMENT:
			p.advance()
			expr = &PostfixIncDec{Position: exprPos(expr), Increment: true, Target: expr}
		case lexer.DECREMENT:
			p.advance()
			expr = &PostfixIncDec{Position: exprPos(expr), Increment: false, Target: expr}
		default:
			return expr, nil
		}
	}
}

func tokPos(tok lexer.Token) Position {
	return Position{Line: tok.Line, Column: tok.Column}
}

// parsePrimary parses an identifier, literal, function call, or
// parenthesized expression.
func (p *Parser) parsePrimary() (Expr, *ParseError) {
	tok := p.peek()
	switch tok.Type {
	case lexer.INT_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: IntLit, IntVal: tok.IntVal}, nil
	case lexer.LONG_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: LongLit, IntVal: tok.IntVal}, nil
	case lexer.UINT_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: UIntLit, UintVal: tok.UintVal}, nil
	case lexer.ULONG_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: ULongLit, UintVal: tok.UintVal}, nil
	case lexer.DOUBLE_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: DoubleLit, FloatVal: tok.FloatVal}, nil
	case lexer.CHAR_LIT:
		p.advance()
		return &Constant{Position: tokPos(tok), Kind: IntLit, IntVal: tok.IntVal}, nil

	case lexer.IDENTIFIER_ID:
		if p.peekAt(1).Type == lexer.LEFT_PAREN {
			return p.parseFunctionCall()
		}
		p.advance()
		return &Var{Position: tokPos(tok), Name: tok.Literal}, nil

	case lexer.LEFT_PAREN:
		p.advance()
		inner, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(lexer.RIGHT_PAREN); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, p.fail(tok, "expected an expression, found %s %q", tok.Type, tok.Literal)
	}
}

func (p *Parser) parseFunctionCall() (Expr, *ParseError) {
	nameTok, err := p.expect(lexer.IDENTIFIER_ID)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.LEFT_PAREN); err != nil {
		return nil, err
	}
	call := &FunctionCall{Position: tokPos(nameTok), Callee: nameTok.Literal}
	if !p.check(lexer.RIGHT_PAREN) {
		for {
			arg, err := p.parseExpr(precAssignment)
			if err != nil {
				return nil, err
			}
			call.Args = append(call.Args, arg)
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
	return call, nil
}
