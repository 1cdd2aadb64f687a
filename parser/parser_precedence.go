/*
File    : cgoc/parser/parser_precedence.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import "github.com/go-cgoc/cgoc/lexer"

// precedence levels. Lower binds tighter. The parser's single
// precedence-climbing function recurses with `level` for right-associative
// operators and `level-1` for left-associative ones.
const (
	precPostfix    = 1
	precPrefix     = 2
	precMultiplic  = 3
	precAdditive   = 4
	precShift      = 5
	precRelational = 6
	precEquality   = 7
	precBitAnd     = 8
	precBitXor     = 9
	precBitOr      = 10
	precLogicalAnd = 11
	precLogicalOr  = 12
	precTernary    = 13
	precAssignment = 14

	precNotBinary = 1 << 30 // sentinel: token is not a binary operator
)

// binaryOpPrecedence returns the precedence level of tok if it is a binary
// (infix) operator, or precNotBinary otherwise.
func binaryOpPrecedence(tok lexer.TokenType) int {
	switch tok {
	case lexer.MUL_OP, lexer.DIV_OP, lexer.MOD_OP:
		return precMultiplic
	case lexer.PLUS_OP, lexer.MINUS_OP:
		return precAdditive
	case lexer.BIT_LEFT_OP, lexer.BIT_RIGHT_OP:
		return precShift
	case lexer.LT_OP, lexer.LE_OP, lexer.GT_OP, lexer.GE_OP:
		return precRelational
	case lexer.EQ_OP, lexer.NE_OP:
		return precEquality
	case lexer.BIT_AND_OP:
		return precBitAnd
	case lexer.BIT_XOR_OP:
		return precBitXor
	case lexer.BIT_OR_OP:
		return precBitOr
	case lexer.AND_OP:
		return precLogicalAnd
	case lexer.OR_OP:
		return precLogicalOr
	case lexer.QUESTION_DELIM:
		return precTernary
	case lexer.ASSIGN_OP,
		lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.MUL_ASSIGN, lexer.DIV_ASSIGN, lexer.MOD_ASSIGN,
		lexer.BIT_AND_ASSIGN, lexer.BIT_OR_ASSIGN, lexer.BIT_XOR_ASSIGN,
		lexer.BIT_LEFT_ASSIGN, lexer.BIT_RIGHT_ASSIGN:
		return precAssignment
	default:
		return precNotBinary
	}
}

// isRightAssociative reports whether the operator at this token recurses
// with the same precedence level rather than level-1.
func isRightAssociative(tok lexer.TokenType) bool {
	switch tok {
	case lexer.QUESTION_DELIM,
		lexer.ASSIGN_OP,
		lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.MUL_ASSIGN, lexer.DIV_ASSIGN, lexer.MOD_ASSIGN,
		lexer.BIT_AND_ASSIGN, lexer.BIT_OR_ASSIGN, lexer.BIT_XOR_ASSIGN,
		lexer.BIT_LEFT_ASSIGN, lexer.BIT_RIGHT_ASSIGN:
		return true
	default:
		return false
	}
}

// isAssignmentOp reports whether tok is `=` or a compound assignment.
func isAssignmentOp(tok lexer.TokenType) bool {
	switch tok {
	case lexer.ASSIGN_OP,
		lexer.PLUS_ASSIGN, lexer.MINUS_ASSIGN, lexer.MUL_ASSIGN, lexer.DIV_ASSIGN, lexer.MOD_ASSIGN,
		lexer.BIT_AND_ASSIGN, lexer.BIT_OR_ASSIGN, lexer.BIT_XOR_ASSIGN,
		lexer.BIT_LEFT_ASSIGN, lexer.BIT_RIGHT_ASSIGN:
		return true
	default:
		return false
	}
}

// compoundAssignBinaryOp maps a compound-assignment token to the BinaryOp it
// implicitly applies, e.g. `+=` applies OpAdd.
func compoundAssignBinaryOp(tok lexer.TokenType) BinaryOp {
	switch tok {
	case lexer.PLUS_ASSIGN:
		return OpAdd
	case lexer.MINUS_ASSIGN:
		return OpSubtract
	case lexer.MUL_ASSIGN:
		return OpMultiply
	case lexer.DIV_ASSIGN:
		return OpDivide
	case lexer.MOD_ASSIGN:
		return OpRemainder
	case lexer.BIT_AND_ASSIGN:
		return OpBitAnd
	case lexer.BIT_OR_ASSIGN:
		return OpBitOr
	case lexer.BIT_XOR_ASSIGN:
		return OpBitXor
	case lexer.BIT_LEFT_ASSIGN:
		return OpShiftLeft
	case lexer.BIT_RIGHT_ASSIGN:
		return OpShiftRight
	default:
		panic("compoundAssignBinaryOp: not a compound assignment token")
	}
}

// binaryOpFor maps a plain infix operator token to its BinaryOp.
func binaryOpFor(tok lexer.TokenType) BinaryOp {
	switch tok {
	case lexer.PLUS_OP:
		return OpAdd
	case lexer.MINUS_OP:
		return OpSubtract
	case lexer.MUL_OP:
		return OpMultiply
	case lexer.DIV_OP:
		return OpDivide
	case lexer.MOD_OP:
		return OpRemainder
	case lexer.BIT_AND_OP:
		return OpBitAnd
	case lexer.BIT_OR_OP:
		return OpBitOr
	case lexer.BIT_XOR_OP:
		return OpBitXor
	case lexer.BIT_LEFT_OP:
		return OpShiftLeft
	case lexer.BIT_RIGHT_OP:
		return OpShiftRight
	case lexer.EQ_OP:
		return OpEqual
	case lexer.NE_OP:
		return OpNotEqual
	case lexer.LT_OP:
		return OpLessThan
	case lexer.LE_OP:
		return OpLessOrEqual
	case lexer.GT_OP:
		return OpGreaterThan
	case lexer.GE_OP:
		return OpGreaterOrEqual
	case lexer.AND_OP:
		return OpLogicalAnd
	case lexer.OR_OP:
		return OpLogicalOr
	default:
		panic("binaryOpFor: not a binary operator token")
	}
}
