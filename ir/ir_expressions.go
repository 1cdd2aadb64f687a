/*
File    : cgoc/ir/ir_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package ir

import (
	"fmt"

	"github.com/go-cgoc/cgoc/parser"
)

// lowerExpr lowers expr into zero or more instructions (emitted as a side
// effect) and returns the Value holding its result.
func (lw *Lowerer) lowerExpr(expr parser.Expr) Value {
	switch e := expr.(type) {
	case *parser.Constant:
		return lowerConstant(e)

	case *parser.Var:
		return Var{Name: e.Name}

	case *parser.Unary:
		src := lw.lowerExpr(e.Inner)
		dst := lw.newTemp()
		lw.emit(Unary{Op: lowerUnaryOp(e.Op), Src: src, Dst: dst})
		return dst

	case *parser.Binary:
		switch e.Op {
		case parser.OpLogicalAnd:
			return lw.lowerLogicalAnd(e)
		case parser.OpLogicalOr:
			return lw.lowerLogicalOr(e)
		default:
			left := lw.lowerExpr(e.Left)
			right := lw.lowerExpr(e.Right)
			dst := lw.newTemp()
			lw.emit(Binary{Op: lowerBinaryOp(e.Op), Left: left, Right: right, Dst: dst})
			return dst
		}

	case *parser.Assignment:
		v, ok := e.Target.(*parser.Var)
		if !ok {
			panic("ir: assignment target resolved to a non-lvalue; semantic pass should have rejected this")
		}
		val := lw.lowerExpr(e.Value)
		dst := Var{Name: v.Name}
		lw.emit(Copy{Src: val, Dst: dst})
		return dst

	case *parser.CompoundAssignment:
		v, ok := e.Target.(*parser.Var)
		if !ok {
			panic("ir: compound assignment target resolved to a non-lvalue; semantic pass should have rejected this")
		}
		dst := Var{Name: v.Name}
		right := lw.lowerExpr(e.Value)
		result := lw.newTemp()
		lw.emit(Binary{Op: lowerBinaryOp(e.Op), Left: dst, Right: right, Dst: result})
		lw.emit(Copy{Src: result, Dst: dst})
		return dst

	case *parser.PrefixIncDec:
		v, ok := e.Target.(*parser.Var)
		if !ok {
			panic("ir: increment/decrement target resolved to a non-lvalue; semantic pass should have rejected this")
		}
		dst := Var{Name: v.Name}
		op := Add
		if !e.Increment {
			op = Subtract
		}
		result := lw.newTemp()
		lw.emit(Binary{Op: op, Left: dst, Right: Constant{IntVal: 1}, Dst: result})
		lw.emit(Copy{Src: result, Dst: dst})
		return dst

	case *parser.PostfixIncDec:
		v, ok := e.Target.(*parser.Var)
		if !ok {
			panic("ir: increment/decrement target resolved to a non-lvalue; semantic pass should have rejected this")
		}
		dst := Var{Name: v.Name}
		saved := lw.newTemp()
		lw.emit(Copy{Src: dst, Dst: saved})
		op := Add
		if !e.Increment {
			op = Subtract
		}
		result := lw.newTemp()
		lw.emit(Binary{Op: op, Left: dst, Right: Constant{IntVal: 1}, Dst: result})
		lw.emit(Copy{Src: result, Dst: dst})
		return saved

	case *parser.Conditional:
		return lw.lowerConditional(e)

	case *parser.FunctionCall:
		var args []Value
		for _, a := range e.Args {
			args = append(args, lw.lowerExpr(a))
		}
		dst := lw.newTemp()
		lw.emit(FunctionCall{Callee: e.Callee, Args: args, Dst: dst})
		return dst

	default:
		panic(fmt.Sprintf("ir: unhandled expression kind %T", expr))
	}
}

func lowerConstant(c *parser.Constant) Constant {
	switch c.Kind {
	case parser.DoubleLit:
		return Constant{IsFloat: true, FloatVal: c.FloatVal}
	case parser.UIntLit, parser.ULongLit:
		return Constant{UintVal: c.UintVal, Unsigned: true}
	default:
		return Constant{IntVal: c.IntVal}
	}
}

func lowerUnaryOp(op parser.UnaryOp) UnaryOp {
	switch op {
	case parser.OpNegate:
		return Negate
	case parser.OpComplement:
		return Complement
	case parser.OpNot:
		return Not
	default:
		panic("ir: unhandled unary operator")
	}
}

func lowerBinaryOp(op parser.BinaryOp) BinaryOp {
	switch op {
	case parser.OpAdd:
		return Add
	case parser.OpSubtract:
		return Subtract
	case parser.OpMultiply:
		return Multiply
	case parser.OpDivide:
		return Divide
	case parser.OpRemainder:
		return Remainder
	case parser.OpBitAnd:
		return BitAnd
	case parser.OpBitOr:
		return BitOr
	case parser.OpBitXor:
		return BitXor
	case parser.OpShiftLeft:
		return ShiftLeft
	case parser.OpShiftRight:
		return ShiftRight
	case parser.OpEqual:
		return Equal
	case parser.OpNotEqual:
		return NotEqual
	case parser.OpLessThan:
		return LessThan
	case parser.OpLessOrEqual:
		return LessOrEqual
	case parser.OpGreaterThan:
		return GreaterThan
	case parser.OpGreaterOrEqual:
		return GreaterOrEqual
	default:
		panic("ir: unhandled binary operator (logical && and || lower via short-circuit helpers, not this table)")
	}
}

// lowerLogicalAnd lowers `left && right` without evaluating right unless
// left is nonzero.
func (lw *Lowerer) lowerLogicalAnd(e *parser.Binary) Value {
	falseLabel := lw.newLabel("and_false")
	endLabel := lw.newLabel("and_end")
	dst := lw.newTemp()

	left := lw.lowerExpr(e.Left)
	lw.emit(JumpIfZero{Cond: left, Target: falseLabel})
	right := lw.lowerExpr(e.Right)
	lw.emit(JumpIfZero{Cond: right, Target: falseLabel})
	lw.emit(Copy{Src: Constant{IntVal: 1}, Dst: dst})
	lw.emit(Jump{Target: endLabel})
	lw.emit(Label{Name: falseLabel})
	lw.emit(Copy{Src: Constant{IntVal: 0}, Dst: dst})
	lw.emit(Label{Name: endLabel})
	return dst
}

// lowerLogicalOr lowers `left || right` without evaluating right unless
// left is zero.
func (lw *Lowerer) lowerLogicalOr(e *parser.Binary) Value {
	trueLabel := lw.newLabel("or_true")
	endLabel := lw.newLabel("or_end")
	dst := lw.newTemp()

	left := lw.lowerExpr(e.Left)
	lw.emit(JumpIfNotZero{Cond: left, Target: trueLabel})
	right := lw.lowerExpr(e.Right)
	lw.emit(JumpIfNotZero{Cond: right, Target: trueLabel})
	lw.emit(Copy{Src: Constant{IntVal: 0}, Dst: dst})
	lw.emit(Jump{Target: endLabel})
	lw.emit(Label{Name: trueLabel})
	lw.emit(Copy{Src: Constant{IntVal: 1}, Dst: dst})
	lw.emit(Label{Name: endLabel})
	return dst
}

// lowerConditional lowers the ternary `cond ? then : else`.
func (lw *Lowerer) lowerConditional(e *parser.Conditional) Value {
	elseLabel := lw.newLabel("ternary_else")
	endLabel := lw.newLabel("ternary_end")
	dst := lw.newTemp()

	cond := lw.lowerExpr(e.Cond)
	lw.emit(JumpIfZero{Cond: cond, Target: elseLabel})
	thenVal := lw.lowerExpr(e.Then)
	lw.emit(Copy{Src: thenVal, Dst: dst})
	lw.emit(Jump{Target: endLabel})
	lw.emit(Label{Name: elseLabel})
	elseVal := lw.lowerExpr(e.Else)
	lw.emit(Copy{Src: elseVal, Dst: dst})
	lw.emit(Label{Name: endLabel})
	return dst
}
