/*
File    : cgoc/ir/ir_statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Statement lowering. Loop, switch, break, and continue nodes already carry
the target labels the semantic passes assigned them; goto and label
statements use the label name as written in the source. This file places
those labels in the emitted instruction stream and mints its own labels
for if/else and for the start of do-while and for loops.
*/
package ir

import (
	"fmt"

	"github.com/go-cgoc/cgoc/parser"
)

func (lw *Lowerer) lowerStatement(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.Return:
		if s.Value == nil {
			lw.emit(Return{Value: Constant{IntVal: 0}})
			return
		}
		val := lw.lowerExpr(s.Value)
		lw.emit(Return{Value: val})

	case *parser.ExpressionStatement:
		lw.lowerExpr(s.Expr)

	case *parser.Null:
		// no-op

	case *parser.If:
		lw.lowerIf(s)

	case *parser.Compound:
		for _, item := range s.Items {
			lw.lowerBlockItem(item)
		}

	case *parser.While:
		lw.lowerWhile(s)

	case *parser.DoWhile:
		lw.lowerDoWhile(s)

	case *parser.For:
		lw.lowerFor(s)

	case *parser.Break:
		lw.emit(Jump{Target: s.Label})

	case *parser.Continue:
		lw.emit(Jump{Target: s.Label})

	case *parser.Goto:
		lw.emit(Jump{Target: s.Target})

	case *parser.LabelStatement:
		lw.emit(Label{Name: s.Name})
		lw.lowerStatement(s.Inner)

	case *parser.Switch:
		lw.lowerSwitch(s)

	default:
		panic(fmt.Sprintf("ir: unhandled statement kind %T", stmt))
	}
}

func (lw *Lowerer) lowerIf(s *parser.If) {
	cond := lw.lowerExpr(s.Cond)
	if s.Else == nil {
		endLabel := lw.newLabel("if_end")
		lw.emit(JumpIfZero{Cond: cond, Target: endLabel})
		lw.lowerStatement(s.Then)
		lw.emit(Label{Name: endLabel})
		return
	}
	elseLabel := lw.newLabel("if_else")
	endLabel := lw.newLabel("if_end")
	lw.emit(JumpIfZero{Cond: cond, Target: elseLabel})
	lw.lowerStatement(s.Then)
	lw.emit(Jump{Target: endLabel})
	lw.emit(Label{Name: elseLabel})
	lw.lowerStatement(s.Else)
	lw.emit(Label{Name: endLabel})
}

// lowerWhile lowers `while (Cond) Body` as:
//
//	continueLabel:
//	  t = Cond
//	  JumpIfZero t, breakLabel
//	  Body
//	  Jump continueLabel
//	breakLabel:
func (lw *Lowerer) lowerWhile(s *parser.While) {
	lw.emit(Label{Name: s.Label})
	cond := lw.lowerExpr(s.Cond)
	lw.emit(JumpIfZero{Cond: cond, Target: s.BreakLabel})
	lw.lowerStatement(s.Body)
	lw.emit(Jump{Target: s.Label})
	lw.emit(Label{Name: s.BreakLabel})
}

// lowerDoWhile lowers `do Body while (Cond);` as:
//
//	startLabel:
//	  Body
//	continueLabel:
//	  t = Cond
//	  JumpIfNotZero t, startLabel
//	breakLabel:
func (lw *Lowerer) lowerDoWhile(s *parser.DoWhile) {
	startLabel := lw.newLabel("do_start")
	lw.emit(Label{Name: startLabel})
	lw.lowerStatement(s.Body)
	lw.emit(Label{Name: s.Label})
	cond := lw.lowerExpr(s.Cond)
	lw.emit(JumpIfNotZero{Cond: cond, Target: startLabel})
	lw.emit(Label{Name: s.BreakLabel})
}

// lowerFor lowers the three-clause for loop. The continue target sits
// immediately before the post-expression, matching C's rule that
// `continue` inside a for-loop still runs Post before re-checking Cond.
//
//	Init
//	startLabel:
//	  t = Cond            (skipped entirely if Cond is absent)
//	  JumpIfZero t, breakLabel
//	  Body
//	continueLabel:
//	  Post
//	  Jump startLabel
//	breakLabel:
func (lw *Lowerer) lowerFor(s *parser.For) {
	if s.Init.Decl != nil {
		lw.lowerDeclaration(s.Init.Decl)
	} else if s.Init.Expr != nil {
		lw.lowerExpr(s.Init.Expr)
	}

	startLabel := lw.newLabel("for_start")
	lw.emit(Label{Name: startLabel})
	if s.Cond != nil {
		cond := lw.lowerExpr(s.Cond)
		lw.emit(JumpIfZero{Cond: cond, Target: s.BreakLabel})
	}
	lw.lowerStatement(s.Body)
	lw.emit(Label{Name: s.Label})
	if s.Post != nil {
		lw.lowerExpr(s.Post)
	}
	lw.emit(Jump{Target: startLabel})
	lw.emit(Label{Name: s.BreakLabel})
}

// lowerSwitch lowers the controlling expression once into a temporary,
// then compares it against each case value in source order, falling
// through to default (or past the switch, if there is no default) when
// nothing matches.
func (lw *Lowerer) lowerSwitch(s *parser.Switch) {
	cond := lw.lowerExpr(s.Cond)
	condTmp := lw.newTemp()
	lw.emit(Copy{Src: cond, Dst: condTmp})

	defaultLabel := ""
	for _, c := range s.Cases {
		if c.Value == nil {
			defaultLabel = c.Label
			continue
		}
		eqTmp := lw.newTemp()
		lw.emit(Binary{Op: Equal, Left: condTmp, Right: lowerConstant(c.Value), Dst: eqTmp})
		lw.emit(JumpIfNotZero{Cond: eqTmp, Target: c.Label})
	}
	if defaultLabel != "" {
		lw.emit(Jump{Target: defaultLabel})
	} else {
		lw.emit(Jump{Target: s.BreakLabel})
	}

	for _, c := range s.Cases {
		lw.emit(Label{Name: c.Label})
		for _, item := range c.Body {
			lw.lowerBlockItem(item)
		}
	}
	lw.emit(Label{Name: s.BreakLabel})
}
