/*
File    : cgoc/ir/lower.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

lower.go holds the Lowerer's shared state (temporary-variable and
label-uniquifying counters) and the Program/Function entry points.
Expression lowering lives in ir_expressions.go, statement lowering in
ir_statements.go.
*/
package ir

import (
	"fmt"

	"github.com/go-cgoc/cgoc/parser"
)

// Lowerer turns a resolved *parser.Program into an *ir.Program. Variable
// resolution has already made every source variable name unique, so the
// only fresh names the Lowerer introduces are temporaries and the labels
// it mints for ?:, &&/||, if/else, and the start of do-while and for loops.
type Lowerer struct {
	tmpCounter   int
	labelCounter int

	body []Instruction
}

// NewLowerer creates a Lowerer ready to process a Program.
func NewLowerer() *Lowerer {
	return &Lowerer{}
}

func (lw *Lowerer) newTemp() Var {
	lw.tmpCounter++
	return Var{Name: fmt.Sprintf("tmp.%d", lw.tmpCounter)}
}

func (lw *Lowerer) newLabel(prefix string) string {
	lw.labelCounter++
	return fmt.Sprintf("%s.%d", prefix, lw.labelCounter)
}

func (lw *Lowerer) emit(inst Instruction) {
	lw.body = append(lw.body, inst)
}

// Lower translates prog into its IR form.
func (lw *Lowerer) Lower(prog *parser.Program) *Program {
	out := &Program{}
	for _, fn := range prog.Functions {
		out.Functions = append(out.Functions, lw.lowerFunction(fn))
	}
	return out
}

func (lw *Lowerer) lowerFunction(fn *parser.Function) *Function {
	lw.body = nil
	for _, item := range fn.Body.Items {
		lw.lowerBlockItem(item)
	}
	// Return validation leaves every accepted body ending in a return
	// statement, but the lowered body can still end in a label (e.g. a
	// switch's break label); in that case a trailing `return 0` is added so
	// no path runs off the end. A body already ending in Return gets none.
	if n := len(lw.body); n == 0 || lw.body[n-1].InstructionKind() != ReturnInst {
		lw.emit(Return{Value: Constant{IntVal: 0}})
	}

	var params []string
	for _, p := range fn.Params {
		params = append(params, p.Name)
	}
	return &Function{Name: fn.Name, Params: params, Body: lw.body}
}

func (lw *Lowerer) lowerBlockItem(item parser.BlockItem) {
	if item.Decl != nil {
		lw.lowerDeclaration(item.Decl)
		return
	}
	lw.lowerStatement(item.Stmt)
}

func (lw *Lowerer) lowerDeclaration(decl *parser.Declaration) {
	if decl.Init == nil {
		return
	}
	val := lw.lowerExpr(decl.Init)
	lw.emit(Copy{Src: val, Dst: Var{Name: decl.Name}})
}
