/*
File    : cgoc/main/print_visitor.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

PrintProgram renders an AST as an indented text dump, driven by the
--printAst flag. This is the one place the AST's node-specific formatting
logic lives; every other consumer (resolve, ir) type-switches on the
concrete node types instead.
*/
package main

import (
	"bytes"
	"fmt"

	"github.com/go-cgoc/cgoc/parser"
)

// printer accumulates an indented AST dump.
type printer struct {
	indent int
	buf    bytes.Buffer
}

func (p *printer) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) nested(f func()) {
	p.indent++
	f()
	p.indent--
}

// PrintProgram renders prog as an indented text tree.
func PrintProgram(prog *parser.Program) string {
	p := &printer{}
	p.line("Program")
	p.nested(func() {
		for _, fn := range prog.Functions {
			p.printFunction(fn)
		}
	})
	return p.buf.String()
}

func (p *printer) printFunction(fn *parser.Function) {
	p.line("Function %s", fn.Name)
	p.nested(func() {
		for _, param := range fn.Params {
			p.line("Param %s", param.Name)
		}
		p.printCompound(fn.Body)
	})
}

func (p *printer) printCompound(block *parser.Compound) {
	p.line("Compound")
	p.nested(func() {
		for _, item := range block.Items {
			if item.Decl != nil {
				p.printDeclaration(item.Decl)
			} else {
				p.printStatement(item.Stmt)
			}
		}
	})
}

func (p *printer) printDeclaration(decl *parser.Declaration) {
	p.line("Declaration %s", decl.Name)
	if decl.Init != nil {
		p.nested(func() { p.printExpr(decl.Init) })
	}
}

func (p *printer) printStatement(stmt parser.Stmt) {
	switch s := stmt.(type) {
	case *parser.Return:
		p.line("Return")
		if s.Value != nil {
			p.nested(func() { p.printExpr(s.Value) })
		}
	case *parser.ExpressionStatement:
		p.line("ExpressionStatement")
		p.nested(func() { p.printExpr(s.Expr) })
	case *parser.Null:
		p.line("Null")
	case *parser.If:
		p.line("If")
		p.nested(func() {
			p.printExpr(s.Cond)
			p.printStatement(s.Then)
			if s.Else != nil {
				p.printStatement(s.Else)
			}
		})
	case *parser.Compound:
		p.printCompound(s)
	case *parser.While:
		p.line("While")
		p.nested(func() {
			p.printExpr(s.Cond)
			p.printStatement(s.Body)
		})
	case *parser.DoWhile:
		p.line("DoWhile")
		p.nested(func() {
			p.printStatement(s.Body)
			p.printExpr(s.Cond)
		})
	case *parser.For:
		p.line("For")
		p.nested(func() {
			if s.Init.Decl != nil {
				p.printDeclaration(s.Init.Decl)
			} else if s.Init.Expr != nil {
				p.printExpr(s.Init.Expr)
			}
			if s.Cond != nil {
				p.printExpr(s.Cond)
			}
			if s.Post != nil {
				p.printExpr(s.Post)
			}
			p.printStatement(s.Body)
		})
	case *parser.Break:
		p.line("Break -> %s", s.Label)
	case *parser.Continue:
		p.line("Continue -> %s", s.Label)
	case *parser.Goto:
		p.line("Goto %s", s.Target)
	case *parser.LabelStatement:
		p.line("Label %s", s.Name)
		p.nested(func() { p.printStatement(s.Inner) })
	case *parser.Switch:
		p.line("Switch")
		p.nested(func() {
			p.printExpr(s.Cond)
			for _, c := range s.Cases {
				if c.Value != nil {
					p.line("Case %d", c.Value.IntVal)
				} else {
					p.line("Default")
				}
				p.nested(func() {
					for _, item := range c.Body {
						if item.Decl != nil {
							p.printDeclaration(item.Decl)
						} else {
							p.printStatement(item.Stmt)
						}
					}
				})
			}
		})
	default:
		p.line("<unknown statement %T>", stmt)
	}
}

func (p *printer) printExpr(expr parser.Expr) {
	switch e := expr.(type) {
	case *parser.Constant:
		p.line("Constant %d", e.IntVal)
	case *parser.Var:
		p.line("Var %s", e.Name)
	case *parser.Unary:
		p.line("Unary %v", e.Op)
		p.nested(func() { p.printExpr(e.Inner) })
	case *parser.Binary:
		p.line("Binary %v", e.Op)
		p.nested(func() {
			p.printExpr(e.Left)
			p.printExpr(e.Right)
		})
	case *parser.Assignment:
		p.line("Assignment")
		p.nested(func() {
			p.printExpr(e.Target)
			p.printExpr(e.Value)
		})
	case *parser.CompoundAssignment:
		p.line("CompoundAssignment %v", e.Op)
		p.nested(func() {
			p.printExpr(e.Target)
			p.printExpr(e.Value)
		})
	case *parser.PrefixIncDec:
		p.line("PrefixIncDec increment=%v", e.Increment)
		p.nested(func() { p.printExpr(e.Target) })
	case *parser.PostfixIncDec:
		p.line("PostfixIncDec increment=%v", e.Increment)
		p.nested(func() { p.printExpr(e.Target) })
	case *parser.Conditional:
		p.line("Conditional")
		p.nested(func() {
			p.printExpr(e.Cond)
			p.printExpr(e.Then)
			p.printExpr(e.Else)
		})
	case *parser.FunctionCall:
		p.line("FunctionCall %s", e.Callee)
		p.nested(func() {
			for _, arg := range e.Args {
				p.printExpr(arg)
			}
		})
	default:
		p.line("<unknown expr %T>", expr)
	}
}
