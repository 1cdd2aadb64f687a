/*
File    : cgoc/resolve/resolve.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Package resolve implements the semantic passes that run between parsing
and IR lowering: variable resolution (every name becomes a unique
internal name), return validation (every control path out of a
non-void function returns a value), loop/switch labeling (break and
continue targets are attached directly to the nodes that need them), and
goto/label resolution (every label is declared exactly once per function,
in a flat function-wide namespace distinct from nested variable scopes).
*/
package resolve

import (
	"fmt"

	"github.com/go-cgoc/cgoc/diag"
	"github.com/go-cgoc/cgoc/parser"
	"github.com/go-cgoc/cgoc/scope"
)

// Resolver carries the mutable state threaded through all four semantic
// passes for one Program.
type Resolver struct {
	Diags diag.Bag

	varCounter   int
	labelCounter int

	// per-function state, reset by resolveFunction
	labels     *scope.LabelStack
	declared   map[string]bool // labels declared so far in the current function
	referenced map[string]bool // labels referenced by some goto in the current function
	funcName   string
}

// New creates a Resolver ready to process a Program.
func New() *Resolver {
	return &Resolver{}
}

func (r *Resolver) fail(pos parser.Position, format string, args ...interface{}) {
	r.Diags.Add(diag.Diagnostic{
		Kind:    diag.Semantic,
		Pos:     diag.Position{Line: pos.Line, Column: pos.Column},
		Message: fmt.Sprintf(format, args...),
	})
}

func (r *Resolver) newUniqueVar(name string) string {
	r.varCounter++
	return fmt.Sprintf("%s.%d", name, r.varCounter)
}

func (r *Resolver) newLabel(prefix string) string {
	r.labelCounter++
	return fmt.Sprintf("%s.%d", prefix, r.labelCounter)
}

// Resolve runs all semantic passes over prog in place, returning false if
// any diagnostic was recorded.
func (r *Resolver) Resolve(prog *parser.Program) bool {
	for _, fn := range prog.Functions {
		r.resolveFunction(fn)
	}
	return !r.Diags.HasErrors()
}

func (r *Resolver) resolveFunction(fn *parser.Function) {
	r.labels = &scope.LabelStack{}
	r.declared = make(map[string]bool)
	r.referenced = make(map[string]bool)
	r.funcName = fn.Name

	fnScope := scope.New()
	for i, param := range fn.Params {
		unique := r.newUniqueVar(param.Name)
		if !fnScope.Declare(param.Name, unique) {
			r.fail(fn.Position, "duplicate parameter name %q", param.Name)
		}
		fn.Params[i].Name = unique
	}

	r.resolveCompound(fn.Body, fnScope)
	r.validateReturns(fn)

	for name := range r.referenced {
		if !r.declared[name] {
			r.fail(fn.Position, "goto refers to undeclared label %q in function %q", name, fn.Name)
		}
	}
}

func (r *Resolver) resolveCompound(block *parser.Compound, parent *scope.Scope) {
	inner := parent.Child()
	for i := range block.Items {
		item := &block.Items[i]
		if item.Decl != nil {
			r.resolveDeclaration(item.Decl, inner)
		} else {
			r.resolveStatement(item.Stmt, inner)
		}
	}
}

func (r *Resolver) resolveDeclaration(decl *parser.Declaration, sc *scope.Scope) {
	if decl.Init != nil {
		r.resolveExpr(decl.Init, sc)
	}
	unique := r.newUniqueVar(decl.Name)
	if !sc.Declare(decl.Name, unique) {
		r.fail(decl.Position, "variable %q redeclared in the same scope", decl.Name)
		return
	}
	decl.Name = unique
}

func (r *Resolver) resolveStatement(stmt parser.Stmt, sc *scope.Scope) {
	switch s := stmt.(type) {
	case *parser.Return:
		if s.Value != nil {
			r.resolveExpr(s.Value, sc)
		}

	case *parser.ExpressionStatement:
		r.resolveExpr(s.Expr, sc)

	case *parser.Null:
		// no-op

	case *parser.If:
		r.resolveExpr(s.Cond, sc)
		r.resolveStatement(s.Then, sc)
		if s.Else != nil {
			r.resolveStatement(s.Else, sc)
		}

	case *parser.Compound:
		r.resolveCompound(s, sc)

	case *parser.While:
		r.resolveExpr(s.Cond, sc)
		breakLabel := r.newLabel("while_break")
		continueLabel := r.newLabel("while_continue")
		s.Label = continueLabel
		s.BreakLabel = breakLabel
		r.labels.PushLoop(breakLabel, continueLabel)
		r.resolveStatement(s.Body, sc)
		r.labels.Pop()

	case *parser.DoWhile:
		breakLabel := r.newLabel("do_break")
		continueLabel := r.newLabel("do_continue")
		s.Label = continueLabel
		s.BreakLabel = breakLabel
		r.labels.PushLoop(breakLabel, continueLabel)
		r.resolveStatement(s.Body, sc)
		r.labels.Pop()
		r.resolveExpr(s.Cond, sc)

	case *parser.For:
		forScope := sc.Child()
		if s.Init.Decl != nil {
			r.resolveDeclaration(s.Init.Decl, forScope)
		} else if s.Init.Expr != nil {
			r.resolveExpr(s.Init.Expr, forScope)
		}
		if s.Cond != nil {
			r.resolveExpr(s.Cond, forScope)
		}
		if s.Post != nil {
			r.resolveExpr(s.Post, forScope)
		}
		breakLabel := r.newLabel("for_break")
		continueLabel := r.newLabel("for_continue")
		s.Label = continueLabel
		s.BreakLabel = breakLabel
		r.labels.PushLoop(breakLabel, continueLabel)
		r.resolveStatement(s.Body, forScope)
		r.labels.Pop()

	case *parser.Break:
		target, ok := r.labels.CurrentBreak()
		if !ok {
			r.fail(s.Position, "break statement not within a loop or switch")
			return
		}
		s.Label = target

	case *parser.Continue:
		target, ok := r.labels.CurrentContinue()
		if !ok {
			r.fail(s.Position, "continue statement not within a loop")
			return
		}
		s.Label = target

	case *parser.Goto:
		r.referenced[s.Target] = true

	case *parser.LabelStatement:
		if r.declared[s.Name] {
			r.fail(s.Position, "label %q declared more than once in function %q", s.Name, r.funcName)
		}
		r.declared[s.Name] = true
		r.resolveStatement(s.Inner, sc)

	case *parser.Switch:
		r.resolveExpr(s.Cond, sc)
		breakLabel := r.newLabel("switch_break")
		s.BreakLabel = breakLabel
		r.labels.PushSwitch(breakLabel)
		seen := make(map[int64]bool)
		sawDefault := false
		for i := range s.Cases {
			c := &s.Cases[i]
			if c.Value == nil {
				if sawDefault {
					r.fail(s.Position, "switch statement has more than one default label")
				}
				sawDefault = true
				c.Label = r.newLabel("switch_default")
			} else {
				if seen[c.Value.IntVal] {
					r.fail(s.Position, "duplicate case value %d in switch statement", c.Value.IntVal)
				}
				seen[c.Value.IntVal] = true
				c.Label = r.newLabel("switch_case")
			}
			caseScope := sc.Child()
			for j := range c.Body {
				item := &c.Body[j]
				if item.Decl != nil {
					r.resolveDeclaration(item.Decl, caseScope)
				} else {
					r.resolveStatement(item.Stmt, caseScope)
				}
			}
		}
		r.labels.Pop()

	default:
		panic(fmt.Sprintf("resolve: unhandled statement kind %T", stmt))
	}
}

func (r *Resolver) resolveExpr(expr parser.Expr, sc *scope.Scope) {
	switch e := expr.(type) {
	case *parser.Constant:
		// no-op

	case *parser.Var:
		unique, ok := sc.Lookup(e.Name)
		if !ok {
			r.fail(e.Position, "use of undeclared identifier %q", e.Name)
			return
		}
		e.Name = unique

	case *parser.Unary:
		r.resolveExpr(e.Inner, sc)

	case *parser.Binary:
		r.resolveExpr(e.Left, sc)
		r.resolveExpr(e.Right, sc)

	case *parser.Assignment:
		if _, ok := e.Target.(*parser.Var); !ok {
			r.fail(e.Position, "left-hand side of assignment is not an lvalue")
		}
		r.resolveExpr(e.Target, sc)
		r.resolveExpr(e.Value, sc)

	case *parser.CompoundAssignment:
		if _, ok := e.Target.(*parser.Var); !ok {
			r.fail(e.Position, "left-hand side of compound assignment is not an lvalue")
		}
		r.resolveExpr(e.Target, sc)
		r.resolveExpr(e.Value, sc)

	case *parser.PrefixIncDec:
		if _, ok := e.Target.(*parser.Var); !ok {
			r.fail(e.Position, "operand of increment/decrement is not an lvalue")
		}
		r.resolveExpr(e.Target, sc)

	case *parser.PostfixIncDec:
		if _, ok := e.Target.(*parser.Var); !ok {
			r.fail(e.Position, "operand of increment/decrement is not an lvalue")
		}
		r.resolveExpr(e.Target, sc)

	case *parser.Conditional:
		r.resolveExpr(e.Cond, sc)
		r.resolveExpr(e.Then, sc)
		r.resolveExpr(e.Else, sc)

	case *parser.FunctionCall:
		for _, arg := range e.Args {
			r.resolveExpr(arg, sc)
		}

	default:
		panic(fmt.Sprintf("resolve: unhandled expression kind %T", expr))
	}
}
