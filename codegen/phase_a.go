/*
File    : cgoc/codegen/phase_a.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Phase A: translate each IR instruction into one or more pseudo-assembly
instructions. IR Vars become Pseudo operands; real register assignment and
frame layout happen in phase B.
*/
package codegen

import (
	"fmt"

	"github.com/go-cgoc/cgoc/diag"
	"github.com/go-cgoc/cgoc/ir"
)

// Generator carries the diagnostic bag threaded through codegen; nearly
// every diagnostic it can raise indicates an internal invariant violation
// (e.g. a call with more than six arguments, which the language's function
// grammar is not expected to build, but which codegen still checks
// explicitly rather than silently mis-compiling).
type Generator struct {
	Diags diag.Bag
}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) fail(format string, args ...interface{}) {
	g.Diags.Add(diag.Diagnostic{
		Kind:    diag.Codegen,
		Message: fmt.Sprintf(format, args...),
	})
}

// GenerateAssembly runs phase A over prog.
func (g *Generator) GenerateAssembly(prog *ir.Program) *Program {
	out := &Program{}
	for _, fn := range prog.Functions {
		out.Functions = append(out.Functions, g.generateFunction(fn))
	}
	return out
}

func (g *Generator) generateFunction(fn *ir.Function) *Function {
	out := &Function{Name: fn.Name}

	if len(fn.Params) > len(argRegisters) {
		g.fail("function %q takes %d parameters, more than the %d this backend passes in registers",
			fn.Name, len(fn.Params), len(argRegisters))
	}
	for i, param := range fn.Params {
		if i >= len(argRegisters) {
			break
		}
		out.Instructions = append(out.Instructions, Mov{Src: Reg{Name: argRegisters[i]}, Dst: Pseudo{Name: param}})
	}

	for _, inst := range fn.Body {
		out.Instructions = append(out.Instructions, g.generateInstruction(inst)...)
	}
	return out
}

func operandFromValue(v ir.Value) Operand {
	switch val := v.(type) {
	case ir.Constant:
		if val.Unsigned {
			return Imm{Value: int64(val.UintVal)}
		}
		return Imm{Value: val.IntVal}
	case ir.Var:
		return Pseudo{Name: val.Name}
	default:
		panic(fmt.Sprintf("codegen: unhandled ir.Value kind %T", v))
	}
}

func (g *Generator) generateInstruction(inst ir.Instruction) []Instruction {
	switch in := inst.(type) {
	case ir.Return:
		return []Instruction{
			Mov{Src: operandFromValue(in.Value), Dst: Reg{Name: AX}},
			Ret{},
		}

	case ir.Unary:
		return g.generateUnary(in)

	case ir.Binary:
		return g.generateBinary(in)

	case ir.Copy:
		return []Instruction{
			Mov{Src: operandFromValue(in.Src), Dst: Pseudo{Name: in.Dst.Name}},
		}

	case ir.Jump:
		return []Instruction{Jmp{Target: in.Target}}

	case ir.JumpIfZero:
		return []Instruction{
			Cmp{Left: Imm{Value: 0}, Right: operandFromValue(in.Cond)},
			JmpCC{Cond: E, Target: in.Target},
		}

	case ir.JumpIfNotZero:
		return []Instruction{
			Cmp{Left: Imm{Value: 0}, Right: operandFromValue(in.Cond)},
			JmpCC{Cond: NE, Target: in.Target},
		}

	case ir.Label:
		return []Instruction{Label{Name: in.Name}}

	case ir.FunctionCall:
		return g.generateCall(in)

	default:
		panic(fmt.Sprintf("codegen: unhandled ir.Instruction kind %T", inst))
	}
}

func (g *Generator) generateUnary(in ir.Unary) []Instruction {
	if in.Op == ir.Not {
		// `!x` is logical, not bitwise: compute (x == 0) via cmp+setcc
		// rather than routing through the bitwise Unary.Not opcode.
		return []Instruction{
			Cmp{Left: Imm{Value: 0}, Right: operandFromValue(in.Src)},
			Mov{Src: Imm{Value: 0}, Dst: Pseudo{Name: in.Dst.Name}},
			SetCC{Cond: E, Operand: Pseudo{Name: in.Dst.Name}},
		}
	}
	op := Neg
	if in.Op == ir.Complement {
		op = Not
	}
	return []Instruction{
		Mov{Src: operandFromValue(in.Src), Dst: Pseudo{Name: in.Dst.Name}},
		Unary{Op: op, Operand: Pseudo{Name: in.Dst.Name}},
	}
}

func (g *Generator) generateBinary(in ir.Binary) []Instruction {
	switch in.Op {
	case ir.Divide, ir.Remainder:
		resultReg := AX
		if in.Op == ir.Remainder {
			resultReg = DX
		}
		return []Instruction{
			Mov{Src: operandFromValue(in.Left), Dst: Reg{Name: AX}},
			Cdq{},
			Idiv{Operand: operandFromValue(in.Right)},
			Mov{Src: Reg{Name: resultReg}, Dst: Pseudo{Name: in.Dst.Name}},
		}

	case ir.Equal, ir.NotEqual, ir.LessThan, ir.LessOrEqual, ir.GreaterThan, ir.GreaterOrEqual:
		return []Instruction{
			Cmp{Left: operandFromValue(in.Right), Right: operandFromValue(in.Left)},
			Mov{Src: Imm{Value: 0}, Dst: Pseudo{Name: in.Dst.Name}},
			SetCC{Cond: condCodeFor(in.Op), Operand: Pseudo{Name: in.Dst.Name}},
		}

	default:
		return []Instruction{
			Mov{Src: operandFromValue(in.Left), Dst: Pseudo{Name: in.Dst.Name}},
			Binary{Op: binaryOpcodeFor(in.Op), Src: operandFromValue(in.Right), Dst: Pseudo{Name: in.Dst.Name}},
		}
	}
}

func condCodeFor(op ir.BinaryOp) CondCode {
	switch op {
	case ir.Equal:
		return E
	case ir.NotEqual:
		return NE
	case ir.LessThan:
		return L
	case ir.LessOrEqual:
		return LE
	case ir.GreaterThan:
		return G
	case ir.GreaterOrEqual:
		return GE
	default:
		panic("codegen: not a comparison operator")
	}
}

func binaryOpcodeFor(op ir.BinaryOp) BinaryOpcode {
	switch op {
	case ir.Add:
		return AddOp
	case ir.Subtract:
		return SubOp
	case ir.Multiply:
		return MulOp
	case ir.BitAnd:
		return AndOp
	case ir.BitOr:
		return OrOp
	case ir.BitXor:
		return XorOp
	case ir.ShiftLeft:
		return ShlOp
	case ir.ShiftRight:
		return SarOp
	default:
		panic("codegen: not a simple arithmetic/bitwise operator")
	}
}

func (g *Generator) generateCall(in ir.FunctionCall) []Instruction {
	if len(in.Args) > len(argRegisters) {
		g.fail("call to %q passes %d arguments, more than the %d this backend passes in registers",
			in.Callee, len(in.Args), len(argRegisters))
	}
	var out []Instruction
	// Stack alignment padding: the System V ABI requires %rsp to be
	// 16-byte aligned at the `call` instruction. Since this backend never
	// pushes stack arguments, no padding instruction is needed here; it is
	// accounted for when phase B rounds the frame size up to 16 bytes.
	for i, arg := range in.Args {
		if i >= len(argRegisters) {
			break
		}
		out = append(out, Mov{Src: operandFromValue(arg), Dst: Reg{Name: argRegisters[i]}})
	}
	out = append(out, Call{Target: in.Callee})
	out = append(out, Mov{Src: Reg{Name: AX}, Dst: Pseudo{Name: in.Dst.Name}})
	return out
}
