/*
File    : cgoc/codegen/phase_c.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)

Phase C: legalize instructions that x86 cannot execute as phase B left
them (mostly: no instruction may reference two memory operands at once),
and prepend the frame-allocation instruction now that phase B has settled
each function's StackSize.
*/
package codegen

// FixupInstructions runs phase C over prog.
func FixupInstructions(prog *Program) {
	for _, fn := range prog.Functions {
		fn.Instructions = fixupFunction(fn)
	}
}

func isStack(op Operand) bool {
	_, ok := op.(Stack)
	return ok
}

func fixupFunction(fn *Function) []Instruction {
	var out []Instruction
	if fn.StackSize > 0 {
		out = append(out, AllocateStack{Bytes: fn.StackSize})
	}
	for _, inst := range fn.Instructions {
		out = append(out, fixupInstruction(inst)...)
	}
	return out
}

func fixupInstruction(inst Instruction) []Instruction {
	switch in := inst.(type) {
	case Mov:
		if isStack(in.Src) && isStack(in.Dst) {
			return []Instruction{
				Mov{Src: in.Src, Dst: Reg{Name: R10}},
				Mov{Src: Reg{Name: R10}, Dst: in.Dst},
			}
		}
		return []Instruction{in}

	case Binary:
		return fixupBinary(in)

	case Cmp:
		if isStack(in.Left) && isStack(in.Right) {
			return []Instruction{
				Mov{Src: in.Left, Dst: Reg{Name: R10}},
				Cmp{Left: Reg{Name: R10}, Right: in.Right},
			}
		}
		if _, ok := in.Right.(Imm); ok {
			// cmp's second (destination) operand may not be an immediate.
			return []Instruction{
				Mov{Src: in.Right, Dst: Reg{Name: R11}},
				Cmp{Left: in.Left, Right: Reg{Name: R11}},
			}
		}
		return []Instruction{in}

	case Idiv:
		if _, ok := in.Operand.(Imm); ok {
			return []Instruction{
				Mov{Src: in.Operand, Dst: Reg{Name: R10}},
				Idiv{Operand: Reg{Name: R10}},
			}
		}
		return []Instruction{in}

	default:
		return []Instruction{in}
	}
}

func fixupBinary(in Binary) []Instruction {
	switch in.Op {
	case AddOp, SubOp, AndOp, OrOp, XorOp:
		if isStack(in.Src) && isStack(in.Dst) {
			return []Instruction{
				Mov{Src: in.Src, Dst: Reg{Name: R10}},
				Binary{Op: in.Op, Src: Reg{Name: R10}, Dst: in.Dst},
			}
		}
		return []Instruction{in}

	case MulOp:
		if isStack(in.Dst) {
			return []Instruction{
				Mov{Src: in.Dst, Dst: Reg{Name: R11}},
				Binary{Op: MulOp, Src: in.Src, Dst: Reg{Name: R11}},
				Mov{Src: Reg{Name: R11}, Dst: in.Dst},
			}
		}
		return []Instruction{in}

	case ShlOp, SarOp:
		if isStack(in.Src) {
			return []Instruction{
				Mov{Src: in.Src, Dst: Reg{Name: CX}},
				Binary{Op: in.Op, Src: Reg{Name: CX}, Dst: in.Dst},
			}
		}
		return []Instruction{in}

	default:
		return []Instruction{in}
	}
}
