package program

import (
	"encoding/binary"
	"fmt"
	"strings"
)

var mnemonics = map[Opcode]string{
	OpConst: "OP_CONST",
	OpNeg:   "OP_NEG",
	OpAdd:   "OP_ADD",
	OpSub:   "OP_SUB",
	OpMul:   "OP_MUL",
	OpDiv:   "OP_DIV",
	OpMod:   "OP_MOD",
	OpPow:   "OP_POW",
	OpCall:  "OP_CALL",
	OpEnd:   "OP_END",
}

// Disassemble renders prog's instruction stream as one mnemonic per
// line, each prefixed with its byte offset, in the teacher's
// astCompiler.DiassembleBytecode spirit: a flat human-readable listing
// rather than a structured type, since its only consumer is the
// bytecode subcommand's stdout.
func Disassemble(prog *Program) string {
	var b strings.Builder
	code := prog.Instructions
	for ip := 0; ip < len(code); {
		op := Opcode(code[ip])
		name, ok := mnemonics[op]
		if !ok {
			fmt.Fprintf(&b, "%04d ERROR unknown opcode %d\n", ip, op)
			break
		}

		switch widths[op] {
		case 2:
			operand := binary.BigEndian.Uint16(code[ip+1 : ip+3])
			switch op {
			case OpConst:
				fmt.Fprintf(&b, "%04d %-10s %d (%s)\n", ip, name, operand, prog.Constants[operand].Text('g', 10))
			case OpCall:
				fmt.Fprintf(&b, "%04d %-10s %d (%s)\n", ip, name, operand, prog.Functions[operand])
			default:
				fmt.Fprintf(&b, "%04d %-10s %d\n", ip, name, operand)
			}
		default:
			fmt.Fprintf(&b, "%04d %-10s\n", ip, name)
		}

		ip += instructionLen(op)
	}
	return b.String()
}
