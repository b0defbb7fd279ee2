// Package program is the secondary execution backend: it compiles the
// same grammar the evaluator interprets directly into a flat bytecode
// instruction stream plus a constants pool, then runs that stream on a
// small stack machine. It exists alongside the single-pass evaluator the
// way the teacher keeps its compiler/vm pair distinct from its
// interpreter package — two independent implementations of the same
// semantics, not a caching layer: each call to Compile produces a
// throwaway Program for that one expression, evaluated once.
package program

import "encoding/binary"

// Opcode identifies one bytecode instruction.
type Opcode byte

const (
	// OpConst pushes Constants[operand] onto the stack. 2-byte operand.
	OpConst Opcode = iota
	// OpNeg negates the top of the stack in place. No operand.
	OpNeg
	// OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow pop b then a, push a<op>b.
	// No operand.
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	// OpCall pops one value, applies Functions[operand] to it, pushes
	// the result. 2-byte operand.
	OpCall
	// OpEnd halts the virtual machine.
	OpEnd
)

// widths gives the number of operand bytes each opcode's single operand
// occupies, or 0 for opcodes that take none.
var widths = map[Opcode]int{
	OpConst: 2,
	OpNeg:   0,
	OpAdd:   0,
	OpSub:   0,
	OpMul:   0,
	OpDiv:   0,
	OpMod:   0,
	OpPow:   0,
	OpCall:  2,
	OpEnd:   0,
}

// encode appends one instruction (opcode plus big-endian operand, when
// the opcode takes one) to buf and returns the extended slice.
func encode(buf []byte, op Opcode, operand int) []byte {
	buf = append(buf, byte(op))
	switch widths[op] {
	case 2:
		var b [2]byte
		binary.BigEndian.PutUint16(b[:], uint16(operand))
		buf = append(buf, b[:]...)
	}
	return buf
}

// instructionLen returns the total byte length (opcode plus operand) of
// an instruction with opcode op.
func instructionLen(op Opcode) int {
	return 1 + widths[op]
}
