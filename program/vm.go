package program

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"bigcalc/bigfloat"
	"bigcalc/calcerror"
)

// stack is a LIFO of already-accuracy-guarded bigfloat.BigFloat values,
// preallocated the same way the evaluator's own operand stack is.
type stack []bigfloat.BigFloat

func (s *stack) push(v bigfloat.BigFloat) { *s = append(*s, v) }

func (s *stack) pop() (bigfloat.BigFloat, bool) {
	if len(*s) == 0 {
		return bigfloat.BigFloat{}, false
	}
	n := len(*s) - 1
	v := (*s)[n]
	*s = (*s)[:n]
	return v, true
}

// VM runs a compiled Program against a precision context, looking up
// OpCall's function name in the shared bigfloat.Functions table at run
// time rather than baking a func value into the Program itself.
type VM struct {
	ctx   *bigfloat.Context
	stack stack
	ip    int
}

// NewVM builds a VM that executes at ctx's precision.
func NewVM(ctx *bigfloat.Context) *VM {
	return &VM{ctx: ctx, stack: make(stack, 0, 32)}
}

// Run executes prog from its first instruction and returns the single
// value left on the stack when OpEnd is reached.
func (vm *VM) Run(prog *Program) (bigfloat.BigFloat, error) {
	vm.ip = 0
	vm.stack = vm.stack[:0]
	code := prog.Instructions

	for {
		if vm.ip >= len(code) {
			return bigfloat.BigFloat{}, calcerror.New(calcerror.UnknownError, -1)
		}
		op := Opcode(code[vm.ip])

		switch op {
		case OpEnd:
			v, ok := vm.stack.pop()
			if !ok {
				return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, -1)
			}
			return v, nil

		case OpConst:
			idx := binary.BigEndian.Uint16(code[vm.ip+1 : vm.ip+3])
			wrapped, err := bigfloat.Wrap(vm.ctx, new(big.Float).Copy(prog.Constants[idx]))
			if err != nil {
				return bigfloat.BigFloat{}, err
			}
			vm.stack.push(wrapped)

		case OpNeg:
			a, ok := vm.stack.pop()
			if !ok {
				return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, -1)
			}
			result, err := bigfloat.Neg(vm.ctx, a)
			if err != nil {
				return bigfloat.BigFloat{}, err
			}
			vm.stack.push(result)

		case OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow:
			b, okB := vm.stack.pop()
			a, okA := vm.stack.pop()
			if !okA || !okB {
				return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, -1)
			}
			result, err := applyBinary(vm.ctx, op, a, b)
			if err != nil {
				return bigfloat.BigFloat{}, err
			}
			vm.stack.push(result)

		case OpCall:
			idx := binary.BigEndian.Uint16(code[vm.ip+1 : vm.ip+3])
			name := prog.Functions[idx]
			fn, ok := bigfloat.Functions[name]
			if !ok {
				return bigfloat.BigFloat{}, calcerror.New(calcerror.FunctionUndefined, -1)
			}
			arg, ok := vm.stack.pop()
			if !ok {
				return bigfloat.BigFloat{}, calcerror.New(calcerror.ExpressionError, -1)
			}
			result, err := fn(vm.ctx, arg)
			if err != nil {
				return bigfloat.BigFloat{}, err
			}
			vm.stack.push(result)

		default:
			return bigfloat.BigFloat{}, fmt.Errorf("program: unknown opcode %d at ip %d", op, vm.ip)
		}

		vm.ip += instructionLen(op)
	}
}

func applyBinary(ctx *bigfloat.Context, op Opcode, a, b bigfloat.BigFloat) (bigfloat.BigFloat, error) {
	switch op {
	case OpAdd:
		return bigfloat.Add(ctx, a, b)
	case OpSub:
		return bigfloat.Sub(ctx, a, b)
	case OpMul:
		return bigfloat.Mul(ctx, a, b)
	case OpDiv:
		return bigfloat.Div(ctx, a, b)
	case OpMod:
		return bigfloat.Mod(ctx, a, b)
	case OpPow:
		return bigfloat.Pow(ctx, a, b)
	default:
		return bigfloat.BigFloat{}, calcerror.New(calcerror.UnknownOperator, -1)
	}
}
