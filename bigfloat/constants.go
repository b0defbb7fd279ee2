package bigfloat

import "math/big"

// constantDigits holds the four named constants the evaluator's grammar
// recognizes by sigil, each as a decimal literal of 39 to 60 significant
// digits (roughly 130 to 200 bits). Materializing them at a context's
// precision via SetString/SetPrec does not manufacture accuracy beyond
// these digits: at a precision finer than a literal carries (the default
// 256 bits is finer than all four), the bits past its last digit are
// those of the literal, not of the true constant.
var constantDigits = map[byte]string{
	'P': "3.14159265358979323846264338327950288419716939937510582097494",
	'Y': "0.57721566490153286060651209008240243104215933593992",
	'C': "0.915965594177219015054603514932384110774",
	'L': "0.69314718055994530941723212145817656807550013436025",
}

// Constant materializes the named constant (one of P, Y, C, L) at ctx's
// precision. It panics on any other byte: the evaluator's adjacency
// checks guarantee only those four sigils ever reach here.
func Constant(ctx *Context, sigil byte) BigFloat {
	digits, ok := constantDigits[sigil]
	if !ok {
		panic("bigfloat: unknown constant sigil " + string(sigil))
	}
	f, ok := new(big.Float).SetPrec(ctx.Prec).SetString(digits)
	if !ok {
		panic("bigfloat: malformed embedded constant literal for " + string(sigil))
	}
	return BigFloat{v: f}
}
