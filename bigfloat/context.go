// Package bigfloat is the arithmetic layer of the calculator: an
// arbitrary-precision value type backed by math/big, the accuracy guard
// that every result passes through, the six binary primitives, the
// named-constant table, and the unary function table of the evaluator's
// function calls.
//
// No third-party package in the retrieved corpus provides an
// MPFR-equivalent arbitrary-precision transcendental math library (the
// role filled by rug/GNU-MPFR in the system this module was distilled
// from), so the primitives that can stay exact — add, sub, mul, div,
// integer pow, and mod — are implemented directly on math/big, while the
// transcendental/special-function table bridges through float64 and the
// standard math package. See SPEC_FULL.md §3 for which functions take
// that bridge.
package bigfloat

import "math/big"

// Context is the immutable precision record shared by every BigFloat
// computation within one evaluator instance: a working precision in
// bits, and the magnitude cap every result must respect.
type Context struct {
	Prec uint
	Max  *big.Float
}

// minPrec is the floor construction clamps Prec to, per spec.
const minPrec = 64

// NewContext builds a Context at the requested bit precision, clamping
// it up to minPrec, and derives Max = floor(10^(floor(0.30103*prec) -
// floor(0.0025*prec))).
func NewContext(prec uint) *Context {
	if prec < minPrec {
		prec = minPrec
	}
	return &Context{Prec: prec, Max: accuracyCap(prec)}
}

// accuracyCap computes the decimal-magnitude ceiling for the given bit
// precision. The two constants track the decimal-digit headroom at
// precision p minus a small safety margin for accumulated error; they
// are not meant to be tuned independently of the formula they came
// from, only replicated.
func accuracyCap(prec uint) *big.Float {
	exp := int(0.30103*float64(prec)) - int(0.0025*float64(prec))
	working := prec + 64
	ten := new(big.Float).SetPrec(working).SetInt64(10)
	result := new(big.Float).SetPrec(working).SetInt64(1)
	for i := 0; i < exp; i++ {
		result.Mul(result, ten)
	}
	result.SetPrec(prec)
	return result
}
