package bigfloat

import (
	"math"
	"math/big"

	"bigcalc/calcerror"
)

// BigFloat is an arbitrary-precision binary floating-point value at a
// Context's working precision. Every value that escapes this package has
// already passed the accuracy guard: it is finite and its magnitude is
// bounded by the owning Context's Max.
type BigFloat struct {
	v *big.Float
}

// Float returns the underlying *big.Float, for the renderer and the
// bytecode backend's constant pool.
func (b BigFloat) Float() *big.Float { return b.v }

// Wrap builds a BigFloat from an already-computed *big.Float, applying
// the accuracy guard. Used by the bytecode VM, whose constant pool holds
// *big.Float values.
func Wrap(ctx *Context, f *big.Float) (BigFloat, error) {
	return accuracy(ctx, f)
}

// Parse parses a decimal/scientific literal (as produced by the
// evaluator's number-lexeme extraction) into a BigFloat at the
// context's precision.
func Parse(ctx *Context, text string) (BigFloat, error) {
	f, ok := new(big.Float).SetPrec(ctx.Prec).SetString(text)
	if !ok {
		return BigFloat{}, calcerror.New(calcerror.InvalidNumber, -1)
	}
	return accuracy(ctx, f)
}

// accuracy is the guard every computed value passes through: finite,
// and |v| <= ctx.Max.
func accuracy(ctx *Context, f *big.Float) (BigFloat, error) {
	if f.IsInf() {
		return BigFloat{}, calcerror.New(calcerror.BeyondAccuracy, -1)
	}
	abs := new(big.Float).SetPrec(ctx.Prec).Abs(f)
	if abs.Cmp(ctx.Max) > 0 {
		return BigFloat{}, calcerror.New(calcerror.BeyondAccuracy, -1)
	}
	f.SetPrec(ctx.Prec)
	return BigFloat{v: f}, nil
}

// Add, Sub, Mul compute the eponymous operation at the context's
// precision and pass the result through the accuracy guard.
func Add(ctx *Context, a, b BigFloat) (BigFloat, error) {
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Add(a.v, b.v))
}

func Sub(ctx *Context, a, b BigFloat) (BigFloat, error) {
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Sub(a.v, b.v))
}

func Mul(ctx *Context, a, b BigFloat) (BigFloat, error) {
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Mul(a.v, b.v))
}

// Neg negates a, passing the result through the accuracy guard (a
// negated constant can never overflow it, but every value leaving this
// package takes the same path regardless).
func Neg(ctx *Context, a BigFloat) (BigFloat, error) {
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Neg(a.v))
}

// Div computes a/b, failing with DivideByZero when b is zero.
func Div(ctx *Context, a, b BigFloat) (BigFloat, error) {
	if b.v.Sign() == 0 {
		return BigFloat{}, calcerror.New(calcerror.DivideByZero, -1)
	}
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Quo(a.v, b.v))
}

// Mod computes a - trunc(a/b)*b: truncation toward zero of the
// quotient, which gives the modulo result the sign of the dividend.
// big.Float.Int already truncates towards zero, so this stays exact
// math/big arithmetic — no float64 bridge needed.
func Mod(ctx *Context, a, b BigFloat) (BigFloat, error) {
	if b.v.Sign() == 0 {
		return BigFloat{}, calcerror.New(calcerror.DivideByZero, -1)
	}
	working := ctx.Prec + 64
	quotient := new(big.Float).SetPrec(working).Quo(a.v, b.v)
	truncated, _ := quotient.Int(nil)
	truncatedF := new(big.Float).SetPrec(working).SetInt(truncated)
	product := new(big.Float).SetPrec(working).Mul(truncatedF, b.v)
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).Sub(a.v, product))
}

// Pow computes a^b. Integer exponents are evaluated by exponentiation
// by squaring directly on big.Float, staying exact; fractional
// exponents bridge through float64 (see the package doc comment).
func Pow(ctx *Context, a, b BigFloat) (BigFloat, error) {
	if n, ok := asSmallInt(b.v); ok {
		return powInt(ctx, a, n)
	}
	af, _ := a.v.Float64()
	bf, _ := b.v.Float64()
	return fromFloat64(ctx, math.Pow(af, bf))
}

// asSmallInt reports whether f holds an exact integer value that fits
// comfortably in the exponentiation-by-squaring loop below.
func asSmallInt(f *big.Float) (int64, bool) {
	if !f.IsInt() {
		return 0, false
	}
	n, acc := f.Int64()
	if acc != big.Exact {
		return 0, false
	}
	const limit = 1 << 20
	if n > limit || n < -limit {
		return 0, false
	}
	return n, true
}

func powInt(ctx *Context, a BigFloat, n int64) (BigFloat, error) {
	neg := n < 0
	if neg {
		n = -n
	}
	working := ctx.Prec + 64
	result := new(big.Float).SetPrec(working).SetInt64(1)
	base := new(big.Float).SetPrec(working).Copy(a.v)
	for n > 0 {
		if n&1 == 1 {
			result.Mul(result, base)
		}
		base.Mul(base, base)
		n >>= 1
	}
	if neg {
		if result.Sign() == 0 {
			return BigFloat{}, calcerror.New(calcerror.DivideByZero, -1)
		}
		one := new(big.Float).SetPrec(working).SetInt64(1)
		result = new(big.Float).SetPrec(working).Quo(one, result)
	}
	return accuracy(ctx, result)
}
