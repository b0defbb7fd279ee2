package bigfloat

import (
	"math"
	"math/big"

	"bigcalc/calcerror"
)

// Func is the shape every entry in the Functions table has: it takes
// the already-popped argument and the context it was computed in, and
// returns an accuracy-guarded result or a domain/guard error.
type Func func(ctx *Context, v BigFloat) (BigFloat, error)

// fromFloat64 is the float64-to-BigFloat bridge every transcendental
// function below funnels through. It rejects NaN and infinity itself,
// because big.Float.SetFloat64 panics on NaN rather than returning an
// error.
func fromFloat64(ctx *Context, f float64) (BigFloat, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return BigFloat{}, calcerror.New(calcerror.BeyondAccuracy, -1)
	}
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).SetFloat64(f))
}

// unary wraps a plain float64->float64 function as a Func, with no
// domain guard.
func unary(f func(float64) float64) Func {
	return func(ctx *Context, v BigFloat) (BigFloat, error) {
		x, _ := v.v.Float64()
		return fromFloat64(ctx, f(x))
	}
}

// guarded wraps a float64->float64 function with a domain predicate
// that must hold for the *BigFloat* argument (checked at full
// precision, before the float64 bridge) or the call fails with
// ParameterError.
func guarded(ok func(*big.Float) bool, f func(float64) float64) Func {
	return func(ctx *Context, v BigFloat) (BigFloat, error) {
		if !ok(v.v) {
			return BigFloat{}, calcerror.New(calcerror.ParameterError, -1)
		}
		x, _ := v.v.Float64()
		return fromFloat64(ctx, f(x))
	}
}

func gtZero(f *big.Float) bool  { return f.Sign() > 0 }
func geZero(f *big.Float) bool  { return f.Sign() >= 0 }
func neZero(f *big.Float) bool  { return f.Sign() != 0 }
func neOne(f *big.Float) bool {
	one := new(big.Float).SetPrec(f.Prec()).SetInt64(1)
	return f.Cmp(one) != 0
}
func inUnitRange(f *big.Float) bool {
	return f.Cmp(big.NewFloat(-1)) >= 0 && f.Cmp(big.NewFloat(1)) <= 0
}
func geOne(f *big.Float) bool { return f.Cmp(big.NewFloat(1)) >= 0 }
func inOpenUnitRange(f *big.Float) bool {
	return f.Cmp(big.NewFloat(-1)) > 0 && f.Cmp(big.NewFloat(1)) < 0
}

func sec(x float64) float64   { return 1 / math.Cos(x) }
func csc(x float64) float64   { return 1 / math.Sin(x) }
func cot(x float64) float64   { return math.Cos(x) / math.Sin(x) }
func sech(x float64) float64  { return 1 / math.Cosh(x) }
func csch(x float64) float64  { return 1 / math.Sinh(x) }
func coth(x float64) float64  { return math.Cosh(x) / math.Sinh(x) }
func frac(x float64) float64  { return x - math.Trunc(x) }
func recip(x float64) float64 { return 1 / x }
func sgn(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

// Functions is the evaluator's function table: a constant mapping from
// lowercase name to unary BigFloat function, matching spec §4.2.
var Functions = map[string]Func{
	"abs":     unary(math.Abs),
	"cos":     unary(math.Cos),
	"sin":     unary(math.Sin),
	"tan":     unary(math.Tan),
	"sec":     unary(sec),
	"cosh":    unary(math.Cosh),
	"sinh":    unary(math.Sinh),
	"tanh":    unary(math.Tanh),
	"sech":    unary(sech),
	"atan":    unary(math.Atan),
	"asinh":   unary(math.Asinh),
	"cbrt":    unary(math.Cbrt),
	"trunc":   unary(math.Trunc),
	"ceil":    unary(math.Ceil),
	"floor":   unary(math.Floor),
	"frac":    unary(frac),
	"sgn":     unary(sgn),
	"exp":     unary(math.Exp),
	"expt":    unary(math.Exp2),
	"expx":    unary(exp10),
	"ai":      unary(airy),
	"li":      unary(dilog),
	"erf":     unary(math.Erf),
	"erfc":    unary(math.Erfc),
	"ln":      guarded(gtZero, math.Log),
	"log":     guarded(gtZero, math.Log2),
	"logx":    guarded(gtZero, math.Log10),
	"sqrt":    guarded(geZero, math.Sqrt),
	"csc":     guarded(neZero, csc),
	"cot":     guarded(neZero, cot),
	"csch":    guarded(neZero, csch),
	"coth":    guarded(neZero, coth),
	"recip":   guarded(neZero, recip),
	"gamma":   guarded(neZero, math.Gamma),
	"digamma": guarded(neZero, digamma),
	"eint":    guarded(neZero, eint),
	"zeta":    guarded(neOne, zeta),
	"acos":    guarded(inUnitRange, math.Acos),
	"asin":    guarded(inUnitRange, math.Asin),
	"acosh":   guarded(geOne, math.Acosh),
	"atanh":   guarded(inOpenUnitRange, math.Atanh),
	"fac":     factorial,
}

func exp10(x float64) float64 { return math.Pow(10, x) }

// digamma approximates psi(x) for x != 0 via recurrence into the
// asymptotic tail expansion (Abramowitz & Stegun 6.3.18). Negative
// non-integer arguments reflect through psi(1-x) - pi/tan(pi x); the
// poles at non-positive integers are left to surface as BeyondAccuracy
// once the result goes non-finite.
func digamma(x float64) float64 {
	if x <= 0 && x == math.Trunc(x) {
		return math.NaN()
	}
	if x < 0 {
		return digamma(1-x) - math.Pi/math.Tan(math.Pi*x)
	}
	result := 0.0
	for x < 6 {
		result -= 1 / x
		x++
	}
	f := 1 / (x * x)
	result += math.Log(x) - 0.5/x -
		f*(1.0/12-f*(1.0/120-f*(1.0/252-f*(1.0/240-f*(1.0/132)))))
	return result
}

// zeta approximates the Riemann zeta function for s != 1 via an
// Euler-Maclaurin tail sum for s >= 0, and the functional equation
// zeta(s) = 2^s pi^(s-1) sin(pi s/2) Gamma(1-s) zeta(1-s) for s < 0.
func zeta(s float64) float64 {
	if s < 0 {
		return math.Pow(2, s) * math.Pow(math.Pi, s-1) * math.Sin(math.Pi*s/2) * math.Gamma(1-s) * zeta(1-s)
	}
	const n = 24
	sum := 0.0
	for k := 1; k <= n; k++ {
		sum += math.Pow(float64(k), -s)
	}
	nf := float64(n)
	sum += math.Pow(nf, 1-s) / (s - 1)
	sum -= 0.5 * math.Pow(nf, -s)
	b2 := s / (12 * math.Pow(nf, s+1))
	b4 := s * (s + 1) * (s + 2) / (720 * math.Pow(nf, s+3))
	sum += b2 - b4
	return sum
}

// eint approximates the exponential integral Ei(x) for x != 0: a
// convergent power series around zero, and a continued fraction for
// the negative tail -E1(-x) once |x| grows.
func eint(x float64) float64 {
	const euler = 0.5772156649015329
	if x > 0 {
		sum, term := 0.0, 1.0
		for k := 1; k <= 200; k++ {
			term *= x / float64(k)
			sum += term / float64(k)
		}
		return euler + math.Log(math.Abs(x)) + sum
	}
	y := -x
	if y < 2 {
		sum, term := 0.0, 1.0
		for k := 1; k <= 200; k++ {
			term *= -y / float64(k)
			sum += term / float64(k)
		}
		e1 := -euler - math.Log(y) - sum
		return -e1
	}
	a := 0.0
	for k := 60; k >= 1; k-- {
		a = float64(k) / (1 + float64(k)/(y+a))
	}
	e1 := math.Exp(-y) / (y + a)
	return -e1
}

// airy approximates the Airy function Ai(x) via its defining power
// series (Abramowitz & Stegun 10.4.2/10.4.3). The series converges for
// every x but loses accuracy for large |x|, where the true function
// decays/oscillates far faster than the truncated series tracks.
func airy(x float64) float64 {
	ai0 := 1 / (math.Cbrt(9) * math.Gamma(2.0/3.0))
	aip0 := -1 / (math.Cbrt(3) * math.Gamma(1.0/3.0))

	f, g := 1.0, x
	tf, tg := 1.0, x
	x3 := x * x * x
	for k := 1; k <= 30; k++ {
		n := float64(3 * k)
		tf *= x3 / (n * (n - 1))
		f += tf
		n = float64(3*k + 1)
		tg *= x3 / (n * (n - 1))
		g += tg
	}
	return ai0*f + aip0*g
}

// dilog approximates the real dilogarithm Li2(x) via its power series
// for |x| <= 0.5 and the standard reflection/inversion identities
// outside that range, each of which reduces to at most two recursive
// calls landing back in the fast-converging band.
func dilog(x float64) float64 {
	switch {
	case x == 1:
		return math.Pi * math.Pi / 6
	case x == -1:
		return -math.Pi * math.Pi / 12
	case x > 1:
		ln := math.Log(x)
		return math.Pi*math.Pi/3 - 0.5*ln*ln - dilog(1/x)
	case x < -1:
		ln := math.Log(1 - x)
		return -0.5*ln*ln - dilog(x/(x-1))
	case x > 0.5:
		return math.Pi*math.Pi/6 - math.Log(x)*math.Log(1-x) - dilog(1-x)
	case x < -0.5:
		ln := math.Log(1 - x)
		return -0.5*ln*ln - dilog(x/(x-1))
	default:
		sum, term := 0.0, x
		for k := 1; k <= 400; k++ {
			sum += term / float64(k*k)
			term *= x
		}
		return sum
	}
}

// factorial interprets the argument as a saturating unsigned 32-bit
// integer and returns its factorial, computed exactly with math/big.
func factorial(ctx *Context, v BigFloat) (BigFloat, error) {
	n := saturatingUint32(v.v)
	result := new(big.Int).SetUint64(1)
	for i := uint64(2); i <= uint64(n); i++ {
		result.Mul(result, new(big.Int).SetUint64(i))
	}
	return accuracy(ctx, new(big.Float).SetPrec(ctx.Prec).SetInt(result))
}

func saturatingUint32(f *big.Float) uint32 {
	if f.Sign() <= 0 {
		return 0
	}
	const maxUint32 = 1<<32 - 1
	maxF := new(big.Float).SetPrec(f.Prec()).SetInt64(maxUint32)
	if f.Cmp(maxF) >= 0 {
		return maxUint32
	}
	truncated, _ := f.Int(nil)
	return uint32(truncated.Uint64())
}
