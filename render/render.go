// Package render converts a bigfloat.BigFloat to a canonical decimal
// string, either stripped of trailing zeros ("clean" mode) or rounded
// half-up to a caller-chosen number of fractional digits ("rounded"
// mode). It has no dependency on the evaluator: it operates purely on
// the scientific-notation text math/big already knows how to produce,
// matching the independence the teacher gives its own printer/
// formatting helpers (parser.printer.go) from the interpreter.
package render

import (
	"math/big"
	"strconv"
	"strings"

	"bigcalc/calcerror"
)

// maxCleanFraction caps the fractional part clean mode will print
// before truncating, per spec §4.3.
const maxCleanFraction = 700

// maxRoundDigits is the largest fractional-digit count Rounded accepts.
const maxRoundDigits = 700

// digitForm is the (sign, digit string, adjusted exponent) decomposition
// spec §4.3 describes: the value equals ± 0.d0d1d2... x 10^adjExp once
// the decimal point is removed from the digit stream.
type digitForm struct {
	negative bool
	digits   string
	adjExp   int
}

// decompose renders f in scientific notation and extracts its digit
// stream and adjusted exponent. Go's Float.Text('e', -1) produces the
// shortest digit string that round-trips, in normalized d.ddd...e±E
// form; adjExp = E+1 converts that to spec's "leading radix point"
// convention.
func decompose(f *big.Float) digitForm {
	text := f.Text('e', -1)
	negative := false
	if strings.HasPrefix(text, "-") {
		negative = true
		text = text[1:]
	}

	mantissa := text
	exp := 0
	if i := strings.IndexByte(text, 'e'); i >= 0 {
		mantissa = text[:i]
		exp, _ = strconv.Atoi(text[i+1:])
	}

	digits := strings.Replace(mantissa, ".", "", 1)
	digits = strings.TrimRight(digits, "0")
	if digits == "" {
		digits = "0"
	}
	return digitForm{negative: negative, digits: digits, adjExp: exp + 1}
}

// Clean renders f in the shortest canonical decimal form: trailing
// zeros stripped, fractional part capped at 700 digits.
func Clean(f *big.Float) string {
	if f.Sign() == 0 {
		return "0"
	}
	d := decompose(f)

	var buf strings.Builder
	if d.negative {
		buf.WriteByte('-')
	}

	switch {
	case d.adjExp <= 0:
		buf.WriteString("0.")
		buf.WriteString(strings.Repeat("0", -d.adjExp))
		buf.WriteString(d.digits)
	case d.adjExp >= len(d.digits):
		buf.WriteString(d.digits)
		buf.WriteString(strings.Repeat("0", d.adjExp-len(d.digits)))
	default:
		buf.WriteString(d.digits[:d.adjExp])
		buf.WriteByte('.')
		buf.WriteString(d.digits[d.adjExp:])
	}

	return capAndStrip(buf.String())
}

// capAndStrip caps the fractional part at maxCleanFraction digits and
// strips trailing zeros (and a dangling radix point) from the result.
func capAndStrip(s string) string {
	dot := strings.IndexByte(s, '.')
	if dot < 0 {
		return s
	}
	if frac := len(s) - dot - 1; frac > maxCleanFraction {
		s = s[:dot+1+maxCleanFraction]
	}
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	return s
}

// Rounded renders f rounded half-up to digits fractional places.
// digits must be in [1, 700]; values outside that range fail with a
// Custom calcerror.
//
// Every kept output position j (0-indexed, most significant first) sits
// at decimal place intLen-1-j, which maps back to digit-stream index
// adjExp-1-place; indices outside [0, len(digits)) are implicit zeros,
// whether they're leading zeros before the first significant digit or
// trailing zeros beyond it. The rounding index r = adjExp+digits names
// the one-past-the-end digit that decides the half-up carry, which then
// propagates back through the kept digits and, if it survives past the
// most significant one, prepends a new leading "1".
func Rounded(f *big.Float, digits int) (string, error) {
	if digits < 1 || digits > maxRoundDigits {
		return "", calcerror.Newf("Set Precision Greater Than Equal 1")
	}
	if f.Sign() == 0 {
		return "0", nil
	}
	d := decompose(f)

	intLen := d.adjExp
	if intLen < 0 {
		intLen = 0
	}
	total := intLen + digits

	kept := make([]byte, total)
	for j := 0; j < total; j++ {
		place := intLen - 1 - j
		i := d.adjExp - 1 - place
		if i >= 0 && i < len(d.digits) {
			kept[j] = d.digits[i]
		} else {
			kept[j] = '0'
		}
	}

	r := d.adjExp + digits
	carry := r >= 0 && r < len(d.digits) && d.digits[r] >= '5'
	for j := len(kept) - 1; j >= 0 && carry; j-- {
		if kept[j] == '9' {
			kept[j] = '0'
		} else {
			kept[j]++
			carry = false
		}
	}

	full := string(kept)
	if carry {
		full = "1" + full
		intLen++
	}

	var out string
	if intLen == 0 {
		out = "0." + full
	} else {
		out = full[:intLen] + "." + full[intLen:]
	}
	if d.negative {
		out = "-" + out
	}
	return capAndStrip(out), nil
}
