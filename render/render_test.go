package render

import (
	"math/big"
	"testing"
)

func mustFloat(t *testing.T, s string) *big.Float {
	t.Helper()
	f, ok := new(big.Float).SetPrec(256).SetString(s)
	if !ok {
		t.Fatalf("bad literal %q", s)
	}
	return f
}

func TestCleanBasic(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"-1", "-1"},
		{"1.5", "1.5"},
		{"100", "100"},
		{"0.001", "0.001"},
		{"-0.001", "-0.001"},
		{"3.14000", "3.14"},
		{"10", "10"},
	}
	for _, tt := range tests {
		got := Clean(mustFloat(t, tt.in))
		if got != tt.want {
			t.Errorf("Clean(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoundedSpecScenarios(t *testing.T) {
	sqrt2 := new(big.Float).SetPrec(256).Sqrt(big.NewFloat(2))
	got, err := Rounded(sqrt2, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "1.4142136" {
		t.Errorf("sqrt(2) rounded to 7 = %q, want %q", got, "1.4142136")
	}

	pi := mustFloat(t, "3.14159265358979323846")
	got, err = Rounded(pi, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "3.1415927" {
		t.Errorf("pi rounded to 7 = %q, want %q", got, "3.1415927")
	}

	negPi := new(big.Float).SetPrec(256).Neg(pi)
	got, err = Rounded(negPi, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-3.1415927" {
		t.Errorf("-pi rounded to 7 = %q, want %q", got, "-3.1415927")
	}
}

func TestRoundedCarryCascade(t *testing.T) {
	got, err := Rounded(mustFloat(t, "9.99"), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "10" {
		t.Errorf("9.99 rounded to 1 = %q, want %q", got, "10")
	}
}

func TestRoundedSubUnitMagnitude(t *testing.T) {
	got, err := Rounded(mustFloat(t, "0.000649"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0.001" {
		t.Errorf("0.000649 rounded to 3 = %q, want %q", got, "0.001")
	}
}

func TestRoundedLeadingZerosNoCarry(t *testing.T) {
	got, err := Rounded(mustFloat(t, "0.0001234"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0" {
		t.Errorf("0.0001234 rounded to 3 = %q, want %q", got, "0")
	}
}

func TestRoundedZero(t *testing.T) {
	got, err := Rounded(big.NewFloat(0), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0" {
		t.Errorf("0 rounded = %q, want %q", got, "0")
	}
}

func TestRoundedNegativeSmall(t *testing.T) {
	got, err := Rounded(mustFloat(t, "-0.000649"), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "-0.001" {
		t.Errorf("-0.000649 rounded to 3 = %q, want %q", got, "-0.001")
	}
}

func TestRoundedDigitsOutOfRange(t *testing.T) {
	if _, err := Rounded(big.NewFloat(1), 0); err == nil {
		t.Errorf("digits=0 should fail")
	}
	if _, err := Rounded(big.NewFloat(1), 701); err == nil {
		t.Errorf("digits=701 should fail")
	}
}

func TestCleanFractionCap(t *testing.T) {
	one := new(big.Float).SetPrec(4000).SetInt64(1)
	three := new(big.Float).SetPrec(4000).SetInt64(3)
	oneThird := new(big.Float).SetPrec(4000).Quo(one, three)
	got := Clean(oneThird)
	dot := -1
	for i, c := range got {
		if c == '.' {
			dot = i
			break
		}
	}
	if dot < 0 {
		t.Fatalf("expected a fractional part, got %q", got)
	}
	if frac := len(got) - dot - 1; frac > maxCleanFraction {
		t.Errorf("fraction length %d exceeds cap %d", frac, maxCleanFraction)
	}
}
