package evaluator

import (
	"testing"

	"bigcalc/bigfloat"
	"bigcalc/calcerror"
)

func digitsPtr(n int) *int { return &n }

func newTestEvaluator(t *testing.T, prec uint) *Evaluator {
	t.Helper()
	return New(bigfloat.NewContext(prec))
}

func TestEndToEndScenarios(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		digits *int
		want   string
	}{
		{"precedence", "1+2*3=", digitsPtr(7), "7"},
		{"left-assoc pow", "2^3^2=", digitsPtr(7), "64"},
		{"grouping", "(1+2)*(3+4)=", digitsPtr(7), "21"},
		{"trig identity", "sin(0)+cos(0)=", digitsPtr(7), "1"},
		{"ln of one", "ln(1)=", digitsPtr(7), "0"},
		{"mod positive", "10%3=", digitsPtr(7), "1"},
		{"mod negative dividend", "-10%3=", digitsPtr(7), "-1"},
		{"factorial", "fac(5)=", digitsPtr(7), "120"},
		{"sqrt rounded", "sqrt(2)=", digitsPtr(7), "1.4142136"},
		{"pi", "P=", digitsPtr(7), "3.1415927"},
		{"negative pi", "-P=", digitsPtr(7), "-3.1415927"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t, 128)
			got, err := e.RunRound(tt.expr, tt.digits)
			if err != nil {
				t.Fatalf("RunRound(%q) returned error %v, want %q", tt.expr, err, tt.want)
			}
			if got != tt.want {
				t.Errorf("RunRound(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestEndToEndErrors(t *testing.T) {
	tests := []struct {
		name string
		expr string
		kind calcerror.Kind
	}{
		{"ln of zero", "ln(0)=", calcerror.ParameterError},
		{"divide by zero", "1/0=", calcerror.DivideByZero},
		{"empty expression", "", calcerror.EmptyExpression},
		{"unterminated group", "(1+2", calcerror.ExpressionError},
		{"dangling operator", "1++2=", calcerror.ExpressionError},
		{"unknown function", "foo(1)=", calcerror.FunctionUndefined},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEvaluator(t, 128)
			_, err := e.Run(tt.expr)
			if err == nil {
				t.Fatalf("Run(%q) succeeded, want %v", tt.expr, tt.kind)
			}
			ce, ok := err.(calcerror.CalcError)
			if !ok {
				t.Fatalf("Run(%q) returned %T, want calcerror.CalcError", tt.expr, err)
			}
			if !ce.Is(tt.kind) {
				t.Errorf("Run(%q) kind = %v, want %v", tt.expr, ce.Kind, tt.kind)
			}
		})
	}
}

func TestBeyondAccuracy(t *testing.T) {
	e := newTestEvaluator(t, 2560)
	_, err := e.Run("1e+400*1e+400=")
	if err == nil {
		t.Fatal("expected BeyondAccuracy, got success")
	}
	ce, ok := err.(calcerror.CalcError)
	if !ok || !ce.Is(calcerror.BeyondAccuracy) {
		t.Errorf("got %v, want BeyondAccuracy", err)
	}
}

func TestReset(t *testing.T) {
	e := newTestEvaluator(t, 128)
	if _, err := e.Run("(1+2"); err == nil {
		t.Fatal("expected error from malformed expression")
	}
	if len(e.numbers) != 0 || len(e.operators) != 0 || len(e.functions) != 0 {
		t.Fatalf("state not reset after error: numbers=%v operators=%v functions=%v", e.numbers, e.operators, e.functions)
	}
	if e.marker != markerInit || e.state != stateInitial || e.bracket != 0 {
		t.Fatalf("marker/state/bracket not reset: marker=%v state=%v bracket=%v", e.marker, e.state, e.bracket)
	}

	got, err := e.Run("1+1=")
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}
	want, _ := bigfloat.Parse(bigfloat.NewContext(128), "2")
	if got.Float().Cmp(want.Float()) != 0 {
		t.Errorf("second Run = %v, want 2", got.Float())
	}
}

func TestDeterminism(t *testing.T) {
	e := newTestEvaluator(t, 128)
	a, err := e.Run("3*4+5=")
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	b, err := e.Run("3*4+5=")
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if a.Float().Cmp(b.Float()) != 0 {
		t.Errorf("non-deterministic: %v vs %v", a.Float(), b.Float())
	}
}

func TestUnaryMinusRejectsGroup(t *testing.T) {
	e := newTestEvaluator(t, 128)
	if _, err := e.Run("-(1+2)="); err == nil {
		t.Fatal("expected ExpressionError for -(expr)")
	}
	e2 := newTestEvaluator(t, 128)
	got, err := e2.RunRound("0-(1+2)=", digitsPtr(7))
	if err != nil {
		t.Fatalf("0-(1+2)= failed: %v", err)
	}
	if got != "-3" {
		t.Errorf("0-(1+2)= = %q, want -3", got)
	}
}

func TestScientificNotation(t *testing.T) {
	e := newTestEvaluator(t, 128)
	got, err := e.RunRound("1.5e+2=", digitsPtr(7))
	if err != nil {
		t.Fatalf("1.5e+2= failed: %v", err)
	}
	if got != "150" {
		t.Errorf("1.5e+2= = %q, want 150", got)
	}
}

func TestNestedFunctionCalls(t *testing.T) {
	e := newTestEvaluator(t, 128)
	got, err := e.RunRound("sqrt(abs(-4))=", digitsPtr(7))
	if err != nil {
		t.Fatalf("sqrt(abs(-4))= failed: %v", err)
	}
	if got != "2" {
		t.Errorf("sqrt(abs(-4))= = %q, want 2", got)
	}
}
