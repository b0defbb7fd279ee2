package program

import (
	"testing"

	"bigcalc/bigfloat"
	"bigcalc/calcerror"
)

func newCtx() *bigfloat.Context { return bigfloat.NewContext(128) }

func TestCompileAndRun(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"1+2*3=", "7"},
		{"2^3^2=", "64"},
		{"(1+2)*(3+4)=", "21"},
		{"sin(0)+cos(0)=", "1"},
		{"10%3=", "1"},
		{"-10%3=", "-1"},
		{"fac(5)=", "120"},
		{"-P=", "-3"},
		{"sqrt(abs(-4))=", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			ctx := newCtx()
			v, err := Eval(ctx, tt.expr)
			if err != nil {
				t.Fatalf("Eval(%q) returned error: %v", tt.expr, err)
			}
			got, _ := v.Float().Int64()
			want := mustInt64(t, tt.want)
			if got != want {
				t.Errorf("Eval(%q) = %v, want %s", tt.expr, v.Float(), tt.want)
			}
		})
	}
}

func mustInt64(t *testing.T, s string) int64 {
	t.Helper()
	var n int64
	var neg bool
	i := 0
	if s[0] == '-' {
		neg = true
		i = 1
	}
	for ; i < len(s); i++ {
		n = n*10 + int64(s[i]-'0')
	}
	if neg {
		n = -n
	}
	return n
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		expr string
		kind calcerror.Kind
	}{
		{"", calcerror.EmptyExpression},
		{"(1+2", calcerror.ExpressionError},
		{"1++2=", calcerror.ExpressionError},
		{"foo(1)=", calcerror.FunctionUndefined},
	}
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Compile(newCtx(), tt.expr)
			if err == nil {
				t.Fatalf("Compile(%q) succeeded, want %v", tt.expr, tt.kind)
			}
			ce, ok := err.(calcerror.CalcError)
			if !ok || !ce.Is(tt.kind) {
				t.Errorf("Compile(%q) = %v, want %v", tt.expr, err, tt.kind)
			}
		})
	}
}

func TestRunDivideByZero(t *testing.T) {
	ctx := newCtx()
	prog, err := Compile(ctx, "1/0=")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	_, err = NewVM(ctx).Run(prog)
	if err == nil {
		t.Fatal("expected DivideByZero")
	}
	ce, ok := err.(calcerror.CalcError)
	if !ok || !ce.Is(calcerror.DivideByZero) {
		t.Errorf("got %v, want DivideByZero", err)
	}
}

func TestVMReusableAcrossPrograms(t *testing.T) {
	ctx := newCtx()
	vm := NewVM(ctx)

	p1, err := Compile(ctx, "1+1=")
	if err != nil {
		t.Fatalf("compile p1: %v", err)
	}
	v1, err := vm.Run(p1)
	if err != nil {
		t.Fatalf("run p1: %v", err)
	}
	if got, _ := v1.Float().Int64(); got != 2 {
		t.Errorf("p1 = %v, want 2", v1.Float())
	}

	p2, err := Compile(ctx, "3*3=")
	if err != nil {
		t.Fatalf("compile p2: %v", err)
	}
	v2, err := vm.Run(p2)
	if err != nil {
		t.Fatalf("run p2: %v", err)
	}
	if got, _ := v2.Float().Int64(); got != 9 {
		t.Errorf("p2 = %v, want 9", v2.Float())
	}
}
