package gokane

import "testing"

func TestCCodeBasics(t *testing.T) {
	tests := []struct {
		expr Expr
		want string
	}{
		{S("x"), "x"},
		{N(42), "42"},
		{F(1, 2), "1.0/2.0"},
		{AddOf(S("x"), S("y")), "x + y"},
		{AddOf(S("x"), MulOf(N(-1), S("y"))), "x - y"},
		{MulOf(N(3), S("x")), "3*x"},
		{MulOf(N(-1), S("x")), "-x"},
		{PowOf(S("x"), N(2)), "pow(x, 2)"},
		{PowOf(S("x"), N(-2)), "1.0/pow(x, 2)"},
		{SqrtOf(S("x")), "sqrt(x)"},
		{SinOf(S("q1")), "sin(q1)"},
		{LnOf(S("x")), "log(x)"},
		{AbsOf(S("x")), "fabs(x)"},
	}
	for _, tt := range tests {
		if got := CCode(tt.expr); got != tt.want {
			t.Errorf("CCode(%s) = %q, want %q", tt.expr.String(), got, tt.want)
		}
	}
}

func TestCCodeDenominatorFolding(t *testing.T) {
	a, b := S("a"), S("b")
	e := MulOf(a, PowOf(b, N(-1)))
	if got := CCode(e); got != "a/b" {
		t.Errorf("a*b^-1 = %q, want a/b", got)
	}
	e = MulOf(F(1, 2), S("m"), PowOf(S("v"), N(2)))
	if got := CCode(e); got != "m*pow(v, 2)/2.0" {
		t.Errorf("kinetic term = %q", got)
	}
	e = MulOf(a, PowOf(b, N(-1)), PowOf(S("c"), N(-1)))
	if got := CCode(e); got != "a/(b*c)" {
		t.Errorf("a/(b*c) = %q", got)
	}
}

func TestCCodeReciprocalSqrt(t *testing.T) {
	e := PowOf(AddOf(PowOf(S("a"), N(2)), PowOf(S("b"), N(2))), F(-1, 2))
	if got := CCode(e); got != "1.0/sqrt(pow(a, 2) + pow(b, 2))" {
		t.Errorf("got %q", got)
	}
}

func TestCCodeParenthesization(t *testing.T) {
	x, y, z := S("x"), S("y"), S("z")
	e := MulOf(AddOf(x, y), z)
	if got := CCode(e); got != "(x + y)*z" {
		t.Errorf("got %q, want (x + y)*z", got)
	}
	e = PowOf(AddOf(x, y), N(2))
	if got := CCode(e); got != "pow(x + y, 2)" {
		t.Errorf("got %q, want pow(x + y, 2)", got)
	}
}

func TestCCodeRationalCoefficient(t *testing.T) {
	e := MulOf(F(3, 4), S("x"))
	if got := CCode(e); got != "3.0*x/4.0" {
		t.Errorf("got %q, want 3.0*x/4.0", got)
	}
}
