package gokane

import "testing"

func TestCSESharedSubexpression(t *testing.T) {
	sum := AddOf(S("q1"), S("q2"))
	exprs := []Expr{
		MulOf(S("m"), sum),
		PowOf(sum, N(2)),
	}
	table, reduced := CSE(exprs, "z")
	if len(table) != 1 {
		t.Fatalf("got %d replacements, want 1", len(table))
	}
	if got := table[0].Sym.Name(); got != "z0" {
		t.Errorf("temp name = %s, want z0", got)
	}
	if got := table[0].Expr.String(); got != "q1 + q2" {
		t.Errorf("z0 = %s, want q1 + q2", got)
	}
	if got := reduced[0].String(); got != "m*z0" {
		t.Errorf("reduced[0] = %s, want m*z0", got)
	}
	if got := reduced[1].String(); got != "z0^2" {
		t.Errorf("reduced[1] = %s, want z0^2", got)
	}
}

func TestCSERoundTrip(t *testing.T) {
	sum := AddOf(S("a"), S("b"))
	orig := []Expr{
		MulOf(sum, SinOf(sum)),
		PowOf(sum, N(3)),
	}
	table, reduced := CSE(orig, "z")
	for i := range orig {
		back := CSERestore(table, reduced[i])
		if back.String() != orig[i].String() {
			t.Errorf("round trip %d: got %s, want %s", i, back.String(), orig[i].String())
		}
	}
}

func TestCSEFreshNumbering(t *testing.T) {
	// Temporaries restart at zero on every call; numbering never leaks
	// between independent passes.
	sum := AddOf(S("x"), S("y"))
	exprs := []Expr{MulOf(N(2), sum), MulOf(N(3), sum)}
	t1, _ := CSE(exprs, "z")
	t2, _ := CSE(exprs, "z")
	if len(t1) != 1 || len(t2) != 1 {
		t.Fatalf("table sizes %d, %d, want 1, 1", len(t1), len(t2))
	}
	if t1[0].Sym.Name() != "z0" || t2[0].Sym.Name() != "z0" {
		t.Errorf("names %s, %s, want z0 both times", t1[0].Sym.Name(), t2[0].Sym.Name())
	}
}

func TestCSETableOrdering(t *testing.T) {
	// An inner shared subexpression is named before any outer one that
	// contains it, so each table row only refers backward.
	inner := AddOf(S("a"), S("b"))
	outer := SinOf(inner)
	exprs := []Expr{
		MulOf(inner, outer),
		MulOf(S("c"), outer),
	}
	table, _ := CSE(exprs, "z")
	if len(table) != 2 {
		t.Fatalf("got %d replacements, want 2", len(table))
	}
	if got := table[0].Expr.String(); got != "a + b" {
		t.Errorf("z0 = %s, want a + b", got)
	}
	if got := table[1].Expr.String(); got != "sin(z0)" {
		t.Errorf("z1 = %s, want sin(z0)", got)
	}
}

func TestCSESkipsAtoms(t *testing.T) {
	exprs := []Expr{
		MulOf(N(2), S("x")),
		MulOf(N(2), S("x")),
	}
	table, reduced := CSE(exprs, "z")
	if len(table) != 0 {
		t.Fatalf("got %d replacements for 2*x, want 0", len(table))
	}
	if got := reduced[0].String(); got != "2*x" {
		t.Errorf("reduced = %s, want 2*x", got)
	}
}

func TestCSECustomPrefix(t *testing.T) {
	sum := AddOf(S("p"), S("q"))
	table, _ := CSE([]Expr{MulOf(N(2), sum), MulOf(N(5), sum)}, "tmp")
	if len(table) != 1 || table[0].Sym.Name() != "tmp0" {
		t.Fatalf("got %v, want single tmp0", table)
	}
}
