package gokane

import "fmt"

// Replacement is one row of a CSE table: a temporary symbol and the
// expression it stands for.
type Replacement struct {
	Sym  *Sym
	Expr Expr
}

// CSE factors common subexpressions out of an ordered expression sequence.
// It returns a table of (temporary, expression) pairs and the reduced
// expressions rewritten in terms of the temporaries.
//
// Temporaries are numbered prefix0, prefix1, ... freshly on every call, and
// each table entry references only constants, input symbols, or strictly
// earlier temporaries: subexpressions are named in post order, so a child is
// always named before any parent that contains it.
func CSE(exprs []Expr, prefix string) ([]Replacement, []Expr) {
	counts := map[string]int{}
	var count func(Expr)
	count = func(e Expr) {
		switch v := e.(type) {
		case *Add:
			for _, t := range v.terms {
				count(t)
			}
		case *Mul:
			for _, f := range v.factors {
				count(f)
			}
		case *Pow:
			count(v.base)
			count(v.exp)
		case *Func:
			count(v.arg)
		default:
			return
		}
		if worthNaming(e) {
			counts[e.String()]++
		}
	}
	for _, e := range exprs {
		count(e)
	}

	var table []Replacement
	assigned := map[string]*Sym{}
	var rebuild func(Expr) Expr
	rebuild = func(e Expr) Expr {
		var r Expr
		switch v := e.(type) {
		case *Add:
			terms := make([]Expr, len(v.terms))
			for i, t := range v.terms {
				terms[i] = rebuild(t)
			}
			r = AddOf(terms...)
		case *Mul:
			factors := make([]Expr, len(v.factors))
			for i, f := range v.factors {
				factors[i] = rebuild(f)
			}
			r = MulOf(factors...)
		case *Pow:
			r = PowOf(rebuild(v.base), rebuild(v.exp))
		case *Func:
			r = funcOf(v.name, rebuild(v.arg)).Simplify()
		default:
			return e
		}
		if worthNaming(e) && counts[e.String()] >= 2 {
			key := e.String()
			if z, ok := assigned[key]; ok {
				return z
			}
			z := S(fmt.Sprintf("%s%d", prefix, len(table)))
			table = append(table, Replacement{Sym: z, Expr: r})
			assigned[key] = z
			return z
		}
		return r
	}
	reduced := make([]Expr, len(exprs))
	for i, e := range exprs {
		reduced[i] = rebuild(e)
	}
	return table, reduced
}

// worthNaming excludes atoms and bare coefficient*symbol products from the
// temporary table; naming those costs more than recomputing them.
func worthNaming(e Expr) bool {
	switch v := e.(type) {
	case *Num, *Sym:
		return false
	case *Mul:
		if len(v.factors) == 2 {
			_, aNum := v.factors[0].(*Num)
			_, bSym := v.factors[1].(*Sym)
			if aNum && bSym {
				return false
			}
		}
	}
	return true
}

// CSERestore substitutes a CSE table back into a reduced expression,
// inverting CSE. Substituting every table entry in reverse order reproduces
// the original expression exactly.
func CSERestore(table []Replacement, e Expr) Expr {
	for i := len(table) - 1; i >= 0; i-- {
		e = SubAll(e, map[string]Expr{table[i].Sym.Name(): table[i].Expr})
	}
	return e
}
