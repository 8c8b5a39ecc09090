package gokane

import "math/big"

// Expand distributes products over sums and expands small integer powers of
// sums, yielding a flat sum of monomials.
func Expand(e Expr) Expr { return expandExpr(e).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		expanded := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			expanded[i] = expandExpr(f)
		}
		for i, f := range expanded {
			if a, ok := f.(*Add); ok {
				rest := make([]Expr, 0, len(expanded)-1)
				for j, ef := range expanded {
					if j != i {
						rest = append(rest, ef)
					}
				}
				terms := make([]Expr, len(a.terms))
				for k, t := range a.terms {
					terms[k] = expandExpr(MulOf(append([]Expr{t}, rest...)...))
				}
				return AddOf(terms...)
			}
		}
		return MulOf(expanded...)
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() {
			exp := n.val.Num().Int64()
			if exp >= 0 && exp <= 10 {
				if _, isAdd := v.base.(*Add); isAdd {
					return expandPowSum(expandExpr(v.base), exp)
				}
			}
		}
		return PowOf(expandExpr(v.base), expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// expandPowSum raises an already-expanded sum to a small non-negative
// integer power by repeated term-by-term distribution. The whole sum is
// never handed to MulOf twice: a product of equal sums canonicalizes
// straight back into the power under expansion, which would recurse forever.
func expandPowSum(base Expr, exp int64) Expr {
	result := Expr(N(1))
	for i := int64(0); i < exp; i++ {
		result = distributeProduct(result, base)
	}
	return result
}

// distributeProduct multiplies two expanded expressions term by term.
func distributeProduct(a, b Expr) Expr {
	ta, tb := addTerms(a), addTerms(b)
	products := make([]Expr, 0, len(ta)*len(tb))
	for _, x := range ta {
		for _, y := range tb {
			products = append(products, expandExpr(MulOf(x, y)))
		}
	}
	return AddOf(products...)
}

func addTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// SubAll applies a simultaneous symbol substitution map to e. Unlike chained
// Sub calls, right-hand sides are never re-substituted.
func SubAll(e Expr, m map[string]Expr) Expr {
	switch v := e.(type) {
	case *Sym:
		if r, ok := m[v.name]; ok {
			return r
		}
		return v
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = SubAll(t, m)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = SubAll(f, m)
		}
		return MulOf(factors...)
	case *Pow:
		return PowOf(SubAll(v.base, m), SubAll(v.exp, m))
	case *Func:
		return funcOf(v.name, SubAll(v.arg, m)).Simplify()
	}
	return e
}

// DiffTotal computes the directional derivative of e driven by a symbol
// rate table: each symbol differentiates to its entry in rates, or to zero
// when absent. With rates mapping coordinates to their time-derivative
// symbols this is the total time derivative.
func DiffTotal(e Expr, rates map[string]Expr) Expr {
	switch v := e.(type) {
	case *Num:
		return N(0)
	case *Sym:
		if r, ok := rates[v.name]; ok {
			return r
		}
		return N(0)
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = DiffTotal(t, rates)
		}
		return AddOf(terms...)
	case *Mul:
		terms := make([]Expr, len(v.factors))
		for i := range v.factors {
			parts := make([]Expr, 0, len(v.factors))
			parts = append(parts, DiffTotal(v.factors[i], rates))
			for j, fj := range v.factors {
				if j != i {
					parts = append(parts, fj)
				}
			}
			terms[i] = MulOf(parts...)
		}
		return AddOf(terms...)
	case *Pow:
		du := DiffTotal(v.base, rates)
		if _, ok := v.exp.(*Num); ok {
			return MulOf(v.exp, PowOf(v.base, AddOf(v.exp, N(-1))), du)
		}
		dv := DiffTotal(v.exp, rates)
		logTerm := MulOf(dv, LnOf(v.base))
		divTerm := MulOf(v.exp, du, PowOf(v.base, N(-1)))
		return MulOf(PowOf(v.base, v.exp), AddOf(logTerm, divTerm))
	case *Func:
		return MulOf(outerDeriv(v), DiffTotal(v.arg, rates)).Simplify()
	}
	return N(0)
}

// Canonical expands e and rewrites even powers of sine through
// sin^2 = 1 - cos^2 until the form is stable. Two expressions that are
// equal as trigonometric polynomials reach the same canonical form, so
// identically-zero expressions reduce to the literal 0. The rewrite is an
// explicit per-call operation; there is no process-global simplifier state.
func Canonical(e Expr) Expr {
	prev := ""
	cur := Expand(e)
	for i := 0; i < 12; i++ {
		s := cur.String()
		if s == prev {
			break
		}
		prev = s
		cur = Expand(rewriteSinSquares(cur))
	}
	return cur
}

// IsZero reports whether e is identically zero as a rational trigonometric
// expression over its symbols, treating denominator bases as nonzero. If the
// canonical form is not literally zero, denominators are cleared by
// multiplying through with the offending bases and the test is repeated;
// this catches sums like x^2/(x^2+y^2) + y^2/(x^2+y^2) - 1 whose terms only
// cancel monomially once the common denominator is gone.
func IsZero(e Expr) bool {
	c := Canonical(e)
	if n, ok := c.(*Num); ok {
		return n.IsZero()
	}
	mult := denominatorClearer(c)
	if len(mult) == 0 {
		return false
	}
	cleared := c
	for _, f := range mult {
		cleared = MulOf(cleared, f)
	}
	n, ok := Canonical(cleared).(*Num)
	return ok && n.IsZero()
}

// denominatorClearer returns, for every base raised to a negative rational
// power anywhere in e, that base raised to the smallest integer power that
// makes all of its occurrences non-negative.
func denominatorClearer(e Expr) []Expr {
	worst := map[string]*Num{}
	bases := map[string]Expr{}
	order := []string{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *Add:
			for _, t := range v.terms {
				walk(t)
			}
		case *Mul:
			for _, f := range v.factors {
				walk(f)
			}
		case *Func:
			walk(v.arg)
		case *Pow:
			walk(v.base)
			walk(v.exp)
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				key := v.base.String()
				if cur, seen := worst[key]; !seen || en.val.Cmp(cur.val) < 0 {
					if _, seen2 := worst[key]; !seen2 {
						order = append(order, key)
					}
					worst[key] = en
					bases[key] = v.base
				}
			}
		}
	}
	walk(e)
	mult := make([]Expr, 0, len(order))
	for _, key := range order {
		// Round the exponent magnitude up to an integer so half powers
		// clear to non-negative half powers.
		neg := new(big.Rat).Neg(worst[key].val)
		num, den := neg.Num(), neg.Denom()
		up := new(big.Int).Add(num, new(big.Int).Sub(den, big.NewInt(1)))
		k := new(big.Int).Div(up, den).Int64()
		mult = append(mult, PowOf(bases[key], N(k)))
	}
	return mult
}

func rewriteSinSquares(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = rewriteSinSquares(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = rewriteSinSquares(f)
		}
		return MulOf(factors...)
	case *Pow:
		base := rewriteSinSquares(v.base)
		exp := rewriteSinSquares(v.exp)
		if f, ok := base.(*Func); ok && f.name == "sin" {
			if n, ok2 := exp.(*Num); ok2 && n.IsInteger() && n.IsPositive() {
				k := n.val.Num().Int64()
				if k >= 2 {
					cosSq := PowOf(CosOf(f.arg), N(2))
					even := PowOf(AddOf(N(1), MulOf(N(-1), cosSq)), N(k/2))
					if k%2 == 1 {
						return MulOf(even, SinOf(f.arg))
					}
					return even
				}
			}
		}
		return PowOf(base, exp)
	case *Func:
		return funcOf(v.name, rewriteSinSquares(v.arg)).Simplify()
	}
	return e
}
