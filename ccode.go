package gokane

import (
	"fmt"
	"strings"
)

// CCode renders e as a C expression. Rational constants print with a
// floating-point division so integer division never sneaks into generated
// code, square roots print through sqrt, and negative exponents fold into
// denominators.
func CCode(e Expr) string { return ccode(e.Simplify(), precAdd) }

const (
	precAdd = iota
	precMul
	precAtom
)

func ccode(e Expr, parent int) string {
	switch v := e.(type) {
	case *Num:
		return ccodeNum(v, parent)
	case *Sym:
		return v.name
	case *Func:
		name := v.name
		switch name {
		case "ln":
			name = "log"
		case "abs":
			name = "fabs"
		}
		return name + "(" + ccode(v.arg, precAdd) + ")"
	case *Add:
		s := ccodeAdd(v)
		if parent > precAdd {
			return "(" + s + ")"
		}
		return s
	case *Mul:
		s := ccodeMul(v)
		if parent > precMul {
			return "(" + s + ")"
		}
		return s
	case *Pow:
		return ccodePow(v, parent)
	}
	return e.String()
}

func ccodeNum(n *Num, parent int) string {
	if n.IsInteger() {
		return n.val.Num().String()
	}
	s := fmt.Sprintf("%s.0/%s.0", n.val.Num().String(), n.val.Denom().String())
	if parent > precAdd {
		return "(" + s + ")"
	}
	return s
}

// ccodeAdd joins terms with " + " and " - ", absorbing a leading negative
// coefficient into the separator.
func ccodeAdd(a *Add) string {
	var sb strings.Builder
	for i, t := range a.terms {
		neg, body := splitSign(t)
		if i == 0 {
			if neg {
				sb.WriteString("-")
			}
		} else if neg {
			sb.WriteString(" - ")
		} else {
			sb.WriteString(" + ")
		}
		sb.WriteString(ccode(body, precMul))
	}
	return sb.String()
}

// splitSign strips a negative rational coefficient from a term, returning
// the sign and the remaining positive-coefficient body.
func splitSign(t Expr) (bool, Expr) {
	switch v := t.(type) {
	case *Num:
		if v.IsNegative() {
			return true, numNeg(v)
		}
	case *Mul:
		if c, ok := v.factors[0].(*Num); ok && c.IsNegative() {
			pos := numNeg(c)
			rest := v.factors[1:]
			if pos.IsOne() {
				if len(rest) == 1 {
					return true, rest[0]
				}
				return true, &Mul{factors: rest}
			}
			return true, &Mul{factors: append([]Expr{pos}, rest...)}
		}
	}
	return false, t
}

// ccodeMul separates factors with negative exponents into a denominator so
// that a*b^-1 renders as a/b rather than a*pow(b, -1).
func ccodeMul(m *Mul) string {
	var numer, denom []string
	neg := false
	for _, f := range m.factors {
		if n, ok := f.(*Num); ok && n.IsNegOne() {
			neg = true
			continue
		}
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.IsNegative() {
				denom = append(denom, ccode(PowOf(p.base, numNeg(en)), precAtom))
				continue
			}
		}
		if n, ok := f.(*Num); ok && !n.IsInteger() {
			if n.val.Num().IsInt64() && n.val.Num().Int64() == 1 {
				denom = append(denom, n.val.Denom().String()+".0")
				continue
			}
			numer = append(numer, n.val.Num().String()+".0")
			denom = append(denom, n.val.Denom().String()+".0")
			continue
		}
		numer = append(numer, ccode(f, precAtom))
	}
	sign := ""
	if neg {
		sign = "-"
	}
	top := "1"
	if len(numer) > 0 {
		top = strings.Join(numer, "*")
	}
	if len(denom) == 0 {
		return sign + top
	}
	if top == "1" {
		top = "1.0"
	}
	if len(denom) == 1 {
		return sign + top + "/" + denom[0]
	}
	return sign + top + "/(" + strings.Join(denom, "*") + ")"
}

func ccodePow(p *Pow, parent int) string {
	if en, ok := p.exp.(*Num); ok {
		if en.Equal(F(1, 2)) {
			return "sqrt(" + ccode(p.base, precAdd) + ")"
		}
		if en.IsNegative() {
			s := "1.0/" + ccode(PowOf(p.base, numNeg(en)), precAtom)
			if parent > precMul {
				return "(" + s + ")"
			}
			return s
		}
	}
	return "pow(" + ccode(p.base, precAdd) + ", " + ccodePowExp(p.exp) + ")"
}

func ccodePowExp(e Expr) string {
	if n, ok := e.(*Num); ok && n.IsInteger() {
		return n.val.Num().String()
	}
	return ccode(e, precAdd)
}
