package gokane

import "math"

// ============================================================
// Func — named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr { return funcOf("cos", arg).Simplify() }
func TanOf(arg Expr) Expr { return funcOf("tan", arg).Simplify() }
func ExpOf(arg Expr) Expr { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr  { return funcOf("ln", arg).Simplify() }
func AbsOf(arg Expr) Expr { return funcOf("abs", arg).Simplify() }

func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		if v, ok2 := applyFunc(f.name, n.Float64()); ok2 {
			return NFloat(v)
		}
	}
	switch f.name {
	case "sin":
		if isNumEqual(arg, 0) {
			return N(0)
		}
	case "cos":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "ln":
		if n, ok := arg.(*Num); ok && n.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if n, ok := arg.(*Num); ok && n.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if n, ok := arg.(*Num); ok && n.IsPositive() {
			return n
		}
	}
	return &Func{name: f.name, arg: arg}
}

func applyFunc(name string, v float64) (float64, bool) {
	switch name {
	case "sin":
		return math.Sin(v), true
	case "cos":
		return math.Cos(v), true
	case "tan":
		return math.Tan(v), true
	case "exp":
		return math.Exp(v), true
	case "ln":
		if v > 0 {
			return math.Log(v), true
		}
	case "abs":
		return math.Abs(v), true
	}
	return 0, false
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

// outerDeriv is the derivative of f with respect to its argument.
func outerDeriv(f *Func) Expr {
	switch f.name {
	case "sin":
		return CosOf(f.arg)
	case "cos":
		return MulOf(N(-1), SinOf(f.arg))
	case "tan":
		return AddOf(N(1), PowOf(TanOf(f.arg), N(2)))
	case "exp":
		return ExpOf(f.arg)
	case "ln":
		return PowOf(f.arg, N(-1))
	}
	panic("gokane: no derivative rule for " + f.name)
}

func (f *Func) Diff(varName string) Expr {
	du := f.arg.Diff(varName)
	return MulOf(outerDeriv(f), du).Simplify()
}

func (f *Func) Eval() (*Num, bool) {
	n, ok := f.arg.Eval()
	if !ok {
		return nil, false
	}
	v, ok := applyFunc(f.name, n.Float64())
	if !ok {
		return nil, false
	}
	return NFloat(v), true
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) kind() string     { return "func" }
func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

// numPow evaluates b^e numerically, exactly for integer exponents.
func numPow(b, e *Num) (*Num, bool) {
	if e.IsInteger() {
		k := e.val.Num().Int64()
		if k >= -64 && k <= 64 {
			neg := k < 0
			if neg {
				k = -k
			}
			acc := N(1)
			for i := int64(0); i < k; i++ {
				acc = numMul(acc, b)
			}
			if neg {
				if acc.IsZero() {
					return nil, false
				}
				return numRecip(acc), true
			}
			return acc, true
		}
	}
	v := math.Pow(b.Float64(), e.Float64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return NFloat(v), true
}
