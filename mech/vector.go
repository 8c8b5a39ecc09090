package mech

import (
	"strings"

	"github.com/njchilds90/go-kane"
)

// Vector is a physical vector held as three symbolic components in a single
// frame's basis. Operations that mix frames re-express the right operand
// into the left operand's frame through the DCM chain first.
type Vector struct {
	frame *Frame
	c     [3]gokane.Expr
}

func VectorIn(f *Frame, x, y, z gokane.Expr) *Vector {
	return &Vector{frame: f, c: [3]gokane.Expr{x.Simplify(), y.Simplify(), z.Simplify()}}
}

func ZeroVector(f *Frame) *Vector {
	return VectorIn(f, gokane.N(0), gokane.N(0), gokane.N(0))
}

func (v *Vector) Frame() *Frame          { return v.frame }
func (v *Vector) Comp(i int) gokane.Expr { return v.c[i] }

// ExpressIn rewrites v's components in the basis of f.
func (v *Vector) ExpressIn(f *Frame) *Vector {
	if f == v.frame {
		return v
	}
	m := DCM(f, v.frame)
	var out [3]gokane.Expr
	for i := 0; i < 3; i++ {
		out[i] = gokane.AddOf(
			gokane.MulOf(m.Get(i, 0), v.c[0]),
			gokane.MulOf(m.Get(i, 1), v.c[1]),
			gokane.MulOf(m.Get(i, 2), v.c[2]),
		)
	}
	return &Vector{frame: f, c: out}
}

func (v *Vector) Add(o *Vector) *Vector {
	oe := o.ExpressIn(v.frame)
	return VectorIn(v.frame,
		gokane.AddOf(v.c[0], oe.c[0]),
		gokane.AddOf(v.c[1], oe.c[1]),
		gokane.AddOf(v.c[2], oe.c[2]),
	)
}

func (v *Vector) Scale(e gokane.Expr) *Vector {
	return VectorIn(v.frame,
		gokane.MulOf(e, v.c[0]),
		gokane.MulOf(e, v.c[1]),
		gokane.MulOf(e, v.c[2]),
	)
}

func (v *Vector) Dot(o *Vector) gokane.Expr {
	oe := o.ExpressIn(v.frame)
	return gokane.AddOf(
		gokane.MulOf(v.c[0], oe.c[0]),
		gokane.MulOf(v.c[1], oe.c[1]),
		gokane.MulOf(v.c[2], oe.c[2]),
	)
}

func (v *Vector) Cross(o *Vector) *Vector {
	oe := o.ExpressIn(v.frame)
	a, b := v.c, oe.c
	return VectorIn(v.frame,
		gokane.AddOf(gokane.MulOf(a[1], b[2]), gokane.MulOf(gokane.N(-1), a[2], b[1])),
		gokane.AddOf(gokane.MulOf(a[2], b[0]), gokane.MulOf(gokane.N(-1), a[0], b[2])),
		gokane.AddOf(gokane.MulOf(a[0], b[1]), gokane.MulOf(gokane.N(-1), a[1], b[0])),
	)
}

// DiffSpeed is the partial derivative of v with respect to a generalized
// speed, holding the basis fixed. Applied to a velocity it yields the
// partial velocity for that speed.
func (v *Vector) DiffSpeed(speedName string) *Vector {
	return VectorIn(v.frame,
		gokane.Diff(v.c[0], speedName),
		gokane.Diff(v.c[1], speedName),
		gokane.Diff(v.c[2], speedName),
	)
}

// TimeDiffIn is the time derivative of v as seen from frame f: v is
// re-expressed in f's basis and each component is differentiated through
// the rate table.
func (v *Vector) TimeDiffIn(f *Frame, rates map[string]gokane.Expr) *Vector {
	ve := v.ExpressIn(f)
	return VectorIn(f,
		gokane.DiffTotal(ve.c[0], rates),
		gokane.DiffTotal(ve.c[1], rates),
		gokane.DiffTotal(ve.c[2], rates),
	)
}

func (v *Vector) SubAll(m map[string]gokane.Expr) *Vector {
	return VectorIn(v.frame,
		gokane.SubAll(v.c[0], m),
		gokane.SubAll(v.c[1], m),
		gokane.SubAll(v.c[2], m),
	)
}

func (v *Vector) IsZero() bool {
	return gokane.IsZero(v.c[0]) && gokane.IsZero(v.c[1]) && gokane.IsZero(v.c[2])
}

func (v *Vector) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i := 0; i < 3; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.c[i].String())
	}
	sb.WriteString("] in " + v.frame.name)
	return sb.String()
}
