package mech

import "github.com/njchilds90/go-kane"

// Inertia is a central inertia dyadic held as a symmetric 3x3 matrix in a
// body frame's basis.
type Inertia struct {
	frame *Frame
	m     *gokane.Matrix
}

func NewInertia(f *Frame, ixx, iyy, izz, ixy, iyz, ixz gokane.Expr) *Inertia {
	return &Inertia{
		frame: f,
		m: gokane.MatrixFromSlice(3, 3, []gokane.Expr{
			ixx, ixy, ixz,
			ixy, iyy, iyz,
			ixz, iyz, izz,
		}),
	}
}

// Dot applies the dyadic to a vector: w is expressed in the dyadic's frame
// and multiplied through the matrix.
func (in *Inertia) Dot(w *Vector) *Vector {
	we := w.ExpressIn(in.frame)
	col := gokane.MatrixFromSlice(3, 1, []gokane.Expr{we.c[0], we.c[1], we.c[2]})
	out := in.m.MatMul(col)
	return VectorIn(in.frame, out.Get(0, 0), out.Get(1, 0), out.Get(2, 0))
}
