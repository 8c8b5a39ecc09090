package mech

import "github.com/njchilds90/go-kane"

// Axis selects a coordinate axis of a frame.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// Frame is a node in a strict tree of reference frames. Every non-root frame
// is oriented relative to its parent by a single rotation about one parent
// axis. The inertial angular velocity is set explicitly by the caller, in
// whatever basis keeps the yaw angle out of the component expressions.
type Frame struct {
	name   string
	parent *Frame
	axis   Axis
	angle  gokane.Expr
	angVel *Vector
}

// NewFrame returns a root (inertial) frame.
func NewFrame(name string) *Frame {
	return &Frame{name: name}
}

// Orient creates a child frame rotated by angle about the given parent axis.
func (f *Frame) Orient(name string, axis Axis, angle gokane.Expr) *Frame {
	return &Frame{name: name, parent: f, axis: axis, angle: angle}
}

func (f *Frame) Name() string { return f.name }

// SetAngVel records the frame's angular velocity in the inertial frame.
func (f *Frame) SetAngVel(w *Vector) { f.angVel = w }

// AngVel returns the angular velocity set by SetAngVel, or nil.
func (f *Frame) AngVel() *Vector { return f.angVel }

func (f *Frame) X() *Vector { return VectorIn(f, gokane.N(1), gokane.N(0), gokane.N(0)) }
func (f *Frame) Y() *Vector { return VectorIn(f, gokane.N(0), gokane.N(1), gokane.N(0)) }
func (f *Frame) Z() *Vector { return VectorIn(f, gokane.N(0), gokane.N(0), gokane.N(1)) }

// axisDCM is the rotation matrix taking parent components to child
// components for a rotation by angle about the given parent axis: row i is
// the i-th child basis vector expressed in the parent basis.
func axisDCM(axis Axis, angle gokane.Expr) *gokane.Matrix {
	c := gokane.CosOf(angle)
	s := gokane.SinOf(angle)
	ns := gokane.MulOf(gokane.N(-1), s)
	one, zero := gokane.Expr(gokane.N(1)), gokane.Expr(gokane.N(0))
	switch axis {
	case AxisX:
		return gokane.MatrixFromSlice(3, 3, []gokane.Expr{
			one, zero, zero,
			zero, c, s,
			zero, ns, c,
		})
	case AxisY:
		return gokane.MatrixFromSlice(3, 3, []gokane.Expr{
			c, zero, ns,
			zero, one, zero,
			s, zero, c,
		})
	default:
		return gokane.MatrixFromSlice(3, 3, []gokane.Expr{
			c, s, zero,
			ns, c, zero,
			zero, zero, one,
		})
	}
}

// DCM returns the matrix M with v_dst = M * v_src for component columns,
// composed along the tree path between the two frames.
func DCM(dst, src *Frame) *gokane.Matrix {
	anc := commonAncestor(dst, src)
	if anc == nil {
		panic("mech: frames " + dst.name + " and " + src.name + " share no ancestor")
	}
	m := gokane.Identity(3)
	for f := src; f != anc; f = f.parent {
		m = axisDCM(f.axis, f.angle).Transpose().MatMul(m)
	}
	var down []*Frame
	for f := dst; f != anc; f = f.parent {
		down = append(down, f)
	}
	for i := len(down) - 1; i >= 0; i-- {
		m = axisDCM(down[i].axis, down[i].angle).MatMul(m)
	}
	return m
}

func commonAncestor(a, b *Frame) *Frame {
	seen := map[*Frame]bool{}
	for f := a; f != nil; f = f.parent {
		seen[f] = true
	}
	for f := b; f != nil; f = f.parent {
		if seen[f] {
			return f
		}
	}
	return nil
}
