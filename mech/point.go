package mech

import "github.com/njchilds90/go-kane"

// Point is a node in a tree of located points. Velocity and acceleration are
// stored for the inertial frame only, which is all the derivation needs.
type Point struct {
	name   string
	parent *Point
	pos    *Vector
	vel    *Vector
	acc    *Vector
}

func NewPoint(name string) *Point {
	return &Point{name: name}
}

// Locate creates a new point offset from p by the given position vector.
func (p *Point) Locate(name string, offset *Vector) *Point {
	return &Point{name: name, parent: p, pos: offset}
}

func (p *Point) Name() string { return p.name }

// PosFrom returns the position vector from other to p, summed along the
// point tree. Both points must belong to the same tree.
func (p *Point) PosFrom(other *Point) *Vector {
	depth := func(q *Point) int {
		d := 0
		for ; q != nil; q = q.parent {
			d++
		}
		return d
	}
	up, down := p, other
	var fromP, fromOther *Vector
	du, dd := depth(up), depth(down)
	for du > dd {
		fromP = accumulate(fromP, up.pos)
		up, du = up.parent, du-1
	}
	for dd > du {
		fromOther = accumulate(fromOther, down.pos)
		down, dd = down.parent, dd-1
	}
	for up != down {
		if up == nil || down == nil {
			panic("mech: points " + p.name + " and " + other.name + " share no ancestor")
		}
		fromP = accumulate(fromP, up.pos)
		fromOther = accumulate(fromOther, down.pos)
		up, down = up.parent, down.parent
	}
	switch {
	case fromP == nil && fromOther == nil:
		panic("mech: PosFrom between a point and itself needs a frame; use ZeroVector")
	case fromP == nil:
		return fromOther.Scale(gokane.N(-1))
	case fromOther == nil:
		return fromP
	default:
		return fromP.Add(fromOther.Scale(gokane.N(-1)))
	}
}

func accumulate(sum, step *Vector) *Vector {
	if sum == nil {
		return step
	}
	return sum.Add(step)
}

// SetVel records the point's inertial velocity.
func (p *Point) SetVel(v *Vector) { p.vel = v }

func (p *Point) Vel() *Vector { return p.vel }

// SetVelTwoPoint derives p's inertial velocity from a reference point fixed
// in the same rigid body: v_p = v_ref + w x r, with w the body's inertial
// angular velocity.
func (p *Point) SetVelTwoPoint(ref *Point, body *Frame) {
	w := body.AngVel()
	if w == nil {
		panic("mech: frame " + body.name + " has no angular velocity set")
	}
	r := p.PosFrom(ref)
	p.vel = ref.vel.Add(w.Cross(r))
}

func (p *Point) SetAcc(a *Vector) { p.acc = a }

func (p *Point) Acc() *Vector { return p.acc }
