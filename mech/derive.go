package mech

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/njchilds90/go-kane"
)

var (
	// ErrYawDependence means a dynamical residual depends on the yaw angle,
	// which must be cyclic for the model to be well posed.
	ErrYawDependence = errors.New("mech: residual depends on the yaw angle")

	// ErrSteadyInconsistent means the mass-center velocity fails to be
	// constant in the body frame under the steady-motion constraint.
	ErrSteadyInconsistent = errors.New("mech: steady mass-center velocity is not body-frame constant")

	// ErrYawResidual means the yaw equation is not trivially satisfied
	// under steady motion.
	ErrYawResidual = errors.New("mech: yaw residual does not vanish")
)

// Derivation holds the steady-rolling equation families for the ellipsoid:
// the four h expressions (for each surviving equation, the qd0-free part and
// the coefficient of qd0^2) and the eight dh expressions (their partials
// with respect to lean and spin), all in the plain emission symbol names.
type Derivation struct {
	Sys       *System
	H         [4]gokane.Expr
	DH        [8]gokane.Expr
	Residuals [3]gokane.Expr
}

type config struct {
	log *slog.Logger
}

type Option func(*config)

// WithLogger directs stage-level progress logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.log = l }
}

// Derive runs the full steady-rolling derivation for a rigid ellipsoid
// rolling without slip on a horizontal plane.
//
// The frame chain is N (inertial) -> Y (yaw about z) -> L (lean about x) ->
// R (spin about y, body fixed). Every vector is kept in the Y, L, or R
// basis; nothing is ever expressed in N, which is what keeps the yaw angle
// out of the algebra entirely.
func Derive(opts ...Option) (*Derivation, error) {
	cfg := config{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, o := range opts {
		o(&cfg)
	}
	sys := NewSystem()

	frameN := NewFrame("N")
	frameY := frameN.Orient("Y", AxisZ, sys.Q[0])
	frameL := frameY.Orient("L", AxisX, sys.Q[1])
	frameR := frameL.Orient("R", AxisY, sys.Q[2])

	// w = qd0*Y.z + qd1*Y.x + qd2*L.y
	w := VectorIn(frameY, sys.QD[1], gokane.N(0), sys.QD[0]).
		Add(frameL.Y().Scale(sys.QD[2]))
	frameR.SetAngVel(w)
	cfg.log.Debug("frames oriented", "chain", "N->Y->L->R")

	// Contact geometry: direction cosines of the vertical in the body
	// frame, and the ellipsoid support function.
	up := frameY.Z()
	mu := [3]gokane.Expr{
		frameR.X().Dot(up),
		frameR.Y().Dot(up),
		frameR.Z().Dot(up),
	}
	epsSq := gokane.AddOf(
		gokane.PowOf(gokane.MulOf(sys.A, mu[0]), gokane.N(2)),
		gokane.PowOf(gokane.MulOf(sys.B, mu[1]), gokane.N(2)),
		gokane.PowOf(gokane.MulOf(sys.C, mu[2]), gokane.N(2)),
	)
	invEps := gokane.PowOf(epsSq, gokane.F(-1, 2))

	// Contact point P, geometric center O, mass center RO.
	pointP := NewPoint("P")
	pointP.SetVel(ZeroVector(frameY))
	pointO := pointP.Locate("O", VectorIn(frameR,
		gokane.MulOf(gokane.N(-1), gokane.PowOf(sys.A, gokane.N(2)), mu[0], invEps),
		gokane.MulOf(gokane.N(-1), gokane.PowOf(sys.B, gokane.N(2)), mu[1], invEps),
		gokane.MulOf(gokane.N(-1), gokane.PowOf(sys.C, gokane.N(2)), mu[2], invEps),
	))
	pointRO := pointO.Locate("RO", VectorIn(frameR, sys.D, sys.E, sys.F))
	pointO.SetVelTwoPoint(pointP, frameR)
	pointRO.SetVelTwoPoint(pointO, frameR)
	cfg.log.Debug("kinematics assembled", "points", "P->O->RO")

	// Partial velocities and partial angular velocities, taken before the
	// steady constraint is imposed.
	var vPart, wPart [3]*Vector
	for i := 0; i < 3; i++ {
		vPart[i] = pointRO.Vel().DiffSpeed(sys.QD[i].Name())
		wPart[i] = w.DiffSpeed(sys.QD[i].Name())
	}

	steady := sys.SteadyMap()
	rates := sys.Rates()

	// Under steady motion the body-frame derivative of the mass-center
	// velocity must vanish identically; the acceleration is then pure
	// transport.
	if !pointRO.Vel().TimeDiffIn(frameR, rates).SubAll(steady).IsZero() {
		return nil, ErrSteadyInconsistent
	}
	ws := w.SubAll(steady)
	vROs := pointRO.Vel().SubAll(steady)
	aRO := ws.Cross(vROs)
	pointRO.SetAcc(aRO)
	cfg.log.Debug("steady constraint applied")

	grav := VectorIn(frameY, gokane.N(0), gokane.N(0), gokane.MulOf(sys.M, sys.G))
	dyadic := NewInertia(frameR, sys.Ixx, sys.Iyy, sys.Izz, sys.Ixy, sys.Iyz, sys.Ixz)
	rStar := aRO.Scale(gokane.MulOf(gokane.N(-1), sys.M))
	// The steady angular acceleration is zero, so the inertia torque is
	// the gyroscopic term alone.
	tStar := ws.Cross(dyadic.Dot(ws)).Scale(gokane.N(-1))

	var fDyn [3]gokane.Expr
	for i := 0; i < 3; i++ {
		gaf := grav.Dot(vPart[i])
		gif := gokane.AddOf(rStar.Dot(vPart[i]), tStar.Dot(wPart[i]))
		fDyn[i] = gokane.Expand(gokane.AddOf(gaf, gif))
	}
	cfg.log.Debug("residuals formed")

	yaw := sys.Q[0].Name()
	for i := 0; i < 3; i++ {
		if !gokane.IsZero(gokane.Diff(fDyn[i], yaw)) {
			return nil, fmt.Errorf("%w: equation %d", ErrYawDependence, i)
		}
	}
	if !gokane.IsZero(fDyn[0]) {
		return nil, ErrYawResidual
	}
	cfg.log.Debug("invariants verified")

	// For each surviving equation: the qd0-free part and the coefficient
	// of qd0^2.
	qd0 := sys.QD[0].Name()
	var h [4]gokane.Expr
	for k := 0; k < 2; k++ {
		fd := fDyn[k+1]
		h[2*k] = gokane.SubAll(fd, map[string]gokane.Expr{qd0: gokane.N(0)})
		h[2*k+1] = gokane.Coeff(fd, qd0, 2)
	}
	var dh [8]gokane.Expr
	for i := 0; i < 4; i++ {
		for j := 0; j < 2; j++ {
			dh[2*i+j] = gokane.Diff(h[i], sys.Q[j+1].Name())
		}
	}

	ren := sys.RenameMap()
	d := &Derivation{Sys: sys}
	for i := range h {
		d.H[i] = gokane.SubAll(h[i], ren)
	}
	for i := range dh {
		d.DH[i] = gokane.SubAll(dh[i], ren)
	}
	for i := range fDyn {
		d.Residuals[i] = gokane.SubAll(fDyn[i], ren)
	}
	cfg.log.Info("derivation complete", "h", len(d.H), "dh", len(d.DH))
	return d, nil
}
