// Package mech builds on the gokane kernel with the rigid-body vocabulary a
// Kane's-method derivation needs: reference frames, vectors, points, the
// inertia dyadic, the steady-rolling derivation itself, and a procedural-code
// emitter for the resulting equation families.
package mech

import "github.com/njchilds90/go-kane"

// System declares every symbol of the rolling-ellipsoid model: the physical
// constants, the generalized coordinates with their rates and accelerations,
// and the auxiliary contact-position coordinates.
//
// Time-varying symbols carry a "(t)" suffix in their internal names, so they
// can never collide with the plain algebraic names used in emitted code;
// renaming for emission is an honest substitution between distinct symbols.
type System struct {
	// Gravitational acceleration, ellipsoid semiaxes, mass-center offset
	// from the geometric center, arc-length parameter, and mass.
	G, A, B, C, D, E, F, S, M *gokane.Sym

	// Central inertia components in the body frame.
	Ixx, Iyy, Izz, Ixy, Iyz, Ixz *gokane.Sym

	// Generalized coordinates (yaw, lean, spin), their rates, and their
	// accelerations.
	Q, QD, QDD [3]*gokane.Sym

	// Contact-position coordinates and rates.
	R, RD [3]*gokane.Sym
}

func NewSystem() *System {
	sys := &System{
		G:   gokane.S("g"),
		A:   gokane.S("a"),
		B:   gokane.S("b"),
		C:   gokane.S("c"),
		D:   gokane.S("d"),
		E:   gokane.S("e"),
		F:   gokane.S("f"),
		S:   gokane.S("s"),
		M:   gokane.S("m"),
		Ixx: gokane.S("Ixx"),
		Iyy: gokane.S("Iyy"),
		Izz: gokane.S("Izz"),
		Ixy: gokane.S("Ixy"),
		Iyz: gokane.S("Iyz"),
		Ixz: gokane.S("Ixz"),
	}
	for i := 0; i < 3; i++ {
		sys.Q[i] = timeSym("q", i)
		sys.QD[i] = timeSym("qd", i)
		sys.QDD[i] = timeSym("qdd", i)
		sys.R[i] = timeSym("r", i)
		sys.RD[i] = timeSym("rd", i)
	}
	return sys
}

func timeSym(stem string, i int) *gokane.Sym {
	return gokane.S(stem + string(rune('0'+i)) + "(t)")
}

// Rates binds each time-varying symbol to its time derivative. Symbols
// absent from the table (the constants) differentiate to zero.
func (s *System) Rates() map[string]gokane.Expr {
	rates := map[string]gokane.Expr{}
	for i := 0; i < 3; i++ {
		rates[s.Q[i].Name()] = s.QD[i]
		rates[s.QD[i].Name()] = s.QDD[i]
		rates[s.R[i].Name()] = s.RD[i]
	}
	return rates
}

// SteadyMap is the steady-motion constraint: constant lean and spin angles
// and a constant yaw rate. Lean and spin rates and all accelerations vanish;
// the yaw rate qd0 survives as the free parameter.
func (s *System) SteadyMap() map[string]gokane.Expr {
	return map[string]gokane.Expr{
		s.QD[1].Name():  gokane.N(0),
		s.QD[2].Name():  gokane.N(0),
		s.QDD[0].Name(): gokane.N(0),
		s.QDD[1].Name(): gokane.N(0),
		s.QDD[2].Name(): gokane.N(0),
	}
}

// RenameMap rewrites the time-varying symbols that survive the steady
// reduction into the plain algebraic names used in emitted code.
func (s *System) RenameMap() map[string]gokane.Expr {
	return map[string]gokane.Expr{
		s.Q[1].Name():  gokane.S("q1"),
		s.Q[2].Name():  gokane.S("q2"),
		s.QD[0].Name(): gokane.S("qd0"),
		s.R[0].Name():  gokane.S("rx"),
		s.R[1].Name():  gokane.S("ry"),
		s.R[2].Name():  gokane.S("rz"),
	}
}
