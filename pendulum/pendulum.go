// Package pendulum implements the double-pendulum equations of motion,
// a fixed-step integrator, and flip detection for the second arm.
package pendulum

import "math"

// Params holds the physical constants of a double pendulum: two point
// masses on rigid massless rods under uniform gravity. Read-only after
// construction; safe to share across goroutines.
type Params struct {
	M1, M2 float64 // bob masses
	L1, L2 float64 // arm lengths
	G      float64 // gravitational acceleration
}

// State is the full dynamic state of one double pendulum. Angles are
// absolute: 0 hangs straight down, π points straight up. Theta2 is the
// second arm's own angle, not relative to the first arm.
type State struct {
	Theta1, Theta2 float64 // arm angles in radians
	Omega1, Omega2 float64 // angular velocities in radians per second
}

// Derivative returns the instantaneous time derivative of s under p,
// packed as a State: (dθ1, dθ2, dω1, dω2) = (ω1, ω2, α1, α2).
// Pure function; finite output for finite state and positive masses
// and lengths (the denominator l1·(m1 + m2·sin²Δ) never vanishes).
func Derivative(s State, p Params) State {
	delta := s.Theta2 - s.Theta1
	sinD, cosD := math.Sin(delta), math.Cos(delta)

	den1 := (p.M1+p.M2)*p.L1 - p.M2*p.L1*cosD*cosD
	den2 := (p.L2 / p.L1) * den1

	alpha1 := (p.M2*p.L1*s.Omega1*s.Omega1*sinD*cosD +
		p.M2*p.G*math.Sin(s.Theta2)*cosD +
		p.M2*p.L2*s.Omega2*s.Omega2*sinD -
		(p.M1+p.M2)*p.G*math.Sin(s.Theta1)) / den1

	alpha2 := (-p.M2*p.L2*s.Omega2*s.Omega2*sinD*cosD +
		(p.M1+p.M2)*p.G*math.Sin(s.Theta1)*cosD -
		(p.M1+p.M2)*p.L1*s.Omega1*s.Omega1*sinD -
		(p.M1+p.M2)*p.G*math.Sin(s.Theta2)) / den2

	return State{Theta1: s.Omega1, Theta2: s.Omega2, Omega1: alpha1, Omega2: alpha2}
}

// Energy returns the total mechanical energy of s under p, with potential
// measured from the pivot. Conserved by the true dynamics; near-conserved
// by the integrator over short spans, which the tests rely on.
func Energy(s State, p Params) float64 {
	v1sq := p.L1 * p.L1 * s.Omega1 * s.Omega1
	v2sq := p.L1*p.L1*s.Omega1*s.Omega1 + p.L2*p.L2*s.Omega2*s.Omega2 +
		2*p.L1*p.L2*s.Omega1*s.Omega2*math.Cos(s.Theta1-s.Theta2)

	ke := 0.5*p.M1*v1sq + 0.5*p.M2*v2sq
	y1 := -p.L1 * math.Cos(s.Theta1)
	y2 := y1 - p.L2*math.Cos(s.Theta2)
	pe := p.M1*p.G*y1 + p.M2*p.G*y2

	return ke + pe
}

// Finite reports whether every field of s is a normal finite number.
func (s State) Finite() bool {
	for _, v := range [4]float64{s.Theta1, s.Theta2, s.Omega1, s.Omega2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// advance returns s moved along derivative d for time h.
func (s State) advance(d State, h float64) State {
	return State{
		Theta1: s.Theta1 + d.Theta1*h,
		Theta2: s.Theta2 + d.Theta2*h,
		Omega1: s.Omega1 + d.Omega1*h,
		Omega2: s.Omega2 + d.Omega2*h,
	}
}
