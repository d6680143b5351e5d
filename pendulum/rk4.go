package pendulum

import "fmt"

// Step advances s by one fixed step of size dt using classic 4th-order
// Runge-Kutta. Deterministic: identical inputs produce bit-identical
// outputs. Panics if the result is non-finite, which for valid Params
// indicates an invariant violation upstream rather than a recoverable
// condition.
func Step(s State, p Params, dt float64) State {
	k1 := Derivative(s, p)
	k2 := Derivative(s.advance(k1, dt/2), p)
	k3 := Derivative(s.advance(k2, dt/2), p)
	k4 := Derivative(s.advance(k3, dt), p)

	h := dt / 6
	out := State{
		Theta1: s.Theta1 + h*(k1.Theta1+2*k2.Theta1+2*k3.Theta1+k4.Theta1),
		Theta2: s.Theta2 + h*(k1.Theta2+2*k2.Theta2+2*k3.Theta2+k4.Theta2),
		Omega1: s.Omega1 + h*(k1.Omega1+2*k2.Omega1+2*k3.Omega1+k4.Omega1),
		Omega2: s.Omega2 + h*(k1.Omega2+2*k2.Omega2+2*k3.Omega2+k4.Omega2),
	}
	if !out.Finite() {
		panic(fmt.Sprintf("pendulum: non-finite state after step from %+v with %+v", s, p))
	}
	return out
}
