package pendulum

import "math"

// WrapToPi wraps an angle to (-π, π]. Uses math.Mod so far-unwrapped
// angles (hours of accumulated rotation) wrap in constant time.
func WrapToPi(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	if a <= -math.Pi {
		a += 2 * math.Pi
	} else if a > math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// DeadCenterOffset returns θ2's signed offset from the upper dead center
// (the unstable equilibrium straight above the pivot), wrapped to (-π, π].
// Zero means the arm points straight up; ±π means straight down.
func DeadCenterOffset(theta2 float64) float64 {
	return WrapToPi(theta2 - math.Pi)
}

// FlipDetector watches consecutive substates of the second arm for a
// crossing of the upper dead center. A crossing shows as a sign change of
// the dead-center offset with a small step delta; a crossing at the bottom
// of the circle also changes sign but jumps by nearly 2π and is rejected.
// A substep that lands exactly on the far side without changing sign is an
// accepted detection miss; dt must be small enough that misses stay rare.
type FlipDetector struct {
	Prev float64 // offset after the last observed substep
}

// NewFlipDetector seeds the detector from the initial state so the seed
// orientation itself never registers as a flip.
func NewFlipDetector(s State) FlipDetector {
	return FlipDetector{Prev: DeadCenterOffset(s.Theta2)}
}

// Observe feeds the post-substep state and reports whether the second arm
// crossed the dead center during that substep.
func (d *FlipDetector) Observe(s State) bool {
	rel := DeadCenterOffset(s.Theta2)
	crossed := (d.Prev < 0) != (rel < 0) && math.Abs(rel-d.Prev) < math.Pi
	d.Prev = rel
	return crossed
}
