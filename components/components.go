// Package components defines ECS components for the simulation.
package components

import (
	"image/color"

	"github.com/pthm-cable/flipfield/pendulum"
)

// Status tracks where a region is in its lifecycle.
type Status uint8

const (
	StatusRunning  Status = iota // pendulum still integrating
	StatusFlipped                // second arm crossed the upper dead center
	StatusTimedOut               // hit the simulation time cap without flipping
)

// String returns the display name for a Status.
func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "Running"
	case StatusFlipped:
		return "Flipped"
	case StatusTimedOut:
		return "Timed Out"
	default:
		return "Unknown"
	}
}

// Stopped reports whether the region has reached a terminal status.
func (s Status) Stopped() bool {
	return s != StatusRunning
}

// Pendulum holds one region's simulation state. Params are copied per
// entity so arm-length seeding can vary them independently.
type Pendulum struct {
	State    pendulum.State
	Params   pendulum.Params
	Detector pendulum.FlipDetector
	Elapsed  float64 // simulated seconds since seeding
}

// Region holds a region's lifecycle and paint state.
type Region struct {
	Status   Status
	FlipTime float64 // simulated seconds at the flip; zero unless flipped
	Depth    uint8   // subdivision generation, root is zero
	Dirty    bool    // repaint needed on the next draw
	Color    color.RGBA
}
