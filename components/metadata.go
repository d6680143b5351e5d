package components

import "github.com/pthm-cable/flipfield/pendulum"

// FieldDescriptor describes a component field for UI display.
type FieldDescriptor struct {
	ID         string  // Unique identifier
	Label      string  // Display name
	Format     string  // Printf format (e.g., "%.2f")
	Min        float64 // Minimum value (for bars)
	Max        float64 // Maximum value (for bars)
	IsCentered bool    // True for centered bar display
	IsBar      bool    // True to render as progress bar
	IsAngle    bool    // True to render as a compass dial
	Group      string  // Logical grouping
}

// PendulumFieldDescriptors returns metadata for Pendulum fields.
func PendulumFieldDescriptors() []FieldDescriptor {
	return []FieldDescriptor{
		{ID: "theta1", Label: "Theta 1", Format: "%+.3f", Min: -3.14159, Max: 3.14159, IsAngle: true, Group: "state"},
		{ID: "theta2", Label: "Theta 2", Format: "%+.3f", Min: -3.14159, Max: 3.14159, IsAngle: true, Group: "state"},
		{ID: "omega1", Label: "Omega 1", Format: "%+.2f", Min: -15, Max: 15, IsCentered: true, IsBar: true, Group: "state"},
		{ID: "omega2", Label: "Omega 2", Format: "%+.2f", Min: -15, Max: 15, IsCentered: true, IsBar: true, Group: "state"},
		{ID: "offset", Label: "Dead Center", Format: "%+.3f", Min: -3.14159, Max: 3.14159, IsCentered: true, IsBar: true, Group: "flip"},
		{ID: "energy", Label: "Energy", Format: "%.2f", Group: "flip"},
		{ID: "elapsed", Label: "Sim Time", Format: "%.2fs", Group: "flip"},
	}
}

// GetPendulumValue extracts a pendulum field value by ID.
// Angles are wrapped to the principal range for display; the raw state
// accumulates full revolutions.
func GetPendulumValue(pen *Pendulum, fieldID string) float64 {
	switch fieldID {
	case "theta1":
		return pendulum.WrapToPi(pen.State.Theta1)
	case "theta2":
		return pendulum.WrapToPi(pen.State.Theta2)
	case "omega1":
		return pen.State.Omega1
	case "omega2":
		return pen.State.Omega2
	case "offset":
		return pendulum.DeadCenterOffset(pen.State.Theta2)
	case "energy":
		return pendulum.Energy(pen.State, pen.Params)
	case "elapsed":
		return pen.Elapsed
	default:
		return 0
	}
}
