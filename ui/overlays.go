package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayGridLines     OverlayID = "grid_lines"
	OverlayStatusTint    OverlayID = "status_tint"
	OverlayDepthShade    OverlayID = "depth_shade"
	OverlayPendulumArms  OverlayID = "pendulum_arms"
	OverlayActiveOutline OverlayID = "active_outline"
	OverlayHallMarkers   OverlayID = "hall_markers"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID   // Unique identifier
	Name        string      // Display name
	Description string      // What this overlay shows
	Key         int32       // Keyboard key to toggle (0 = no key)
	KeyLabel    string      // Key label for display (e.g., "G", "V")
	Category    string      // Grouping (e.g., "visual", "debug")
	Exclusive   []OverlayID // Other overlays to disable when this is enabled
}

// defaultOverlays is the standard overlay set, in display order. The
// tint and depth shades both recolor whole regions, so they exclude
// each other.
var defaultOverlays = []OverlayDescriptor{
	{
		ID:          OverlayGridLines,
		Name:        "Region Grid",
		Description: "Outline every region boundary",
		Key:         rl.KeyG,
		KeyLabel:    "G",
		Category:    "visual",
	},
	{
		ID:          OverlayStatusTint,
		Name:        "Status Tint",
		Description: "Tint regions by lifecycle status",
		Key:         rl.KeyT,
		KeyLabel:    "T",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayDepthShade},
	},
	{
		ID:          OverlayDepthShade,
		Name:        "Depth Shading",
		Description: "Shade regions by subdivision depth",
		Key:         rl.KeyY,
		KeyLabel:    "Y",
		Category:    "visual",
		Exclusive:   []OverlayID{OverlayStatusTint},
	},
	{
		ID:          OverlayPendulumArms,
		Name:        "Pendulum Arms",
		Description: "Draw live arms over running regions",
		Key:         rl.KeyV,
		KeyLabel:    "V",
		Category:    "debug",
	},
	{
		ID:          OverlayActiveOutline,
		Name:        "Active Outline",
		Description: "Outline regions currently integrating",
		Key:         rl.KeyB,
		KeyLabel:    "B",
		Category:    "debug",
	},
	{
		ID:          OverlayHallMarkers,
		Name:        "Hall Markers",
		Description: "Mark hall of fame flip locations",
		Key:         rl.KeyH,
		KeyLabel:    "H",
		Category:    "debug",
	},
}

// OverlayRegistry tracks which overlays exist and which are on. All
// overlays start disabled.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry holding the standard overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	for _, desc := range defaultOverlays {
		reg.Register(desc)
	}
	return reg
}

// Register adds an overlay, disabled.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = false
}

// Toggle switches an overlay on or off and returns the new state.
// Enabling an overlay switches off the overlays it excludes.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	desc, ok := r.byID[id]
	if !ok {
		return false
	}

	on := !r.enabled[id]
	r.enabled[id] = on
	if on {
		for _, excl := range desc.Exclusive {
			r.enabled[excl] = false
		}
	}
	return on
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns every registered overlay in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays in one category, in registration
// order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns the distinct categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	seen := make(map[string]bool)
	for _, desc := range r.descriptors {
		if seen[desc.Category] {
			continue
		}
		seen[desc.Category] = true
		cats = append(cats, desc.Category)
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key, if any. Returns the
// overlay ID, its new state, and whether a toggle happened.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			return desc.ID, r.Toggle(desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the IDs of the active overlays in
// registration order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var on []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			on = append(on, desc.ID)
		}
	}
	return on
}
