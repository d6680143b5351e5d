package game

import "github.com/pthm-cable/flipfield/telemetry"

// GameConfig holds run-mode options that come from flags rather than
// the YAML config.
type GameConfig struct {
	// Headless disables the window, camera, and all panels. The tick
	// driver and canvas still run.
	Headless bool

	// LogStats emits the telemetry and perf summaries on every window
	// flush instead of only writing them to CSV.
	LogStats bool

	// TicksPerFrame is the initial simulation speed in windowed mode.
	TicksPerFrame int

	// OutputDir, when set, receives config.yaml plus telemetry, perf,
	// depth, and hall-of-fame files for the run.
	OutputDir string

	// SnapshotDir, when set, receives a canvas PNG at every new maximum
	// subdivision depth and on shutdown.
	SnapshotDir string

	// StatsCallback receives every flushed telemetry window. The live
	// monitor uses this to feed its TUI without touching engine state.
	StatsCallback func(telemetry.WindowStats)
}

// DefaultGameConfig returns the options used when no flags are given.
func DefaultGameConfig() GameConfig {
	return GameConfig{TicksPerFrame: 1}
}
