// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Seeding modes supported by SeedingConfig.Mode.
const (
	SeedAngles     = "angles"     // rect center maps to initial angles
	SeedArmLengths = "armlengths" // fixed angles, rect center maps to arm lengths
)

// Config holds all engine configuration parameters.
type Config struct {
	Canvas      CanvasConfig      `yaml:"canvas"`
	Window      WindowConfig      `yaml:"window"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Integration IntegrationConfig `yaml:"integration"`
	Subdivision SubdivisionConfig `yaml:"subdivision"`
	Seeding     SeedingConfig     `yaml:"seeding"`
	Color       ColorConfig       `yaml:"color"`
	Run         RunConfig         `yaml:"run"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	HallOfFame  HallOfFameConfig  `yaml:"hall_of_fame"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// CanvasConfig holds the simulated canvas dimensions in pixels.
// The canvas is the coordinate space regions live in; it is independent
// of the window size, which only views it through the camera.
type CanvasConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Title     string `yaml:"title"`
	TargetFPS int    `yaml:"target_fps"`
}

// PhysicsConfig holds the shared pendulum parameters.
type PhysicsConfig struct {
	M1      float64 `yaml:"m1"`
	M2      float64 `yaml:"m2"`
	L1      float64 `yaml:"l1"`
	L2      float64 `yaml:"l2"`
	Gravity float64 `yaml:"gravity"`
}

// IntegrationConfig holds the fixed-step integration parameters.
type IntegrationConfig struct {
	DT           float64 `yaml:"dt"`             // simulated seconds per substep
	StepsPerTick int     `yaml:"steps_per_tick"` // substeps per engine tick
	MaxSimTime   float64 `yaml:"max_sim_time"`   // timeout in simulated seconds
}

// SubdivisionConfig holds the refinement policy parameters.
type SubdivisionConfig struct {
	FlipTimeThreshold float64 `yaml:"flip_time_threshold"` // |t_a - t_b| below this splits both
	MinRegionPx       int     `yaml:"min_region_px"`       // smallest allowed region side
	MaxActive         int     `yaml:"max_active"`          // cap on concurrently running regions
}

// SeedingConfig selects how a region's rect maps to its initial pendulum.
type SeedingConfig struct {
	Mode   string  `yaml:"mode"`    // angles | armlengths
	MinArm float64 `yaml:"min_arm"` // armlengths mode: length at canvas origin
	MaxArm float64 `yaml:"max_arm"` // armlengths mode: length at far edge
}

// ColorConfig holds the display color mapping parameters.
type ColorConfig struct {
	FlipHueRate float64 `yaml:"flip_hue_rate"` // degrees of hue per simulated second at flip
	TimeoutGray uint8   `yaml:"timeout_gray"`  // channel value for timed-out regions
}

// RunConfig holds runtime behavior toggles.
type RunConfig struct {
	StartPaused   bool `yaml:"start_paused"`
	LogEveryTicks int  `yaml:"log_every_ticks"` // progress log cadence, 0 disables
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"` // window length in simulated seconds
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// HallOfFameConfig holds the longest-flip leaderboard settings.
type HallOfFameConfig struct {
	Size int `yaml:"size"` // entries kept; 0 disables
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickSimSeconds float64 // DT * StepsPerTick
	TimeoutSteps   int     // MaxSimTime / DT, rounded down
	CanvasW32      float32 // Canvas.Width as float32
	CanvasH32      float32 // Canvas.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	switch c.Seeding.Mode {
	case "", SeedAngles, SeedArmLengths:
	default:
		return fmt.Errorf("unknown seeding mode %q (want %s or %s)", c.Seeding.Mode, SeedAngles, SeedArmLengths)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return fmt.Errorf("canvas dimensions must be positive, got %dx%d", c.Canvas.Width, c.Canvas.Height)
	}
	if c.Integration.DT <= 0 {
		return fmt.Errorf("integration dt must be positive, got %v", c.Integration.DT)
	}
	if c.Physics.M1 <= 0 || c.Physics.M2 <= 0 || c.Physics.L1 <= 0 || c.Physics.L2 <= 0 {
		return fmt.Errorf("masses and arm lengths must be positive")
	}
	if c.Subdivision.MinRegionPx < 1 {
		return fmt.Errorf("min_region_px must be at least 1, got %d", c.Subdivision.MinRegionPx)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Seeding.Mode == "" {
		c.Seeding.Mode = SeedAngles
	}
	if c.Seeding.MinArm == 0 {
		c.Seeding.MinArm = 0.25
	}
	if c.Seeding.MaxArm == 0 {
		c.Seeding.MaxArm = 2.0
	}
	if c.Subdivision.MaxActive == 0 {
		c.Subdivision.MaxActive = 500
	}
	if c.Integration.StepsPerTick == 0 {
		c.Integration.StepsPerTick = 1
	}

	c.Derived.TickSimSeconds = c.Integration.DT * float64(c.Integration.StepsPerTick)
	c.Derived.TimeoutSteps = int(c.Integration.MaxSimTime / c.Integration.DT)
	c.Derived.CanvasW32 = float32(c.Canvas.Width)
	c.Derived.CanvasH32 = float32(c.Canvas.Height)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
