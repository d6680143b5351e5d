package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load defaults: %v", err)
	}

	if cfg.Canvas.Width != 2048 || cfg.Canvas.Height != 2048 {
		t.Errorf("canvas = %dx%d, want 2048x2048", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Integration.DT != 0.01 {
		t.Errorf("dt = %v, want 0.01", cfg.Integration.DT)
	}
	if cfg.Seeding.Mode != SeedAngles {
		t.Errorf("seeding mode = %q, want %q", cfg.Seeding.Mode, SeedAngles)
	}
	if cfg.Subdivision.FlipTimeThreshold != 0.9 {
		t.Errorf("flip_time_threshold = %v, want 0.9", cfg.Subdivision.FlipTimeThreshold)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	// Partial file: only canvas and threshold, everything else from defaults.
	partial := "canvas:\n  width: 256\n  height: 128\nsubdivision:\n  flip_time_threshold: 0.5\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Canvas.Width != 256 || cfg.Canvas.Height != 128 {
		t.Errorf("canvas = %dx%d, want 256x128", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Subdivision.FlipTimeThreshold != 0.5 {
		t.Errorf("threshold = %v, want 0.5", cfg.Subdivision.FlipTimeThreshold)
	}
	// Untouched fields keep default values.
	if cfg.Physics.Gravity != 9.81 {
		t.Errorf("gravity = %v, want default 9.81", cfg.Physics.Gravity)
	}
	if cfg.Integration.StepsPerTick != 120 {
		t.Errorf("steps_per_tick = %v, want default 120", cfg.Integration.StepsPerTick)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	wantTick := cfg.Integration.DT * float64(cfg.Integration.StepsPerTick)
	if cfg.Derived.TickSimSeconds != wantTick {
		t.Errorf("TickSimSeconds = %v, want %v", cfg.Derived.TickSimSeconds, wantTick)
	}
	if cfg.Derived.TimeoutSteps != int(cfg.Integration.MaxSimTime/cfg.Integration.DT) {
		t.Errorf("TimeoutSteps = %d", cfg.Derived.TimeoutSteps)
	}
	if cfg.Derived.CanvasW32 != float32(cfg.Canvas.Width) || cfg.Derived.CanvasH32 != float32(cfg.Canvas.Height) {
		t.Errorf("float canvas size = %gx%g", cfg.Derived.CanvasW32, cfg.Derived.CanvasH32)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		yaml string
		want string
	}{
		{"bad seeding mode", "seeding:\n  mode: spiral\n", "seeding mode"},
		{"zero canvas", "canvas:\n  width: 0\n", "canvas dimensions"},
		{"negative dt", "integration:\n  dt: -0.01\n", "dt must be positive"},
		{"zero mass", "physics:\n  m1: 0\n", "must be positive"},
		{"zero min region", "subdivision:\n  min_region_px: 0\n", "min_region_px"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tc.yaml), 0644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Canvas.Width = 512
	cfg.Canvas.Height = 512
	cfg.Seeding.Mode = SeedArmLengths

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if back.Canvas.Width != 512 {
		t.Errorf("width = %d, want 512", back.Canvas.Width)
	}
	if back.Seeding.Mode != SeedArmLengths {
		t.Errorf("mode = %q, want %q", back.Seeding.Mode, SeedArmLengths)
	}
}
