package game

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/renderer"
)

// newTestConfig loads the embedded defaults, applies mutate, and runs
// the result through a YAML round trip so validation and derived
// values are computed exactly as they are for a real config file.
func newTestConfig(t testing.TB, mutate func(*config.Config)) *config.Config {
	t.Helper()

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	mutate(cfg)

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing test config: %v", err)
	}
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("reloading test config: %v", err)
	}
	return cfg
}

func newTestGame(t testing.TB, mutate func(*config.Config)) *Game {
	t.Helper()

	g, err := NewGame(newTestConfig(t, mutate), GameConfig{Headless: true, TicksPerFrame: 1})
	if err != nil {
		t.Fatalf("creating game: %v", err)
	}
	t.Cleanup(g.stopParallelWorkers)
	return g
}

func runToSettled(t *testing.T, g *Game, maxTicks int32) {
	t.Helper()
	for !g.Finished() {
		if g.Tick() >= maxTicks {
			t.Fatalf("grid did not settle within %d ticks (active=%d queued=%d)",
				maxTicks, len(g.activeSet), len(g.queue))
		}
		g.UpdateHeadless()
	}
}

// timeoutConfig makes every region time out mid-way through its first
// tick: the budget expires after five substeps, long before the outer
// arm could reach the top. The run is fully deterministic.
func timeoutConfig(cfg *config.Config) {
	cfg.Canvas.Width = 32
	cfg.Canvas.Height = 32
	cfg.Subdivision.MinRegionPx = 8
	cfg.Integration.MaxSimTime = 0.05
	cfg.Run.LogEveryTicks = 0
}

func TestTimeoutRunSettles(t *testing.T) {
	g := newTestGame(t, timeoutConfig)

	runToSettled(t, g, 10)

	// Root (32) splits into 16s, 16s split into 8s, 8s are terminal.
	if g.Tick() != 3 {
		t.Errorf("expected run to settle on tick 3, got %d", g.Tick())
	}
	if g.totalRegions != 16 {
		t.Errorf("expected 16 terminal regions, got %d", g.totalRegions)
	}
	if g.flipped != 0 || g.timedOut != 16 {
		t.Errorf("expected 0 flipped / 16 timed out, got %d / %d", g.flipped, g.timedOut)
	}
	if g.splits != 5 {
		t.Errorf("expected 5 splits (root plus four quadrants), got %d", g.splits)
	}
	if got := g.depthTracker.MaxDepth(); got != 2 {
		t.Errorf("expected max depth 2, got %d", got)
	}
	if g.stoppedArea != 32*32 {
		t.Errorf("stopped area should cover the canvas, got %d", g.stoppedArea)
	}

	gray := renderer.TimedOutColor(g.cfg.Color.TimeoutGray)
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if got := g.canvas.At(x, y); got != gray {
				t.Fatalf("pixel (%d,%d) = %v, want timeout gray %v", x, y, got, gray)
			}
		}
	}
}

func TestTilingExactThroughSplits(t *testing.T) {
	g := newTestGame(t, timeoutConfig)
	runToSettled(t, g, 10)

	areas := make(map[components.Rect]int)
	for y := 0; y < g.cfg.Canvas.Height; y++ {
		for x := 0; x < g.cfg.Canvas.Width; x++ {
			e, ok := g.index.At(x, y)
			if !ok {
				t.Fatalf("pixel (%d,%d) has no owning region", x, y)
			}
			rect := g.rectMap.Get(e)
			if rect == nil {
				t.Fatalf("pixel (%d,%d) owner has no rect", x, y)
			}
			if !rect.Contains(x, y) {
				t.Fatalf("pixel (%d,%d) owned by region %+v that does not contain it", x, y, *rect)
			}
			areas[*rect]++
		}
	}

	if len(areas) != 16 {
		t.Errorf("expected 16 distinct regions in the index, got %d", len(areas))
	}
	for rect, count := range areas {
		if count != rect.Area() {
			t.Errorf("region %+v owns %d pixels, want %d", rect, count, rect.Area())
		}
	}
}

func TestRootFlipEndsRun(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		cfg.Canvas.Width = 16
		cfg.Canvas.Height = 16
		cfg.Subdivision.MinRegionPx = 8
		cfg.Integration.MaxSimTime = 60
		cfg.HallOfFame.Size = 5
		cfg.Run.LogEveryTicks = 0
	})

	// The root seeds at theta1=pi, theta2=pi/2: far more than enough
	// energy to flip well inside the 60s budget.
	runToSettled(t, g, 60)

	if g.flipped != 1 || g.timedOut != 0 {
		t.Fatalf("expected exactly one flipped region, got flipped=%d timedOut=%d", g.flipped, g.timedOut)
	}
	// A lone flip has no neighbor to compare against, so it never splits.
	if g.totalRegions != 1 {
		t.Errorf("flip without neighbors must not split, got %d regions", g.totalRegions)
	}

	query := g.regionFilter.Query()
	for query.Next() {
		rect, pen, reg := query.Get()

		if reg.Status != components.StatusFlipped {
			t.Errorf("region status = %v, want flipped", reg.Status)
		}
		if reg.FlipTime <= 0 || reg.FlipTime > 60 {
			t.Errorf("flip time %v outside (0, 60]", reg.FlipTime)
		}
		if reg.FlipTime > pen.Elapsed {
			t.Errorf("flip time %v exceeds elapsed %v", reg.FlipTime, pen.Elapsed)
		}
		if reg.Dirty {
			t.Errorf("stopped region still dirty after its final paint")
		}

		want := renderer.FlippedColor(reg.FlipTime, g.cfg.Color.FlipHueRate)
		if reg.Color != want {
			t.Errorf("frozen color %v, want %v", reg.Color, want)
		}
		for y := rect.Y; y < rect.Y+rect.H; y++ {
			for x := rect.X; x < rect.X+rect.W; x++ {
				if got := g.canvas.At(x, y); got != want {
					t.Fatalf("pixel (%d,%d) = %v, want frozen flip color %v", x, y, got, want)
				}
			}
		}
	}

	if g.hallOfFame.Size() != 1 {
		t.Fatalf("hall of fame size = %d, want 1", g.hallOfFame.Size())
	}
	top, _ := g.hallOfFame.Top()
	if math.Abs(top.Theta1-math.Pi) > 1e-12 || math.Abs(top.Theta2-math.Pi/2) > 1e-12 {
		t.Errorf("hall entry seed = (%v, %v), want (pi, pi/2)", top.Theta1, top.Theta2)
	}
	if top.W != 16 || top.H != 16 {
		t.Errorf("hall entry rect = %dx%d, want 16x16", top.W, top.H)
	}
}

func TestAdmissionCapHolds(t *testing.T) {
	g := newTestGame(t, func(cfg *config.Config) {
		timeoutConfig(cfg)
		cfg.Subdivision.MaxActive = 4
	})

	for !g.Finished() {
		if g.Tick() >= 20 {
			t.Fatalf("capped run did not settle within 20 ticks")
		}
		g.UpdateHeadless()
		if len(g.activeSet) > 4 {
			t.Fatalf("tick %d: active set %d exceeds cap 4", g.Tick(), len(g.activeSet))
		}
	}

	if g.totalRegions != 16 || g.timedOut != 16 {
		t.Errorf("capped run should still reach 16 timed-out leaves, got %d/%d",
			g.totalRegions, g.timedOut)
	}
}

func TestChildrenAdmittedInQuadrantOrder(t *testing.T) {
	g := newTestGame(t, timeoutConfig)

	// Tick 1: the root times out and splits into four children.
	g.UpdateHeadless()

	want := []components.Rect{
		{X: 0, Y: 0, W: 16, H: 16},
		{X: 16, Y: 0, W: 16, H: 16},
		{X: 0, Y: 16, W: 16, H: 16},
		{X: 16, Y: 16, W: 16, H: 16},
	}
	if len(g.activeSet) != len(want) {
		t.Fatalf("active set size = %d, want %d", len(g.activeSet), len(want))
	}
	for i, e := range g.activeSet {
		rect := g.rectMap.Get(e)
		if rect == nil || *rect != want[i] {
			t.Errorf("active[%d] rect = %v, want %v", i, rect, want[i])
		}
	}
}

func TestDeterministicAcrossRuns(t *testing.T) {
	run := func() (*Game, []byte) {
		g := newTestGame(t, timeoutConfig)
		runToSettled(t, g, 10)

		pix := g.canvas.Pix()
		buf := make([]byte, 0, len(pix)*4)
		for _, c := range pix {
			buf = append(buf, c.R, c.G, c.B, c.A)
		}
		return g, buf
	}

	g1, buf1 := run()
	g2, buf2 := run()

	if g1.Tick() != g2.Tick() {
		t.Errorf("tick counts differ across identical runs: %d vs %d", g1.Tick(), g2.Tick())
	}
	if string(buf1) != string(buf2) {
		t.Errorf("canvas contents differ across identical runs")
	}
}

func TestSeedPendulumModes(t *testing.T) {
	cfg := newTestConfig(t, func(cfg *config.Config) {
		cfg.Canvas.Width = 32
		cfg.Canvas.Height = 32
	})

	// Angles mode: rect center sweeps the release angles.
	pen := seedPendulum(components.Rect{X: 0, Y: 0, W: 32, H: 32}, cfg)
	if math.Abs(pen.State.Theta1-math.Pi) > 1e-12 {
		t.Errorf("root theta1 = %v, want pi", pen.State.Theta1)
	}
	if math.Abs(pen.State.Theta2-math.Pi/2) > 1e-12 {
		t.Errorf("root theta2 = %v, want pi/2", pen.State.Theta2)
	}
	if pen.State.Omega1 != 0 || pen.State.Omega2 != 0 {
		t.Errorf("seeds must start at rest, got omegas %v, %v", pen.State.Omega1, pen.State.Omega2)
	}
	if pen.Params.L1 != cfg.Physics.L1 || pen.Params.L2 != cfg.Physics.L2 {
		t.Errorf("angles mode must keep configured arm lengths")
	}

	quarter := seedPendulum(components.Rect{X: 0, Y: 0, W: 16, H: 16}, cfg)
	if math.Abs(quarter.State.Theta1-math.Pi/2) > 1e-12 {
		t.Errorf("quarter-canvas theta1 = %v, want pi/2", quarter.State.Theta1)
	}
	if math.Abs(quarter.State.Theta2-math.Pi/4) > 1e-12 {
		t.Errorf("quarter-canvas theta2 = %v, want pi/4", quarter.State.Theta2)
	}

	// Arm-lengths mode: fixed release, arms swept across the canvas.
	cfg.Seeding.Mode = config.SeedArmLengths
	pen = seedPendulum(components.Rect{X: 0, Y: 0, W: 32, H: 32}, cfg)
	if math.Abs(pen.State.Theta1-math.Pi) > 1e-12 || math.Abs(pen.State.Theta2-math.Pi/2) > 1e-12 {
		t.Errorf("armlengths mode release = (%v, %v), want (pi, pi/2)", pen.State.Theta1, pen.State.Theta2)
	}
	wantArm := cfg.Seeding.MinArm + (cfg.Seeding.MaxArm-cfg.Seeding.MinArm)*0.5
	if math.Abs(pen.Params.L1-wantArm) > 1e-12 || math.Abs(pen.Params.L2-wantArm) > 1e-12 {
		t.Errorf("center arms = (%v, %v), want %v", pen.Params.L1, pen.Params.L2, wantArm)
	}
}

func BenchmarkTickLoop(b *testing.B) {
	benchConfig := func(cfg *config.Config) {
		cfg.Canvas.Width = 512
		cfg.Canvas.Height = 512
		cfg.Run.LogEveryTicks = 0
	}
	g := newTestGame(b, benchConfig)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if g.Finished() {
			b.StopTimer()
			g.stopParallelWorkers()
			g = newTestGame(b, benchConfig)
			b.StartTimer()
		}
		g.UpdateHeadless()
	}
}
