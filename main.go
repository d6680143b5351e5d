package main

import (
	"flag"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/game"
	"github.com/pthm-cable/flipfield/monitor"
	"github.com/pthm-cable/flipfield/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	liveMonitor := flag.Bool("monitor", false, "Show a terminal dashboard (implies -headless)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in simulated seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for PNG snapshots")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = run until settled)")
	ticksPerFrame := flag.Int("ticks-per-frame", 1, "Simulation ticks per update call")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// The monitor owns the terminal, so structured logs go to stderr
	// where they can be redirected without tearing the dashboard.
	logOut := os.Stdout
	if *liveMonitor {
		logOut = os.Stderr
	}
	logger := slog.New(slog.NewJSONHandler(logOut, nil))
	slog.SetDefault(logger)

	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	gcfg := game.GameConfig{
		Headless:      *headless || *liveMonitor,
		LogStats:      *logStats,
		TicksPerFrame: *ticksPerFrame,
		OutputDir:     *outputDir,
		SnapshotDir:   *snapshotDir,
	}
	if gcfg.TicksPerFrame < 1 {
		gcfg.TicksPerFrame = 1
	}

	switch {
	case *liveMonitor:
		runMonitored(cfg, gcfg, *maxTicks)
	case *headless:
		runHeadless(cfg, gcfg, *maxTicks)
	default:
		runWindowed(cfg, gcfg, *maxTicks)
	}
}

func runWindowed(cfg *config.Config, gcfg game.GameConfig, maxTicks int) {
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	g, err := game.NewGame(cfg, gcfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			break
		}
	}
	g.Shutdown()
}

func runHeadless(cfg *config.Config, gcfg game.GameConfig, maxTicks int) {
	g, err := game.NewGame(cfg, gcfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	slog.Info("starting headless run",
		"canvas_w", cfg.Canvas.Width,
		"canvas_h", cfg.Canvas.Height,
		"seeding", cfg.Seeding.Mode,
		"max_ticks", maxTicks,
	)

	for !g.Finished() {
		g.UpdateHeadless()

		if maxTicks > 0 && int(g.Tick()) >= maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			break
		}
	}
	g.Shutdown()
}

func runMonitored(cfg *config.Config, gcfg game.GameConfig, maxTicks int) {
	stats := make(chan telemetry.WindowStats, 16)
	done := make(chan struct{})
	var paused, stop atomic.Bool

	// Drop windows rather than stall the run when the UI lags.
	gcfg.StatsCallback = func(ws telemetry.WindowStats) {
		select {
		case stats <- ws:
		default:
		}
	}

	g, err := game.NewGame(cfg, gcfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	go func() {
		defer close(done)
		for !g.Finished() && !stop.Load() {
			if paused.Load() {
				time.Sleep(10 * time.Millisecond)
				continue
			}
			g.UpdateHeadless()

			if maxTicks > 0 && int(g.Tick()) >= maxTicks {
				return
			}
		}
	}()

	if err := monitor.Run(stats, done, &paused); err != nil {
		slog.Error("monitor failed", "error", err)
	}

	stop.Store(true)
	<-done
	g.Shutdown()
}
