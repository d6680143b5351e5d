// Package game owns the tick driver: it seeds the root region, runs
// the integrate/outcome/subdivide/admit/paint phases, and wires the
// canvas, camera, panels, and telemetry together.
package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/camera"
	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/inspector"
	"github.com/pthm-cable/flipfield/renderer"
	"github.com/pthm-cable/flipfield/systems"
	"github.com/pthm-cable/flipfield/telemetry"
	"github.com/pthm-cable/flipfield/ui"
)

// Game holds the complete engine state.
type Game struct {
	world *ecs.World
	cfg   *config.Config

	// Region entity access
	regionMapper *ecs.Map3[components.Rect, components.Pendulum, components.Region]
	regionFilter *ecs.Filter3[components.Rect, components.Pendulum, components.Region]

	// Individual component mappers for lookups
	rectMap   *ecs.Map1[components.Rect]
	penMap    *ecs.Map1[components.Pendulum]
	regionMap *ecs.Map1[components.Region]

	// Grid structures
	index      *systems.RegionIndex
	subdivider *systems.Subdivider

	// Scheduler: regions integrating now, and regions waiting for a slot
	activeSet []ecs.Entity
	queue     []ecs.Entity

	// Census counters
	flipped      int
	timedOut     int
	splits       int
	totalRegions int
	stoppedArea  int // canvas pixels owned by stopped regions
	canvasArea   int

	// Rendering
	canvas    *renderer.Canvas
	presenter *renderer.CanvasPresenter
	camera    *camera.Camera

	// Parallel integration
	parallel *parallelState

	// Reused per tick
	stopEvents       []systems.StopEvent
	pendingSnapshots []telemetry.DepthRecord

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	depthTracker  *telemetry.DepthTracker
	hallOfFame    *telemetry.HallOfFame
	outputManager *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	lastWindow    telemetry.WindowStats
	hasWindow     bool

	// UI (nil in headless mode)
	hud           *ui.HUD
	perfPanel     *ui.PerfPanel
	hallPanel     *ui.HallPanel
	controlsPanel *ui.ControlsPanel
	quickStats    *ui.QuickStatsPanel
	palettePanel  *ui.PalettePanel
	paletteData   ui.PalettePanelData
	overlays      *ui.OverlayRegistry
	inspector     *inspector.Inspector
	trendPanel    *inspector.TrendPanel
	showTrend     bool

	// State
	tick          int32
	paused        bool
	finished      bool
	ticksPerFrame int
	headless      bool
	logStats      bool
	snapshotDir   string

	screenWidth, screenHeight float32

	// Progress log accounting
	admittedSinceLog int
	stoppedSinceLog  int
}

// NewGame creates an engine from the loaded configuration and the
// run-mode options.
func NewGame(cfg *config.Config, gcfg GameConfig) (*Game, error) {
	world := ecs.NewWorld()

	g := &Game{
		world:         world,
		cfg:           cfg,
		canvasArea:    cfg.Canvas.Width * cfg.Canvas.Height,
		headless:      gcfg.Headless,
		logStats:      gcfg.LogStats,
		snapshotDir:   gcfg.SnapshotDir,
		ticksPerFrame: gcfg.TicksPerFrame,
		paused:        cfg.Run.StartPaused,
		statsCallback: gcfg.StatsCallback,
	}
	if g.ticksPerFrame < 1 {
		g.ticksPerFrame = 1
	}

	g.regionMapper = ecs.NewMap3[components.Rect, components.Pendulum, components.Region](world)
	g.regionFilter = ecs.NewFilter3[components.Rect, components.Pendulum, components.Region](world)
	g.rectMap = ecs.NewMap1[components.Rect](world)
	g.penMap = ecs.NewMap1[components.Pendulum](world)
	g.regionMap = ecs.NewMap1[components.Region](world)

	g.index = systems.NewRegionIndex(cfg.Canvas.Width, cfg.Canvas.Height)
	g.subdivider = systems.NewSubdivider(world, cfg.Subdivision.FlipTimeThreshold)
	g.canvas = renderer.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height)
	g.parallel = newParallelState()

	windowTicks := int32(cfg.Telemetry.StatsWindow / cfg.Derived.TickSimSeconds)
	g.collector = telemetry.NewCollector(windowTicks, cfg.Derived.TickSimSeconds)
	g.perfCollector = telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow)
	g.depthTracker = telemetry.NewDepthTracker()
	if cfg.HallOfFame.Size > 0 {
		g.hallOfFame = telemetry.NewHallOfFame(cfg.HallOfFame.Size)
	}

	om, err := telemetry.NewOutputManager(gcfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("initializing output: %w", err)
	}
	g.outputManager = om
	if err := g.outputManager.WriteConfig(cfg); err != nil {
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	if !gcfg.Headless {
		w := int32(cfg.Window.Width)
		h := int32(cfg.Window.Height)
		g.screenWidth = float32(w)
		g.screenHeight = float32(h)

		g.camera = camera.New(float32(w), float32(h), cfg.Derived.CanvasW32, cfg.Derived.CanvasH32)
		g.presenter = renderer.NewCanvasPresenter()
		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 110)
		g.hallPanel = ui.NewHallPanel(10, 250, 240, 150)
		g.controlsPanel = ui.NewControlsPanel(10, 410, 240)
		g.quickStats = ui.NewQuickStatsPanel(10, 620, 240)
		g.palettePanel = ui.NewPalettePanel(10, 760, 240)
		g.paletteData = buildPaletteData(cfg)
		g.overlays = ui.NewOverlayRegistry()
		g.inspector = inspector.NewInspector(w, h)
		g.trendPanel = inspector.NewTrendPanel(w, h, cfg.Integration.MaxSimTime)
	}

	g.seedRoot()
	g.admitQueued()
	g.paintRegions()

	return g, nil
}

// Update runs one frame of the windowed mode: input, camera, and up to
// ticksPerFrame simulation ticks.
func (g *Game) Update() {
	g.handleInput()
	g.camera.Update()

	if g.paused || g.finished {
		return
	}

	for i := 0; i < g.ticksPerFrame; i++ {
		g.simulationStep()
		if g.finished {
			break
		}
	}
}

// UpdateHeadless runs a single simulation tick with no input or camera.
func (g *Game) UpdateHeadless() {
	if g.finished {
		return
	}
	g.simulationStep()
}

// Tick returns the number of completed simulation ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Finished reports whether every region has stopped and the queue has
// drained. The grid cannot change after this point.
func (g *Game) Finished() bool {
	return g.finished
}

// Canvas exposes the pixel buffer, for snapshots driven from outside
// the tick loop.
func (g *Game) Canvas() *renderer.Canvas {
	return g.canvas
}

// FPS returns the current render frame rate, or 0 in headless mode.
func (g *Game) FPS() int32 {
	if g.headless {
		return 0
	}
	return rl.GetFPS()
}

// Unload releases GPU resources and stops the worker pool.
func (g *Game) Unload() {
	if g.presenter != nil {
		g.presenter.Unload()
	}
	g.stopParallelWorkers()
}
