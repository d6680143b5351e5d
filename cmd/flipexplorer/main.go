// Seed explorer tool - interactive single-pendulum playground with sliders.
//
// Drag the release angles and arm lengths, watch the pendulum run live,
// and read off the flip time the renderer would color this seed with.
//
// Usage: go run ./cmd/flipexplorer
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/inspector"
	"github.com/pthm-cable/flipfield/pendulum"
	"github.com/pthm-cable/flipfield/renderer"
)

const (
	windowWidth  = 1000
	windowHeight = 720
	viewSize     = 512
	panelWidth   = windowWidth - viewSize - 30
	traceLen     = 480
)

// SeedParams holds the slider state. Angles in radians, lengths in
// meters, matching the canvas seeding conventions.
type SeedParams struct {
	Theta1  float64
	Theta2  float64
	L1      float64
	L2      float64
	Gravity float64
}

type tracePoint struct {
	x, y float32
}

func main() {
	configPath := flag.String("config", "", "Config YAML for physics defaults (empty = embedded defaults)")
	maxSim := flag.Float64("max-sim", 120, "Flip time measurement budget in simulated seconds")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rl.InitWindow(windowWidth, windowHeight, "Flip Explorer")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	defaults := SeedParams{
		Theta1:  math.Pi,
		Theta2:  math.Pi / 2,
		L1:      cfg.Physics.L1,
		L2:      cfg.Physics.L2,
		Gravity: cfg.Physics.Gravity,
	}
	params := defaults

	dt := cfg.Integration.DT
	var (
		st       pendulum.State
		prm      pendulum.Params
		detector pendulum.FlipDetector

		simTime   float64
		liveFlips int
		flashTime float64
		paused    bool
		simSpeed  float32 = 1

		flipTime   float64
		flipped    bool
		needsReset = true

		trace     [traceLen]tracePoint
		traceIdx  int
		traceFill int
	)

	for !rl.WindowShouldClose() {
		if needsReset {
			st = pendulum.State{Theta1: params.Theta1, Theta2: params.Theta2}
			prm = pendulum.Params{M1: cfg.Physics.M1, M2: cfg.Physics.M2,
				L1: params.L1, L2: params.L2, G: params.Gravity}
			detector = pendulum.NewFlipDetector(st)
			simTime = 0
			liveFlips = 0
			traceIdx, traceFill = 0, 0
			flipTime, flipped = measureFlipTime(st, prm, dt, *maxSim)
			needsReset = false
		}

		// Advance the live pendulum in real time, scaled by the speed
		// slider. The live run keeps swinging after flips so the motion
		// stays watchable; flips just flash and count.
		if !paused {
			budget := float64(rl.GetFrameTime()) * float64(simSpeed)
			for budget >= dt {
				st = pendulum.Step(st, prm, dt)
				simTime += dt
				budget -= dt
				if detector.Observe(st) {
					liveFlips++
					flashTime = 0.35
				}
			}
			if flashTime > 0 {
				flashTime -= float64(rl.GetFrameTime())
			}
		}

		pivotX := float32(10 + viewSize/2)
		pivotY := float32(10 + viewSize/2)
		reach := prm.L1 + prm.L2
		scale := float32(viewSize) * 0.45 / float32(reach)

		bobX := pivotX + float32((prm.L1*math.Sin(st.Theta1)+prm.L2*math.Sin(st.Theta2)))*scale
		bobY := pivotY + float32((prm.L1*math.Cos(st.Theta1)+prm.L2*math.Cos(st.Theta2)))*scale
		if !paused {
			trace[traceIdx] = tracePoint{x: bobX, y: bobY}
			traceIdx = (traceIdx + 1) % traceLen
			if traceFill < traceLen {
				traceFill++
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 16, G: 16, B: 24, A: 255})

		drawPendulumView(pivotX, pivotY, scale, st, prm, trace[:], traceIdx, traceFill, flashTime)
		drawPaletteRamp(10, 10+viewSize+12, viewSize, cfg, flipTime, flipped, *maxSim)

		statsY := int32(10 + viewSize + 48)
		if flipped {
			rl.DrawText(fmt.Sprintf("Flip time: %.3fs", flipTime), 15, statsY, 18, rl.White)
		} else {
			rl.DrawText(fmt.Sprintf("No flip within %.0fs", *maxSim), 15, statsY, 18, rl.Gray)
		}
		rl.DrawText(fmt.Sprintf("Live: %.1fs | flips: %d | energy: %.2f J",
			simTime, liveFlips, pendulum.Energy(st, prm)), 15, statsY+24, 16, rl.LightGray)
		rl.DrawText(fmt.Sprintf("theta1: %.3f rad | theta2: %.3f rad", st.Theta1, st.Theta2),
			15, statsY+46, 16, rl.LightGray)

		// Control panel
		panelX := float32(viewSize + 20)
		panelY := float32(10)

		rl.DrawText("Release Parameters", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		panelY, changed1 := sliderRow(panelX, panelY, "Theta 1 (inner arm release)", &params.Theta1, 0, 2*math.Pi, "%.3f")
		panelY, changed2 := sliderRow(panelX, panelY, "Theta 2 (outer arm release)", &params.Theta2, 0, math.Pi, "%.3f")
		panelY, changed3 := sliderRow(panelX, panelY, "L1 (inner arm length)", &params.L1, 0.25, 2.0, "%.3f")
		panelY, changed4 := sliderRow(panelX, panelY, "L2 (outer arm length)", &params.L2, 0.25, 2.0, "%.3f")
		panelY, changed5 := sliderRow(panelX, panelY, "Gravity", &params.Gravity, 1.0, 25.0, "%.2f")
		if changed1 || changed2 || changed3 || changed4 || changed5 {
			needsReset = true
		}

		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX)+int32(panelWidth)-20, int32(panelY), rl.DarkGray)
		panelY += 15

		rl.DrawText("Playback", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 25
		rl.DrawText("Speed", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		simSpeed = gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.25x", "8x",
			simSpeed, 0.25, 8,
		)
		rl.DrawText(fmt.Sprintf("%.2fx", simSpeed), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.LightGray)
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(paused, "Run", "Pause")) {
			paused = !paused
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Replay") {
			needsReset = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Canvas Center") {
			params = defaults
			needsReset = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Copy YAML") {
			rl.SetClipboardText(seedYAML(params))
		}
		panelY += 50

		rl.DrawText("YAML:", int32(panelX), int32(panelY), 16, rl.RayWhite)
		panelY += 22
		for _, line := range seedYAMLLines(params) {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.DarkGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(seedYAML(params))
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// sliderRow draws one labeled slider line and reports whether the value
// changed this frame.
func sliderRow(x, y float32, label string, value *float64, min, max float64, format string) (float32, bool) {
	rl.DrawText(label, int32(x), int32(y), 14, rl.Gray)
	y += 18
	next := gui.SliderBar(
		rl.Rectangle{X: x, Y: y, Width: float32(panelWidth - 80), Height: 20},
		fmt.Sprintf("%.2g", min), fmt.Sprintf("%.2g", max),
		float32(*value), float32(min), float32(max),
	)
	rl.DrawText(fmt.Sprintf(format, *value), int32(x+float32(panelWidth-70)), int32(y+2), 16, rl.LightGray)
	y += 35

	changed := math.Abs(float64(next)-*value) > 1e-9
	if changed {
		*value = float64(next)
	}
	return y, changed
}

// measureFlipTime integrates the seed until its first flip or the time
// budget, the same stop rule the canvas regions run under.
func measureFlipTime(st pendulum.State, prm pendulum.Params, dt, maxSim float64) (float64, bool) {
	detector := pendulum.NewFlipDetector(st)
	elapsed := 0.0
	for elapsed < maxSim {
		st = pendulum.Step(st, prm, dt)
		elapsed += dt
		if detector.Observe(st) {
			return elapsed, true
		}
	}
	return 0, false
}

func drawPendulumView(pivotX, pivotY, scale float32, st pendulum.State, prm pendulum.Params,
	trace []tracePoint, traceIdx, traceFill int, flashTime float64) {

	rl.DrawRectangle(10, 10, viewSize, viewSize, rl.Color{R: 10, G: 10, B: 16, A: 255})
	rl.DrawRectangleLines(10, 10, viewSize, viewSize, rl.DarkGray)

	reach := float32(prm.L1+prm.L2) * scale
	rl.DrawCircleLines(int32(pivotX), int32(pivotY), reach, rl.Color{R: 60, G: 60, B: 80, A: 255})

	// Upper dead center: the line the outer bob must cross for a flip.
	rl.DrawLineEx(
		rl.Vector2{X: pivotX, Y: pivotY},
		rl.Vector2{X: pivotX, Y: pivotY - reach},
		1, rl.Color{R: 120, G: 60, B: 60, A: 180},
	)

	// Trace, oldest to newest so recent points draw brightest.
	for i := 1; i < traceFill; i++ {
		a := trace[(traceIdx+traceLen-traceFill+i-1)%traceLen]
		b := trace[(traceIdx+traceLen-traceFill+i)%traceLen]
		alpha := uint8(30 + 170*i/traceFill)
		rl.DrawLineEx(rl.Vector2{X: a.x, Y: a.y}, rl.Vector2{X: b.x, Y: b.y}, 1,
			rl.Color{R: 90, G: 170, B: 220, A: alpha})
	}

	inspector.DrawPendulumArms(pivotX, pivotY, reach, st, prm, 255)

	if flashTime > 0 {
		alpha := uint8(200 * flashTime / 0.35)
		rl.DrawCircleLines(int32(pivotX), int32(pivotY), reach+6, rl.Color{R: 120, G: 255, B: 140, A: alpha})
	}
}

// drawPaletteRamp shows the flip-time color mapping with a marker at
// this seed's measured flip time.
func drawPaletteRamp(x, y, width int32, cfg *config.Config, flipTime float64, flipped bool, maxSim float64) {
	const height = 18
	for i := int32(0); i < width; i++ {
		t := float64(i) / float64(width) * maxSim
		c := renderer.FlippedColor(t, cfg.Color.FlipHueRate)
		rl.DrawLine(x+i, y, x+i, y+height, rl.Color{R: c.R, G: c.G, B: c.B, A: 255})
	}
	rl.DrawRectangleLines(x, y, width, height, rl.DarkGray)

	if flipped {
		mx := x + int32(flipTime/maxSim*float64(width))
		if mx > x+width-1 {
			mx = x + width - 1
		}
		rl.DrawLine(mx, y-3, mx, y+height+3, rl.White)
	}
}

func seedYAMLLines(p SeedParams) []string {
	return []string{
		"physics:",
		fmt.Sprintf("  l1: %.4f", p.L1),
		fmt.Sprintf("  l2: %.4f", p.L2),
		fmt.Sprintf("  gravity: %.2f", p.Gravity),
		fmt.Sprintf("# release: theta1=%.4f theta2=%.4f", p.Theta1, p.Theta2),
	}
}

func seedYAML(p SeedParams) string {
	out := ""
	for _, line := range seedYAMLLines(p) {
		out += line + "\n"
	}
	return out
}
