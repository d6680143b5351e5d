package inspector

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flipfield/pendulum"
)

// Diagram colors
var (
	ColorDiagramBg   = rl.Color{R: 30, G: 35, B: 40, A: 255}
	ColorReach       = rl.Color{R: 80, G: 80, B: 90, A: 120}
	ColorDeadCenter  = rl.Color{R: 200, G: 90, B: 90, A: 140}
	ColorArmPrimary  = rl.Color{R: 200, G: 200, B: 220, A: 255}
	ColorArmTrailing = rl.Color{R: 140, G: 180, B: 255, A: 255}
	ColorPivot       = rl.Color{R: 120, G: 120, B: 130, A: 255}
)

// armPositions returns the two bob positions for a pendulum hanging at
// the given pivot. Angles follow the arm convention: x grows with sin,
// y with cos, so zero hangs straight down on screen.
func armPositions(px, py, scale float32, st pendulum.State, prm pendulum.Params) (x1, y1, x2, y2 float32) {
	x1 = px + float32(prm.L1*math.Sin(st.Theta1))*scale
	y1 = py + float32(prm.L1*math.Cos(st.Theta1))*scale
	x2 = x1 + float32(prm.L2*math.Sin(st.Theta2))*scale
	y2 = y1 + float32(prm.L2*math.Cos(st.Theta2))*scale
	return x1, y1, x2, y2
}

// DrawPendulumDiagram renders the pendulum schematic inside a panel box.
// The pivot sits at the box center so both arms stay visible through a
// full swing.
func DrawPendulumDiagram(x, y, width, height int32, st pendulum.State, prm pendulum.Params) {
	rl.DrawRectangle(x, y, width, height, ColorDiagramBg)

	px := float32(x) + float32(width)/2
	py := float32(y) + float32(height)/2

	reach := prm.L1 + prm.L2
	if reach <= 0 {
		return
	}
	fit := float32(width)
	if float32(height) < fit {
		fit = float32(height)
	}
	scale := fit * 0.45 / float32(reach)

	// Reach envelope
	rl.DrawCircleLines(int32(px), int32(py), float32(reach)*scale, ColorReach)

	x1, y1, x2, y2 := armPositions(px, py, scale, st, prm)

	// Upper dead center marker above the second arm's pivot: a flip
	// registers when the second arm sweeps through this direction.
	markLen := float32(prm.L2) * scale
	rl.DrawLineV(
		rl.Vector2{X: x1, Y: y1},
		rl.Vector2{X: x1, Y: y1 - markLen},
		ColorDeadCenter,
	)

	// Arms
	rl.DrawLineEx(rl.Vector2{X: px, Y: py}, rl.Vector2{X: x1, Y: y1}, 3, ColorArmPrimary)
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, 2, ColorArmTrailing)

	// Pivot and bobs; the second bob is the one whose crossing counts
	rl.DrawRectangle(int32(px)-2, int32(py)-2, 4, 4, ColorPivot)
	rl.DrawCircle(int32(x1), int32(y1), 4, ColorArmPrimary)
	rl.DrawCircle(int32(x2), int32(y2), 5, ColorArmTrailing)
}

// DrawPendulumArms renders just the arms at an arbitrary screen position,
// used by the selection highlight and the arms overlay. The radius caps
// the full reach of both arms.
func DrawPendulumArms(cx, cy, radius float32, st pendulum.State, prm pendulum.Params, alpha uint8) {
	reach := prm.L1 + prm.L2
	if reach <= 0 || radius <= 0 {
		return
	}
	scale := radius / float32(reach)

	x1, y1, x2, y2 := armPositions(cx, cy, scale, st, prm)

	primary := ColorArmPrimary
	trailing := ColorArmTrailing
	primary.A = alpha
	trailing.A = alpha

	rl.DrawLineEx(rl.Vector2{X: cx, Y: cy}, rl.Vector2{X: x1, Y: y1}, 2, primary)
	rl.DrawLineEx(rl.Vector2{X: x1, Y: y1}, rl.Vector2{X: x2, Y: y2}, 2, trailing)
	rl.DrawCircle(int32(x2), int32(y2), 3, trailing)
}
