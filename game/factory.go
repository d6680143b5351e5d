package game

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/pendulum"
)

// seedPendulum builds the pendulum for a region from its center pixel.
// The mapping is pure: the same rect always produces the same pendulum,
// which is what makes hall-of-fame entries reproducible.
func seedPendulum(rect components.Rect, cfg *config.Config) components.Pendulum {
	cx := rect.CenterX()
	cy := rect.CenterY()

	prm := pendulum.Params{
		M1: cfg.Physics.M1,
		M2: cfg.Physics.M2,
		L1: cfg.Physics.L1,
		L2: cfg.Physics.L2,
		G:  cfg.Physics.Gravity,
	}

	var st pendulum.State
	switch cfg.Seeding.Mode {
	case config.SeedArmLengths:
		// Fixed release angles, arm lengths swept across the canvas.
		st = pendulum.State{Theta1: math.Pi, Theta2: math.Pi / 2}
		span := cfg.Seeding.MaxArm - cfg.Seeding.MinArm
		prm.L1 = cfg.Seeding.MinArm + span*cx/float64(cfg.Canvas.Width)
		prm.L2 = cfg.Seeding.MinArm + span*cy/float64(cfg.Canvas.Height)
	default:
		// Release angles swept across the canvas: a full turn of the
		// inner arm on x, a half turn of the outer arm on y.
		st = pendulum.State{
			Theta1: 2 * math.Pi * cx / float64(cfg.Canvas.Width),
			Theta2: math.Pi * cy / float64(cfg.Canvas.Height),
		}
	}

	return components.Pendulum{
		State:    st,
		Params:   prm,
		Detector: pendulum.NewFlipDetector(st),
	}
}

// spawnRegion creates a running region covering rect, stamps it into
// the pixel index, and appends it to the admission queue. The caller
// must not hold an open query.
func (g *Game) spawnRegion(rect components.Rect, depth uint8) ecs.Entity {
	pen := seedPendulum(rect, g.cfg)
	reg := components.Region{
		Status: components.StatusRunning,
		Depth:  depth,
		Dirty:  true,
	}

	e := g.regionMapper.NewEntity(&rect, &pen, &reg)
	g.index.Cover(rect, e)
	g.queue = append(g.queue, e)
	g.totalRegions++
	return e
}

// seedRoot creates the single full-canvas region every run starts from.
func (g *Game) seedRoot() {
	g.spawnRegion(components.Rect{
		X: 0,
		Y: 0,
		W: g.cfg.Canvas.Width,
		H: g.cfg.Canvas.Height,
	}, 0)
}
