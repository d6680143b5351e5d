package main

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/pthm-cable/flipfield/pendulum"
	"github.com/pthm-cable/flipfield/telemetry"
)

// Evaluator scores seed vectors by integrating a single pendulum until
// it flips or the time budget runs out. Longer flip times score better,
// so the fitness returned to the minimizer is the negated flip time.
// Timeouts score zero, which steers the search toward the boundary
// between flipping and stable regions.
type Evaluator struct {
	space  *SearchSpace
	dt     float64
	maxSim float64

	mu        sync.Mutex
	evals     int
	maxEvals  int
	best      float64
	bestRaw   []float64
	hall      *telemetry.HallOfFame
	log       *csv.Writer
	startTime time.Time
}

func NewEvaluator(space *SearchSpace, dt, maxSim float64, maxEvals int, hallSize int, log *csv.Writer) *Evaluator {
	return &Evaluator{
		space:     space,
		dt:        dt,
		maxSim:    maxSim,
		maxEvals:  maxEvals,
		best:      0,
		hall:      telemetry.NewHallOfFame(hallSize),
		log:       log,
		startTime: time.Now(),
	}
}

// Evaluate is the objective passed to the optimizer. The input is a
// normalized vector in [0,1]^dim.
func (e *Evaluator) Evaluate(normalized []float64) float64 {
	raw := e.space.Clamp(e.space.Denormalize(normalized))
	st, prm := e.space.Seed(raw)

	flipTime, flipped := integrateToFlip(st, prm, e.dt, e.maxSim)

	fitness := 0.0
	if flipped {
		fitness = -flipTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.evals++

	if e.log != nil {
		row := []string{
			strconv.Itoa(e.evals),
			strconv.FormatFloat(flipTime, 'f', 4, 64),
			strconv.FormatBool(flipped),
		}
		for _, v := range raw {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		e.log.Write(row)
		e.log.Flush()
	}

	if flipped {
		px, py := e.space.CanvasPoint(raw)
		e.hall.Consider(telemetry.HallEntry{
			FlipTime: flipTime,
			Tick:     int32(e.evals),
			X:        px,
			Y:        py,
			W:        1,
			H:        1,
			Theta1:   st.Theta1,
			Theta2:   st.Theta2,
		})
	}

	if fitness < e.best {
		e.best = fitness
		e.bestRaw = append([]float64(nil), raw...)
		e.printProgress(flipTime)
	} else if e.evals%50 == 0 {
		e.printProgress(flipTime)
	}

	return fitness
}

func (e *Evaluator) printProgress(lastFlip float64) {
	elapsed := time.Since(e.startTime)
	var eta time.Duration
	if e.evals > 0 && e.maxEvals > e.evals {
		perEval := elapsed / time.Duration(e.evals)
		eta = perEval * time.Duration(e.maxEvals-e.evals)
	}
	fmt.Printf("eval %d/%d  last=%.2fs  best=%.2fs  elapsed=%s  eta=%s\n",
		e.evals, e.maxEvals, lastFlip, -e.best,
		formatDuration(elapsed), formatDuration(eta))
}

// Best returns the best raw vector and its flip time.
func (e *Evaluator) Best() ([]float64, float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.bestRaw, -e.best
}

// Evals returns the evaluation count.
func (e *Evaluator) Evals() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.evals
}

// Hall returns the accumulated hall of fame.
func (e *Evaluator) Hall() *telemetry.HallOfFame {
	return e.hall
}

// integrateToFlip steps the pendulum until the outer arm crosses the
// upper dead center or maxSim seconds elapse.
func integrateToFlip(st pendulum.State, prm pendulum.Params, dt, maxSim float64) (float64, bool) {
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

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}
