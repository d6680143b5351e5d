package game

import (
	"runtime"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
	"github.com/pthm-cable/flipfield/pendulum"
)

// Below this many active regions the tick integrates on the calling
// goroutine; the pool overhead isn't worth it.
const parallelThreshold = 64

// regionSnapshot is the read-only view a worker integrates from. It is
// taken while no worker is running, so workers never touch the world.
type regionSnapshot struct {
	Entity   ecs.Entity
	State    pendulum.State
	Params   pendulum.Params
	Detector pendulum.FlipDetector
	Elapsed  float64
}

// stepOutcome is what a worker reports back for one region. Outcomes
// are applied to the world serially after all workers finish.
type stepOutcome struct {
	State    pendulum.State
	Detector pendulum.FlipDetector
	Elapsed  float64
	Stopped  bool
	Status   components.Status
	FlipTime float64
}

type workChunk struct {
	start, end int
}

// parallelState owns the persistent worker pool and the per-tick
// snapshot/outcome buffers. Workers are started lazily on the first
// tick that crosses parallelThreshold and live until shutdown.
type parallelState struct {
	snapshots []regionSnapshot
	outcomes  []stepOutcome

	numWorkers int
	workChan   chan workChunk
	doneChan   chan struct{}
	stopChan   chan struct{}
	wg         sync.WaitGroup
	running    bool
}

func newParallelState() *parallelState {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return &parallelState{
		numWorkers: n,
		workChan:   make(chan workChunk, n),
		doneChan:   make(chan struct{}, n),
		stopChan:   make(chan struct{}),
	}
}

func (g *Game) startWorkers() {
	p := g.parallel
	if p.running {
		return
	}
	p.running = true
	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go g.worker()
	}
}

func (g *Game) stopParallelWorkers() {
	p := g.parallel
	if !p.running {
		return
	}
	close(p.stopChan)
	p.wg.Wait()
	p.running = false
}

func (g *Game) worker() {
	p := g.parallel
	defer p.wg.Done()
	for {
		select {
		case chunk := <-p.workChan:
			g.computeChunk(chunk.start, chunk.end)
			p.doneChan <- struct{}{}
		case <-p.stopChan:
			return
		}
	}
}

// integrateActive advances every active region by one tick. Snapshots
// are taken serially, the substep math runs on the pool, and outcomes
// wait in g.parallel.outcomes for applyOutcomes.
func (g *Game) integrateActive() {
	p := g.parallel

	p.snapshots = p.snapshots[:0]
	for _, e := range g.activeSet {
		pen := g.penMap.Get(e)
		if pen == nil {
			continue
		}
		p.snapshots = append(p.snapshots, regionSnapshot{
			Entity:   e,
			State:    pen.State,
			Params:   pen.Params,
			Detector: pen.Detector,
			Elapsed:  pen.Elapsed,
		})
	}

	n := len(p.snapshots)
	if n == 0 {
		return
	}
	if cap(p.outcomes) < n {
		p.outcomes = make([]stepOutcome, n)
	}
	p.outcomes = p.outcomes[:n]

	if n < parallelThreshold {
		g.computeChunk(0, n)
		return
	}

	g.startWorkers()
	chunkSize := (n + p.numWorkers - 1) / p.numWorkers
	chunks := 0
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}
		p.workChan <- workChunk{start: start, end: end}
		chunks++
	}
	for i := 0; i < chunks; i++ {
		<-p.doneChan
	}
}

// computeChunk integrates snapshots[start:end]. A region stops inside
// the substep loop the moment it flips or exhausts its time budget;
// the flip check runs first so a flip on the final substep wins.
func (g *Game) computeChunk(start, end int) {
	steps := g.cfg.Integration.StepsPerTick
	dt := g.cfg.Integration.DT
	maxSim := g.cfg.Integration.MaxSimTime

	for i := start; i < end; i++ {
		snap := &g.parallel.snapshots[i]
		out := &g.parallel.outcomes[i]

		st := snap.State
		det := snap.Detector
		elapsed := snap.Elapsed

		out.Stopped = false
		out.Status = components.StatusRunning
		out.FlipTime = 0

		for s := 0; s < steps; s++ {
			st = pendulum.Step(st, snap.Params, dt)
			elapsed += dt

			if det.Observe(st) {
				out.Stopped = true
				out.Status = components.StatusFlipped
				out.FlipTime = elapsed
				break
			}
			if elapsed >= maxSim {
				out.Stopped = true
				out.Status = components.StatusTimedOut
				break
			}
		}

		out.State = st
		out.Detector = det
		out.Elapsed = elapsed
	}
}
