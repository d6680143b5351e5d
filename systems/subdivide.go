package systems

import (
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flipfield/components"
)

// StopEvent records a region that reached a terminal status this tick.
type StopEvent struct {
	Entity   ecs.Entity
	Rect     components.Rect
	Status   components.Status
	FlipTime float64
}

// Subdivider decides which regions split after a tick. A region that
// just flipped is compared against each stopped flipped neighbor: when
// the two flip times land within the threshold of each other, both
// sides are marked. A region that timed out marks only itself, and
// timed-out regions are never comparison partners.
type Subdivider struct {
	threshold float64
	regionMap *ecs.Map[components.Region]

	marks  []ecs.Entity
	marked map[ecs.Entity]bool
}

// NewSubdivider creates a subdivider with the flip time threshold in
// simulated seconds.
func NewSubdivider(w *ecs.World, threshold float64) *Subdivider {
	return &Subdivider{
		threshold: threshold,
		regionMap: ecs.NewMap[components.Region](w),
	}
}

// Collect turns the tick's stop events into the ordered list of regions
// to split. Stop events must already be reflected in the Region
// components so regions stopping on the same tick see each other.
// Marks are deduplicated and keep first-marked order; the returned
// slice is reused across calls.
func (s *Subdivider) Collect(events []StopEvent, index *RegionIndex) []ecs.Entity {
	s.marks = s.marks[:0]
	s.marked = make(map[ecs.Entity]bool, len(events))

	for _, ev := range events {
		switch ev.Status {
		case components.StatusTimedOut:
			s.mark(ev.Entity)

		case components.StatusFlipped:
			ents, present := index.Neighbors(ev.Rect)
			for dir := 0; dir < 4; dir++ {
				if !present[dir] {
					continue
				}
				reg := s.regionMap.Get(ents[dir])
				if reg == nil || reg.Status != components.StatusFlipped {
					continue
				}
				if math.Abs(ev.FlipTime-reg.FlipTime) < s.threshold {
					s.mark(ev.Entity)
					s.mark(ents[dir])
				}
			}
		}
	}
	return s.marks
}

func (s *Subdivider) mark(e ecs.Entity) {
	if s.marked[e] {
		return
	}
	s.marked[e] = true
	s.marks = append(s.marks, e)
}
