package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// HallEntry records one region that achieved a notably long flip time,
// along with the seed needed to reproduce it on its own.
type HallEntry struct {
	FlipTime float64 `json:"flip_time"`
	Tick     int32   `json:"tick"`
	Depth    int     `json:"depth"`

	// Region rectangle on the canvas
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`

	// Initial conditions derived from the rectangle center
	Theta1 float64 `json:"seed_theta1"`
	Theta2 float64 `json:"seed_theta2"`
}

// HallOfFame keeps the top regions ranked by flip time, longest first.
// Ties rank the most recently stopped region first.
type HallOfFame struct {
	entries []HallEntry
	maxSize int
}

// NewHallOfFame creates a hall with the given capacity.
func NewHallOfFame(maxSize int) *HallOfFame {
	if maxSize < 1 {
		maxSize = 1
	}
	return &HallOfFame{
		entries: make([]HallEntry, 0, maxSize),
		maxSize: maxSize,
	}
}

// Consider offers an entry to the hall. Returns true if it was
// admitted.
func (hof *HallOfFame) Consider(entry HallEntry) bool {
	// Insertion point in descending flip-time order. The <= places a
	// new entry ahead of existing equal flip times.
	idx := sort.Search(len(hof.entries), func(i int) bool {
		return hof.entries[i].FlipTime <= entry.FlipTime
	})

	if idx >= hof.maxSize {
		return false
	}

	hof.entries = append(hof.entries, HallEntry{})
	copy(hof.entries[idx+1:], hof.entries[idx:])
	hof.entries[idx] = entry

	if len(hof.entries) > hof.maxSize {
		hof.entries = hof.entries[:hof.maxSize]
	}

	return true
}

// Top returns the longest-flip entry, if any.
func (hof *HallOfFame) Top() (HallEntry, bool) {
	if len(hof.entries) == 0 {
		return HallEntry{}, false
	}
	return hof.entries[0], true
}

// Size returns the number of entries in the hall.
func (hof *HallOfFame) Size() int {
	return len(hof.entries)
}

// Entries returns the entries in rank order.
func (hof *HallOfFame) Entries() []HallEntry {
	return hof.entries
}

// MarshalJSON serializes the hall in rank order.
func (hof *HallOfFame) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(hof.entries, "", "  ")
}

// LoadHallOfFame reads a hall of fame JSON file written by a previous
// run. The capacity grows to fit the file if needed.
func LoadHallOfFame(path string, maxSize int) (*HallOfFame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading hall of fame: %w", err)
	}

	var entries []HallEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing hall of fame JSON: %w", err)
	}

	if maxSize < len(entries) {
		maxSize = len(entries)
	}

	// Files are rank-ordered; inserting back to front preserves the
	// tie order under Consider's newest-first rule.
	hof := NewHallOfFame(maxSize)
	for i := len(entries) - 1; i >= 0; i-- {
		hof.Consider(entries[i])
	}
	return hof, nil
}
