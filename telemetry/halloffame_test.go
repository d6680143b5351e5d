package telemetry

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHallOfFameOrdering(t *testing.T) {
	hof := NewHallOfFame(10)

	hof.Consider(HallEntry{FlipTime: 100})
	hof.Consider(HallEntry{FlipTime: 300})
	hof.Consider(HallEntry{FlipTime: 200})

	entries := hof.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].FlipTime != 300 || entries[1].FlipTime != 200 || entries[2].FlipTime != 100 {
		t.Errorf("entries should be sorted by flip time descending: %v %v %v",
			entries[0].FlipTime, entries[1].FlipTime, entries[2].FlipTime)
	}

	top, ok := hof.Top()
	if !ok || top.FlipTime != 300 {
		t.Errorf("expected top flip time 300, got %v (ok=%v)", top.FlipTime, ok)
	}
}

func TestHallOfFameCapacity(t *testing.T) {
	hof := NewHallOfFame(3)

	for _, ft := range []float64{50, 150, 100, 200} {
		hof.Consider(HallEntry{FlipTime: ft})
	}

	if hof.Size() != 3 {
		t.Fatalf("expected size capped at 3, got %d", hof.Size())
	}

	entries := hof.Entries()
	if entries[0].FlipTime != 200 || entries[2].FlipTime != 100 {
		t.Errorf("smallest entry should be evicted, got %v .. %v", entries[0].FlipTime, entries[2].FlipTime)
	}

	// Too small to place when full
	if hof.Consider(HallEntry{FlipTime: 10}) {
		t.Error("entry below the cut should be rejected")
	}
	if hof.Size() != 3 {
		t.Errorf("rejected entry should not change size, got %d", hof.Size())
	}
}

func TestHallOfFameTieBreak(t *testing.T) {
	hof := NewHallOfFame(10)

	hof.Consider(HallEntry{FlipTime: 100, Tick: 1})
	hof.Consider(HallEntry{FlipTime: 100, Tick: 2})

	entries := hof.Entries()
	if entries[0].Tick != 2 {
		t.Errorf("latest entry should win flip-time ties, got tick %d first", entries[0].Tick)
	}
}

func TestHallOfFameEmpty(t *testing.T) {
	hof := NewHallOfFame(5)

	if _, ok := hof.Top(); ok {
		t.Error("empty hall should report no top entry")
	}
	if hof.Size() != 0 {
		t.Errorf("expected size 0, got %d", hof.Size())
	}
}

func TestHallOfFameRoundtrip(t *testing.T) {
	hof := NewHallOfFame(5)
	hof.Consider(HallEntry{FlipTime: 300, Tick: 3, Depth: 2, X: 0, Y: 0, W: 64, H: 64, Theta1: 1.5, Theta2: 2.5})
	hof.Consider(HallEntry{FlipTime: 100, Tick: 1, Depth: 1, X: 64, Y: 0, W: 64, H: 64})
	hof.Consider(HallEntry{FlipTime: 100, Tick: 2, Depth: 1, X: 0, Y: 64, W: 64, H: 64})

	data, err := hof.MarshalJSON()
	if err != nil {
		t.Fatalf("marshaling hall of fame: %v", err)
	}

	path := filepath.Join(t.TempDir(), "hall_of_fame.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing hall of fame: %v", err)
	}

	loaded, err := LoadHallOfFame(path, 5)
	if err != nil {
		t.Fatalf("loading hall of fame: %v", err)
	}

	if loaded.Size() != hof.Size() {
		t.Fatalf("expected %d entries after load, got %d", hof.Size(), loaded.Size())
	}

	want := hof.Entries()
	got := loaded.Entries()
	for i := range want {
		if got[i].FlipTime != want[i].FlipTime || got[i].Tick != want[i].Tick {
			t.Errorf("entry %d changed across roundtrip: want flip=%v tick=%d, got flip=%v tick=%d",
				i, want[i].FlipTime, want[i].Tick, got[i].FlipTime, got[i].Tick)
		}
	}

	if got[0].Theta1 != 1.5 || got[0].Theta2 != 2.5 {
		t.Errorf("seed angles should survive roundtrip, got %v %v", got[0].Theta1, got[0].Theta2)
	}
}

func TestLoadHallOfFameMissingFile(t *testing.T) {
	if _, err := LoadHallOfFame(filepath.Join(t.TempDir(), "absent.json"), 5); err == nil {
		t.Error("expected error loading a missing file")
	}
}
