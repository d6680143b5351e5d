package monitor

import (
	"sync/atomic"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/flipfield/telemetry"
)

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDrainKeepsNewestWindow(t *testing.T) {
	stats := make(chan telemetry.WindowStats, 4)
	done := make(chan struct{})
	var paused atomic.Bool
	m := NewModel(stats, done, &paused)

	stats <- telemetry.WindowStats{WindowEndTick: 10, Flips: 3, StoppedAreaPct: 0.1}
	stats <- telemetry.WindowStats{WindowEndTick: 20, Flips: 5, StoppedAreaPct: 0.2}

	next, _ := m.Update(TickMsg(time.Now()))
	got := next.(Model)

	if !got.hasData {
		t.Fatal("expected hasData after draining stats")
	}
	if got.latest.WindowEndTick != 20 {
		t.Errorf("latest window = %d, want 20", got.latest.WindowEndTick)
	}
	if len(got.flipHistory) != 2 || got.flipHistory[1] != 5 {
		t.Errorf("flipHistory = %v, want [3 5]", got.flipHistory)
	}
	if got.settled {
		t.Error("settled before done channel closed")
	}
}

func TestDoneMarksSettled(t *testing.T) {
	stats := make(chan telemetry.WindowStats, 1)
	done := make(chan struct{})
	var paused atomic.Bool
	m := NewModel(stats, done, &paused)

	close(done)
	next, _ := m.Update(TickMsg(time.Now()))
	got := next.(Model)

	if !got.settled {
		t.Fatal("expected settled after done channel closed")
	}

	// Space must not pause a settled run.
	next, _ = got.Update(keyMsg(' '))
	got = next.(Model)
	if paused.Load() {
		t.Error("space toggled pause after settle")
	}
}

func TestSpaceTogglesPause(t *testing.T) {
	stats := make(chan telemetry.WindowStats, 1)
	done := make(chan struct{})
	var paused atomic.Bool
	m := NewModel(stats, done, &paused)

	next, _ := m.Update(keyMsg(' '))
	if !paused.Load() {
		t.Fatal("first space should pause")
	}
	m = next.(Model)

	m.Update(keyMsg(' '))
	if paused.Load() {
		t.Error("second space should resume")
	}
}

func TestQuitKey(t *testing.T) {
	stats := make(chan telemetry.WindowStats, 1)
	done := make(chan struct{})
	var paused atomic.Bool
	m := NewModel(stats, done, &paused)

	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}

func TestHistoryCapped(t *testing.T) {
	history := make([]float64, 0, historyCapacity)
	for i := 0; i < historyCapacity+10; i++ {
		history = appendCapped(history, float64(i))
	}
	if len(history) != historyCapacity {
		t.Fatalf("history length = %d, want %d", len(history), historyCapacity)
	}
	if history[0] != 10 {
		t.Errorf("oldest entry = %v, want 10", history[0])
	}
}
