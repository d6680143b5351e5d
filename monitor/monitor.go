// Package monitor renders a live terminal dashboard for headless runs.
// Window stats arrive over a channel fed by the game's stats callback;
// the dashboard shows counts, rates, and a flip sparkline without
// needing a graphics window.
package monitor

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pthm-cable/flipfield/telemetry"
)

const (
	historyCapacity = 120
	refreshRate     = time.Second / 10
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Bold(true)
	pauseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	panelStyle  = lipgloss.NewStyle().Padding(1, 2)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the bubbletea model for the run monitor.
type Model struct {
	stats  <-chan telemetry.WindowStats
	done   <-chan struct{}
	paused *atomic.Bool

	latest  telemetry.WindowStats
	hasData bool
	settled bool

	flipHistory []float64
	areaHistory []float64
}

// NewModel builds a monitor fed by the given stats channel. The done
// channel closes when the run settles; the paused flag is shared with
// the simulation loop so the space key can hold it.
func NewModel(stats <-chan telemetry.WindowStats, done <-chan struct{}, paused *atomic.Bool) Model {
	return Model{
		stats:       stats,
		done:        done,
		paused:      paused,
		flipHistory: make([]float64, 0, historyCapacity),
		areaHistory: make([]float64, 0, historyCapacity),
	}
}

// Run blocks until the monitor exits.
func Run(stats <-chan telemetry.WindowStats, done <-chan struct{}, paused *atomic.Bool) error {
	_, err := tea.NewProgram(NewModel(stats, done, paused)).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(refreshRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.paused != nil && !m.settled {
				m.paused.Store(!m.paused.Load())
			}
		}
	case TickMsg:
		m.drain()
		select {
		case <-m.done:
			m.settled = true
		default:
		}
		return m, tea.Tick(refreshRate, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// drain pulls every pending stats window off the channel so the view
// always shows the newest window even if the UI tick lags the run.
func (m *Model) drain() {
	for {
		select {
		case ws, ok := <-m.stats:
			if !ok {
				return
			}
			m.latest = ws
			m.hasData = true
			m.flipHistory = appendCapped(m.flipHistory, float64(ws.Flips))
			m.areaHistory = appendCapped(m.areaHistory, ws.StoppedAreaPct*100)
		default:
			return
		}
	}
}

func appendCapped(history []float64, v float64) []float64 {
	history = append(history, v)
	if len(history) > historyCapacity {
		history = history[1:]
	}
	return history
}

func (m Model) View() string {
	var s strings.Builder

	status := runStyle.Render("RUNNING")
	if m.settled {
		status = doneStyle.Render("SETTLED (q to exit)")
	} else if m.paused != nil && m.paused.Load() {
		status = pauseStyle.Render("PAUSED")
	}
	s.WriteString(headerStyle.Render("FLIPFIELD") + "  " + status + "\n")

	if len(m.flipHistory) > 1 {
		chart := asciigraph.Plot(m.flipHistory,
			asciigraph.Height(5),
			asciigraph.Width(48),
			asciigraph.Caption("flips per window"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	if !m.hasData {
		s.WriteString("\n" + labelStyle.Render("waiting for first stats window") + "\n")
	} else {
		ws := m.latest
		s.WriteString("\n")
		writeRow(&s, "Tick", fmt.Sprintf("%d", ws.WindowEndTick))
		writeRow(&s, "Sim time", fmt.Sprintf("%.1fs", ws.SimTimeSec))
		writeRow(&s, "Active", fmt.Sprintf("%d", ws.Active))
		writeRow(&s, "Queued", fmt.Sprintf("%d", ws.Queued))
		writeRow(&s, "Regions", fmt.Sprintf("%d", ws.Total))
		writeRow(&s, "Max depth", fmt.Sprintf("%d", ws.MaxDepth))
		writeRow(&s, "Flipped", fmt.Sprintf("%d", ws.Flipped))
		writeRow(&s, "Timed out", fmt.Sprintf("%d", ws.TimedOut))
		writeRow(&s, "Flip rate", fmt.Sprintf("%.0f%%", ws.FlipRate*100))
		writeRow(&s, "Flip p50/p90", fmt.Sprintf("%.1fs / %.1fs", ws.FlipTimeP50, ws.FlipTimeP90))
		writeRow(&s, "Stopped area", fmt.Sprintf("%.1f%%", ws.StoppedAreaPct*100))
		writeRow(&s, "Splits", fmt.Sprintf("%d", ws.Splits))
		writeRow(&s, "Admissions", fmt.Sprintf("%d", ws.Admissions))
	}

	s.WriteString(helpStyle.Render("space pause | q quit"))
	return panelStyle.Render(s.String())
}

func writeRow(s *strings.Builder, label, value string) {
	s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
}
