package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/flipfield/config"
)

// csvSink appends record batches to one CSV file, emitting the header
// on the first batch only.
type csvSink struct {
	file       *os.File
	headerDone bool
}

func newCSVSink(path string) (*csvSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	return &csvSink{file: f}, nil
}

func (s *csvSink) append(records any) error {
	if !s.headerDone {
		if err := gocsv.Marshal(records, s.file); err != nil {
			return err
		}
		s.headerDone = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, s.file)
}

func (s *csvSink) close() error {
	if s == nil || s.file == nil {
		return nil
	}
	return s.file.Close()
}

// OutputManager writes the run's structured artifacts: CSV logs for
// window stats, perf, and depth milestones, plus the config snapshot
// and hall of fame. All methods are safe on a nil receiver, which means
// output is disabled.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	depth     *csvSink
}

// NewOutputManager creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	sinks := []struct {
		name string
		dst  **csvSink
	}{
		{"telemetry.csv", &om.telemetry},
		{"perf.csv", &om.perf},
		{"depth.csv", &om.depth},
	}
	for _, s := range sinks {
		sink, err := newCSVSink(filepath.Join(dir, s.name))
		if err != nil {
			om.Close()
			return nil, fmt.Errorf("creating %s: %w", s.name, err)
		}
		*s.dst = sink
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a window stats row to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	if err := om.telemetry.append([]WindowStats{stats}); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf appends a performance row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	if err := om.perf.append([]PerfStatsCSV{stats.ToCSV(windowEnd)}); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteDepth appends a depth milestone row to depth.csv.
func (om *OutputManager) WriteDepth(rec DepthRecord) error {
	if om == nil {
		return nil
	}
	if err := om.depth.append([]DepthRecord{rec}); err != nil {
		return fmt.Errorf("writing depth record: %w", err)
	}
	return nil
}

// WriteHallOfFame saves the hall of fame as JSON.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}

	data, err := hof.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshaling hall of fame: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "hall_of_fame.json"), data, 0644); err != nil {
		return fmt.Errorf("writing hall_of_fame.json: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes the CSV files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var firstErr error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.depth} {
		if err := s.close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
