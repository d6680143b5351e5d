// Seed search tool.
//
// Uses CMA-ES to hunt for pendulum seeds with the longest flip times,
// which sit on the boundary between flipping and stable regions where
// the rendered fractal shows the finest structure. Results are written
// as a CSV evaluation log, a YAML seed summary, and a hall-of-fame
// JSON compatible with render runs.
//
// Usage: flipsearch [-config config.yaml] [-mode angles|armlengths]
// [-max-evals 2000] [-warm-start hall_of_fame.json] [-output dir]
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/flipfield/config"
	"github.com/pthm-cable/flipfield/telemetry"
)

// searchResult summarizes the best seed found.
type searchResult struct {
	Mode        string  `yaml:"mode"`
	Theta1      float64 `yaml:"theta1,omitempty"`
	Theta2      float64 `yaml:"theta2,omitempty"`
	L1          float64 `yaml:"l1,omitempty"`
	L2          float64 `yaml:"l2,omitempty"`
	FlipTime    float64 `yaml:"flip_time_sec"`
	Evaluations int     `yaml:"evaluations"`
	CanvasX     int     `yaml:"canvas_x"`
	CanvasY     int     `yaml:"canvas_y"`
}

func main() {
	configPath := flag.String("config", "", "Config YAML (empty = embedded defaults)")
	mode := flag.String("mode", "", "Search space: angles or armlengths (empty = config seeding mode)")
	maxSim := flag.Float64("max-sim", 0, "Flip time budget in simulated seconds (0 = config max_sim_time)")
	maxEvals := flag.Int("max-evals", 2000, "Evaluation budget")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	hallSize := flag.Int("hall-size", 25, "Entries kept in the output hall of fame")
	warmStart := flag.String("warm-start", "", "Hall of fame JSON to seed the search from")
	outputDir := flag.String("output", "search_out", "Output directory")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}

	searchMode := cfg.Seeding.Mode
	if *mode != "" {
		searchMode = *mode
	}
	if searchMode != config.SeedAngles && searchMode != config.SeedArmLengths {
		fmt.Fprintf(os.Stderr, "unknown mode %q\n", searchMode)
		os.Exit(1)
	}

	budget := cfg.Integration.MaxSimTime
	if *maxSim > 0 {
		budget = *maxSim
	}

	if err := os.MkdirAll(*outputDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "creating output dir: %v\n", err)
		os.Exit(1)
	}

	space := NewSearchSpace(searchMode, cfg)

	logFile, err := os.Create(filepath.Join(*outputDir, "evaluations.csv"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "creating eval log: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()
	logWriter := csv.NewWriter(logFile)
	header := []string{"eval", "flip_time_sec", "flipped"}
	for _, spec := range space.Specs {
		header = append(header, spec.Name)
	}
	logWriter.Write(header)
	logWriter.Flush()

	evaluator := NewEvaluator(space, cfg.Integration.DT, budget, *maxEvals, *hallSize, logWriter)

	initX := initialVector(space, *warmStart)

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*space.Dim()/2
	}

	fmt.Printf("searching %s space (dim=%d, budget=%.0fs, evals=%d, population=%d)\n",
		searchMode, space.Dim(), budget, *maxEvals, popSize)

	problem := optimize.Problem{Func: evaluator.Evaluate}
	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Concurrent:      0,
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	start := time.Now()
	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil && result == nil {
		fmt.Fprintf(os.Stderr, "optimization failed: %v\n", err)
		os.Exit(1)
	}

	bestRaw, bestFlip := evaluator.Best()
	if bestRaw == nil {
		fmt.Printf("no flips found in %d evaluations (budget %.0fs)\n", evaluator.Evals(), budget)
		return
	}

	px, py := space.CanvasPoint(bestRaw)
	st, prm := space.Seed(bestRaw)
	summary := searchResult{
		Mode:        searchMode,
		FlipTime:    bestFlip,
		Evaluations: evaluator.Evals(),
		CanvasX:     px,
		CanvasY:     py,
	}
	switch searchMode {
	case config.SeedArmLengths:
		summary.L1 = prm.L1
		summary.L2 = prm.L2
	default:
		summary.Theta1 = st.Theta1
		summary.Theta2 = st.Theta2
	}
	if err := writeYAML(filepath.Join(*outputDir, "best_seed.yaml"), summary); err != nil {
		fmt.Fprintf(os.Stderr, "writing best seed: %v\n", err)
	}

	hallPath := filepath.Join(*outputDir, "hall_of_fame.json")
	if err := writeHall(hallPath, evaluator.Hall()); err != nil {
		fmt.Fprintf(os.Stderr, "writing hall of fame: %v\n", err)
	}

	fmt.Printf("done in %s: best flip %.3fs at (%s) -> canvas (%d,%d)\n",
		formatDuration(time.Since(start)), bestFlip, vectorString(space, bestRaw), px, py)
	fmt.Printf("results in %s\n", *outputDir)
}

// initialVector picks the normalized starting point. A warm start
// reuses the top hall-of-fame entry from a previous run; otherwise the
// search begins at the center of the space.
func initialVector(space *SearchSpace, warmStart string) []float64 {
	initX := make([]float64, space.Dim())
	for i := range initX {
		initX[i] = 0.5
	}
	if warmStart == "" {
		return initX
	}

	hof, err := telemetry.LoadHallOfFame(warmStart, 1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warm start ignored: %v\n", err)
		return initX
	}
	top, ok := hof.Top()
	if !ok {
		return initX
	}

	var raw []float64
	if space.Mode == config.SeedAngles && top.Theta1 != 0 {
		raw = []float64{top.Theta1, top.Theta2}
	} else {
		raw = space.FromCanvasPoint(top.X+top.W/2, top.Y+top.H/2)
	}
	fmt.Printf("warm start from hall entry: flip %.2fs at (%s)\n",
		top.FlipTime, vectorString(space, raw))
	return space.Normalize(space.Clamp(raw))
}

func vectorString(space *SearchSpace, raw []float64) string {
	s := ""
	for i, spec := range space.Specs {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s=%.4f", spec.Name, raw[i])
	}
	return s
}

func writeYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func writeHall(path string, hof *telemetry.HallOfFame) error {
	if hof.Size() == 0 {
		return nil
	}
	data, err := json.MarshalIndent(hof, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
