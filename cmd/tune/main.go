package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/barrage/config"
)

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	maxTicks := flag.Int64("max-ticks", 30000, "Maximum ticks per game (cap)")
	seeds := flag.Int("seeds", 4, "Games per evaluation, one seed each")
	maxEvals := flag.Int("max-evals", 100, "Maximum number of evaluations")
	population := flag.Int("population", 0, "CMA-ES population size (0 = auto)")
	fireEvery := flag.Int("fire-every", 10, "Ticks between autoplay shots")
	target := flag.Float64("target", 0.6, "Desired mean progress of the autoplay bot (0-1)")
	fromDefaults := flag.Bool("from-defaults", false, "Start from the built-in parameter defaults instead of the base config")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *seeds < 1 {
		log.Fatal("--seeds must be at least 1")
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	if err := config.Init(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	baseCfg := config.Cfg()

	params := NewParamVector()
	evaluator := NewFitnessEvaluator(params, *maxTicks, *fireEvery, seedList(*seeds), baseCfg, *target)

	start := params.ExtractFromConfig(baseCfg)
	if *fromDefaults {
		start = params.DefaultVector()
	}

	runLog, err := newRunLog(filepath.Join(*outputDir, "tune_log.csv"), params, *maxEvals)
	if err != nil {
		log.Fatal(err)
	}
	defer runLog.Close()

	// How the starting point plays before any search
	baseline := evaluator.Evaluate(start)
	fmt.Printf("start: progress %.2f±%.2f, level %.1f, wins %d/%d, fitness %.4f (target progress %.2f)\n",
		baseline.ProgressMean, baseline.ProgressStd, baseline.LevelMean,
		baseline.Wins, baseline.Games, baseline.Fitness, *target)

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			ev := evaluator.Evaluate(raw)
			runLog.Record(raw, ev)
			return ev.Fitness
		},
	}

	popSize := *population
	if popSize == 0 {
		popSize = 4 + 3*params.Dim()/2
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("tuning %d parameters: population %d, %d evals, %d games of up to %d ticks each\n",
		params.Dim(), popSize, *maxEvals, *seeds, *maxTicks)

	settings := &optimize.Settings{FuncEvaluations: *maxEvals}
	if _, err := optimize.Minimize(problem, params.Normalize(start), settings, method); err != nil {
		log.Printf("tuning ended: %v", err)
	}

	best, bestX := runLog.Best()
	if bestX == nil || baseline.Fitness <= best.Fitness {
		fmt.Println("\nno candidate beat the starting point, keeping it")
		best, bestX = baseline, start
	}

	fmt.Printf("\n%d evaluations in %s\n", runLog.Evals(), runLog.Elapsed().Round(time.Second))
	fmt.Printf("best: progress %.2f±%.2f, level %.1f, wins %d/%d, fitness %.4f\n",
		best.ProgressMean, best.ProgressStd, best.LevelMean, best.Wins, best.Games, best.Fitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %-26s %8.3f -> %8.3f\n", spec.Path, start[i], bestX[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to reload config: %v", err)
	}
	params.ApplyToConfig(bestCfg, bestX)

	configOutPath := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOutPath); err != nil {
		log.Printf("failed to write best config: %v", err)
		return
	}
	fmt.Printf("best config saved to %s\n", configOutPath)
}

// seedList returns n fixed, well spaced seeds so runs are comparable.
func seedList(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}
