package main

import (
	"log/slog"
	"math"
	"slices"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
)

// GameResult is how far one autoplay game got.
type GameResult struct {
	Progress float64 // levels cleared plus the fraction of the last batch, over the level count
	Level    int     // last level played
	Score    int
	Won      bool
	Ticks    int64
}

// Evaluation folds the games played for one parameter vector.
type Evaluation struct {
	Fitness      float64
	ProgressMean float64
	ProgressStd  float64
	LevelMean    float64
	ScoreMean    float64
	Wins         int
	Games        int
}

// FitnessEvaluator plays headless games with an autoplay bot and scores how
// far the bot's progress is from the target difficulty.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int64
	fireEvery  int
	seeds      []int64
	baseConfig *config.Config
	target     float64 // desired mean progress in [0, 1]
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, fireEvery int, seeds []int64, baseCfg *config.Config, target float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		maxTicks:   maxTicks,
		fireEvery:  fireEvery,
		seeds:      seeds,
		baseConfig: baseCfg,
		target:     target,
	}
}

// Evaluate plays one game per seed with raw parameters x applied.
// Lower fitness is better; a config that fails validation scores +Inf.
func (fe *FitnessEvaluator) Evaluate(x []float64) Evaluation {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	if err := cfg.Validate(); err != nil {
		return Evaluation{Fitness: math.Inf(1)}
	}

	// Sessions share nothing but the read-only config
	results := make([]GameResult, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runSession(cfg, s)
		}(i, seed)
	}
	wg.Wait()

	return summarize(results, fe.target)
}

// summarize aggregates games into an evaluation scored against target.
func summarize(results []GameResult, target float64) Evaluation {
	if len(results) == 0 {
		return Evaluation{Fitness: math.Inf(1)}
	}

	ev := Evaluation{Games: len(results)}
	progress := make([]float64, len(results))
	levels := make([]float64, len(results))
	scores := make([]float64, len(results))
	for i, r := range results {
		progress[i] = r.Progress
		levels[i] = float64(r.Level)
		scores[i] = float64(r.Score)
		if r.Won {
			ev.Wins++
		}
	}

	if len(results) > 1 {
		ev.ProgressMean, ev.ProgressStd = stat.MeanStdDev(progress, nil)
	} else {
		ev.ProgressMean = progress[0]
	}
	ev.LevelMean = stat.Mean(levels, nil)
	ev.ScoreMean = stat.Mean(scores, nil)
	ev.Fitness = computeFitness(ev.ProgressMean, ev.ProgressStd, target)
	return ev
}

// computeFitness penalizes distance from the target and, more lightly,
// seed-to-seed spread.
func computeFitness(mean, std, target float64) float64 {
	d := mean - target
	return d*d + 0.25*std*std
}

// runSession plays one game until it ends or hits the tick cap.
func (fe *FitnessEvaluator) runSession(cfg *config.Config, seed int64) GameResult {
	var final *game.Outcome
	s := game.NewSession(cfg, game.Options{
		Seed:  seed,
		RunID: "tune",
		Notifier: game.NotifierFunc(func(o game.Outcome) {
			if o.Kind != game.OutcomeLevelCompleted {
				final = &o
			}
		}),
		Logger: slog.New(slog.DiscardHandler),
	})
	bot := game.NewAutoplay(s, fe.fireEvery, 3)

	s.Start()
	left := s.Field().TargetCount()
	for final == nil && s.Ticks() < fe.maxTicks {
		// Time expiry clears the field, so remember what was left before it
		left = s.Field().TargetCount()
		s.Advance(cfg.Derived.TickInterval)
		bot.Update()
	}

	res := GameResult{Level: s.Level(), Score: s.Score(), Ticks: s.Ticks()}
	if final == nil {
		left = s.Field().TargetCount()
	} else {
		// The session has already reset; the outcome carries the final state
		res.Level, res.Score = final.Level, final.Score
		res.Won = final.Kind == game.OutcomeAllLevelsCompleted
	}

	if res.Won {
		res.Progress = 1
		return res
	}
	total := game.TargetCount(cfg, res.Level)
	cleared := float64(total-left) / float64(total)
	res.Progress = (float64(res.Level-1) + cleared) / float64(cfg.Levels.MaxLevel)
	return res
}

// copyConfig creates a copy of the base config that evaluations may modify.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	cfg.Targets.Palette = slices.Clone(fe.baseConfig.Targets.Palette)
	return &cfg
}
