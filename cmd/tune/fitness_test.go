package main

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/barrage/config"
)

func TestSummarize(t *testing.T) {
	results := []GameResult{
		{Progress: 1, Level: 3, Score: 1500, Won: true},
		{Progress: 0.5, Level: 2, Score: 700},
		{Progress: 0.3, Level: 1, Score: 400},
		{Progress: 0.6, Level: 2, Score: 800},
	}

	ev := summarize(results, 0.6)
	if ev.Games != 4 || ev.Wins != 1 {
		t.Errorf("games %d, wins %d, want 4 and 1", ev.Games, ev.Wins)
	}
	if math.Abs(ev.ProgressMean-0.6) > 1e-9 {
		t.Errorf("ProgressMean = %v, want 0.6", ev.ProgressMean)
	}
	if ev.LevelMean != 2 || ev.ScoreMean != 850 {
		t.Errorf("LevelMean %v, ScoreMean %v, want 2 and 850", ev.LevelMean, ev.ScoreMean)
	}
	if want := computeFitness(ev.ProgressMean, ev.ProgressStd, 0.6); ev.Fitness != want {
		t.Errorf("Fitness = %v, want %v", ev.Fitness, want)
	}
}

func TestSummarizeSingleAndEmpty(t *testing.T) {
	ev := summarize([]GameResult{{Progress: 0.4, Level: 2}}, 0.6)
	if ev.ProgressStd != 0 || ev.ProgressMean != 0.4 {
		t.Errorf("single game: mean %v, std %v", ev.ProgressMean, ev.ProgressStd)
	}
	if ev := summarize(nil, 0.6); !math.IsInf(ev.Fitness, 1) {
		t.Errorf("no games: fitness %v, want +Inf", ev.Fitness)
	}
}

func TestEvaluateRejectsInvalidConfig(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()
	// Targets no longer fit inside the field
	cfg.Field.Height = 30
	fe := NewFitnessEvaluator(pv, 100, 10, []int64{1}, cfg, 0.6)

	if ev := fe.Evaluate(pv.DefaultVector()); !math.IsInf(ev.Fitness, 1) {
		t.Errorf("fitness = %v, want +Inf for a config that fails validation", ev.Fitness)
	}
}

func TestEvaluateShortGames(t *testing.T) {
	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 100, 10, []int64{1, 2}, config.Default(), 0.6)

	ev := fe.Evaluate(pv.DefaultVector())
	if ev.Games != 2 {
		t.Fatalf("Games = %d, want 2", ev.Games)
	}
	// At most ten shots against twenty targets, so level 1 cannot be cleared
	if ev.LevelMean != 1 || ev.Wins != 0 {
		t.Errorf("LevelMean %v, Wins %d, want 1 and 0", ev.LevelMean, ev.Wins)
	}
	if ev.ProgressMean < 0 || ev.ProgressMean >= 1.0/3 {
		t.Errorf("ProgressMean = %v, want within level 1", ev.ProgressMean)
	}
}

func TestRunLogTracksBest(t *testing.T) {
	pv := NewParamVector()
	path := filepath.Join(t.TempDir(), "tune_log.csv")
	l, err := newRunLog(path, pv, 3)
	if err != nil {
		t.Fatal(err)
	}

	x := pv.DefaultVector()
	if !l.Record(x, Evaluation{Fitness: 0.5, Games: 2}) {
		t.Error("first record should be the best")
	}
	if l.Record(x, Evaluation{Fitness: 0.9, Games: 2}) {
		t.Error("worse record reported as best")
	}
	better := append([]float64(nil), x...)
	better[0] = 3
	if !l.Record(better, Evaluation{Fitness: 0.1, Games: 2, Wins: 1}) {
		t.Error("better record not reported as best")
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}

	best, bestX := l.Best()
	if best.Fitness != 0.1 || bestX[0] != 3 {
		t.Errorf("best = %v at %v", best.Fitness, bestX)
	}
	if l.Evals() != 3 {
		t.Errorf("Evals() = %d, want 3", l.Evals())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("log has %d lines, want header + 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "eval,fitness,progress_mean") || !strings.HasSuffix(lines[0], "time_per_level") {
		t.Errorf("unexpected header %q", lines[0])
	}
}
