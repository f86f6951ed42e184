package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"slices"
	"strconv"
	"time"
)

// runLog writes one tune_log.csv row per evaluation, prints a progress line
// and keeps the best candidate seen.
type runLog struct {
	params   *ParamVector
	maxEvals int
	file     *os.File
	w        *csv.Writer
	start    time.Time

	evals int
	best  Evaluation
	bestX []float64
}

func newRunLog(path string, params *ParamVector, maxEvals int) (*runLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating run log: %w", err)
	}

	l := &runLog{
		params:   params,
		maxEvals: maxEvals,
		file:     f,
		w:        csv.NewWriter(f),
		start:    time.Now(),
		best:     Evaluation{Fitness: math.Inf(1)},
	}

	// Columns after the fixed ones follow the parameter list
	header := []string{"eval", "fitness", "progress_mean", "progress_std", "level_mean", "score_mean", "wins", "games"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	if err := l.w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing run log header: %w", err)
	}
	return l, nil
}

// Record logs the evaluation of raw parameters x. Returns true if x is the
// best candidate so far.
func (l *runLog) Record(x []float64, ev Evaluation) bool {
	l.evals++
	improved := ev.Fitness < l.best.Fitness
	if improved {
		l.best, l.bestX = ev, slices.Clone(x)
	}

	row := []string{
		strconv.Itoa(l.evals),
		strconv.FormatFloat(ev.Fitness, 'f', 6, 64),
		strconv.FormatFloat(ev.ProgressMean, 'f', 4, 64),
		strconv.FormatFloat(ev.ProgressStd, 'f', 4, 64),
		strconv.FormatFloat(ev.LevelMean, 'f', 2, 64),
		strconv.FormatFloat(ev.ScoreMean, 'f', 1, 64),
		strconv.Itoa(ev.Wins),
		strconv.Itoa(ev.Games),
	}
	for _, v := range x {
		row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
	}
	if err := l.w.Write(row); err != nil {
		fmt.Fprintf(os.Stderr, "run log: %v\n", err)
	}
	l.w.Flush()

	elapsed := time.Since(l.start)
	eta := time.Duration(max(l.maxEvals-l.evals, 0)) * (elapsed / time.Duration(l.evals))
	mark := ""
	if improved {
		mark = "  new best"
	}
	fmt.Printf("eval %3d/%d  progress %.2f±%.2f  level %.1f  wins %d/%d  score %.0f  fitness %.4f%s  (eta %s)\n",
		l.evals, l.maxEvals, ev.ProgressMean, ev.ProgressStd, ev.LevelMean,
		ev.Wins, ev.Games, ev.ScoreMean, ev.Fitness, mark, eta.Round(time.Second))
	return improved
}

// Best returns the best evaluation and its raw parameters, nil if nothing
// was recorded.
func (l *runLog) Best() (Evaluation, []float64) {
	return l.best, l.bestX
}

// Evals returns how many evaluations were recorded.
func (l *runLog) Evals() int {
	return l.evals
}

// Elapsed returns the time since the log was opened.
func (l *runLog) Elapsed() time.Duration {
	return time.Since(l.start)
}

// Close flushes and closes the file.
func (l *runLog) Close() error {
	l.w.Flush()
	if err := l.w.Error(); err != nil {
		l.file.Close()
		return fmt.Errorf("flushing run log: %w", err)
	}
	return l.file.Close()
}
