package telemetry

import (
	"log/slog"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"
)

// Level outcomes written to the run log.
const (
	OutcomeCleared     = "cleared"
	OutcomeAllCleared  = "all_cleared"
	OutcomeTimeExpired = "time_expired"
	OutcomeStopped     = "stopped"
)

// NewRunID returns a fresh identifier stamped on every record of one run.
func NewRunID() string {
	return uuid.NewString()
}

// LevelRecord summarizes one played level.
type LevelRecord struct {
	RunID          string  `csv:"run_id"`
	Level          int     `csv:"level"`
	Outcome        string  `csv:"outcome"`
	Score          int     `csv:"score"`
	ScoreGained    int     `csv:"score_gained"`
	TimeLeft       int     `csv:"time_left"`
	Ticks          int     `csv:"ticks"`
	Shots          int     `csv:"shots"`
	Hits           int     `csv:"hits"`
	Escaped        int     `csv:"escaped"`
	Accuracy       float64 `csv:"accuracy"`
	Contacts       int     `csv:"contacts"`
	Bounces        int     `csv:"bounces"`
	TargetsSpawned int     `csv:"targets_spawned"`
	SpeedMean      float64 `csv:"speed_mean"`
	SpeedStd       float64 `csv:"speed_std"`
}

// LogValue implements slog.LogValuer for structured logging.
func (r LevelRecord) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", r.RunID),
		slog.Int("level", r.Level),
		slog.String("outcome", r.Outcome),
		slog.Int("score", r.Score),
		slog.Int("score_gained", r.ScoreGained),
		slog.Int("time_left", r.TimeLeft),
		slog.Int("ticks", r.Ticks),
		slog.Int("shots", r.Shots),
		slog.Int("hits", r.Hits),
		slog.Float64("accuracy", r.Accuracy),
		slog.Int("contacts", r.Contacts),
		slog.Int("targets_spawned", r.TargetsSpawned),
		slog.Float64("speed_mean", r.SpeedMean),
	)
}

// Collector accumulates counters for the level in progress.
type Collector struct {
	runID string

	active      bool
	level       int
	ticks       int
	shots       int
	hits        int
	escaped     int
	contacts    int
	bounces     int
	scoreGained int
	speeds      []float64
}

// NewCollector creates a collector for the given run.
func NewCollector(runID string) *Collector {
	return &Collector{runID: runID}
}

// Active reports whether a level is being recorded.
func (c *Collector) Active() bool {
	return c.active
}

// BeginLevel resets the counters. speeds are the spawn speeds of the batch.
func (c *Collector) BeginLevel(level int, speeds []float64) {
	*c = Collector{
		runID:  c.runID,
		active: true,
		level:  level,
		speeds: append(c.speeds[:0], speeds...),
	}
}

// RecordShot counts a fired projectile.
func (c *Collector) RecordShot() {
	c.shots++
}

// RecordTick folds one simulation tick into the counters.
func (c *Collector) RecordTick(hits, escaped, contacts, bounces, score int) {
	c.ticks++
	c.hits += hits
	c.escaped += escaped
	c.contacts += contacts
	c.bounces += bounces
	c.scoreGained += score
}

// Finish closes the level and returns its record.
func (c *Collector) Finish(outcome string, score, timeLeft int) LevelRecord {
	c.active = false

	var accuracy float64
	if c.shots > 0 {
		accuracy = float64(c.hits) / float64(c.shots)
	}

	var mean, std float64
	switch {
	case len(c.speeds) >= 2:
		mean, std = stat.MeanStdDev(c.speeds, nil)
	case len(c.speeds) == 1:
		mean = c.speeds[0]
	}

	return LevelRecord{
		RunID:          c.runID,
		Level:          c.level,
		Outcome:        outcome,
		Score:          score,
		ScoreGained:    c.scoreGained,
		TimeLeft:       timeLeft,
		Ticks:          c.ticks,
		Shots:          c.shots,
		Hits:           c.hits,
		Escaped:        c.escaped,
		Accuracy:       accuracy,
		Contacts:       c.contacts,
		Bounces:        c.bounces,
		TargetsSpawned: len(c.speeds),
		SpeedMean:      mean,
		SpeedStd:       std,
	}
}
