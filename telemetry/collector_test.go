package telemetry

import (
	"math"
	"testing"
)

func TestCollectorFinish(t *testing.T) {
	c := NewCollector("run-1")
	c.BeginLevel(2, []float64{2, 3, 4})

	for i := 0; i < 4; i++ {
		c.RecordShot()
	}
	c.RecordTick(1, 0, 2, 1, 50)
	c.RecordTick(0, 1, 0, 3, 0)
	c.RecordTick(1, 0, 1, 0, 40)

	rec := c.Finish(OutcomeCleared, 90, 41)

	if rec.RunID != "run-1" || rec.Level != 2 || rec.Outcome != OutcomeCleared {
		t.Errorf("identity fields = %+v", rec)
	}
	if rec.Ticks != 3 || rec.Shots != 4 || rec.Hits != 2 || rec.Escaped != 1 {
		t.Errorf("counters = ticks %d shots %d hits %d escaped %d", rec.Ticks, rec.Shots, rec.Hits, rec.Escaped)
	}
	if rec.Contacts != 3 || rec.Bounces != 4 || rec.ScoreGained != 90 {
		t.Errorf("contacts %d bounces %d gained %d", rec.Contacts, rec.Bounces, rec.ScoreGained)
	}
	if math.Abs(rec.Accuracy-0.5) > 1e-9 {
		t.Errorf("Accuracy = %f, want 0.5", rec.Accuracy)
	}
	if rec.TargetsSpawned != 3 {
		t.Errorf("TargetsSpawned = %d, want 3", rec.TargetsSpawned)
	}
	if math.Abs(rec.SpeedMean-3) > 1e-9 {
		t.Errorf("SpeedMean = %f, want 3", rec.SpeedMean)
	}
	// Sample standard deviation of {2,3,4}
	if math.Abs(rec.SpeedStd-1) > 1e-9 {
		t.Errorf("SpeedStd = %f, want 1", rec.SpeedStd)
	}
	if c.Active() {
		t.Error("collector still active after Finish")
	}
}

func TestCollectorBeginLevelResets(t *testing.T) {
	c := NewCollector("run-2")
	c.BeginLevel(1, []float64{1})
	c.RecordShot()
	c.RecordTick(1, 0, 0, 0, 40)

	c.BeginLevel(2, nil)
	rec := c.Finish(OutcomeStopped, 0, 0)

	if rec.Shots != 0 || rec.Hits != 0 || rec.Ticks != 0 {
		t.Errorf("counters not reset: %+v", rec)
	}
	if rec.RunID != "run-2" {
		t.Errorf("RunID = %q, want run-2", rec.RunID)
	}
	if rec.Accuracy != 0 || rec.SpeedMean != 0 || rec.SpeedStd != 0 {
		t.Errorf("empty level should have zero stats: %+v", rec)
	}
}

func TestNewRunIDUnique(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	if a == "" || a == b {
		t.Errorf("run ids %q and %q should be distinct and non-empty", a, b)
	}
}
