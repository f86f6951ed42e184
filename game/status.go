package game

import "fmt"

// State is the derived lifecycle state of a session.
type State int

const (
	StateStopped State = iota
	StateRunning
	StatePaused
	StateLevelTransition
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateLevelTransition:
		return "level_transition"
	}
	return "unknown"
}

// Status phrases shown in the status bar.
const (
	PhraseReady          = "Ready"
	PhraseRunning        = "Running"
	PhrasePaused         = "Paused"
	PhraseResumed        = "Resumed"
	PhraseShotFired      = "Shot fired!"
	PhraseTimeUp         = "Time's up!"
	PhraseLevelUp        = "Level up!"
	PhraseStopped        = "Stopped. Ready to restart."
	PhraseRestarted      = "Restarted"
	PhraseFireRejected   = "Game is Paused/Stopped - Press Start/Resume!"
	PhraseAllLevelsClear = "All levels completed!"
)

// StatusLine is the text state shown below the field.
type StatusLine struct {
	Score       int
	Level       int
	TargetsLeft int
	TimeLeft    int
	Phrase      string
}

func (s StatusLine) String() string {
	return fmt.Sprintf("Score: %d | Level: %d | Targets Left: %d | Time: %ds | Status: %s",
		s.Score, s.Level, s.TargetsLeft, s.TimeLeft, s.Phrase)
}
