package game

import (
	"fmt"
	"log/slog"
)

//go:generate go tool mockgen -destination=./mocks/notifier_mock.go -package=mocks . Notifier

// OutcomeKind identifies a one-shot session outcome.
type OutcomeKind int

const (
	OutcomeTimeExpired OutcomeKind = iota
	OutcomeLevelCompleted
	OutcomeAllLevelsCompleted
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeTimeExpired:
		return "time_expired"
	case OutcomeLevelCompleted:
		return "level_complete"
	case OutcomeAllLevelsCompleted:
		return "all_levels_complete"
	}
	return "unknown"
}

// Outcome is reported to the presentation layer once per event.
// For OutcomeLevelCompleted, Level is the level just entered.
type Outcome struct {
	Kind  OutcomeKind
	Level int
	Score int
}

// Title returns the banner heading shown to the player.
func (o Outcome) Title() string {
	switch o.Kind {
	case OutcomeTimeExpired:
		return "Game Over"
	case OutcomeLevelCompleted:
		return "Level Complete!"
	case OutcomeAllLevelsCompleted:
		return "Congratulations!"
	}
	return ""
}

// Message returns the banner body shown to the player.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeTimeExpired:
		return "Time is up!"
	case OutcomeLevelCompleted:
		return fmt.Sprintf("Starting Level %d", o.Level)
	case OutcomeAllLevelsCompleted:
		return fmt.Sprintf("You completed all levels!\nFinal Score: %d", o.Score)
	}
	return ""
}

// Notifier receives session outcomes.
type Notifier interface {
	Notify(Outcome)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(Outcome)

// Notify calls f(o).
func (f NotifierFunc) Notify(o Outcome) { f(o) }

// LogNotifier logs outcomes through slog.
type LogNotifier struct {
	Logger *slog.Logger // nil uses slog.Default()
}

// Notify implements Notifier.
func (n LogNotifier) Notify(o Outcome) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(o.Kind.String(),
		"level", o.Level,
		"score", o.Score,
	)
}

// multiNotifier fans an outcome out to several notifiers in order.
type multiNotifier []Notifier

func (m multiNotifier) Notify(o Outcome) {
	for _, n := range m {
		n.Notify(o)
	}
}

// Tee returns a Notifier that forwards to each non-nil notifier.
func Tee(notifiers ...Notifier) Notifier {
	var m multiNotifier
	for _, n := range notifiers {
		if n != nil {
			m = append(m, n)
		}
	}
	return m
}
