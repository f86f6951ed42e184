package game_test

import (
	"log/slog"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
	"github.com/pthm-cable/barrage/game/mocks"
)

func newSession(cfg *config.Config, n game.Notifier) *game.Session {
	return game.NewSession(cfg, game.Options{
		Seed:     3,
		RunID:    "notify",
		Notifier: n,
		Logger:   slog.New(slog.DiscardHandler),
	})
}

func TestSessionNotifiesTimeExpiredOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mocks.NewMockNotifier(ctrl)
	n.EXPECT().Notify(game.Outcome{Kind: game.OutcomeTimeExpired, Level: 1, Score: 0}).Times(1)

	s := newSession(config.Default(), n)
	s.Start()
	s.Advance(65 * time.Second)

	if s.Running() {
		t.Error("session still running after time expired")
	}
}

func TestSessionNotifiesLevelsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	n := mocks.NewMockNotifier(ctrl)
	gomock.InOrder(
		n.EXPECT().Notify(game.Outcome{Kind: game.OutcomeLevelCompleted, Level: 2, Score: 0}),
		n.EXPECT().Notify(game.Outcome{Kind: game.OutcomeAllLevelsCompleted, Level: 2, Score: 0}),
	)

	cfg := config.Default()
	cfg.Levels.MaxLevel = 2

	s := newSession(cfg, n)
	s.Start()

	s.Field().Clear()
	s.Advance(20 * time.Millisecond)
	if s.Level() != 2 {
		t.Fatalf("Level() = %d, want 2", s.Level())
	}

	s.Field().Clear()
	s.Advance(20 * time.Millisecond)
	if s.Running() {
		t.Error("session still running after the last level")
	}

	// No further outcomes once the game is over
	s.Advance(time.Minute)
}

func TestNotifierFuncAndTee(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockNotifier(ctrl)
	out := game.Outcome{Kind: game.OutcomeLevelCompleted, Level: 2, Score: 10}
	m.EXPECT().Notify(out)

	var got []game.Outcome
	fn := game.NotifierFunc(func(o game.Outcome) { got = append(got, o) })

	game.Tee(fn, nil, m).Notify(out)
	if len(got) != 1 || got[0] != out {
		t.Errorf("NotifierFunc got %+v", got)
	}
}

func TestAutoplayFiresOnCadence(t *testing.T) {
	s := newSession(config.Default(), game.NotifierFunc(func(game.Outcome) {}))
	a := game.NewAutoplay(s, 5, 1)

	if a.Update() {
		t.Error("autoplay fired on a stopped session")
	}

	s.Start()
	for i := 0; i < 20; i++ {
		s.Advance(20 * time.Millisecond)
		a.Update()
	}

	if a.Shots() != 4 {
		t.Errorf("Shots() = %d, want 4", a.Shots())
	}
	if got := s.Cannon().Angle; got != 34 {
		t.Errorf("Angle = %v, want 34 after four sweeps", got)
	}
}

func TestOutcomeText(t *testing.T) {
	tests := []struct {
		out       game.Outcome
		wantTitle string
		wantMsg   string
	}{
		{game.Outcome{Kind: game.OutcomeTimeExpired}, "Game Over", "Time is up!"},
		{game.Outcome{Kind: game.OutcomeLevelCompleted, Level: 3}, "Level Complete!", "Starting Level 3"},
		{game.Outcome{Kind: game.OutcomeAllLevelsCompleted, Score: 480}, "Congratulations!", "You completed all levels!\nFinal Score: 480"},
	}
	for _, tt := range tests {
		t.Run(tt.out.Kind.String(), func(t *testing.T) {
			if got := tt.out.Title(); got != tt.wantTitle {
				t.Errorf("Title() = %q, want %q", got, tt.wantTitle)
			}
			if got := tt.out.Message(); got != tt.wantMsg {
				t.Errorf("Message() = %q, want %q", got, tt.wantMsg)
			}
		})
	}
}
