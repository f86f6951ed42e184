package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/telemetry"
)

// Options configures a Session. The zero value is usable.
type Options struct {
	Seed     int64                    // 0 seeds from the wall clock
	RunID    string                   // empty generates a fresh one
	Notifier Notifier                 // nil logs outcomes through slog
	Output   *telemetry.OutputManager // nil disables the run log
	Perf     *telemetry.PerfCollector // nil disables tick timing
	Logger   *slog.Logger             // nil uses slog.Default()
}

// Session owns score, level, countdown and run state, and drives the field
// through two periodic drivers: the simulation tick and the one second
// countdown. All methods must be called from one goroutine.
type Session struct {
	cfg    *config.Config
	field  *Field
	cannon Cannon

	sched     *Scheduler
	tick      *Driver
	countdown *Driver

	notifier  Notifier
	logger    *slog.Logger
	collector *telemetry.Collector
	output    *telemetry.OutputManager
	perf      *telemetry.PerfCollector

	score         int
	level         int
	timeLeft      int
	running       bool
	transitioning bool
	phrase        string
	ticks         int64
}

// NewSession creates a stopped session at level 1 with an empty field.
func NewSession(cfg *config.Config, opts Options) *Session {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := opts.RunID
	if runID == "" {
		runID = telemetry.NewRunID()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = LogNotifier{Logger: logger}
	}

	s := &Session{
		cfg:       cfg,
		field:     NewField(cfg, rand.New(rand.NewSource(seed))),
		cannon:    NewCannon(cfg),
		sched:     NewScheduler(),
		notifier:  notifier,
		logger:    logger.With("run_id", runID),
		collector: telemetry.NewCollector(runID),
		output:    opts.Output,
		perf:      opts.Perf,
		level:     1,
		timeLeft:  TimeBudget(cfg, 1),
		phrase:    PhraseReady,
	}
	s.field.SetPerfCollector(opts.Perf)
	s.tick = s.sched.NewDriver("tick", cfg.Derived.TickInterval, s.onTick)
	s.countdown = s.sched.NewDriver("countdown", cfg.Derived.CountdownInterval, s.onCountdown)
	return s
}

// Advance moves session time forward, firing every tick and countdown that
// comes due.
func (s *Session) Advance(elapsed time.Duration) {
	s.sched.Advance(elapsed)
}

// Start begins or continues play. Does nothing while already running.
func (s *Session) Start() {
	s.transitioning = false
	if s.running {
		return
	}

	s.timeLeft = TimeBudget(s.cfg, s.level)
	if s.field.TargetCount() == 0 {
		s.spawnBatch()
	} else if !s.collector.Active() {
		s.collector.BeginLevel(s.level, nil)
	}

	s.running = true
	s.phrase = PhraseRunning
	s.tick.Start()
	s.countdown.Start()
	s.logger.Info("session_start", "level", s.level, "time_left", s.timeLeft, "targets", s.field.TargetCount())
}

// PauseOrResume toggles between running and paused. Resuming a session with
// no targets left starts it properly instead.
func (s *Session) PauseOrResume() {
	if s.running {
		s.running = false
		s.tick.Stop()
		s.countdown.Stop()
		s.phrase = PhrasePaused
		return
	}
	if s.field.TargetCount() == 0 {
		s.Start()
		return
	}
	s.running = true
	s.tick.Start()
	s.countdown.Start()
	s.phrase = PhraseResumed
}

// Stop halts play, clears the field and resets score, level and timer.
func (s *Session) Stop() {
	s.finishLevel(telemetry.OutcomeStopped)

	s.running = false
	s.tick.Stop()
	s.countdown.Stop()
	s.field.Clear()

	s.score = 0
	s.level = 1
	s.timeLeft = TimeBudget(s.cfg, 1)
	s.transitioning = false
	s.phrase = PhraseStopped
}

// Restart stops the session and starts a fresh game at level 1.
func (s *Session) Restart() {
	s.Stop()
	s.spawnBatch()
	s.Start()
	s.phrase = PhraseRestarted
}

// Fire launches a projectile from the cannon. Rejected unless running.
func (s *Session) Fire() bool {
	if !s.running {
		s.phrase = PhraseFireRejected
		return false
	}
	s.field.Fire(s.cannon)
	s.collector.RecordShot()
	s.phrase = PhraseShotFired
	return true
}

// SetAngle sets the launch angle in degrees.
func (s *Session) SetAngle(deg float64) { s.cannon.SetAngle(deg) }

// SetPower sets the launch speed.
func (s *Session) SetPower(p float64) { s.cannon.SetPower(p) }

// SetEmitterY sets the cannon height.
func (s *Session) SetEmitterY(y float64) { s.cannon.SetY(y) }

// SetBarrelLength sets the barrel length.
func (s *Session) SetBarrelLength(l float64) { s.cannon.SetBarrel(l) }

// NudgeAngle changes the angle by delta if the result stays in range.
func (s *Session) NudgeAngle(delta float64) bool { return s.cannon.NudgeAngle(delta) }

// NudgeEmitterY moves the cannon by delta if the result stays in range.
func (s *Session) NudgeEmitterY(delta float64) bool { return s.cannon.NudgeY(delta) }

// Score returns the points scored since the last stop.
func (s *Session) Score() int { return s.score }

// Level returns the current level, starting at 1.
func (s *Session) Level() int { return s.level }

// TimeLeft returns the seconds left on the countdown.
func (s *Session) TimeLeft() int { return s.timeLeft }

// Running reports whether the drivers are advancing play.
func (s *Session) Running() bool { return s.running }

// Transitioning reports whether a level-up is in progress.
func (s *Session) Transitioning() bool { return s.transitioning }

// Cannon returns a copy of the cannon settings.
func (s *Session) Cannon() Cannon { return s.cannon }

// Field returns the field the session drives.
func (s *Session) Field() *Field { return s.field }

// Ticks returns the number of simulation ticks run so far.
func (s *Session) Ticks() int64 { return s.ticks }

// State derives the lifecycle state from the run flags and the field.
func (s *Session) State() State {
	switch {
	case s.transitioning:
		return StateLevelTransition
	case s.running:
		return StateRunning
	case s.field.TargetCount() > 0:
		return StatePaused
	}
	return StateStopped
}

// Status returns the status bar contents.
func (s *Session) Status() StatusLine {
	return StatusLine{
		Score:       s.score,
		Level:       s.level,
		TargetsLeft: s.field.TargetCount(),
		TimeLeft:    s.timeLeft,
		Phrase:      s.phrase,
	}
}

// Snapshot returns the renderable field state.
func (s *Session) Snapshot() Snapshot {
	return s.field.Snapshot()
}

// refreshPhrase replaces the last event phrase with the derived one.
func (s *Session) refreshPhrase() {
	switch {
	case s.running:
		s.phrase = PhraseRunning
	case s.field.TargetCount() > 0:
		s.phrase = PhrasePaused
	default:
		s.phrase = PhraseReady
	}
}

func (s *Session) spawnBatch() {
	info := s.field.SpawnBatch(s.level)
	s.collector.BeginLevel(info.Level, info.Speeds)
	s.logger.Debug("batch_spawned", "level", info.Level, "count", info.Count)
}

func (s *Session) onTick() {
	if !s.running {
		return
	}

	res := s.field.Step()
	s.ticks++
	s.collector.RecordTick(res.Hits, res.Escaped, res.Contacts, res.Bounces, res.ScoreDelta)
	if res.ScoreDelta != 0 {
		s.score += res.ScoreDelta
		s.refreshPhrase()
	}
	s.reportPerf()

	s.checkLevelCompletion()
}

func (s *Session) onCountdown() {
	if !s.running {
		return
	}

	s.timeLeft--
	if s.timeLeft > 0 {
		s.refreshPhrase()
		return
	}

	s.phrase = PhraseTimeUp
	s.finishLevel(telemetry.OutcomeTimeExpired)
	out := Outcome{Kind: OutcomeTimeExpired, Level: s.level, Score: s.score}
	s.Stop()
	s.notifier.Notify(out)
}

func (s *Session) checkLevelCompletion() {
	if s.field.TargetCount() == 0 && s.running && !s.transitioning {
		s.levelUp()
	}
}

// levelUp advances to the next level or ends the game at the last one.
// Re-entry while a transition is in progress is a no-op.
func (s *Session) levelUp() {
	if s.transitioning {
		return
	}
	s.transitioning = true
	s.countdown.Stop()

	if s.level >= s.cfg.Levels.MaxLevel {
		s.finishLevel(telemetry.OutcomeAllCleared)
		s.running = false
		s.tick.Stop()
		s.transitioning = false
		s.phrase = PhraseAllLevelsClear
		s.notifier.Notify(Outcome{Kind: OutcomeAllLevelsCompleted, Level: s.level, Score: s.score})
		return
	}

	s.finishLevel(telemetry.OutcomeCleared)
	s.level++
	s.timeLeft = TimeBudget(s.cfg, s.level)
	s.phrase = PhraseLevelUp
	s.spawnBatch()

	s.transitioning = false
	s.running = true
	s.tick.Start()
	s.countdown.Start()
	s.notifier.Notify(Outcome{Kind: OutcomeLevelCompleted, Level: s.level, Score: s.score})
}

// finishLevel closes the level being recorded, if any, and writes its record.
func (s *Session) finishLevel(outcome string) {
	if !s.collector.Active() {
		return
	}
	rec := s.collector.Finish(outcome, s.score, s.timeLeft)
	s.logger.Info("level_finished", "record", rec)
	if err := s.output.WriteLevel(rec); err != nil {
		s.logger.Error("failed to write level record", "error", err)
	}
}

func (s *Session) reportPerf() {
	every := int64(s.cfg.Telemetry.LogPerfEvery)
	if s.perf == nil || every <= 0 || s.ticks%every != 0 {
		return
	}
	stats := s.perf.Stats()
	s.logger.Info("perf", "tick", s.ticks, "stats", stats)
	if err := s.output.WritePerf(stats, s.ticks); err != nil {
		s.logger.Error("failed to write perf stats", "error", err)
	}
}
