package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
	"github.com/pthm-cable/barrage/telemetry"
	"github.com/pthm-cable/barrage/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics, firing automatically")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	fireEvery := flag.Int("fire-every", 10, "Headless: ticks between automatic shots")
	logPerf := flag.Int("log-perf", 0, "Log perf stats every N ticks (0 = use config)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *logPerf > 0 {
		cfg.Telemetry.LogPerfEvery = *logPerf
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	var perf *telemetry.PerfCollector
	if cfg.Telemetry.LogPerfEvery > 0 {
		perf = telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	}

	if *headless {
		runHeadless(cfg, rngSeed, output, perf, *maxTicks, *fireEvery)
		return
	}

	// Graphical mode
	banner := ui.NewOutcomeBanner()
	session := game.NewSession(cfg, game.Options{
		Seed:     rngSeed,
		Notifier: game.Tee(game.LogNotifier{}, banner),
		Output:   output,
		Perf:     perf,
	})
	frontend := ui.NewFrontend(cfg, session, banner, perf)

	w, h := frontend.WindowSize()
	rl.InitWindow(w, h, "Barrage")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	for !rl.WindowShouldClose() {
		frontend.Update(time.Duration(float64(rl.GetFrameTime()) * float64(time.Second)))

		rl.BeginDrawing()
		frontend.Draw()
		rl.EndDrawing()

		if *maxTicks > 0 && int(session.Ticks()) >= *maxTicks {
			break
		}
	}
}

// runHeadless plays the game without a window until every level is cleared,
// time runs out, or maxTicks is reached.
func runHeadless(cfg *config.Config, seed int64, output *telemetry.OutputManager, perf *telemetry.PerfCollector, maxTicks, fireEvery int) {
	done := false
	session := game.NewSession(cfg, game.Options{
		Seed: seed,
		Notifier: game.Tee(game.LogNotifier{}, game.NotifierFunc(func(o game.Outcome) {
			if o.Kind != game.OutcomeLevelCompleted {
				done = true
			}
		})),
		Output: output,
		Perf:   perf,
	})
	autoplay := game.NewAutoplay(session, fireEvery, 3)

	slog.Info("starting headless simulation",
		"seed", seed,
		"max_ticks", maxTicks,
		"fire_every", fireEvery,
	)

	session.Start()
	for !done {
		session.Advance(cfg.Derived.TickInterval)
		autoplay.Update()

		if maxTicks > 0 && int(session.Ticks()) >= maxTicks {
			slog.Info("max ticks reached", "tick", session.Ticks())
			session.Stop()
			break
		}
	}

	slog.Info("headless simulation finished",
		"ticks", session.Ticks(),
		"shots", autoplay.Shots(),
		"level", session.Level(),
		"status", session.Status().String(),
	)
}
