// Target batch preview tool - spawns a level's batch and lets it move, with
// sliders for the spawn parameters.
//
// Usage: go run ./cmd/batchpreview
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
	"github.com/pthm-cable/barrage/ui"
)

const panelWidth = 300

// BatchParams holds the spawn parameters being previewed.
type BatchParams struct {
	Level         int
	Seed          int64
	BaseSpeed     float32
	SpeedPerLevel float32
	SpeedBand     float32
	BaseCount     int
	CountPerLevel int
	MinRadius     int
	MaxRadius     int
}

func paramsFrom(cfg *config.Config) BatchParams {
	return BatchParams{
		Level:         1,
		Seed:          12345,
		BaseSpeed:     float32(cfg.Targets.BaseSpeed),
		SpeedPerLevel: float32(cfg.Targets.SpeedPerLevel),
		SpeedBand:     float32(cfg.Targets.SpeedBand),
		BaseCount:     cfg.Targets.BaseCount,
		CountPerLevel: cfg.Targets.CountPerLevel,
		MinRadius:     cfg.Targets.MinRadius,
		MaxRadius:     cfg.Targets.MaxRadius,
	}
}

func (p BatchParams) apply(cfg *config.Config) {
	cfg.Targets.BaseSpeed = float64(p.BaseSpeed)
	cfg.Targets.SpeedPerLevel = float64(p.SpeedPerLevel)
	cfg.Targets.SpeedBand = float64(p.SpeedBand)
	cfg.Targets.BaseCount = p.BaseCount
	cfg.Targets.CountPerLevel = p.CountPerLevel
	cfg.Targets.MinRadius = p.MinRadius
	cfg.Targets.MaxRadius = max(p.MinRadius, p.MaxRadius)
}

func (p BatchParams) yaml() string {
	return fmt.Sprintf(`targets:
  min_radius: %d
  max_radius: %d
  base_count: %d
  count_per_level: %d
  base_speed: %.2f
  speed_per_level: %.2f
  speed_band: %.2f`,
		p.MinRadius, max(p.MinRadius, p.MaxRadius), p.BaseCount, p.CountPerLevel,
		p.BaseSpeed, p.SpeedPerLevel, p.SpeedBand)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	params := paramsFrom(cfg)

	fieldW, fieldH := int32(cfg.Field.Width), int32(cfg.Field.Height)
	windowWidth := fieldW + panelWidth + 30
	windowHeight := max(fieldH+60, 640)

	rl.InitWindow(windowWidth, windowHeight, "Target Batch Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(1000 / cfg.Physics.TickMS))

	view := ui.NewFieldView(cfg, 10, 10)
	var field *game.Field
	var info game.BatchInfo
	animating := true
	needsRespawn := true

	for !rl.WindowShouldClose() {
		if needsRespawn {
			params.apply(cfg)
			field = game.NewField(cfg, rand.New(rand.NewSource(params.Seed)))
			info = field.SpawnBatch(params.Level)
			needsRespawn = false
		}
		if animating {
			field.Step()
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		view.Draw(field.Snapshot(), game.NewCannon(cfg))
		rl.DrawRectangleLines(10, 10, fieldW, fieldH, rl.DarkGray)

		statsY := fieldH + 20
		rl.DrawText(fmt.Sprintf("Level %d: %d targets, top speed %.2f, time %ds",
			params.Level, info.Count, game.BaseSpeed(cfg, params.Level), game.TimeBudget(cfg, params.Level)),
			15, statsY, 16, rl.DarkGray)

		// Control panel
		panelX := float32(fieldW + 20)
		panelY := float32(10)

		rl.DrawText("Target Batch Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value, lo, hi float32, format string) float32 {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			v := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
				"", "",
				value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, value), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
			panelY += 32
			return v
		}

		if v := int(slider("Level", float32(params.Level), 1, float32(cfg.Levels.MaxLevel), "%.0f") + 0.5); v != params.Level {
			params.Level = v
			needsRespawn = true
		}
		if v := int64(slider("Seed", float32(params.Seed), 0, 99999, "%.0f")); v != params.Seed {
			params.Seed = v
			needsRespawn = true
		}
		if v := slider("Base speed", params.BaseSpeed, 0.5, 6, "%.2f"); v != params.BaseSpeed {
			params.BaseSpeed = v
			needsRespawn = true
		}
		if v := slider("Speed per level", params.SpeedPerLevel, 0, 2, "%.2f"); v != params.SpeedPerLevel {
			params.SpeedPerLevel = v
			needsRespawn = true
		}
		if v := slider("Speed band", params.SpeedBand, 0, 2, "%.2f"); v != params.SpeedBand {
			params.SpeedBand = v
			needsRespawn = true
		}
		if v := int(slider("Base count", float32(params.BaseCount), 1, 40, "%.0f") + 0.5); v != params.BaseCount {
			params.BaseCount = v
			needsRespawn = true
		}
		if v := int(slider("Count per level", float32(params.CountPerLevel), 0, 8, "%.0f") + 0.5); v != params.CountPerLevel {
			params.CountPerLevel = v
			needsRespawn = true
		}
		if v := int(slider("Min radius", float32(params.MinRadius), 5, 40, "%.0f") + 0.5); v != params.MinRadius {
			params.MinRadius = v
			needsRespawn = true
		}
		if v := int(slider("Max radius", float32(params.MaxRadius), 5, 40, "%.0f") + 0.5); v != params.MaxRadius {
			params.MaxRadius = v
			needsRespawn = true
		}

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Freeze", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Respawn") {
			needsRespawn = true
		}
		panelY += 40

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRespawn = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			reset, err := config.Load(*configPath)
			if err == nil {
				params = paramsFrom(reset)
				needsRespawn = true
			}
		}

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), windowHeight-30, 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(params.yaml())
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
