package ui

import (
	"fmt"
	"math"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
)

// ControlsPanel renders the left-side panel: session buttons and the cannon
// sliders.
type ControlsPanel struct {
	renderer *Renderer
	cfg      *config.Config
	x, y     int32
	width    int32
	height   int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(cfg *config.Config, x, y, width, height int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		cfg:      cfg,
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// Draw renders the panel and applies any button presses or slider moves to s.
func (c *ControlsPanel) Draw(s *game.Session) {
	r := c.renderer
	th := r.Theme
	padding := th.Padding
	inner := c.width - padding*2

	r.DrawPanel(c.x, c.y, c.width, c.height)

	x := c.x + padding
	y := c.y + padding

	y = r.DrawSectionHeader(x, y, "GAME CONTROLS")

	button := func(label string) bool {
		rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: th.ButtonHeight}
		y += int32(th.ButtonHeight) + 6
		return gui.Button(rect, label)
	}

	if button("Start Game") {
		s.Start()
	}
	if button("Pause / Resume") {
		s.PauseOrResume()
	}
	if button("Stop All") {
		s.Stop()
	}
	if button("Restart Game") {
		s.Restart()
	}
	y += 6
	if button("SHOOT!") {
		s.Fire()
	}

	y += 8
	y = r.DrawSectionHeader(x, y, "CANNON SETTINGS")

	cannon := s.Cannon()
	lim := c.cfg.Cannon

	slider := func(label string, value, lo, hi float64) float64 {
		r.DrawLabelValue(x, y, label, fmt.Sprintf("%.0f", value), inner)
		y += th.FontSize + 4
		rect := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(inner), Height: th.SliderHeight}
		y += int32(th.SliderHeight) + 10
		return math.Round(float64(gui.SliderBar(rect, "", "", float32(value), float32(lo), float32(hi))))
	}

	if v := slider("Angle (0-90)", cannon.Angle, lim.MinAngle, lim.MaxAngle); v != cannon.Angle {
		s.SetAngle(v)
	}
	if v := slider("Barrel Length", cannon.Barrel, lim.MinBarrel, lim.MaxBarrel); v != cannon.Barrel {
		s.SetBarrelLength(v)
	}
	if v := slider("Power", cannon.Power, lim.MinPower, lim.MaxPower); v != cannon.Power {
		s.SetPower(v)
	}
	if v := slider("Vertical Position", cannon.Y, c.cfg.Derived.MinCannonY, c.cfg.Derived.MaxCannonY); v != cannon.Y {
		s.SetEmitterY(v)
	}
}
