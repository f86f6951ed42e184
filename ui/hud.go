package ui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
)

// StatusBar renders the status line and the countdown bar below the field.
type StatusBar struct {
	renderer *Renderer
	x, y     int32
	width    int32
	height   int32
}

// NewStatusBar creates a status bar occupying the given rectangle.
func NewStatusBar(x, y, width, height int32) *StatusBar {
	return &StatusBar{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		height:   height,
	}
}

// Draw renders the status line. budget is the full time of the current level.
func (b *StatusBar) Draw(status game.StatusLine, budget int) {
	th := b.renderer.Theme
	rl.DrawRectangle(b.x, b.y, b.width, b.height, th.StatusBg)
	rl.DrawText(status.String(), b.x+th.Padding, b.y+th.Padding, 16, th.StatusText)

	barY := b.y + b.height - th.BarHeight - 2
	b.renderer.DrawBar(b.x, barY, float32(status.TimeLeft), float32(budget), b.width)
}

// FieldView draws targets, projectiles and the cannon inside the playfield.
type FieldView struct {
	renderer *Renderer
	cfg      *config.Config
	originX  int32
	originY  int32
	palette  map[string]rl.Color
}

// NewFieldView creates a view with the field's top-left corner at (x, y).
func NewFieldView(cfg *config.Config, x, y int32) *FieldView {
	palette := make(map[string]rl.Color, len(cfg.Targets.Palette))
	for _, hex := range cfg.Targets.Palette {
		palette[hex] = ParseHex(hex)
	}
	return &FieldView{
		renderer: NewRenderer(),
		cfg:      cfg,
		originX:  x,
		originY:  y,
		palette:  palette,
	}
}

func (v *FieldView) point(x, y float64) rl.Vector2 {
	return rl.Vector2{X: float32(v.originX) + float32(x), Y: float32(v.originY) + float32(y)}
}

// Draw renders one frame of the field.
func (v *FieldView) Draw(snap game.Snapshot, cannon game.Cannon) {
	th := v.renderer.Theme
	w, h := int32(v.cfg.Field.Width), int32(v.cfg.Field.Height)

	rl.DrawRectangle(v.originX, v.originY, w, h, th.FieldBg)

	// Clip bodies that straddle the walls
	rl.BeginScissorMode(v.originX, v.originY, w, h)

	for _, t := range snap.Targets {
		c := v.point(t.X, t.Y)
		fill, ok := v.palette[t.Color]
		if !ok {
			fill = ParseHex(t.Color)
		}
		rl.DrawCircleV(c, float32(t.Radius), fill)
		rl.DrawCircleLines(int32(c.X), int32(c.Y), float32(t.Radius), th.TargetOutline)
	}

	for _, p := range snap.Projectiles {
		rl.DrawCircleV(v.point(p.X, p.Y), float32(p.Radius), th.Projectile)
	}

	v.drawCannon(cannon)

	rl.EndScissorMode()
}

func (v *FieldView) drawCannon(c game.Cannon) {
	th := v.renderer.Theme
	px, py := c.Pivot()
	mx, my := c.Muzzle()

	// Body sits just left of the pivot
	body := rl.Rectangle{
		X:      float32(v.originX) + float32(px) - 20,
		Y:      float32(v.originY) + float32(py) - 10,
		Width:  20,
		Height: 20,
	}
	rl.DrawRectangleRec(body, th.CannonBody)
	rl.DrawRectangleLinesEx(body, 1, th.CannonOutline)

	rl.DrawLineEx(v.point(px, py), v.point(mx, my), float32(math.Max(1, c.BarrelWidth())), th.Barrel)
}
