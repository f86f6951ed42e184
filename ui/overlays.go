package ui

import (
	"strings"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/game"
)

// OutcomeBanner shows session outcomes one at a time until dismissed.
// It implements game.Notifier so the session can report to it directly.
type OutcomeBanner struct {
	renderer *Renderer
	queue    []game.Outcome
}

// NewOutcomeBanner creates an empty banner.
func NewOutcomeBanner() *OutcomeBanner {
	return &OutcomeBanner{renderer: NewRenderer()}
}

// Notify queues an outcome for display.
func (b *OutcomeBanner) Notify(o game.Outcome) {
	b.queue = append(b.queue, o)
}

// Visible reports whether an outcome is waiting to be dismissed.
func (b *OutcomeBanner) Visible() bool {
	return len(b.queue) > 0
}

// Dismiss drops the outcome on screen.
func (b *OutcomeBanner) Dismiss() {
	if len(b.queue) > 0 {
		b.queue = b.queue[1:]
	}
}

// Draw renders the current outcome centered in the rectangle. Returns true
// when the player dismissed it this frame.
func (b *OutcomeBanner) Draw(x, y, width, height int32) bool {
	if !b.Visible() {
		return false
	}
	th := b.renderer.Theme
	o := b.queue[0]

	const bw, bh = 320, 150
	bx := x + (width-bw)/2
	by := y + (height-bh)/2

	rl.DrawRectangle(x, y, width, height, rl.Color{R: 0, G: 0, B: 0, A: 80})
	rl.DrawRectangle(bx, by, bw, bh, th.BannerBg)
	rl.DrawRectangleLines(bx, by, bw, bh, th.PanelBorder)

	rl.DrawText(o.Title(), bx+th.Padding*2, by+th.Padding*2, 20, rl.Yellow)
	ty := by + th.Padding*2 + 30
	for _, line := range strings.Split(o.Message(), "\n") {
		rl.DrawText(line, bx+th.Padding*2, ty, 16, rl.White)
		ty += 20
	}

	ok := rl.Rectangle{X: float32(bx + bw - 90), Y: float32(by + bh - 40), Width: 70, Height: th.ButtonHeight}
	if gui.Button(ok, "OK") || rl.IsKeyPressed(rl.KeyEnter) {
		b.Dismiss()
		return true
	}
	return false
}
