package ui

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
	"github.com/pthm-cable/barrage/telemetry"
)

// Frontend is the graphical shell around a session: control panel on the
// left, field on the right, status bar along the bottom.
type Frontend struct {
	cfg      *config.Config
	session  *game.Session
	banner   *OutcomeBanner
	perf     *telemetry.PerfCollector
	renderer *Renderer

	controls *ControlsPanel
	field    *FieldView
	status   *StatusBar
	bindings []KeyBinding

	width  int32
	height int32
}

// NewFrontend lays out the window for cfg. banner should also be registered
// as the session's notifier so outcomes reach the screen. perf may be nil.
func NewFrontend(cfg *config.Config, s *game.Session, banner *OutcomeBanner, perf *telemetry.PerfCollector) *Frontend {
	panel := int32(cfg.Screen.PanelWidth)
	fw, fh := int32(cfg.Field.Width), int32(cfg.Field.Height)
	statusH := int32(cfg.Screen.StatusHeight)

	f := &Frontend{
		cfg:      cfg,
		session:  s,
		banner:   banner,
		perf:     perf,
		renderer: NewRenderer(),
		controls: NewControlsPanel(cfg, 0, 0, panel, fh),
		field:    NewFieldView(cfg, panel, 0),
		status:   NewStatusBar(0, fh, panel+fw, statusH),
		width:    panel + fw,
		height:   fh + statusH,
	}
	f.bindings = []KeyBinding{
		{Key: rl.KeySpace, Label: "Shoot", Action: func() { s.Fire() }},
		{Key: rl.KeyP, Label: "Pause", Action: s.PauseOrResume},
		{Key: rl.KeyUp, Label: "Angle +", Repeat: true, Action: func() { s.NudgeAngle(1) }},
		{Key: rl.KeyDown, Label: "Angle -", Repeat: true, Action: func() { s.NudgeAngle(-1) }},
		{Key: rl.KeyRight, Label: "Cannon down", Repeat: true, Action: func() { s.NudgeEmitterY(5) }},
		{Key: rl.KeyLeft, Label: "Cannon up", Repeat: true, Action: func() { s.NudgeEmitterY(-5) }},
	}
	return f
}

// WindowSize returns the window dimensions the layout needs.
func (f *Frontend) WindowSize() (int32, int32) {
	return f.width, f.height
}

// Update handles keyboard input and advances the session by the frame time.
// The session is held still while an outcome banner is up.
func (f *Frontend) Update(dt time.Duration) {
	if f.perf != nil {
		f.perf.RecordFrame()
	}
	if f.banner.Visible() {
		return
	}

	for _, b := range f.bindings {
		if rl.IsKeyPressed(b.Key) || (b.Repeat && rl.IsKeyPressedRepeat(b.Key)) {
			b.Action()
		}
	}

	f.session.Advance(dt)
}

// Draw renders one frame. Must be called between BeginDrawing and EndDrawing.
func (f *Frontend) Draw() {
	rl.ClearBackground(f.renderer.Theme.PanelBg)

	f.field.Draw(f.session.Snapshot(), f.session.Cannon())
	f.status.Draw(f.session.Status(), game.TimeBudget(f.cfg, f.session.Level()))

	if f.banner.Visible() {
		// Panel stays visible but inert while the banner is up
		f.controls.renderer.DrawPanel(f.controls.x, f.controls.y, f.controls.width, f.controls.height)
		f.banner.Draw(0, 0, f.width, int32(f.cfg.Field.Height))
		return
	}

	f.controls.Draw(f.session)
	th := f.renderer.Theme
	f.renderer.DrawKeyLegend(f.field.originX+th.Padding, int32(f.cfg.Field.Height)-th.FontSize-6, f.bindings)
}
