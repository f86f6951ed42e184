package ui

import (
	"fmt"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabel draws a text label and returns the new Y position.
func (r *Renderer) DrawLabel(x, y int32, text string) int32 {
	rl.DrawText(text, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	return y + r.Theme.FontSize + 4
}

// DrawLabelValue draws a label with its value right-aligned within width.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string, width int32) int32 {
	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	vw := rl.MeasureText(value, r.Theme.FontSize)
	rl.DrawText(value, x+width-vw, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawBar draws a progress bar for current/max. The fill turns red below a third.
func (r *Renderer) DrawBar(x, y int32, current, max float32, width int32) int32 {
	ratio := float32(0)
	if max > 0 {
		ratio = current / max
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	rl.DrawRectangle(x, y, width, r.Theme.BarHeight, r.Theme.BarBg)

	fill := r.Theme.BarFillHigh
	if ratio < 0.33 {
		fill = r.Theme.BarFillLow
	}
	rl.DrawRectangle(x, y, int32(float32(width)*ratio), r.Theme.BarHeight, fill)

	return y + r.Theme.BarHeight + 6
}

// DrawKeyLegend renders key bindings as a single line of hints.
func (r *Renderer) DrawKeyLegend(x, y int32, bindings []KeyBinding) {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		parts = append(parts, fmt.Sprintf("[%s] %s", keyName(b.Key), b.Label))
	}
	rl.DrawText(strings.Join(parts, "  "), x, y, r.Theme.FontSize, rl.Gray)
}

func keyName(key int32) string {
	switch key {
	case rl.KeySpace:
		return "Space"
	case rl.KeyUp:
		return "Up"
	case rl.KeyDown:
		return "Down"
	case rl.KeyLeft:
		return "Left"
	case rl.KeyRight:
		return "Right"
	}
	if key >= rl.KeyA && key <= rl.KeyZ {
		return string(rune('A' + key - rl.KeyA))
	}
	return "?"
}
