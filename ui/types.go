// Package ui draws the game with raylib and maps mouse and keyboard input
// onto session commands.
package ui

import (
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	FieldBg        rl.Color
	StatusBg       rl.Color
	StatusText     rl.Color
	TargetOutline  rl.Color
	Projectile     rl.Color
	CannonBody     rl.Color
	CannonOutline  rl.Color
	Barrel         rl.Color
	BannerBg       rl.Color
	BarBg          rl.Color
	BarFillLow     rl.Color
	BarFillHigh    rl.Color
	Padding        int32
	LineHeight     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	ButtonHeight   float32
	SliderHeight   float32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 245, G: 247, B: 249, A: 255},
		PanelBorder:    rl.Color{R: 189, G: 195, B: 199, A: 255},
		SectionHeader:  rl.Color{R: 44, G: 62, B: 80, A: 255},
		LabelColor:     rl.Color{R: 52, G: 73, B: 94, A: 255},
		ValueColor:     rl.Color{R: 44, G: 62, B: 80, A: 255},
		FieldBg:        ParseHex("#cceaf7"),
		StatusBg:       ParseHex("#34495e"),
		StatusText:     rl.White,
		TargetOutline:  rl.Color{R: 0, G: 0, B: 0, A: 90},
		Projectile:     ParseHex("#333333"),
		CannonBody:     ParseHex("#7f8c8d"),
		CannonOutline:  ParseHex("#34495e"),
		Barrel:         ParseHex("#2c3e50"),
		BannerBg:       rl.Color{R: 20, G: 25, B: 30, A: 230},
		BarBg:          rl.Color{R: 210, G: 215, B: 220, A: 255},
		BarFillLow:     rl.Color{R: 231, G: 76, B: 60, A: 255},
		BarFillHigh:    rl.Color{R: 46, G: 204, B: 113, A: 255},
		Padding:        10,
		LineHeight:     16,
		BarHeight:      8,
		FontSize:       12,
		HeaderFontSize: 14,
		ButtonHeight:   24,
		SliderHeight:   16,
	}
}

// ParseHex converts "#rrggbb" to an opaque color. Malformed input yields magenta
// so it stands out on screen.
func ParseHex(s string) rl.Color {
	v, err := strconv.ParseUint(strings.TrimPrefix(s, "#"), 16, 32)
	if err != nil || len(strings.TrimPrefix(s, "#")) != 6 {
		return rl.Magenta
	}
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// KeyBinding maps a key to a player action.
type KeyBinding struct {
	Key    int32
	Label  string // shown in the key hint line
	Repeat bool   // fire while held, not only on press
	Action func()
}
