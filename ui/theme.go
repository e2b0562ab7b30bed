// Package ui renders the heads-up display and session controls.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg     rl.Color
	PanelBorder rl.Color
	LabelColor  rl.Color
	ValueColor  rl.Color
	AccentColor rl.Color
	BarBg       rl.Color
	BarFill     rl.Color
	BarFillWin  rl.Color

	Padding    int32
	LineHeight int32
	BarHeight  int32
	FontSize   int32
	TitleSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:     rl.Color{R: 20, G: 25, B: 30, A: 235},
		PanelBorder: rl.Color{R: 60, G: 70, B: 80, A: 255},
		LabelColor:  rl.LightGray,
		ValueColor:  rl.White,
		AccentColor: rl.Yellow,
		BarBg:       rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:     rl.Color{R: 100, G: 170, B: 220, A: 255},
		BarFillWin:  rl.Color{R: 110, G: 210, B: 120, A: 255},

		Padding:    10,
		LineHeight: 18,
		BarHeight:  14,
		FontSize:   14,
		TitleSize:  20,
	}
}

// Renderer handles panel drawing with consistent styling.
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

// DrawProgressBar draws a labeled progress bar for [0, 100] percent values
// and returns the next Y position.
func (r *Renderer) DrawProgressBar(x, y, width int32, label string, pct float64, won bool) int32 {
	v := float32(pct / 100)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}

	rl.DrawText(label, x, y, r.Theme.FontSize, r.Theme.LabelColor)
	barY := y + r.Theme.LineHeight

	rl.DrawRectangle(x, barY, width, r.Theme.BarHeight, r.Theme.BarBg)
	fill := r.Theme.BarFill
	if won {
		fill = r.Theme.BarFillWin
	}
	rl.DrawRectangle(x, barY, int32(float32(width)*v), r.Theme.BarHeight, fill)
	rl.DrawRectangleLines(x, barY, width, r.Theme.BarHeight, r.Theme.PanelBorder)

	rl.DrawText(fmt.Sprintf("%.1f%%", pct), x+width+8, barY, r.Theme.FontSize, r.Theme.ValueColor)

	return barY + r.Theme.BarHeight + 6
}
