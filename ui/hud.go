package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/config"
	"github.com/pthm-cable/sealant/systems"
)

// HUDData holds the session state the HUD displays.
type HUDData struct {
	Phase       systems.Phase
	CoveragePct float64
	ElapsedSec  float64
	Impacts     int

	Intensity int
	Material  int
	Materials []config.MaterialConfig

	FPS       int32
	Paused    bool
	TimeScale float64

	ScreenWidth  int32
	ScreenHeight int32
}

// HUDActions reports control interactions from one HUD frame. The caller
// applies them to the session.
type HUDActions struct {
	StartPressed bool
	ResetPressed bool

	IntensityChanged bool
	Intensity        int

	MaterialChanged bool
	Material        int
}

// HUD renders the heads-up display and session controls.
type HUD struct {
	renderer *Renderer

	minIntensity int
	maxIntensity int
}

// NewHUD creates a HUD for the configured intensity range.
func NewHUD(cfg *config.Config) *HUD {
	return &HUD{
		renderer:     NewRenderer(),
		minIntensity: cfg.Spray.MinIntensity,
		maxIntensity: cfg.Spray.MaxIntensity,
	}
}

// Draw renders the HUD and returns any control interactions.
func (h *HUD) Draw(data HUDData) HUDActions {
	var actions HUDActions
	th := h.renderer.Theme

	panelW := int32(280)
	panelH := int32(236)
	h.renderer.DrawPanel(8, 8, panelW, panelH)

	x := 8 + th.Padding
	y := 8 + th.Padding

	rl.DrawText("Sealant", x, y, th.TitleSize, rl.White)
	y += th.TitleSize + 6

	y = h.renderer.DrawProgressBar(x, y, panelW-2*th.Padding-55, "Coverage",
		data.CoveragePct, data.Phase == systems.PhaseWon)

	rl.DrawText(fmt.Sprintf("Time: %6.1fs   Impacts: %d", data.ElapsedSec, data.Impacts),
		x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight + 4

	// Intensity slider
	rl.DrawText("Intensity", x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight
	newIntensity := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(panelW - 2*th.Padding - 40), Height: 18},
		fmt.Sprintf("%d", h.minIntensity), fmt.Sprintf("%d", h.maxIntensity),
		float32(data.Intensity), float32(h.minIntensity), float32(h.maxIntensity),
	)
	rl.DrawText(fmt.Sprintf("%d", data.Intensity), x+panelW-2*th.Padding-28, y+2, th.FontSize+2, th.ValueColor)
	if lvl := int(newIntensity + 0.5); lvl != data.Intensity {
		actions.IntensityChanged = true
		actions.Intensity = lvl
	}
	y += 24

	// Material selection
	rl.DrawText("Material", x, y, th.FontSize, th.LabelColor)
	y += th.LineHeight
	btnW := (panelW - 2*th.Padding - 8*int32(len(data.Materials)-1)) / int32(len(data.Materials))
	for i, m := range data.Materials {
		bx := float32(x) + float32(i)*float32(btnW+8)
		label := m.Name
		if i == data.Material {
			label = "> " + label
		}
		if gui.Button(rl.Rectangle{X: bx, Y: float32(y), Width: float32(btnW), Height: 24}, label) {
			actions.MaterialChanged = true
			actions.Material = i
		}
	}
	y += 32

	// Session controls
	switch data.Phase {
	case systems.PhaseIntro:
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 28}, "Start") {
			actions.StartPressed = true
		}
	default:
		if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 120, Height: 28}, "Reset") {
			actions.ResetPressed = true
		}
	}

	h.drawStatus(data)
	h.drawBanner(data)

	return actions
}

// drawStatus renders the bottom status line.
func (h *HUD) drawStatus(data HUDData) {
	th := h.renderer.Theme

	status := fmt.Sprintf("FPS: %d", data.FPS)
	if data.TimeScale != 1 {
		status += fmt.Sprintf("   x%.2g", data.TimeScale)
	}
	if data.Paused {
		status += "   PAUSED"
	}
	rl.DrawText(status, 10, data.ScreenHeight-44, th.FontSize, rl.Gray)
	rl.DrawText("hold LMB spray | 1-5 intensity | tab material | space start/reset | p pause | ,/. speed",
		10, data.ScreenHeight-24, th.FontSize, rl.Gray)
}

// drawBanner renders the phase overlay for intro and won states.
func (h *HUD) drawBanner(data HUDData) {
	th := h.renderer.Theme

	var text string
	var col rl.Color
	switch data.Phase {
	case systems.PhaseIntro:
		text = "Seal the wound. Press Start or Space."
		col = th.AccentColor
	case systems.PhaseWon:
		text = fmt.Sprintf("Sealed in %.1fs with %d droplets", data.ElapsedSec, data.Impacts)
		col = th.BarFillWin
	default:
		return
	}

	w := rl.MeasureText(text, th.TitleSize)
	x := (data.ScreenWidth - w) / 2
	y := data.ScreenHeight / 5
	rl.DrawRectangle(x-14, y-10, w+28, int32(th.TitleSize)+20, th.PanelBg)
	rl.DrawText(text, x, y, th.TitleSize, col)
}
