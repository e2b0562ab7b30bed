// Command maskpreview is an interactive tuning tool for wound mask
// generation. It renders candidate masks while the outline parameters are
// adjusted, so grid settings can be dialed in without launching the game.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"math/rand"
	"os"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/config"
	"github.com/pthm-cable/sealant/systems"
)

const (
	previewSize = 640
	panelWidth  = 320
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rl.InitWindow(previewSize+panelWidth+30, previewSize+20, "Wound Mask Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	n := cfg.Grid.Size
	img := rl.GenImageColor(n, n, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(tex)

	pixels := make([]color.RGBA, n*n)

	seed := int64(1)
	rng := rand.New(rand.NewSource(seed))
	mask, stats := systems.GenerateMask(rng, cfg)
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			rng = rand.New(rand.NewSource(seed))
			mask, stats = systems.GenerateMask(rng, cfg)
			uploadMask(tex, mask, pixels, cfg.Derived.BoundRadius)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		src := rl.Rectangle{Width: float32(n), Height: float32(n)}
		dst := rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize}
		rl.DrawTexturePro(tex, src, dst, rl.Vector2{}, 0, rl.White)

		statsY := int32(previewSize - 30)
		rl.DrawText(fmt.Sprintf("Archetype: %s  Attempts: %d  Fallback: %v  Live: %d",
			stats.Kind, stats.Attempts, stats.Fallback, mask.Live()),
			15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Mask Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		rl.DrawText("Edge noise amplitude", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newNoise := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0.0", "0.5",
			float32(cfg.Grid.EdgeNoise), 0, 0.5,
		)
		rl.DrawText(fmt.Sprintf("%.2f", cfg.Grid.EdgeNoise), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		if float64(newNoise) != cfg.Grid.EdgeNoise {
			cfg.Grid.EdgeNoise = float64(newNoise)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Edge noise scale", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0.01", "0.30",
			float32(cfg.Grid.EdgeScale), 0.01, 0.30,
		)
		rl.DrawText(fmt.Sprintf("%.2f", cfg.Grid.EdgeScale), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		if float64(newScale) != cfg.Grid.EdgeScale {
			cfg.Grid.EdgeScale = float64(newScale)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Live-cell floor", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFloor := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"10", "2000",
			float32(cfg.Grid.MinLiveCells), 10, 2000,
		)
		rl.DrawText(fmt.Sprintf("%d", cfg.Grid.MinLiveCells), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		if int(newFloor) != cfg.Grid.MinLiveCells {
			cfg.Grid.MinLiveCells = int(newFloor)
			needsRegen = true
		}
		panelY += 35

		rl.DrawText("Fallback disc radius", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newFallback := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 20},
			"0.1", "0.44",
			float32(cfg.Grid.FallbackR), 0.1, 0.44,
		)
		rl.DrawText(fmt.Sprintf("%.2f", cfg.Grid.FallbackR), int32(panelX+panelWidth-70), int32(panelY+2), 16, rl.DarkGray)
		if float64(newFallback) != cfg.Grid.FallbackR {
			cfg.Grid.FallbackR = float64(newFallback)
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 140, Height: 30}, "New Seed") {
			seed = rng.Int63()
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 150, Y: panelY, Width: 140, Height: 30}, "Regenerate") {
			needsRegen = true
		}

		rl.EndDrawing()
	}
}

// uploadMask paints the mask into the preview texture. Wound cells are
// red, healthy cells inside the viewport bound are skin toned, and cells
// outside the bound stay dark.
func uploadMask(tex rl.Texture2D, mask *systems.Mask, pixels []color.RGBA, boundRadius float64) {
	c := float64(mask.N) / 2
	r2 := boundRadius * boundRadius

	for gy := 0; gy < mask.N; gy++ {
		for gx := 0; gx < mask.N; gx++ {
			i := gy*mask.N + gx
			switch {
			case mask.IsWound(gx, gy):
				pixels[i] = color.RGBA{R: 180, G: 46, B: 52, A: 255}
			default:
				dx := float64(gx) + 0.5 - c
				dy := float64(gy) + 0.5 - c
				if dx*dx+dy*dy <= r2 {
					pixels[i] = color.RGBA{R: 228, G: 184, B: 160, A: 255}
				} else {
					pixels[i] = color.RGBA{R: 28, G: 30, B: 34, A: 255}
				}
			}
		}
	}

	rl.UpdateTexture(tex, pixels)
}
