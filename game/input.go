package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/systems"
)

// handleInput processes mouse aim and keyboard controls.
func (g *Game) handleInput() {
	// Aim: unproject the mouse onto the wound plane.
	mouse := rl.GetMousePosition()
	ray := g.rig.ScreenRay(mouse.X, mouse.Y)
	hit, ok := ray.IntersectPlaneY(float32(g.cfg.World.PlaneHeight))
	if ok {
		half := g.cfg.Derived.HalfDiameter
		if hit.X < -half || hit.X > half || hit.Z < -half || hit.Z > half {
			ok = false
		}
	}
	g.session.SetAim(hit.X, hit.Z, ok)

	g.session.SetSpraying(rl.IsMouseButtonDown(rl.MouseLeftButton))

	// Intensity on the number row.
	for key := rl.KeyOne; key <= rl.KeyFive; key++ {
		if rl.IsKeyPressed(int32(key)) {
			g.session.SetIntensity(int(key-rl.KeyOne) + 1)
		}
	}

	// Material cycling.
	if rl.IsKeyPressed(rl.KeyTab) {
		next := (g.session.Material() + 1) % len(g.cfg.Materials)
		g.session.SetMaterial(next)
		g.woundDirty = true
	}

	// Space starts from intro, resets after a win.
	if rl.IsKeyPressed(rl.KeySpace) {
		switch g.session.Phase() {
		case systems.PhaseIntro:
			g.session.Start()
		case systems.PhaseWon:
			g.reset()
		}
	}

	if rl.IsKeyPressed(rl.KeyP) {
		g.paused = !g.paused
	}

	// Comma/period halve or double the simulation speed.
	if rl.IsKeyPressed(rl.KeyComma) && g.timeScale > 0.25 {
		g.timeScale /= 2
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && g.timeScale < 4 {
		g.timeScale *= 2
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.reset()
	}
}
