package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/camera"
)

// Scene owns the 3D pass: the raylib camera mirroring the picking rig,
// the skin backdrop, the nozzle marker, and the aim reticle.
type Scene struct {
	rig *camera.Rig
	cam rl.Camera3D

	planeY   float32
	diameter float32
	nozzleY  float32
	nozzleZ  float32
}

// NewScene creates the 3D scene around the given picking rig. The raylib
// camera is derived from the rig so picking and rendering agree.
func NewScene(rig *camera.Rig, planeY, diameter, nozzleY, nozzleZ float32) *Scene {
	return &Scene{
		rig: rig,
		cam: rl.Camera3D{
			Position:   rl.Vector3{X: rig.Position.X, Y: rig.Position.Y, Z: rig.Position.Z},
			Target:     rl.Vector3{X: rig.Target.X, Y: rig.Target.Y, Z: rig.Target.Z},
			Up:         rl.Vector3{Y: 1},
			Fovy:       rig.FovYDeg,
			Projection: rl.CameraPerspective,
		},
		planeY:   planeY,
		diameter: diameter,
		nozzleY:  nozzleY,
		nozzleZ:  nozzleZ,
	}
}

// Begin enters 3D mode and draws the static backdrop.
func (s *Scene) Begin() {
	rl.BeginMode3D(s.cam)

	// Skin surface under the wound texture.
	skin := rl.Color{R: 228, G: 184, B: 160, A: 255}
	rl.DrawPlane(rl.Vector3{Y: s.planeY}, rl.Vector2{X: s.diameter * 1.8, Y: s.diameter * 1.8}, skin)
}

// DrawNozzle draws the spray nozzle at its current position.
func (s *Scene) DrawNozzle(aimX, aimZ float32, spraying bool) {
	ox := aimX * 0.35
	oz := s.nozzleZ + aimZ*0.35
	top := rl.Vector3{X: ox, Y: s.nozzleY + 0.12, Z: oz}
	tip := rl.Vector3{X: ox, Y: s.nozzleY, Z: oz}

	body := rl.Color{R: 180, G: 190, B: 200, A: 255}
	rl.DrawCylinderEx(top, tip, 0.035, 0.015, 8, body)
	if spraying {
		rl.DrawSphereEx(tip, 0.02, 4, 6, rl.Color{R: 240, G: 250, B: 255, A: 200})
	}
}

// DrawReticle draws the aim marker on the wound plane.
func (s *Scene) DrawReticle(aimX, aimZ, radius float32, valid bool) {
	if !valid {
		return
	}
	col := rl.Color{R: 255, G: 255, B: 255, A: 160}
	center := rl.Vector3{X: aimX, Y: s.planeY + 0.003, Z: aimZ}
	rl.DrawCircle3D(center, radius, rl.Vector3{X: 1}, 90, col)
	rl.DrawCircle3D(center, radius*0.15, rl.Vector3{X: 1}, 90, col)
}

// End leaves 3D mode.
func (s *Scene) End() {
	rl.EndMode3D()
}
