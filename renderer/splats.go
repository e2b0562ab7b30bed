package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/systems"
)

const (
	splatCapacity = 96
	splatLifetime = float32(0.45)
)

type splat struct {
	x, z   float32
	age    float32
	active bool
}

// SplatRenderer draws short-lived rings where droplets hit the wound
// plane. Impacts are cosmetic; the coverage field does not read them.
type SplatRenderer struct {
	splats [splatCapacity]splat
	next   int
	planeY float32
}

// NewSplatRenderer creates a splat renderer for the given plane height.
func NewSplatRenderer(planeY float32) *SplatRenderer {
	return &SplatRenderer{planeY: planeY}
}

// Add records impact events, overwriting the oldest slots when full.
func (r *SplatRenderer) Add(impacts []systems.Impact) {
	for i := range impacts {
		r.splats[r.next] = splat{x: impacts[i].X, z: impacts[i].Z, active: true}
		r.next = (r.next + 1) % splatCapacity
	}
}

// Update ages splats and retires expired ones.
func (r *SplatRenderer) Update(dt float32) {
	for i := range r.splats {
		s := &r.splats[i]
		if !s.active {
			continue
		}
		s.age += dt
		if s.age >= splatLifetime {
			s.active = false
		}
	}
}

// Clear drops all splats. Called on session reset.
func (r *SplatRenderer) Clear() {
	for i := range r.splats {
		r.splats[i].active = false
	}
	r.next = 0
}

// Draw renders active splats as expanding fading rings. Must be called
// inside 3D mode.
func (r *SplatRenderer) Draw(matColor [3]uint8) {
	base := rl.Color{R: matColor[0], G: matColor[1], B: matColor[2], A: 255}
	for i := range r.splats {
		s := &r.splats[i]
		if !s.active {
			continue
		}
		t := s.age / splatLifetime
		radius := 0.012 + 0.03*t
		col := rl.Fade(base, 0.8*(1-t))
		rl.DrawCircle3D(
			rl.Vector3{X: s.x, Y: r.planeY + 0.002, Z: s.z},
			radius,
			rl.Vector3{X: 1, Y: 0, Z: 0}, 90,
			col,
		)
	}
}
