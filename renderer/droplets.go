package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/systems"
)

// DropletRenderer renders in-flight spray droplets.
type DropletRenderer struct {
	views []systems.ParticleView
}

// NewDropletRenderer creates a droplet renderer.
func NewDropletRenderer() *DropletRenderer {
	return &DropletRenderer{}
}

// Draw renders all active droplets as small spheres tinted by the current
// material. Must be called inside 3D mode.
func (r *DropletRenderer) Draw(pool *systems.Pool, matColor [3]uint8) {
	r.views = pool.Snapshot(r.views[:0])

	base := rl.Color{R: matColor[0], G: matColor[1], B: matColor[2], A: 255}
	for i := range r.views {
		v := &r.views[i]
		col := rl.Fade(base, v.Alpha)
		rl.DrawSphereEx(rl.Vector3{X: v.X, Y: v.Y, Z: v.Z}, v.Size, 4, 6, col)
	}
}
