// Package renderer draws the wound plane, coverage layer, and droplets.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/sealant/systems"
)

// WoundRenderer renders the wound mask and its coverage layer as one
// texture mapped onto a plane mesh at the wound height.
type WoundRenderer struct {
	tex    rl.Texture2D
	model  rl.Model
	pixels []color.RGBA
	texN   int

	planeY   float32
	diameter float32

	initialized bool
}

// NewWoundRenderer creates a wound renderer for the given plane placement.
func NewWoundRenderer(planeY, diameter float32) *WoundRenderer {
	return &WoundRenderer{
		planeY:   planeY,
		diameter: diameter,
	}
}

// Init creates GPU resources. Must be called after the raylib window
// exists.
func (r *WoundRenderer) Init(gridN int) {
	if r.initialized {
		return
	}
	r.texN = gridN
	r.pixels = make([]color.RGBA, gridN*gridN)

	img := rl.GenImageColor(gridN, gridN, rl.Blank)
	r.tex = rl.LoadTextureFromImage(img)
	rl.SetTextureFilter(r.tex, rl.FilterBilinear)
	rl.UnloadImage(img)

	mesh := rl.GenMeshPlane(r.diameter, r.diameter, 1, 1)
	r.model = rl.LoadModelFromMesh(mesh)
	rl.SetMaterialTexture(r.model.Materials, rl.MapDiffuse, r.tex)

	r.initialized = true
}

// Update rebuilds the wound texture from the mask and coverage values.
// Wound cells shade from raw red toward the material color as saturation
// rises; cells outside the mask stay transparent.
func (r *WoundRenderer) Update(cov *systems.Coverage, matColor [3]uint8) {
	mask := cov.Mask()
	if !r.initialized {
		r.Init(mask.N)
	}
	if mask.N != r.texN {
		return
	}

	vals := cov.Values()
	for gy := 0; gy < mask.N; gy++ {
		for gx := 0; gx < mask.N; gx++ {
			i := gy*mask.N + gx
			if !mask.IsWound(gx, gy) {
				r.pixels[i] = color.RGBA{}
				continue
			}
			v := vals[i]
			r.pixels[i] = color.RGBA{
				R: lerp8(168, matColor[0], v),
				G: lerp8(40, matColor[1], v),
				B: lerp8(48, matColor[2], v),
				A: 255,
			}
		}
	}

	rl.UpdateTexture(r.tex, r.pixels)
}

// Draw renders the textured wound plane. Must be called inside 3D mode.
func (r *WoundRenderer) Draw() {
	if !r.initialized {
		return
	}
	rl.DrawModel(r.model, rl.Vector3{Y: r.planeY + 0.001}, 1, rl.White)
}

// Unload frees GPU resources.
func (r *WoundRenderer) Unload() {
	if !r.initialized {
		return
	}
	rl.UnloadModel(r.model)
	rl.UnloadTexture(r.tex)
	r.initialized = false
}

// lerp8 blends two channel values by t in [0,1].
func lerp8(a, b uint8, t float32) uint8 {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return uint8(float32(a) + (float32(b)-float32(a))*t)
}
