package systems

import (
	"math"
	"math/rand"

	"github.com/pthm-cable/sealant/config"
)

// Coverage is the mutable saturation field co-indexed with a wound mask.
// Cell values live in [0,1] and only ever increase; the single way down
// is Reset.
type Coverage struct {
	mask *Mask
	vals []float32

	cellSize float32 // world units per cell
	half     float32 // half world diameter

	baseRate    float32
	sigmaFactor float32
	jitterMin   float32
	jitterSpan  float32
}

// NewCoverage creates a zeroed coverage grid over the given mask.
func NewCoverage(mask *Mask, cfg *config.Config) *Coverage {
	return &Coverage{
		mask:        mask,
		vals:        make([]float32, mask.N*mask.N),
		cellSize:    cfg.Derived.CellSize,
		half:        cfg.Derived.HalfDiameter,
		baseRate:    float32(cfg.Spray.BaseRate),
		sigmaFactor: float32(cfg.Spray.SigmaFactor),
		jitterMin:   float32(cfg.Spray.JitterMin),
		jitterSpan:  float32(cfg.Spray.JitterMax - cfg.Spray.JitterMin),
	}
}

// WorldToGrid maps world-plane coordinates to fractional grid coordinates.
func (c *Coverage) WorldToGrid(x, z float32) (float32, float32) {
	return (x + c.half) / c.cellSize, (z + c.half) / c.cellSize
}

// Deposit applies one spray batch centered on the world-space aim point.
// Weight falls off with a Gaussian kernel over the circular footprint;
// each touched cell draws an independent density jitter. Cells outside
// the mask, outside the grid, or already saturated are skipped. Returns
// whether any cell value changed, so callers can skip the aggregate
// recompute and display refresh on no-op ticks.
func (c *Coverage) Deposit(rng *rand.Rand, aimX, aimZ, worldRadius float32, intensity int, rateMult float32, dt float32) bool {
	if dt <= 0 || worldRadius <= 0 {
		return false
	}

	fx, fz := c.WorldToGrid(aimX, aimZ)
	gr := worldRadius / c.cellSize
	sigma := c.sigmaFactor * gr
	inv2s2 := 1 / (2 * sigma * sigma)
	gr2 := gr * gr

	rate := float32(intensity) * c.baseRate * rateMult * dt

	minX := int(math.Floor(float64(fx - gr)))
	maxX := int(math.Ceil(float64(fx + gr)))
	minZ := int(math.Floor(float64(fz - gr)))
	maxZ := int(math.Ceil(float64(fz + gr)))

	changed := false
	for gz := minZ; gz <= maxZ; gz++ {
		dz := float32(gz) + 0.5 - fz
		for gx := minX; gx <= maxX; gx++ {
			dx := float32(gx) + 0.5 - fx
			d2 := dx*dx + dz*dz
			if d2 > gr2 {
				continue
			}
			if !c.mask.IsWound(gx, gz) {
				continue
			}
			i := c.mask.Index(gx, gz)
			v := c.vals[i]
			if v >= 1 {
				// Saturated: no write, no jitter draw. Keeps the terminal
				// state independent of how long spraying continues.
				continue
			}
			w := float32(math.Exp(float64(-d2 * inv2s2)))
			jitter := c.jitterMin + rng.Float32()*c.jitterSpan
			nv := v + rate*w*jitter
			if nv > 1 {
				nv = 1
			}
			if nv != v {
				c.vals[i] = nv
				changed = true
			}
		}
	}

	return changed
}

// Percent recomputes aggregate coverage from the grid: mean saturation
// over wound cells, scaled to [0,100]. Full scan; call after a deposit
// batch that reported a change, not per cell.
func (c *Coverage) Percent() float64 {
	live := c.mask.Live()
	if live == 0 {
		return 0
	}
	var sum float64
	for _, v := range c.vals {
		sum += float64(v)
	}
	return 100 * sum / float64(live)
}

// SaturatedCells counts cells that have reached full coverage.
func (c *Coverage) SaturatedCells() int {
	n := 0
	for _, v := range c.vals {
		if v >= 1 {
			n++
		}
	}
	return n
}

// At returns the coverage value of (gx, gy), or 0 out of range.
func (c *Coverage) At(gx, gy int) float32 {
	if gx < 0 || gx >= c.mask.N || gy < 0 || gy >= c.mask.N {
		return 0
	}
	return c.vals[c.mask.Index(gx, gy)]
}

// Values exposes the raw grid for display and telemetry. Read-only by
// convention; the slice is owned by the simulation tick.
func (c *Coverage) Values() []float32 {
	return c.vals
}

// Mask returns the wound mask this grid is indexed against.
func (c *Coverage) Mask() *Mask {
	return c.mask
}

// Reset re-points the grid at a freshly generated mask and zeroes every
// cell. Capacity is reused.
func (c *Coverage) Reset(mask *Mask) {
	c.mask = mask
	for i := range c.vals {
		c.vals[i] = 0
	}
}
