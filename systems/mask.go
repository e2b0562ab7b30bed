package systems

import (
	"math/rand"

	"github.com/pthm-cable/sealant/config"
)

// Mask is the authoritative set of woundable cells: an N-by-N boolean grid
// built once per session. It is never mutated after generation.
type Mask struct {
	N     int
	cells []bool
	live  int
}

// GenStats describes how a mask was produced, for logging.
type GenStats struct {
	Kind     ShapeKind
	Attempts int
	Fallback bool
}

// GenerateMask builds a wound mask from a freshly randomized archetype.
// Attempts below the live-cell floor are discarded and retried up to the
// configured cap; past the cap a deterministic centered disc is used, so
// generation always terminates with a usable mask.
func GenerateMask(rng *rand.Rand, cfg *config.Config) (*Mask, GenStats) {
	n := cfg.Grid.Size
	bound := cfg.Derived.BoundRadius
	floor := cfg.Grid.MinLiveCells

	cap := cfg.Grid.RetryCap
	if cap < 1 {
		cap = 1
	}

	var stats GenStats
	for attempt := 1; attempt <= cap; attempt++ {
		shape := RandomShape(rng, n, cfg.Grid.EdgeNoise, cfg.Grid.EdgeScale)
		m := rasterize(shape, n, bound)
		if m.live >= floor {
			stats.Kind = shape.Kind
			stats.Attempts = attempt
			return m, stats
		}
	}

	shape := FallbackShape(n, cfg.Grid.FallbackR)
	m := rasterize(shape, n, bound)
	stats.Kind = shape.Kind
	stats.Attempts = cap
	stats.Fallback = true
	return m, stats
}

// rasterize samples the shape predicate inside the circular viewport bound.
func rasterize(shape *Shape, n int, boundRadius float64) *Mask {
	m := &Mask{
		N:     n,
		cells: make([]bool, n*n),
	}

	c := float64(n) / 2
	r2 := boundRadius * boundRadius

	for gy := 0; gy < n; gy++ {
		dy := float64(gy) + 0.5 - c
		for gx := 0; gx < n; gx++ {
			dx := float64(gx) + 0.5 - c
			if dx*dx+dy*dy > r2 {
				continue
			}
			if shape.Contains(gx, gy) {
				m.cells[gy*n+gx] = true
				m.live++
			}
		}
	}

	return m
}

// IsWound reports whether (gx, gy) is wound tissue. Out-of-range indices
// are valid input and report false.
func (m *Mask) IsWound(gx, gy int) bool {
	if gx < 0 || gx >= m.N || gy < 0 || gy >= m.N {
		return false
	}
	return m.cells[gy*m.N+gx]
}

// Live returns the wound-cell count.
func (m *Mask) Live() int {
	return m.live
}

// Index returns the flat cell index for (gx, gy). Callers must bounds-check.
func (m *Mask) Index(gx, gy int) int {
	return gy*m.N + gx
}
