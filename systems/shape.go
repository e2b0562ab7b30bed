package systems

import (
	"math"
	"math/rand"

	"github.com/ojrac/opensimplex-go"
)

// ShapeKind identifies a wound archetype family.
type ShapeKind uint8

const (
	ShapeBlob ShapeKind = iota
	ShapeOval
	ShapeStar
	ShapeGash
	ShapeSpots
	numShapeKinds
)

// String returns the archetype name for logging.
func (k ShapeKind) String() string {
	switch k {
	case ShapeBlob:
		return "blob"
	case ShapeOval:
		return "oval"
	case ShapeStar:
		return "star"
	case ShapeGash:
		return "gash"
	case ShapeSpots:
		return "spots"
	default:
		return "unknown"
	}
}

// circle is a membership primitive used by the blob and spots archetypes.
type circle struct {
	cx, cy, r float64
}

// segment is a thick oriented line used by the gash archetype.
type segment struct {
	x0, y0    float64
	dx, dy    float64 // unit direction
	length    float64
	halfWidth float64
}

// Shape is a randomized wound outline. Parameters are drawn once at
// construction; Contains is a pure function of grid coordinates, so the
// same shape always rasterizes to the same mask.
type Shape struct {
	Kind ShapeKind

	circles []circle // blob, spots

	// oval
	cx, cy     float64
	semiA      float64
	semiB      float64
	cosR, sinR float64

	// star
	points int
	inner  float64
	outer  float64
	phase  float64

	segs []segment // gash

	// Simplex outline roughening. Zero amplitude disables it; the
	// circular viewport bound is enforced by the mask, not here.
	edge      opensimplex.Noise
	edgeAmp   float64
	edgeScale float64
}

// RandomShape draws a fresh archetype with randomized parameters over an
// n-by-n grid. edgeAmp/edgeScale control simplex roughening of the radial
// archetypes (pass 0 to disable).
func RandomShape(rng *rand.Rand, n int, edgeAmp, edgeScale float64) *Shape {
	s := &Shape{
		Kind:      ShapeKind(rng.Intn(int(numShapeKinds))),
		edgeAmp:   edgeAmp,
		edgeScale: edgeScale,
	}
	if edgeAmp > 0 {
		s.edge = opensimplex.New(rng.Int63())
	}

	fn := float64(n)
	c := fn / 2

	switch s.Kind {
	case ShapeBlob:
		count := 3 + rng.Intn(4)
		for i := 0; i < count; i++ {
			s.circles = append(s.circles, circle{
				cx: c + (rng.Float64()-0.5)*0.30*fn,
				cy: c + (rng.Float64()-0.5)*0.30*fn,
				r:  (0.08 + rng.Float64()*0.14) * fn,
			})
		}

	case ShapeOval:
		s.cx = c + (rng.Float64()-0.5)*0.10*fn
		s.cy = c + (rng.Float64()-0.5)*0.10*fn
		s.semiA = (0.18 + rng.Float64()*0.16) * fn
		s.semiB = (0.10 + rng.Float64()*0.12) * fn
		rot := rng.Float64() * math.Pi
		s.cosR = math.Cos(rot)
		s.sinR = math.Sin(rot)

	case ShapeStar:
		s.cx = c
		s.cy = c
		s.points = 5 + rng.Intn(4)
		s.outer = (0.28 + rng.Float64()*0.12) * fn
		s.inner = s.outer * (0.35 + rng.Float64()*0.20)
		s.phase = rng.Float64() * 2 * math.Pi

	case ShapeGash:
		angle := rng.Float64() * math.Pi
		dx, dy := math.Cos(angle), math.Sin(angle)
		length := (0.50 + rng.Float64()*0.30) * fn
		main := segment{
			x0:        c - dx*length/2,
			y0:        c - dy*length/2,
			dx:        dx,
			dy:        dy,
			length:    length,
			halfWidth: (0.04 + rng.Float64()*0.05) * fn,
		}
		s.segs = append(s.segs, main)
		branches := rng.Intn(3)
		for i := 0; i < branches; i++ {
			t := 0.2 + rng.Float64()*0.6
			bx := main.x0 + main.dx*main.length*t
			by := main.y0 + main.dy*main.length*t
			ba := angle + (0.4+rng.Float64()*0.8)*sign(rng.Float64()-0.5)
			s.segs = append(s.segs, segment{
				x0:        bx,
				y0:        by,
				dx:        math.Cos(ba),
				dy:        math.Sin(ba),
				length:    main.length * (0.25 + rng.Float64()*0.25),
				halfWidth: main.halfWidth * 0.6,
			})
		}

	case ShapeSpots:
		count := 4 + rng.Intn(5)
		for i := 0; i < count; i++ {
			s.circles = append(s.circles, circle{
				cx: c + (rng.Float64()-0.5)*0.64*fn,
				cy: c + (rng.Float64()-0.5)*0.64*fn,
				r:  (0.03 + rng.Float64()*0.05) * fn,
			})
		}
	}

	return s
}

// FallbackShape returns the deterministic centered disc used when random
// generation keeps producing degenerate masks.
func FallbackShape(n int, radiusFrac float64) *Shape {
	fn := float64(n)
	return &Shape{
		Kind:    ShapeBlob,
		circles: []circle{{cx: fn / 2, cy: fn / 2, r: radiusFrac * fn}},
	}
}

// Contains reports whether grid cell (gx, gy) is inside the shape.
func (s *Shape) Contains(gx, gy int) bool {
	x := float64(gx) + 0.5
	y := float64(gy) + 0.5

	switch s.Kind {
	case ShapeBlob, ShapeSpots:
		for _, c := range s.circles {
			r := c.r * s.edgeFactor(x, y)
			dx, dy := x-c.cx, y-c.cy
			if dx*dx+dy*dy <= r*r {
				return true
			}
		}
		return false

	case ShapeOval:
		// Rotate into the ellipse frame.
		dx, dy := x-s.cx, y-s.cy
		u := dx*s.cosR + dy*s.sinR
		v := -dx*s.sinR + dy*s.cosR
		m := (u*u)/(s.semiA*s.semiA) + (v*v)/(s.semiB*s.semiB)
		f := s.edgeFactor(x, y)
		return m <= f*f

	case ShapeStar:
		dx, dy := x-s.cx, y-s.cy
		dist := math.Sqrt(dx*dx + dy*dy)
		theta := math.Atan2(dy, dx) + s.phase
		// Triangular profile alternating inner/outer radius per point.
		t := theta * float64(s.points) / (2 * math.Pi)
		frac := t - math.Floor(t)
		tri := 1 - absf(2*frac-1)
		r := (s.inner + (s.outer-s.inner)*tri) * s.edgeFactor(x, y)
		return dist <= r

	case ShapeGash:
		for _, seg := range s.segs {
			px, py := x-seg.x0, y-seg.y0
			along := px*seg.dx + py*seg.dy
			if along < 0 || along > seg.length {
				continue
			}
			perp := px*-seg.dy + py*seg.dx
			if absf(perp) <= seg.halfWidth {
				return true
			}
		}
		return false
	}

	return false
}

// edgeFactor returns the simplex radius multiplier at (x, y), or 1 when
// roughening is disabled.
func (s *Shape) edgeFactor(x, y float64) float64 {
	if s.edge == nil || s.edgeAmp <= 0 {
		return 1
	}
	return 1 + s.edgeAmp*s.edge.Eval2(x*s.edgeScale, y*s.edgeScale)
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}
