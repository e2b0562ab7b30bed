package systems

import (
	"math/rand"
	"testing"
)

func TestRandomShapeContainsIsPure(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 20; trial++ {
		s := RandomShape(rng, 128, 0.12, 0.08)
		for gy := 0; gy < 128; gy += 7 {
			for gx := 0; gx < 128; gx += 7 {
				a := s.Contains(gx, gy)
				b := s.Contains(gx, gy)
				if a != b {
					t.Fatalf("Contains(%d,%d) not deterministic for kind %s", gx, gy, s.Kind)
				}
			}
		}
	}
}

func TestRandomShapeCoversAllKinds(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	seen := make(map[ShapeKind]bool)
	for i := 0; i < 200; i++ {
		s := RandomShape(rng, 128, 0, 0)
		seen[s.Kind] = true
	}
	for k := ShapeKind(0); k < numShapeKinds; k++ {
		if !seen[k] {
			t.Errorf("archetype %s never drawn in 200 samples", k)
		}
	}
}

func TestFallbackShapeIsDeterministic(t *testing.T) {
	a := FallbackShape(128, 0.30)
	b := FallbackShape(128, 0.30)
	for gy := 0; gy < 128; gy++ {
		for gx := 0; gx < 128; gx++ {
			if a.Contains(gx, gy) != b.Contains(gx, gy) {
				t.Fatalf("fallback disc differs at (%d,%d)", gx, gy)
			}
		}
	}

	// Center cell must be inside, far corner outside.
	if !a.Contains(64, 64) {
		t.Error("fallback disc excludes its own center")
	}
	if a.Contains(0, 0) {
		t.Error("fallback disc includes the grid corner")
	}
}

func TestShapeKindString(t *testing.T) {
	names := map[ShapeKind]string{
		ShapeBlob:  "blob",
		ShapeOval:  "oval",
		ShapeStar:  "star",
		ShapeGash:  "gash",
		ShapeSpots: "spots",
	}
	for k, want := range names {
		if got := k.String(); got != want {
			t.Errorf("ShapeKind(%d).String() = %q, want %q", k, got, want)
		}
	}
	if got := ShapeKind(99).String(); got != "unknown" {
		t.Errorf("out-of-range kind = %q, want unknown", got)
	}
}

func TestEdgeNoiseStaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 10; trial++ {
		s := RandomShape(rng, 128, 0.12, 0.08)
		for gy := 0; gy < 128; gy += 5 {
			for gx := 0; gx < 128; gx += 5 {
				f := s.edgeFactor(float64(gx)+0.5, float64(gy)+0.5)
				if f < 1-0.12-1e-6 || f > 1+0.12+1e-6 {
					t.Fatalf("edge factor %f outside [0.88, 1.12]", f)
				}
			}
		}
	}
}
