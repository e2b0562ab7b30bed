package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/sealant/config"
)

func testConfig(t testing.TB) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func TestGenerateMaskMeetsFloor(t *testing.T) {
	cfg := testConfig(t)
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m, stats := GenerateMask(rng, cfg)
		if m.Live() < cfg.Grid.MinLiveCells {
			t.Errorf("seed %d: live cells %d below floor %d (fallback=%v)",
				seed, m.Live(), cfg.Grid.MinLiveCells, stats.Fallback)
		}
	}
}

func TestGenerateMaskRespectsCircularBound(t *testing.T) {
	cfg := testConfig(t)
	n := cfg.Grid.Size
	c := float64(n) / 2
	r2 := cfg.Derived.BoundRadius * cfg.Derived.BoundRadius

	for seed := int64(0); seed < 20; seed++ {
		rng := rand.New(rand.NewSource(seed))
		m, _ := GenerateMask(rng, cfg)
		for gy := 0; gy < n; gy++ {
			for gx := 0; gx < n; gx++ {
				if !m.IsWound(gx, gy) {
					continue
				}
				dx := float64(gx) + 0.5 - c
				dy := float64(gy) + 0.5 - c
				if dx*dx+dy*dy > r2 {
					t.Fatalf("seed %d: wound cell (%d,%d) outside viewport bound", seed, gx, gy)
				}
			}
		}
	}
}

func TestMaskIsWoundOutOfRange(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(1))
	m, _ := GenerateMask(rng, cfg)

	probes := [][2]int{{-1, 0}, {0, -1}, {m.N, 0}, {0, m.N}, {-100, -100}, {m.N * 2, m.N * 2}}
	for _, p := range probes {
		if m.IsWound(p[0], p[1]) {
			t.Errorf("IsWound(%d,%d) = true for out-of-range index", p[0], p[1])
		}
	}
}

func TestFallbackTriggersOnImpossibleFloor(t *testing.T) {
	cfg := testConfig(t)
	cfg.Grid.MinLiveCells = cfg.Grid.Size * cfg.Grid.Size // unreachable

	rng := rand.New(rand.NewSource(5))
	m, stats := GenerateMask(rng, cfg)

	if !stats.Fallback {
		t.Fatal("expected fallback for unreachable live-cell floor")
	}
	if stats.Attempts != cfg.Grid.RetryCap {
		t.Errorf("attempts = %d, want retry cap %d", stats.Attempts, cfg.Grid.RetryCap)
	}
	if m.Live() == 0 {
		t.Error("fallback disc produced an empty mask")
	}

	// Fallback is deterministic: same grid params give the same mask.
	rng2 := rand.New(rand.NewSource(99))
	m2, _ := GenerateMask(rng2, cfg)
	if m.Live() != m2.Live() {
		t.Errorf("fallback masks differ: %d vs %d live cells", m.Live(), m2.Live())
	}
}

func TestMaskLiveMatchesScan(t *testing.T) {
	cfg := testConfig(t)
	rng := rand.New(rand.NewSource(42))
	m, _ := GenerateMask(rng, cfg)

	count := 0
	for gy := 0; gy < m.N; gy++ {
		for gx := 0; gx < m.N; gx++ {
			if m.IsWound(gx, gy) {
				count++
			}
		}
	}
	if count != m.Live() {
		t.Errorf("Live() = %d, scan found %d", m.Live(), count)
	}
}

func BenchmarkGenerateMask(b *testing.B) {
	cfg := testConfig(b)
	rng := rand.New(rand.NewSource(1))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		GenerateMask(rng, cfg)
	}
}
