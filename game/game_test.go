package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/sealant/config"
	"github.com/pthm-cable/sealant/systems"
)

func TestHeadlessSoakReachesWin(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Session.WinThreshold = 3.0
	// Deterministic centered disc keeps the scripted sweep on wound tissue.
	cfg.Grid.MinLiveCells = cfg.Grid.Size * cfg.Grid.Size

	g := NewGameWithOptions(Options{
		Seed:           1,
		Headless:       true,
		StatsWindowSec: cfg.Telemetry.StatsWindow,
	})
	defer g.Unload()

	for i := 0; i < 60*120; i++ {
		g.UpdateHeadless()
		if g.Session().Phase() == systems.PhaseWon {
			break
		}
	}

	if g.Session().Phase() != systems.PhaseWon {
		t.Fatalf("scripted soak never won; coverage = %f", g.Session().CoveragePercent())
	}
	if g.Session().CoveragePercent() < cfg.Session.WinThreshold {
		t.Errorf("won at %f, below threshold %f",
			g.Session().CoveragePercent(), cfg.Session.WinThreshold)
	}
	if g.Session().Impacts() == 0 {
		t.Error("soak run produced no droplet impacts")
	}
}

func TestHeadlessCoverageIsMonotonic(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Grid.MinLiveCells = cfg.Grid.Size * cfg.Grid.Size

	g := NewGameWithOptions(Options{
		Seed:           2,
		Headless:       true,
		StatsWindowSec: cfg.Telemetry.StatsWindow,
	})
	defer g.Unload()

	prev := 0.0
	for i := 0; i < 600; i++ {
		g.UpdateHeadless()
		pct := g.Session().CoveragePercent()
		if pct < prev {
			t.Fatalf("coverage decreased at tick %d: %f -> %f", i, prev, pct)
		}
		prev = pct
	}
	if prev == 0 {
		t.Error("10 seconds of scripted spraying accrued nothing")
	}
}

func TestHeadlessOutputArtifacts(t *testing.T) {
	config.MustInit("")
	cfg := config.Cfg()
	cfg.Session.WinThreshold = 1.0
	cfg.Grid.MinLiveCells = cfg.Grid.Size * cfg.Grid.Size

	dir := t.TempDir()
	g := NewGameWithOptions(Options{
		Seed:           3,
		Headless:       true,
		StatsWindowSec: 1.0,
		OutputDir:      dir,
	})

	for i := 0; i < 60*30; i++ {
		g.UpdateHeadless()
		if g.Session().Phase() == systems.PhaseWon && g.Tick()%60 == 0 {
			break
		}
	}
	g.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatalf("telemetry.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		t.Errorf("telemetry.csv has %d lines, want header plus records", len(lines))
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("config.yaml snapshot missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "perf.csv")); err != nil {
		t.Errorf("perf.csv missing: %v", err)
	}

	if g.Session().Phase() == systems.PhaseWon {
		summary, err := os.ReadFile(filepath.Join(dir, "summary.json"))
		if err != nil {
			t.Fatalf("summary.json: %v", err)
		}
		if !strings.Contains(string(summary), "\"won\": true") {
			t.Errorf("summary does not record the win: %s", summary)
		}
	}
}
