package game

import (
	"log/slog"

	"github.com/pthm-cable/sealant/systems"
	"github.com/pthm-cable/sealant/telemetry"
)

// flushTelemetry flushes the stats window when due.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.sampleSession())
	perfStats := g.perfCollector.Stats()

	if g.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// sampleSession captures the session state for a window flush, including
// the per-cell saturation distribution over wound cells.
func (g *Game) sampleSession() telemetry.SessionSample {
	cov := g.session.Coverage()
	mask := cov.Mask()

	cells := make([]float64, 0, mask.Live())
	vals := cov.Values()
	for gy := 0; gy < mask.N; gy++ {
		for gx := 0; gx < mask.N; gx++ {
			if mask.IsWound(gx, gy) {
				cells = append(cells, float64(vals[mask.Index(gx, gy)]))
			}
		}
	}

	return telemetry.SessionSample{
		Phase:          g.session.Phase().String(),
		CoveragePct:    g.session.CoveragePercent(),
		SaturatedCells: cov.SaturatedCells(),
		LiveCells:      mask.Live(),
		CellValues:     cells,
		ActiveDroplets: g.session.Pool().ActiveCount(),
		DroppedTotal:   g.session.Pool().Dropped(),
		Intensity:      g.session.Intensity(),
		Material:       g.session.Material(),
	}
}

// maybeWriteSummary writes the session summary once per won session.
func (g *Game) maybeWriteSummary() {
	if g.summaryWritten || g.session.Phase() != systems.PhaseWon {
		return
	}
	g.summaryWritten = true

	mat := g.cfg.Materials[g.session.Material()]
	summary := telemetry.SessionSummary{
		Seed:           g.opts.Seed,
		Phase:          g.session.Phase().String(),
		Won:            true,
		ElapsedSec:     g.session.Elapsed(),
		CoveragePct:    g.session.CoveragePercent(),
		LiveCells:      g.session.Mask().Live(),
		SaturatedCells: g.session.Coverage().SaturatedCells(),
		Impacts:        g.session.Impacts(),
		Emitted:        g.session.EmittedTotal(),
		Dropped:        g.session.Pool().Dropped(),
		DepositTicks:   g.session.DepositTicks(),
		Intensity:      g.session.Intensity(),
		Material:       mat.Name,
		Ticks:          g.tick,
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteSummary(summary); err != nil {
			slog.Error("failed to write summary", "error", err)
		}
	}
}
