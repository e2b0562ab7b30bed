// Package telemetry provides windowed session statistics, CSV output, and
// performance tracking.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for one stats window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	Phase string `csv:"phase"`

	// Coverage state at window end
	CoveragePct    float64 `csv:"coverage_pct"`
	SaturatedCells int     `csv:"saturated_cells"`
	LiveCells      int     `csv:"live_cells"`

	// Per-cell saturation distribution over wound cells
	CellMean float64 `csv:"cell_mean"`
	CellP10  float64 `csv:"cell_p10"`
	CellP50  float64 `csv:"cell_p50"`
	CellP90  float64 `csv:"cell_p90"`

	// Activity during the window
	DepositTicks int `csv:"deposit_ticks"`
	Emitted      int `csv:"emitted"`
	Impacts      int `csv:"impacts"`
	Dropped      int `csv:"dropped"`

	// Droplet pool state at window end
	ActiveDroplets int `csv:"active_droplets"`

	// Input state at window end
	Intensity int `csv:"intensity"`
	Material  int `csv:"material"`
}

// ComputeCellStats calculates mean and percentiles of per-cell saturation.
// values is consumed (sorted in place).
func ComputeCellStats(values []float64) (mean, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0
	}
	mean = stat.Mean(values, nil)
	sort.Float64s(values)
	p10 = stat.Quantile(0.10, stat.Empirical, values, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, values, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, values, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.String("phase", s.Phase),
		slog.Float64("coverage_pct", s.CoveragePct),
		slog.Int("saturated_cells", s.SaturatedCells),
		slog.Int("live_cells", s.LiveCells),
		slog.Float64("cell_mean", s.CellMean),
		slog.Float64("cell_p10", s.CellP10),
		slog.Float64("cell_p50", s.CellP50),
		slog.Float64("cell_p90", s.CellP90),
		slog.Int("deposit_ticks", s.DepositTicks),
		slog.Int("emitted", s.Emitted),
		slog.Int("impacts", s.Impacts),
		slog.Int("dropped", s.Dropped),
		slog.Int("active_droplets", s.ActiveDroplets),
		slog.Int("intensity", s.Intensity),
		slog.Int("material", s.Material),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"phase", s.Phase,
		"coverage_pct", s.CoveragePct,
		"saturated_cells", s.SaturatedCells,
		"live_cells", s.LiveCells,
		"cell_mean", s.CellMean,
		"cell_p10", s.CellP10,
		"cell_p50", s.CellP50,
		"cell_p90", s.CellP90,
		"deposit_ticks", s.DepositTicks,
		"emitted", s.Emitted,
		"impacts", s.Impacts,
		"dropped", s.Dropped,
		"active_droplets", s.ActiveDroplets,
		"intensity", s.Intensity,
		"material", s.Material,
	)
}
