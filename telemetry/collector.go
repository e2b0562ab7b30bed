package telemetry

// Collector accumulates session events within time windows and produces
// WindowStats on flush.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	windowStartTick int32

	// Event counters for the current window
	depositTicks int
	emitted      int
	impacts      int
	droppedBase  int // pool dropped total at window start
}

// NewCollector creates a stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick.
func NewCollector(windowDurationSec, dt float64) *Collector {
	// Round, not truncate: 5.0 / (1.0/60) lands just below 300.
	ticksPerWindow := int32(windowDurationSec/dt + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordDepositTick records a tick on which spraying changed the grid.
func (c *Collector) RecordDepositTick() {
	c.depositTicks++
}

// RecordEmitted records droplets activated this tick.
func (c *Collector) RecordEmitted(n int) {
	c.emitted += n
}

// RecordImpacts records droplets that hit the plane this tick.
func (c *Collector) RecordImpacts(n int) {
	c.impacts += n
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// SessionSample holds the session state sampled at window end.
type SessionSample struct {
	Phase          string
	CoveragePct    float64
	SaturatedCells int
	LiveCells      int
	CellValues     []float64 // per-cell saturation over wound cells; consumed
	ActiveDroplets int
	DroppedTotal   int // cumulative pool drop count
	Intensity      int
	Material       int
}

// Flush produces a WindowStats from the accumulated counters and the given
// end-of-window sample, then resets for the next window.
func (c *Collector) Flush(currentTick int32, sample SessionSample) WindowStats {
	mean, p10, p50, p90 := ComputeCellStats(sample.CellValues)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * c.dt,

		Phase: sample.Phase,

		CoveragePct:    sample.CoveragePct,
		SaturatedCells: sample.SaturatedCells,
		LiveCells:      sample.LiveCells,

		CellMean: mean,
		CellP10:  p10,
		CellP50:  p50,
		CellP90:  p90,

		DepositTicks: c.depositTicks,
		Emitted:      c.emitted,
		Impacts:      c.impacts,
		Dropped:      sample.DroppedTotal - c.droppedBase,

		ActiveDroplets: sample.ActiveDroplets,
		Intensity:      sample.Intensity,
		Material:       sample.Material,
	}

	c.windowStartTick = currentTick
	c.depositTicks = 0
	c.emitted = 0
	c.impacts = 0
	c.droppedBase = sample.DroppedTotal

	return stats
}

// Reset clears all counters and restarts the window at the given tick.
func (c *Collector) Reset(currentTick int32) {
	c.windowStartTick = currentTick
	c.depositTicks = 0
	c.emitted = 0
	c.impacts = 0
	c.droppedBase = 0
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
