package telemetry

import (
	"testing"
)

func TestCollectorWindowBoundary(t *testing.T) {
	c := NewCollector(5.0, 1.0/60)

	if c.WindowDurationTicks() != 300 {
		t.Errorf("window ticks = %d, want 300", c.WindowDurationTicks())
	}
	if c.ShouldFlush(299) {
		t.Error("flush triggered before window boundary")
	}
	if !c.ShouldFlush(300) {
		t.Error("flush not triggered at window boundary")
	}
}

func TestCollectorFlushResetsCounters(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)

	c.RecordDepositTick()
	c.RecordDepositTick()
	c.RecordEmitted(30)
	c.RecordImpacts(12)

	stats := c.Flush(60, SessionSample{
		Phase:          "playing",
		CoveragePct:    42.5,
		SaturatedCells: 100,
		LiveCells:      2500,
		CellValues:     []float64{0.2, 0.4, 0.6, 0.8},
		ActiveDroplets: 50,
		DroppedTotal:   7,
		Intensity:      3,
		Material:       1,
	})

	if stats.DepositTicks != 2 || stats.Emitted != 30 || stats.Impacts != 12 {
		t.Errorf("counters = %d/%d/%d, want 2/30/12",
			stats.DepositTicks, stats.Emitted, stats.Impacts)
	}
	if stats.Dropped != 7 {
		t.Errorf("dropped = %d, want 7", stats.Dropped)
	}
	if stats.Phase != "playing" || stats.CoveragePct != 42.5 {
		t.Error("sample fields not carried into stats")
	}
	if stats.WindowStartTick != 0 || stats.WindowEndTick != 60 {
		t.Errorf("window = [%d,%d], want [0,60]", stats.WindowStartTick, stats.WindowEndTick)
	}
	if stats.SimTimeSec != 1.0 {
		t.Errorf("sim time = %f, want 1.0", stats.SimTimeSec)
	}

	// Next window starts clean; dropped is the delta from the base.
	stats = c.Flush(120, SessionSample{DroppedTotal: 10})
	if stats.DepositTicks != 0 || stats.Emitted != 0 || stats.Impacts != 0 {
		t.Error("counters survived the flush")
	}
	if stats.Dropped != 3 {
		t.Errorf("second window dropped = %d, want delta 3", stats.Dropped)
	}
	if stats.WindowStartTick != 60 {
		t.Errorf("window start = %d, want 60", stats.WindowStartTick)
	}
}

func TestCollectorReset(t *testing.T) {
	c := NewCollector(1.0, 1.0/60)
	c.RecordEmitted(10)
	c.RecordImpacts(5)
	c.RecordDepositTick()
	c.Flush(60, SessionSample{DroppedTotal: 7})

	c.Reset(500)

	// The pool's drop counter restarts at zero on a session reset, so the
	// collector's baseline must too.
	stats := c.Flush(560, SessionSample{DroppedTotal: 2})
	if stats.Emitted != 0 || stats.Impacts != 0 || stats.DepositTicks != 0 {
		t.Error("reset did not clear counters")
	}
	if stats.Dropped != 2 {
		t.Errorf("dropped after reset = %d, want 2", stats.Dropped)
	}
	if stats.WindowStartTick != 500 {
		t.Errorf("window start = %d, want 500", stats.WindowStartTick)
	}
}

func TestCollectorMinimumWindow(t *testing.T) {
	c := NewCollector(0.001, 1.0/60)
	if c.WindowDurationTicks() != 1 {
		t.Errorf("tiny window ticks = %d, want clamp to 1", c.WindowDurationTicks())
	}
}
