package telemetry

import (
	"math"
	"testing"
)

func TestComputeCellStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeCellStats(nil)
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty input should produce zeros")
	}
}

func TestComputeCellStatsUniform(t *testing.T) {
	vals := make([]float64, 100)
	for i := range vals {
		vals[i] = 0.5
	}
	mean, p10, p50, p90 := ComputeCellStats(vals)
	for _, v := range []float64{mean, p10, p50, p90} {
		if math.Abs(v-0.5) > 1e-12 {
			t.Errorf("uniform stat = %f, want 0.5", v)
		}
	}
}

func TestComputeCellStatsOrdering(t *testing.T) {
	vals := make([]float64, 1000)
	for i := range vals {
		vals[i] = float64(i) / 999
	}
	mean, p10, p50, p90 := ComputeCellStats(vals)

	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("percentiles out of order: p10=%f p50=%f p90=%f", p10, p50, p90)
	}
	if math.Abs(mean-0.5) > 0.01 {
		t.Errorf("mean = %f, want ~0.5", mean)
	}
	if math.Abs(p50-0.5) > 0.01 {
		t.Errorf("p50 = %f, want ~0.5", p50)
	}
	if p10 > 0.12 || p90 < 0.88 {
		t.Errorf("tail percentiles off: p10=%f p90=%f", p10, p90)
	}
}
