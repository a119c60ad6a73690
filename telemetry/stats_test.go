package telemetry

import (
	"math"
	"testing"
)

func TestComputeEnergyStats(t *testing.T) {
	values := []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0}
	mean, p10, p50, p90 := ComputeEnergyStats(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if !(p10 <= p50 && p50 <= p90) {
		t.Errorf("expected p10 <= p50 <= p90, got %v %v %v", p10, p50, p90)
	}
	if p10 < values[0] || p90 > values[len(values)-1] {
		t.Errorf("percentiles out of sample range: p10=%v p90=%v", p10, p90)
	}
}

func TestComputeEnergyStatsEmpty(t *testing.T) {
	mean, p10, p50, p90 := ComputeEnergyStats([]float64{})
	if mean != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}
}
