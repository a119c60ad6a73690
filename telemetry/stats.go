package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window (spec.md
// "Telemetry and CSV export").
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	AliveCount int `csv:"alive"`
	Births     int `csv:"births"`
	Deaths     int `csv:"deaths"`
	VampireKills int `csv:"vampire_kills"`

	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	GenerationMean float64 `csv:"generation_mean"`
	GenerationMax  uint32  `csv:"generation_max"`

	BodySizeMean float64 `csv:"body_size_mean"`

	TotalAlpha float64 `csv:"total_alpha"`
	TotalBeta  float64 `csv:"total_beta"`
	TotalGamma float64 `csv:"total_gamma"`
}

// ComputeEnergyStats calculates mean and percentiles from energy values
// using gonum/stat (sample must be sorted ascending for Quantile).
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = stat.Quantile(0.10, stat.Empirical, sorted, nil)
	p50 = stat.Quantile(0.50, stat.Empirical, sorted, nil)
	p90 = stat.Quantile(0.90, stat.Empirical, sorted, nil)
	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.AliveCount),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("vampire_kills", s.VampireKills),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("generation_mean", s.GenerationMean),
		slog.Int("generation_max", int(s.GenerationMax)),
		slog.Float64("body_size_mean", s.BodySizeMean),
		slog.Float64("total_alpha", s.TotalAlpha),
		slog.Float64("total_beta", s.TotalBeta),
		slog.Float64("total_gamma", s.TotalGamma),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
