package telemetry

// Collector accumulates per-frame events within a time window and produces
// a WindowStats when the window closes (spec.md "Telemetry and CSV export").
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	windowStartTick int32

	births       int
	deaths       int
	vampireKills int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds.
// dt: seconds per tick (used for tick-to-time conversion).
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	ticksPerWindow := int32(windowDurationSec / float64(dt))
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}
	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
}

// RecordBirth records one staged spawn.
func (c *Collector) RecordBirth() { c.births++ }

// RecordDeath records one natural death.
func (c *Collector) RecordDeath() { c.deaths++ }

// RecordVampireKill records one vampire predation kill.
func (c *Collector) RecordVampireKill() { c.vampireKills++ }

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PopulationSample is the per-agent data the caller gathers once per flush.
type PopulationSample struct {
	Energies    []float64
	Generations []uint32
	BodySizes   []float64
}

// GridTotals holds the per-channel grid sums for conservation tracking.
type GridTotals struct {
	Alpha, Beta, Gamma float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, aliveCount int, sample PopulationSample, totals GridTotals) WindowStats {
	energyMean, p10, p50, p90 := ComputeEnergyStats(sample.Energies)

	var genSum float64
	var genMax uint32
	for _, g := range sample.Generations {
		genSum += float64(g)
		if g > genMax {
			genMax = g
		}
	}
	genMean := 0.0
	if len(sample.Generations) > 0 {
		genMean = genSum / float64(len(sample.Generations))
	}

	var bodySum float64
	for _, b := range sample.BodySizes {
		bodySum += b
	}
	bodyMean := 0.0
	if len(sample.BodySizes) > 0 {
		bodyMean = bodySum / float64(len(sample.BodySizes))
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		AliveCount:   aliveCount,
		Births:       c.births,
		Deaths:       c.deaths,
		VampireKills: c.vampireKills,

		EnergyMean: energyMean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		GenerationMean: genMean,
		GenerationMax:  genMax,
		BodySizeMean:   bodyMean,

		TotalAlpha: totals.Alpha,
		TotalBeta:  totals.Beta,
		TotalGamma: totals.Gamma,
	}

	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.vampireKills = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
