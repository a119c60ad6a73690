package game

import (
	"fmt"
	"io"
	"time"
)

// logWriter is the destination for log output.
var logWriter io.Writer

// SetLogWriter sets the log output destination.
func SetLogWriter(w io.Writer) {
	logWriter = w
}

// Logf writes a formatted plain-text log message; the structured slog
// events come from the telemetry package (spec.md "Telemetry and CSV
// export" ambient logging).
func Logf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if logWriter != nil {
		fmt.Fprintln(logWriter, msg)
	} else {
		fmt.Println(msg)
	}
}

// logPerfStats dumps the rolling per-phase timing breakdown.
func (g *Game) logPerfStats() {
	stats := g.perfCollector.Stats()
	Logf("=== Perf @ Tick %d (speed %dx) ===", g.tick, g.speed)
	Logf("Avg tick: %s  (%.0f ticks/sec)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond)
	for _, phase := range []string{"spatial_hash", "vampire_drain", "process_agents", "environment", "compaction", "telemetry"} {
		if pct, ok := stats.PhasePct[phase]; ok {
			Logf("  %-16s %10s  %5.1f%%", phase, stats.PhaseAvg[phase].Round(time.Microsecond), pct)
		}
	}
	Logf("")
}

// logWorldState dumps a human-readable snapshot of the live population.
func (g *Game) logWorldState() {
	live := g.agents[g.active][:g.alive]

	var energySum float64
	var genMax uint32
	var bodySum int

	for i := range live {
		a := &live[i]
		energySum += float64(a.Energy)
		bodySum += int(a.BodyCount)
		if a.Generation > genMax {
			genMax = a.Generation
		}
	}

	avgEnergy := 0.0
	avgBody := 0.0
	if len(live) > 0 {
		avgEnergy = energySum / float64(len(live))
		avgBody = float64(bodySum) / float64(len(live))
	}

	Logf("=== Tick %d ===", g.tick)
	Logf("Alive: %d  Avg energy: %.2f  Avg body parts: %.1f  Max generation: %d",
		len(live), avgEnergy, avgBody, genMax)
	Logf("")
}
