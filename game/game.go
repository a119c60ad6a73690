// Package game implements the fixed-step simulation pipeline: a
// ping-pong population buffer driven through spatial hashing, vampire
// predation, the per-agent compute pass, environment diffusion and
// rain, and end-of-frame compaction (spec.md §4 "Per-frame pipeline",
// §5 "Scheduling").
package game

import (
	"fmt"
	"math/rand"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
	"github.com/lumenark/vitae/systems"
	"github.com/lumenark/vitae/telemetry"
)

// Options configures game behavior.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	SnapshotDir    string
	Headless       bool
}

// Game holds the complete simulation state: the ping-pong agent arrays,
// the environment grids, and the scheduling/telemetry machinery that
// drives them one tick at a time.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// agents is the ping-pong population buffer (spec.md §4.7 "compaction
	// swaps the active buffer"); active selects which half is live.
	agents [2][]components.Agent
	active int
	alive  int

	grids    *components.Grids
	hash     *systems.SpatialHash
	staging  *systems.SpawnStaging
	rain     *systems.RainField
	parallel *parallelState

	tick     int32
	paused   bool
	speed    int
	headless bool

	perfCollector *telemetry.PerfCollector
	collector     *telemetry.Collector
	outputs       *telemetry.OutputManager
	logStats      bool
	snapshotDir   string
	rngSeed       int64
}

// NewGame creates a new game instance with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{
		Seed:           42,
		LogStats:       false,
		StatsWindowSec: 10.0,
	})
}

// NewGameWithOptions creates a new game instance with the given options,
// allocates the environment grids and ping-pong agent arrays, and spawns
// the initial population from random genomes.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()
	simSize := float32(cfg.World.SimSize)

	g := &Game{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(opts.Seed)),
		speed:    1,
		headless: opts.Headless,

		grids:   components.NewGrids(cfg.World.EnvGridSize),
		hash:    systems.NewSpatialHash(cfg.World.SpatialGridSize),
		staging: systems.NewSpawnStaging(),
		rain:    systems.NewRainField(opts.Seed, &cfg.Environment),

		logStats:    opts.LogStats,
		snapshotDir: opts.SnapshotDir,
		rngSeed:     opts.Seed,
	}

	g.parallel = newParallelState(opts.Seed)

	maxAgents := cfg.Runtime.MaxAgents
	g.agents[0] = make([]components.Agent, maxAgents)
	g.agents[1] = make([]components.Agent, maxAgents)

	g.collector = telemetry.NewCollector(opts.StatsWindowSec, cfg.Derived.DT32)
	g.perfCollector = telemetry.NewPerfCollector(600)

	g.alive = SpawnInitialPopulation(g.agents[0], cfg.Runtime.AgentCount, g.rng, cfg, simSize)

	return g
}

// SetOutputManager attaches a CSV/config output sink; pass nil to disable
// file output (e.g. a pure in-memory test run).
func (g *Game) SetOutputManager(om *telemetry.OutputManager) {
	g.outputs = om
	if om != nil {
		_ = om.WriteConfig(g.cfg)
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 { return g.tick }

// AliveCount returns the number of live agents in the active buffer.
func (g *Game) AliveCount() int { return g.alive }

// Grids returns the environment grids, for rendering or inspection. The
// pipeline mutates these in place every Step; callers needing a stable
// snapshot must copy.
func (g *Game) Grids() *components.Grids { return g.grids }

// Agents returns the live prefix of the active buffer, for rendering or
// inspection. Callers must not retain the slice across a Step call: the
// active buffer is swapped every frame.
func (g *Game) Agents() []components.Agent {
	return g.agents[g.active][:g.alive]
}

// SetPaused toggles whether Update advances the simulation.
func (g *Game) SetPaused(p bool) { g.paused = p }

// Paused reports whether the simulation is currently paused.
func (g *Game) Paused() bool { return g.paused }

// SetSpeed sets the number of simulation ticks run per Update call.
func (g *Game) SetSpeed(speed int) {
	if speed < 1 {
		speed = 1
	}
	g.speed = speed
}

// Speed returns the number of simulation ticks run per Update call.
func (g *Game) Speed() int { return g.speed }

// Update runs g.speed simulation ticks, unless paused.
func (g *Game) Update() {
	if g.paused {
		return
	}
	for i := 0; i < g.speed; i++ {
		g.Step()
	}
}

// Step runs a single simulation tick: spatial hash rebuild, vampire
// predation, the parallel per-agent pass, environment diffusion and
// rain, compaction, and telemetry (spec.md §4, the "C1-C12" pipeline).
func (g *Game) Step() {
	cfg := g.cfg
	simSize := float32(cfg.World.SimSize)

	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseSpatialHash)
	active := g.agents[g.active][:g.alive]
	g.hash.Clear()
	systems.PopulateAll(g.hash, active, simSize)

	g.perfCollector.StartPhase(telemetry.PhaseVampireDrain)
	systems.DrainEnergy(active, g.hash, g.grids, simSize, &cfg.Energy)

	g.perfCollector.StartPhase(telemetry.PhaseProcessAgents)
	g.processAgents(g.alive)

	g.perfCollector.StartPhase(telemetry.PhaseEnvironment)
	g.updateEnvironment()

	g.perfCollector.StartPhase(telemetry.PhaseCompaction)
	g.compact()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
	g.tick++
}

// updateEnvironment runs the shared-grid diffusion/advection/rain passes
// (spec.md §4.6 "Environment update").
func (g *Game) updateEnvironment() {
	cfg := g.cfg
	systems.DiffuseGrids(g.grids, &cfg.Environment)

	windX := float32(cfg.Wind.Power * cfg.Wind.DirX)
	windY := float32(cfg.Wind.Power * cfg.Wind.DirY)
	systems.ComputeGammaSlope(g.grids, &cfg.Environment, windX, windY)

	systems.DiffuseTrails(g.grids, &cfg.Trails)

	simTime := float64(g.tick) * cfg.Physics.DT
	g.rain.Update(g.grids, simTime)
	systems.Rain(g.grids, &cfg.Environment, g.rng)
}

// compact packs the surviving agents and this frame's staged spawns into
// the other half of the ping-pong buffer, then swaps (spec.md §4.7
// "compact_agents", "merge_agents").
func (g *Game) compact() {
	births := g.staging.Count()
	next := 1 - g.active
	g.alive = systems.CompactAndMerge(g.agents[g.active], g.agents[next], g.staging)
	g.active = next

	for i := 0; i < births; i++ {
		g.collector.RecordBirth()
	}
}

// flushTelemetry samples the live population and, once the configured
// window has elapsed, writes a telemetry row and optionally a
// selected-agent state snapshot.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	live := g.agents[g.active][:g.alive]
	sample := telemetry.PopulationSample{
		Energies:    make([]float64, len(live)),
		Generations: make([]uint32, len(live)),
		BodySizes:   make([]float64, len(live)),
	}
	var selected *components.Agent
	for i := range live {
		a := &live[i]
		sample.Energies[i] = float64(a.Energy)
		sample.Generations[i] = a.Generation
		sample.BodySizes[i] = float64(a.BodyCount)
		if a.Selected {
			selected = a
		}
	}

	totals := g.gridTotals()
	stats := g.collector.Flush(g.tick, g.alive, sample, totals)

	if g.logStats {
		stats.LogStats()
		g.perfCollector.Stats().LogStats()
		g.logWorldState()
		g.logPerfStats()
	}
	if g.outputs != nil {
		if err := g.outputs.WriteTelemetry(stats); err != nil {
			fmt.Println("telemetry write error:", err)
		}
		if err := g.outputs.WritePerf(g.perfCollector.Stats(), g.tick); err != nil {
			fmt.Println("perf write error:", err)
		}
	}

	if g.snapshotDir != "" && selected != nil {
		snap := telemetry.NewAgentSnapshot(g.tick, selected)
		if _, err := telemetry.SaveSnapshot(&snap, g.snapshotDir); err != nil {
			fmt.Println("snapshot write error:", err)
		}
	}
}

func (g *Game) gridTotals() telemetry.GridTotals {
	var totals telemetry.GridTotals
	for i := range g.grids.Alpha {
		totals.Alpha += float64(g.grids.Alpha[i])
		totals.Beta += float64(g.grids.Beta[i])
		totals.Gamma += float64(g.grids.Gamma[i])
	}
	return totals
}

// Close flushes and closes any attached output files.
func (g *Game) Close() error {
	if g.outputs == nil {
		return nil
	}
	return g.outputs.Close()
}
