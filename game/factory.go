package game

import (
	"math"
	"math/rand"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
	"github.com/lumenark/vitae/genome"
)

// RandomGenome fills a fresh genome buffer with uniformly random symbols
// (spec.md §4.7 "Initial population": agents are seeded from random
// genomes, not hand-authored ones).
func RandomGenome(rng *rand.Rand) [components.GenomeBytes]components.GenomeSymbol {
	var g [components.GenomeBytes]components.GenomeSymbol
	symbols := [4]byte{components.SymA, components.SymC, components.SymG, components.SymU}
	for i := range g {
		g[i] = symbols[rng.Intn(4)]
	}
	return g
}

// deriveColor assigns a stable per-agent display color from the genome's
// first few bytes, so trail deposition and agent-color sensors have
// something to key off without a dedicated "color gene" in the taxonomy.
func deriveColor(g *[components.GenomeBytes]components.GenomeSymbol) (r, g2, b float32) {
	var sum [3]uint32
	for i, s := range g {
		sum[i%3] += uint32(s)
	}
	return float32(sum[0]%255) / 255, float32(sum[1]%255) / 255, float32(sum[2]%255) / 255
}

// NewRandomAgent builds one viable agent from a fresh random genome,
// retrying until translation yields a non-empty body (spec.md §4.1
// "Translation"). Returns false if no viable genome was found within the
// retry budget (pathological configuration only).
func NewRandomAgent(rng *rand.Rand, cfg *config.Config, simSize float32) (components.Agent, bool) {
	const maxAttempts = 64
	repro := &cfg.Reproduction

	for attempt := 0; attempt < maxAttempts; attempt++ {
		g := RandomGenome(rng)
		parts, viable := genome.Translate(&g, genome.Rules{
			RequireStartCodon: repro.RequireStartCodon,
			IgnoreStopCodons:  repro.IgnoreStopCodons,
		})
		if !viable {
			continue
		}

		var a components.Agent
		a.ID = rng.Uint64()
		a.Alive = true
		a.Genome = g
		a.GeneLength = components.ActiveGenomeLength(&g)
		a.BodyCount = int32(len(parts))
		copy(a.Body[:], parts)
		a.PosX = rng.Float32() * simSize
		a.PosY = rng.Float32() * simSize
		a.Rotation = rng.Float32() * 2 * math.Pi
		a.Energy = float32(cfg.Energy.EnergyCost) * 50
		a.ColorR, a.ColorG, a.ColorB = deriveColor(&g)
		return a, true
	}
	return components.Agent{}, false
}

// SpawnInitialPopulation fills the first half of a ping-pong buffer with
// freshly translated random agents (spec.md §5 "process startup").
func SpawnInitialPopulation(out []components.Agent, count int, rng *rand.Rand, cfg *config.Config, simSize float32) int {
	spawned := 0
	for i := 0; i < count && spawned < len(out); i++ {
		a, ok := NewRandomAgent(rng, cfg, simSize)
		if !ok {
			continue
		}
		out[spawned] = a
		spawned++
	}
	return spawned
}
