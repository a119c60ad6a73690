package systems

import (
	"math"
	"math/rand"
	"sync/atomic"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
	"github.com/lumenark/vitae/genome"
)

// SpawnStaging is the fixed-capacity append buffer children are written
// into during the parallel per-agent pass, claimed with a single atomic
// cursor (spec.md §4.7 "Spawn merging and compaction": "merge_agents").
type SpawnStaging struct {
	counter atomic.Int32
	buf     [components.MaxSpawnsPerFrame]components.Agent
}

// NewSpawnStaging allocates an empty staging buffer.
func NewSpawnStaging() *SpawnStaging { return &SpawnStaging{} }

// Reset clears the staging cursor for the next frame.
func (s *SpawnStaging) Reset() { s.counter.Store(0) }

// Stage reserves the next slot and copies child into it. Returns false
// if the per-frame cap was already reached (back-pressure, spec.md §5).
func (s *SpawnStaging) Stage(child components.Agent) bool {
	i := s.counter.Add(1) - 1
	if i >= components.MaxSpawnsPerFrame {
		return false
	}
	s.buf[i] = child
	return true
}

// Count returns the number of children staged so far this frame.
func (s *SpawnStaging) Count() int {
	n := int(s.counter.Load())
	if n > components.MaxSpawnsPerFrame {
		n = components.MaxSpawnsPerFrame
	}
	return n
}

// PairingAndReproduce advances the agent's pairing counter with
// probability scaled by its energy and local beta exposure, paying
// pairing_cost each successful step; when the counter reaches the
// agent's gene length a child is staged (spec.md §4.7 "Pairing counter",
// "Reproduction").
func PairingAndReproduce(a *components.Agent, betaLocal float32, repro *config.ReproductionConfig, energy *config.EnergyConfig, rng *rand.Rand, staging *SpawnStaging) {
	if !a.IsViable() {
		return
	}

	prob := float32(repro.SpawnProbability) * float32(math.Sqrt(float64(a.Energy+1))) * 0.1 *
		1 / (1 + betaLocal) * float32(math.Pow(0.5, float64(a.PoisonResistantCnt)))

	if rng.Float32() >= prob {
		return
	}

	a.PairingCounter++
	a.Energy -= float32(energy.PairingCost)

	if a.PairingCounter < a.GeneLength {
		return
	}
	a.PairingCounter = 0

	var childGenome [components.GenomeBytes]components.GenomeSymbol
	if repro.Mode == config.ModeAsexual {
		childGenome = genome.Copy(&a.Genome)
	} else {
		childGenome = genome.ReverseComplement(&a.Genome)
	}

	betaNormalized := (betaLocal + 1) / 2
	genome.Mutate(&childGenome, genome.MutationParams{
		BaseRate:       float32(repro.MutationRate),
		BetaNormalized: betaNormalized,
	}, rng)

	childEnergy := a.Energy * 0.5
	a.Energy -= childEnergy

	child := components.Agent{
		PosX:       a.PosX,
		PosY:       a.PosY,
		Rotation:   rng.Float32() * 2 * math.Pi,
		Alive:      true,
		Generation: a.Generation + 1,
		Energy:     childEnergy,
		ID:         rng.Uint64(),
		Genome:     childGenome,
		ColorR:     a.ColorR,
		ColorG:     a.ColorG,
		ColorB:     a.ColorB,
	}
	child.GeneLength = components.ActiveGenomeLength(&child.Genome)

	parts, viable := genome.Translate(&child.Genome, genome.Rules{
		RequireStartCodon: repro.RequireStartCodon,
		IgnoreStopCodons:  repro.IgnoreStopCodons,
	})
	if !viable {
		return
	}
	child.BodyCount = int32(len(parts))
	copy(child.Body[:], parts)

	staging.Stage(child)
}

// Death applies the per-frame Bernoulli death trial. On death a fixed
// total of 1.0 is split equally across its parts' world cells, each
// share deposited as alpha or beta by a coin flip (independent of the
// agent's remaining energy), and it is marked dead (spec.md §4.7
// "Death").
func Death(a *components.Agent, energy *config.EnergyConfig, grids *components.Grids, simSize float32, rng *rand.Rand) bool {
	denom := a.Energy
	if denom < 0.01 {
		denom = 0.01
	}
	prob := float32(energy.DeathProbability) / denom
	if rng.Float32() >= prob {
		return false
	}

	n := int(a.BodyCount)
	if n > 0 {
		share := 1.0 / float32(n)
		for i := 0; i < n; i++ {
			part := &a.Body[i]
			wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
			x, y := grids.CellOf(wx, wy, simSize)
			idx := grids.Idx(x, y)
			if rng.Float32() < 0.5 {
				grids.Alpha[idx] = components.Clamp01(grids.Alpha[idx] + share)
			} else {
				grids.Beta[idx] = components.Clamp01(grids.Beta[idx] + share)
			}
		}
	}

	a.Alive = false
	return true
}

// TransferSelection moves the selected flag from a dying agent to a
// random alive neighbor in agents, if one exists (spec.md §4.7 "Death":
// "selection is transferred to a random alive neighbor index").
func TransferSelection(agents []components.Agent, deadIdx int, rng *rand.Rand) {
	if !agents[deadIdx].Selected {
		return
	}
	agents[deadIdx].Selected = false

	candidates := make([]int, 0, 8)
	for i := range agents {
		if i != deadIdx && agents[i].Alive {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	agents[candidates[rng.Intn(len(candidates))]].Selected = true
}

// CompactAndMerge packs living agents from input into a contiguous
// prefix of output, appends every staged spawn after them, and zeroes
// the remainder (spec.md §4.7 "compact_agents", "merge_agents",
// "initialize_dead_agents"). Returns the new alive count.
func CompactAndMerge(input []components.Agent, output []components.Agent, staging *SpawnStaging) int {
	cursor := 0
	for i := range input {
		if input[i].Alive {
			if cursor < len(output) {
				output[cursor] = input[i]
			}
			cursor++
		}
	}

	staged := staging.Count()
	for i := 0; i < staged && cursor < len(output); i++ {
		output[cursor] = staging.buf[i]
		cursor++
	}

	if cursor > len(output) {
		cursor = len(output)
	}
	for i := cursor; i < len(output); i++ {
		output[i].Reset()
	}

	staging.Reset()
	return cursor
}
