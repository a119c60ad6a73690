package systems

import (
	"math/rand"
	"testing"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

func TestSpawnStagingRespectsCapacity(t *testing.T) {
	s := NewSpawnStaging()
	for i := 0; i < components.MaxSpawnsPerFrame; i++ {
		if !s.Stage(components.Agent{}) {
			t.Fatalf("stage %d should have succeeded within capacity", i)
		}
	}
	if s.Stage(components.Agent{}) {
		t.Fatal("staging beyond MaxSpawnsPerFrame should fail")
	}
	if s.Count() != components.MaxSpawnsPerFrame {
		t.Fatalf("Count() = %d, want %d", s.Count(), components.MaxSpawnsPerFrame)
	}
}

func TestSpawnStagingResetClearsCursor(t *testing.T) {
	s := NewSpawnStaging()
	s.Stage(components.Agent{})
	s.Reset()
	if s.Count() != 0 {
		t.Fatalf("Count() after Reset = %d, want 0", s.Count())
	}
}

func TestPairingAndReproduceSkipsNonViableAgent(t *testing.T) {
	a := &components.Agent{BodyCount: 0}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	rng := rand.New(rand.NewSource(1))
	staging := NewSpawnStaging()

	PairingAndReproduce(a, 0, &cfg.Reproduction, &cfg.Energy, rng, staging)

	if a.PairingCounter != 0 {
		t.Fatalf("a non-viable agent should never advance its pairing counter, got %d", a.PairingCounter)
	}
	if staging.Count() != 0 {
		t.Fatalf("a non-viable agent should never stage a child, got %d staged", staging.Count())
	}
}

func TestDeathDistributesEnergyAndMarksDead(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Energy.DeathProbability = 1000 // force the Bernoulli trial to fire
	a := &components.Agent{Alive: true, Energy: 10, BodyCount: 1}
	a.Body[0].Type = components.NewPartType(components.AminoA, 0)
	grids := components.NewGrids(4)
	rng := rand.New(rand.NewSource(1))

	died := Death(a, &cfg.Energy, grids, 40, rng)

	if !died {
		t.Fatal("expected death to fire with DeathProbability=1000")
	}
	if a.Alive {
		t.Fatal("agent should be marked dead")
	}
	idx := grids.Idx(0, 0)
	if got := grids.Alpha[idx] + grids.Beta[idx]; got != 1 {
		t.Fatalf("the single part's cell should receive the whole 1.0 deposit, got %v", got)
	}
}

func TestDeathNeverFiresWithZeroProbability(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	cfg.Energy.DeathProbability = 0
	a := &components.Agent{Alive: true, Energy: 10}
	grids := components.NewGrids(4)
	rng := rand.New(rand.NewSource(2))

	if Death(a, &cfg.Energy, grids, 40, rng) {
		t.Fatal("death should never fire with DeathProbability=0")
	}
	if !a.Alive {
		t.Fatal("agent should remain alive")
	}
}

func TestTransferSelectionMovesFlagToAliveNeighbor(t *testing.T) {
	agents := []components.Agent{
		{Alive: false, Selected: true},
		{Alive: true},
		{Alive: true},
	}
	rng := rand.New(rand.NewSource(3))
	TransferSelection(agents, 0, rng)

	if agents[0].Selected {
		t.Fatal("the dying agent should lose the selected flag")
	}
	if !agents[1].Selected && !agents[2].Selected {
		t.Fatal("selection should transfer to one of the alive agents")
	}
}

func TestCompactAndMergePacksAliveThenStagedThenZeroesRest(t *testing.T) {
	input := []components.Agent{
		{Alive: true, Energy: 1},
		{Alive: false, Energy: 2},
		{Alive: true, Energy: 3},
	}
	output := make([]components.Agent, 5)
	staging := NewSpawnStaging()
	staging.Stage(components.Agent{Alive: true, Energy: 9})

	n := CompactAndMerge(input, output, staging)

	if n != 3 {
		t.Fatalf("expected 2 live + 1 staged = 3, got %d", n)
	}
	if output[0].Energy != 1 || output[1].Energy != 3 || output[2].Energy != 9 {
		t.Fatalf("unexpected compacted order: %+v", output[:3])
	}
	for i := 3; i < len(output); i++ {
		if output[i].Alive {
			t.Fatalf("tail slot %d should be zeroed, got %+v", i, output[i])
		}
	}
	if staging.Count() != 0 {
		t.Fatal("CompactAndMerge should reset the staging buffer")
	}
}
