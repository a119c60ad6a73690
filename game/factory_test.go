package game

import (
	"math/rand"
	"testing"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

func TestNewRandomAgentProducesViableBody(t *testing.T) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(1))

	a, ok := NewRandomAgent(rng, cfg, float32(cfg.World.SimSize))
	if !ok {
		t.Fatal("expected at least one viable genome within the retry budget")
	}
	if a.BodyCount == 0 {
		t.Fatal("a viable agent should have a non-empty body")
	}
	if !a.Alive {
		t.Fatal("a newly spawned agent should be alive")
	}
	if a.PosX < 0 || a.PosX >= float32(cfg.World.SimSize) {
		t.Fatalf("PosX %v should fall within [0, sim_size)", a.PosX)
	}
}

func TestSpawnInitialPopulationFillsUpToCount(t *testing.T) {
	cfg := config.Cfg()
	rng := rand.New(rand.NewSource(2))
	out := make([]components.Agent, 50)

	n := SpawnInitialPopulation(out, 10, rng, cfg, float32(cfg.World.SimSize))

	if n != 10 {
		t.Fatalf("expected 10 agents spawned, got %d", n)
	}
	for i := 0; i < n; i++ {
		if !out[i].Alive {
			t.Fatalf("spawned slot %d should be alive", i)
		}
	}
	for i := n; i < len(out); i++ {
		if out[i].Alive {
			t.Fatalf("unspawned slot %d should remain zeroed", i)
		}
	}
}

func TestRandomGenomeUsesOnlyRNASymbols(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := RandomGenome(rng)
	valid := map[byte]bool{
		components.SymA: true, components.SymC: true,
		components.SymG: true, components.SymU: true,
	}
	for i, s := range g {
		if !valid[byte(s)] {
			t.Fatalf("genome[%d] = %v is not one of the 4 RNA symbols", i, s)
		}
	}
}
