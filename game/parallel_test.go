package game

import (
	"testing"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/systems"
)

func TestCollectNeighborsFindsNearbyLiveAgent(t *testing.T) {
	g := NewGame()
	defer g.Close()

	simSize := float32(g.cfg.World.SimSize)
	agents := g.agents[g.active]
	agents[0] = components.Agent{Alive: true, BodyCount: 1, PosX: 100, PosY: 100, TotalMass: 1}
	agents[1] = components.Agent{Alive: true, BodyCount: 1, PosX: 105, PosY: 100, TotalMass: 1}
	g.alive = 2

	g.hash.Clear()
	systems.PopulateAll(g.hash, agents[:2], simSize)

	scratch := &g.parallel.scratches[0]
	g.collectNeighbors(0, scratch)

	if len(scratch.physNeigh) == 0 {
		t.Fatal("expected agent 1 to be found as a physics neighbor of agent 0")
	}
}

func TestProcessOneAgentSkipsDeadOrBodylessAgents(t *testing.T) {
	g := NewGame()
	defer g.Close()

	agents := g.agents[g.active]
	agents[0] = components.Agent{Alive: false}
	scratch := &g.parallel.scratches[0]

	// Should return immediately without panicking on a zeroed/dead agent.
	g.processOneAgent(0, scratch)

	if agents[0].Alive {
		t.Fatal("a dead agent should stay dead after processOneAgent")
	}
}

func TestProcessAgentsHandlesZeroCount(t *testing.T) {
	g := NewGame()
	defer g.Close()
	g.processAgents(0) // must not panic or deadlock
}
