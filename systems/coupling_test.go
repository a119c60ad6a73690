package systems

import (
	"testing"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

func testEnergyConfig(t *testing.T) *config.EnergyConfig {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load(\"\"): %v", err)
	}
	return &cfg.Energy
}

func TestCountEnablersClampsToOne(t *testing.T) {
	a := &components.Agent{BodyCount: 3}
	for i := 0; i < 3; i++ {
		a.Body[i].Type = components.NewPartType(components.OrganEnabler, 0)
	}
	if got := CountEnablers(a); got != 1 {
		t.Fatalf("CountEnablers with 3 enablers = %v, want 1 (clamped)", got)
	}
}

func TestCountEnablersZeroWithNone(t *testing.T) {
	a := &components.Agent{BodyCount: 1}
	a.Body[0].Type = components.NewPartType(components.AminoA, 0)
	if got := CountEnablers(a); got != 0 {
		t.Fatalf("CountEnablers with no enablers = %v, want 0", got)
	}
}

func TestMouthAbsorbSkipsFirstFrame(t *testing.T) {
	a := &components.Agent{BodyCount: 1}
	a.Body[0].Type = components.NewPartType(components.OrganMouth, 0)
	grids := components.NewGrids(4)
	idx := grids.Idx(0, 0)
	grids.Alpha[idx] = 1.0

	MouthAbsorb(a, grids, 40, testEnergyConfig(t), 3.0)

	if a.Energy != 0 {
		t.Fatalf("first call should only record mouth position, not absorb; got Energy=%v", a.Energy)
	}
	if grids.Alpha[idx] != 1.0 {
		t.Fatalf("grid should be untouched on the skip frame, got %v", grids.Alpha[idx])
	}
}

func TestMouthAbsorbConsumesAlphaOnSecondFrame(t *testing.T) {
	// Placed off the origin (still in cell 0,0): a previous position within
	// one unit of the origin always reads as "not yet recorded".
	a := &components.Agent{BodyCount: 1, PosX: 5, PosY: 5}
	a.Body[0].Type = components.NewPartType(components.OrganMouth, 0)
	grids := components.NewGrids(4)
	idx := grids.Idx(0, 0)
	grids.Alpha[idx] = 1.0

	energyCfg := testEnergyConfig(t)
	MouthAbsorb(a, grids, 40, energyCfg, 3.0) // records prev pos, no-op

	// A mouth with no enabler has zero global mouth activity, so absorption
	// this pass is legitimately zero too; add an enabler to get nonzero draw.
	a.BodyCount = 2
	a.Body[1].Type = components.NewPartType(components.OrganEnabler, 0)

	MouthAbsorb(a, grids, 40, energyCfg, 3.0)

	if grids.Alpha[idx] >= 1.0 {
		t.Fatalf("expected some alpha to be absorbed once an enabler is present, got %v", grids.Alpha[idx])
	}
	if a.Energy <= 0 {
		t.Fatalf("expected positive energy gain from absorbing food, got %v", a.Energy)
	}
}

func TestDepositTrailAccumulatesEnergyTrail(t *testing.T) {
	a := &components.Agent{BodyCount: 1, Energy: 10, ColorR: 1}
	grids := components.NewGrids(4)
	DepositTrail(a, grids, 40, 0.5)

	idx := grids.Idx(0, 0)
	if grids.TrailE[idx] <= 0 {
		t.Fatalf("expected positive trail energy deposit, got %v", grids.TrailE[idx])
	}
	if grids.TrailR[idx] <= 0 {
		t.Fatalf("expected trail color to shift toward agent color, got %v", grids.TrailR[idx])
	}
}

func TestDrainEnergyTransfersFromNearbyVictim(t *testing.T) {
	energyCfg := testEnergyConfig(t)
	simSize := float32(40)
	hash := NewSpatialHash(8)
	hash.Clear()

	agents := []components.Agent{
		{Alive: true, PosX: 0, PosY: 0, Energy: 0, BodyCount: 2},
		{Alive: true, PosX: 1, PosY: 1, Energy: 50, BodyCount: 0},
	}
	agents[0].Body[0].Type = components.NewPartType(components.OrganVampireMouth, 0)
	agents[0].Body[1].Type = components.NewPartType(components.OrganEnabler, 0) // full mouth activity

	PopulateAll(hash, agents, simSize)
	grids := components.NewGrids(4)

	DrainEnergy(agents, hash, grids, simSize, energyCfg)

	if agents[1].Alive {
		t.Fatal("expected the victim to be drained and marked dead")
	}
	if agents[0].Energy <= 0 {
		t.Fatalf("expected the vampire to gain energy, got %v", agents[0].Energy)
	}
}

func TestMaintenanceCostChargesPerAminoBaseline(t *testing.T) {
	energyCfg := testEnergyConfig(t)
	a := &components.Agent{BodyCount: 2}
	a.Body[0].Type = components.NewPartType(components.AminoA, 0)
	a.Body[1].Type = components.NewPartType(components.AminoC, 0)

	got := MaintenanceCost(a, energyCfg)
	want := float32(energyCfg.EnergyCost) + 2*float32(energyCfg.AminoMaintenanceCost)
	if got != want {
		t.Fatalf("MaintenanceCost = %v, want %v", got, want)
	}
}
