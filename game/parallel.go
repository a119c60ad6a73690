package game

import (
	"math/rand"
	"runtime"
	"sync"

	"github.com/lumenark/vitae/systems"
)

// maxNeighborsPerAgent bounds the per-agent neighbor scan to keep a single
// organism's cost independent of local crowd density. The scan keeps the
// first neighbors it meets in cell order, not the nearest ones.
const maxNeighborsPerAgent = 24

// workerScratch holds per-worker reusable buffers so the parallel pass
// makes no per-agent allocations (teacher's game/parallel.go
// workerScratch pattern).
type workerScratch struct {
	rng          *rand.Rand
	physNeigh    []systems.NeighborAgent
	sensorNeigh  []systems.AgentNeighbor
}

// parallelState holds resources for the parallel per-agent pass.
type parallelState struct {
	numWorkers int
	scratches  []workerScratch
}

func newParallelState(seed int64) *parallelState {
	numWorkers := runtime.GOMAXPROCS(0)
	scratches := make([]workerScratch, numWorkers)
	for i := range scratches {
		scratches[i] = workerScratch{
			rng:         rand.New(rand.NewSource(seed + int64(i)*7919)),
			physNeigh:   make([]systems.NeighborAgent, 0, maxNeighborsPerAgent),
			sensorNeigh: make([]systems.AgentNeighbor, 0, maxNeighborsPerAgent),
		}
	}
	return &parallelState{numWorkers: numWorkers, scratches: scratches}
}

// processAgents runs the per-agent frame kernel across the live prefix of
// agents in parallel chunks. Each worker touches only its own index range
// of agents[]; shared state (grids, spatial hash reads, spawn staging) is
// either append-only via atomics or intentionally unsynchronized the same
// way concurrent compute-shader invocations would race on a shared cell
// (spec.md's C1-C12 pipeline has no cross-invocation barrier either).
func (g *Game) processAgents(n int) {
	if n == 0 {
		return
	}
	numWorkers := g.parallel.numWorkers
	chunkSize := (n + numWorkers - 1) / numWorkers

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		wg.Add(1)
		go func(workerID, i0, i1 int) {
			defer wg.Done()
			scratch := &g.parallel.scratches[workerID]
			for i := i0; i < i1; i++ {
				g.processOneAgent(i, scratch)
			}
		}(w, start, end)
	}
	wg.Wait()
}

// processOneAgent runs morphology, signals, physics, coupling, metabolism,
// pairing/reproduction and death for a single live agent (spec.md §4
// "C5-C11").
func (g *Game) processOneAgent(i int, scratch *workerScratch) {
	agents := g.agents[g.active]
	a := &agents[i]
	if !a.Alive || a.BodyCount == 0 {
		return
	}
	cfg := g.cfg
	simSize := float32(cfg.World.SimSize)

	g.collectNeighbors(i, scratch)

	systems.BuildMorphology(a, &cfg.Physics)

	sigEnv := &systems.SignalEnv{
		Grids:     g.grids,
		SimSize:   simSize,
		Neighbors: scratch.sensorNeigh,
		RNG:       scratch.rng,
	}
	systems.Propagate(a, sigEnv, &cfg.Physics)

	prevVelX, prevVelY, prevAngVel := a.VelX, a.VelY, a.AngVel
	physIn := &systems.PhysicsInput{
		Grids:     g.grids,
		SimSize:   simSize,
		Neighbors: scratch.physNeigh,
		Wind:      g.windVector(),
		Phys:      &cfg.Physics,
	}
	systems.Step(a, physIn, prevVelX, prevVelY, prevAngVel)

	velMax := float32(cfg.Physics.VelMax)
	systems.MouthAbsorb(a, g.grids, simSize, &cfg.Energy, velMax)
	systems.DepositTrail(a, g.grids, simSize, float32(cfg.Trails.DepositRate))

	a.ClampEnergy()
	a.Energy -= systems.MaintenanceCost(a, &cfg.Energy)
	a.Age++

	betaLocal := g.sampleBetaAt(a.PosX, a.PosY)
	systems.PairingAndReproduce(a, betaLocal, &cfg.Reproduction, &cfg.Energy, scratch.rng, g.staging)

	if systems.Death(a, &cfg.Energy, g.grids, simSize, scratch.rng) {
		systems.TransferSelection(agents, i, scratch.rng)
		g.collector.RecordDeath()
	}
}

func (g *Game) windVector() systems.WindVector {
	w := &g.cfg.Wind
	return systems.WindVector{
		X: float32(w.Power * w.DirX),
		Y: float32(w.Power * w.DirY),
	}
}

func (g *Game) sampleBetaAt(x, y float32) float32 {
	cx, cy := g.grids.CellOf(x, y, float32(g.cfg.World.SimSize))
	return g.grids.Beta[g.grids.Idx(cx, cy)]
}

// collectNeighbors scans the spatial hash around agent i's position and
// fills scratch's physics/sensor neighbor buffers (spec.md §4.4
// "Neighbor repulsion", §4.3 "Agent sensors").
func (g *Game) collectNeighbors(i int, scratch *workerScratch) {
	agents := g.agents[g.active]
	self := &agents[i]
	simSize := float32(g.cfg.World.SimSize)

	radius := float32(g.cfg.Physics.MaxRepulsionDistance)
	cellRadius := int(radius/simSize*float32(g.hash.Size())) + 1
	cx, cy := g.hash.CellOf(self.PosX, self.PosY, simSize)

	scratch.physNeigh = scratch.physNeigh[:0]
	scratch.sensorNeigh = scratch.sensorNeigh[:0]

	for dx := -cellRadius; dx <= cellRadius; dx++ {
		for dy := -cellRadius; dy <= cellRadius; dy++ {
			if len(scratch.physNeigh) >= maxNeighborsPerAgent {
				return
			}
			occID, _, ok := g.hash.Occupant(cx+dx, cy+dy)
			if !ok || occID == 0 {
				continue
			}
			idx := int(occID) - 1
			if idx == i || idx < 0 || idx >= len(agents) {
				continue
			}
			other := &agents[idx]
			if !other.Alive {
				continue
			}
			ddx, ddy := systems.ToroidalDelta(self.PosX, self.PosY, other.PosX, other.PosY, simSize)
			d2 := ddx*ddx + ddy*ddy
			if d2 > radius*radius {
				continue
			}

			scratch.physNeigh = append(scratch.physNeigh, systems.NeighborAgent{
				DX: ddx, DY: ddy, Mass: other.TotalMass,
			})
			if len(scratch.sensorNeigh) < maxNeighborsPerAgent {
				scratch.sensorNeigh = append(scratch.sensorNeigh, systems.AgentNeighbor{
					Index: idx, DX: ddx, DY: ddy, DistSq: d2,
					ColorR: other.ColorR, ColorG: other.ColorG, ColorB: other.ColorB,
				})
			}
		}
	}
}
