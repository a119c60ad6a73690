// Package systems implements the per-frame simulation passes: morphology
// translation and rebuild, signal propagation, physics, agent-environment
// coupling, environment diffusion, and lifecycle (spec.md §4, §5).
package systems

import (
	"sync/atomic"

	"github.com/lumenark/vitae/components"
)

// EmptyCell is the sentinel low-31-bit value meaning "unclaimed".
const EmptyCell uint32 = 0

// VampireClaimBit is set on a cell's high bit to mark an exclusive
// predator claim for the current frame (spec.md §10 "spatial hash").
const VampireClaimBit uint32 = 1 << 31

// SearchRing is the expanding-ring radius searched on a claim conflict
// (5 -> 121 candidate cells, spec.md §10).
const SearchRing = 5

// SpatialHash is a coarse grid mapping world cell -> at most one agent
// index, with one atomic word per cell so claims are lock-free
// (spec.md §3 "Spatial hash", §10 "State owned exclusively by this
// component").
type SpatialHash struct {
	size     int // cells per side
	cells    []atomic.Uint32
	claimant []atomic.Uint32 // vampire id that holds the claim bit, per cell
}

// NewSpatialHash allocates a size x size grid of atomic cells.
func NewSpatialHash(size int) *SpatialHash {
	return &SpatialHash{
		size:     size,
		cells:    make([]atomic.Uint32, size*size),
		claimant: make([]atomic.Uint32, size*size),
	}
}

// Clear stores EmptyCell in every cell (the per-frame
// clear_agent_spatial_grid pass); the claim bit is implicitly cleared
// along with it.
func (h *SpatialHash) Clear() {
	for i := range h.cells {
		h.cells[i].Store(EmptyCell)
		h.claimant[i].Store(0)
	}
}

// Size returns the number of cells per side.
func (h *SpatialHash) Size() int { return h.size }

func (h *SpatialHash) wrap(v int) int {
	v %= h.size
	if v < 0 {
		v += h.size
	}
	return v
}

// CellOf maps a world position to a grid cell via floor(pos*size/simSize).
func (h *SpatialHash) CellOf(x, y, simSize float32) (cx, cy int) {
	if simSize <= 0 {
		return 0, 0
	}
	cx = h.wrap(int(x * float32(h.size) / simSize))
	cy = h.wrap(int(y * float32(h.size) / simSize))
	return
}

func (h *SpatialHash) index(cx, cy int) int {
	return h.wrap(cy)*h.size + h.wrap(cx)
}

// Populate claims a cell for agentID (low 31 bits), trying an expanding
// square ring on conflict. Returns false if no empty cell was found
// within the ring (an accepted loss, spec.md §10 "Race-acceptance
// decisions").
func (h *SpatialHash) Populate(cx, cy int, agentID uint32) bool {
	claim := agentID &^ VampireClaimBit
	if h.tryClaim(cx, cy, claim) {
		return true
	}
	for r := 1; r <= SearchRing; r++ {
		for dx := -r; dx <= r; dx++ {
			for dy := -r; dy <= r; dy++ {
				if abs(dx) != r && abs(dy) != r {
					continue // only the ring perimeter at this radius
				}
				if h.tryClaim(cx+dx, cy+dy, claim) {
					return true
				}
			}
		}
	}
	return false
}

func (h *SpatialHash) tryClaim(cx, cy int, claim uint32) bool {
	idx := h.index(cx, cy)
	return h.cells[idx].CompareAndSwap(EmptyCell, claim)
}

// Occupant returns the agent id at (cx, cy) and whether it carries a
// vampire claim, or (0, false, false) if the cell is empty.
func (h *SpatialHash) Occupant(cx, cy int) (agentID uint32, vampireClaimed bool, ok bool) {
	v := h.cells[h.index(cx, cy)].Load()
	if v == EmptyCell {
		return 0, false, false
	}
	return v &^ VampireClaimBit, v&VampireClaimBit != 0, true
}

// ClaimVampire sets the high bit on the occupant of (cx, cy), but only if
// the cell is currently occupied by victimID. A cell already claimed this
// frame grants the drain again to the same vampireID (its own second
// mouth) and refuses every other vampireID (spec.md §5.5 "Vampire
// predation": exclusivity per victim per frame).
func (h *SpatialHash) ClaimVampire(cx, cy int, victimID, vampireID uint32) (claimed bool) {
	idx := h.index(cx, cy)
	for {
		cur := h.cells[idx].Load()
		if cur&^VampireClaimBit != victimID {
			return false
		}
		if cur&VampireClaimBit != 0 {
			return h.claimant[idx].Load() == vampireID
		}
		if h.cells[idx].CompareAndSwap(cur, cur|VampireClaimBit) {
			h.claimant[idx].Store(vampireID)
			return true
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// ToroidalDelta returns the shortest signed delta from (x1,y1) to
// (x2,y2) on a wrapped square world of side size.
func ToroidalDelta(x1, y1, x2, y2, size float32) (dx, dy float32) {
	dx = x2 - x1
	dy = y2 - y1
	half := size / 2
	if dx > half {
		dx -= size
	} else if dx < -half {
		dx += size
	}
	if dy > half {
		dy -= size
	} else if dy < -half {
		dy += size
	}
	return dx, dy
}

// PopulateAll runs the populate pass for every live agent in agents,
// writing spatial hash ids as 1-based (so 0 stays reserved for "empty").
func PopulateAll(h *SpatialHash, agents []components.Agent, simSize float32) {
	for i := range agents {
		a := &agents[i]
		if !a.Alive {
			continue
		}
		cx, cy := h.CellOf(a.PosX, a.PosY, simSize)
		h.Populate(cx, cy, uint32(i)+1)
	}
}
