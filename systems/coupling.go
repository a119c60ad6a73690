package systems

import (
	"math"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

// CountEnablers returns the enabler count over an agent's body, clamped
// into [0,1] the way spec.md §4.5 "globalMouthActivity" defines it
// (there is no "disabler" organ type in the current taxonomy, so the
// enablers-minus-disablers difference collapses to the enabler count).
func CountEnablers(a *components.Agent) float32 {
	var n float32
	for i := 0; i < int(a.BodyCount); i++ {
		if components.CapabilitiesOf(a.Body[i].Type.Base()).Has(components.CapInhibitor) {
			n++
		}
	}
	if n > 1 {
		n = 1
	}
	return n
}

func countVampireMouths(a *components.Agent) int {
	n := 0
	for i := 0; i < int(a.BodyCount); i++ {
		if components.CapabilitiesOf(a.Body[i].Type.Base()).Has(components.CapVampireMouth) {
			n++
		}
	}
	return n
}

// MouthAbsorb runs regular feeding for every mouth and vampire-mouth part
// on the body: local α/β absorption scaled by speed and global mouth
// activity (spec.md §4.5 "Mouths").
func MouthAbsorb(a *components.Agent, grids *components.Grids, simSize float32, energy *config.EnergyConfig, velMax float32) {
	vampiric := countVampireMouths(a)
	activity := CountEnablers(a)

	for i := 0; i < int(a.BodyCount); i++ {
		part := &a.Body[i]
		base := part.Type.Base()
		if !components.CapabilitiesOf(base).Has(components.CapMouth) {
			continue
		}

		wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
		pad := part.PadView()
		prevX, prevY := pad.MouthPrevPos()
		skip := prevX*prevX+prevY*prevY < 1
		pad.SetMouthPrevPos(wx, wy)
		if skip {
			continue
		}

		dx, dy := wx-prevX, wy-prevY
		speed := float32(math.Sqrt(float64(dx*dx + dy*dy)))
		slowMult := float32(math.Exp(float64(-8 * speed / velMax)))

		row := components.PropTable[base]
		x, y := grids.CellOf(wx, wy, simSize)
		idx := grids.Idx(x, y)

		alphaAvail, betaAvail := grids.Alpha[idx], grids.Beta[idx]
		aRate, bRate := row.AbsorbAlpha*slowMult*activity, row.AbsorbBeta*slowMult*activity

		budget := aRate + bRate
		available := alphaAvail + betaAvail
		if budget > available {
			budget = available
		}
		var consumedAlpha, consumedBeta float32
		if available > 1e-6 {
			consumedAlpha = budget * (alphaAvail * aRate) / (available*aRate + 1e-9)
			consumedBeta = budget - consumedAlpha
		}
		if consumedAlpha > alphaAvail {
			consumedAlpha = alphaAvail
		}
		if consumedBeta > betaAvail {
			consumedBeta = betaAvail
		}

		grids.Alpha[idx] = components.Clamp01(alphaAvail - consumedAlpha)
		grids.Beta[idx] = components.Clamp01(betaAvail - consumedBeta)

		a.Energy += consumedAlpha * float32(energy.FoodPower) * float32(math.Pow(0.5, float64(vampiric)))
		a.Energy -= consumedBeta * float32(energy.PoisonPower) * float32(math.Pow(0.5, float64(a.PoisonResistantCnt)))
	}
}

// DrainEnergy is the vampire pre-pass: every vampire mouth on a live
// agent searches for the closest alive, positive-energy neighbor within
// 100 units and attempts an exclusive spatial-hash claim on it
// (spec.md §4.5 "Vampire mouths").
func DrainEnergy(agents []components.Agent, hash *SpatialHash, grids *components.Grids, simSize float32, energy *config.EnergyConfig) {
	const searchRadius = 100.0
	cellRadius := int(searchRadius/simSize*float32(hash.size)) + 1

	for i := range agents {
		a := &agents[i]
		if !a.Alive {
			continue
		}
		activity := CountEnablers(a)
		vampireID := uint32(i) + 1

		for p := 0; p < int(a.BodyCount); p++ {
			part := &a.Body[p]
			if !components.CapabilitiesOf(part.Type.Base()).Has(components.CapVampireMouth) {
				continue
			}
			pad := part.PadView()
			if pad.VampireCooldown() > 0 {
				pad.SetVampireCooldown(pad.VampireCooldown() - 1)
				continue
			}

			wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
			cx, cy := hash.CellOf(wx, wy, simSize)

			bestDist := float32(math.MaxFloat32)
			bestVictim := -1
			var victimCX, victimCY int
			for dx := -cellRadius; dx <= cellRadius; dx++ {
				for dy := -cellRadius; dy <= cellRadius; dy++ {
					occID, _, ok := hash.Occupant(cx+dx, cy+dy)
					if !ok || occID == 0 || occID == vampireID {
						continue
					}
					victimIdx := int(occID) - 1
					if victimIdx < 0 || victimIdx >= len(agents) {
						continue
					}
					victim := &agents[victimIdx]
					if !victim.Alive || victim.Energy <= 0 {
						continue
					}
					ddx, ddy := ToroidalDelta(wx, wy, victim.PosX, victim.PosY, simSize)
					d := float32(math.Sqrt(float64(ddx*ddx + ddy*ddy)))
					if d > searchRadius || d >= bestDist {
						continue
					}
					bestDist = d
					bestVictim = victimIdx
					victimCX, victimCY = cx+dx, cy+dy
				}
			}

			if bestVictim < 0 {
				continue
			}
			victim := &agents[bestVictim]
			victimID := uint32(bestVictim) + 1
			if !hash.ClaimVampire(victimCX, victimCY, victimID, vampireID) {
				continue
			}

			effectiveness := (1 - bestDist/searchRadius) * activity
			if effectiveness < 0.1 {
				continue
			}
			absorbed := victim.Energy * effectiveness
			victim.Energy = 0
			victim.Alive = false
			a.Energy += absorbed
			pad.SetVampireCooldown(float32(energy.VampireCooldownFrames))
			pad.SetLastDrain(absorbed)
		}
	}
}

// DepositTrail blends every part's world cell toward the agent's color
// and accumulates the scalar energy trail (spec.md §4.5 "Trail deposition").
func DepositTrail(a *components.Agent, grids *components.Grids, simSize float32, depositStrength float32) {
	for i := 0; i < int(a.BodyCount); i++ {
		part := &a.Body[i]
		wx, wy := a.PosX+part.PosX, a.PosY+part.PosY
		x, y := grids.CellOf(wx, wy, simSize)
		idx := grids.Idx(x, y)

		grids.TrailR[idx] = components.Clamp01(mix(grids.TrailR[idx], a.ColorR, depositStrength))
		grids.TrailG[idx] = components.Clamp01(mix(grids.TrailG[idx], a.ColorG, depositStrength))
		grids.TrailB[idx] = components.Clamp01(mix(grids.TrailB[idx], a.ColorB, depositStrength))
		grids.TrailE[idx] += a.Energy * 0.008
	}
}

// MaintenanceCost computes the per-frame upkeep total to subtract after
// absorption and energy clamping (spec.md §4.5 "Maintenance cost").
func MaintenanceCost(a *components.Agent, energy *config.EnergyConfig) float32 {
	cost := float32(energy.EnergyCost)
	activity := CountEnablers(a)

	for i := 0; i < int(a.BodyCount); i++ {
		part := &a.Body[i]
		base := part.Type.Base()
		baseline := float32(energy.AminoMaintenanceCost)

		if base.IsAmino() {
			cost += baseline
			continue
		}

		switch base {
		case components.OrganPropeller:
			amp := enablerAmplitude(a, part)
			cost += baseline + baseline*amp*amp*1.5
		case components.OrganDisplacer:
			amp := enablerAmplitude(a, part)
			cost += baseline + baseline*amp*amp*1.5
		case components.OrganVampireMouth:
			amp := enablerAmplitude(a, part)
			cost += baseline + baseline*activity*amp*3
		default:
			amp := enablerAmplitude(a, part)
			cost += baseline * amp * 1.5
		}
	}
	return cost
}
