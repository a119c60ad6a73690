package systems

import (
	"math"

	"github.com/lumenark/vitae/components"
	"github.com/lumenark/vitae/config"
)

// BuildMorphology reconstructs body-part positions from cached part types
// and the current per-part signals, then centers and de-spins the result
// (spec.md §4.2 "Morphology builder").
//
// Angle smoothing (spec.md §4.3 "Angle smoothing") is folded in here
// rather than in the signal engine: the chain walk is the only place that
// already knows each part's accumulated chirality, so it updates and
// reads back pad.x for non-organ parts in the same pass.
func BuildMorphology(a *components.Agent, cfg *config.PhysicsConfig) {
	n := int(a.BodyCount)
	if n == 0 {
		return
	}

	theta := float32(0)
	chirality := float32(1)
	poisonCount := 0

	xs := make([]float32, n)
	ys := make([]float32, n)
	masses := make([]float32, n)

	cx, cy := float32(0), float32(0)

	for i := 0; i < n; i++ {
		part := &a.Body[i]
		base := part.Type.Base()
		row := components.PropTable[base]

		theta += row.BaseAngle * chirality

		signalAngle := signalAngleFor(part, row, poisonCount, chirality, cfg)
		theta += signalAngle

		if i == 0 {
			xs[i], ys[i] = 0, 0
		} else {
			xs[i] = xs[i-1] + float32(math.Cos(float64(theta)))*row.SegmentLength
			ys[i] = ys[i-1] + float32(math.Sin(float64(theta)))*row.SegmentLength
		}
		part.PosX, part.PosY = xs[i], ys[i]

		masses[i] = row.Mass
		cx += row.Mass * xs[i]
		cy += row.Mass * ys[i]

		caps := components.CapabilitiesOf(base)
		if caps.Has(components.CapChiralityFlip) {
			chirality = -chirality
		}
		if caps.Has(components.CapPoisonResist) {
			poisonCount++
		}
	}

	totalMass := float32(0)
	for _, m := range masses {
		totalMass += m
	}
	if totalMass <= 0 {
		totalMass = 1
	}
	cx /= totalMass
	cy /= totalMass

	meanAngleX, meanAngleY := float32(0), float32(0)
	for i := 0; i < n; i++ {
		xs[i] -= cx
		ys[i] -= cy
		ang := float32(math.Atan2(float64(ys[i]), float64(xs[i])))
		w := masses[i] / totalMass
		meanAngleX += w * float32(math.Cos(float64(ang)))
		meanAngleY += w * float32(math.Sin(float64(ang)))
	}
	meanAngle := float32(math.Atan2(float64(meanAngleY), float64(meanAngleX)))
	cosM, sinM := float32(math.Cos(float64(-meanAngle))), float32(math.Sin(float64(-meanAngle)))

	for i := 0; i < n; i++ {
		rx := xs[i]*cosM - ys[i]*sinM
		ry := xs[i]*sinM + ys[i]*cosM
		xs[i], ys[i] = rx, ry
		a.Body[i].PosX, a.Body[i].PosY = rx, ry
	}

	a.Rotation += meanAngle
	a.MorphOriginX, a.MorphOriginY = xs[0], ys[0]
	a.TotalMass = totalMass
	a.PoisonResistantCnt = int32(poisonCount)

	var capacity float32
	for i := 0; i < n; i++ {
		capacity += components.PropTable[a.Body[i].Type.Base()].Storage
	}
	a.Capacity = capacity
}

// signalAngleFor computes and smooths one part's contribution to the
// morphology walk's cumulative rotation (spec.md §4.3 "Angle smoothing").
// Organ parts keep pad.x for their own state (clock phase, vampire
// cooldown, condenser charges, mouth position history) so only amino
// acid (structural) parts persist a smoothed angle there.
func signalAngleFor(part *components.BodyPart, row components.PropRow, poisonCount int, chirality float32, cfg *config.PhysicsConfig) float32 {
	raw := (part.Alpha*row.AlphaSens*float32(cfg.AlphaAngleGain) +
		part.Beta*row.BetaSens*float32(cfg.BetaAngleGain)) * float32(cfg.SignalGain) * chirality
	scale := float32(math.Pow(0.5, float64(poisonCount)))
	raw *= scale

	maxAngle := float32(cfg.MaxSignalAngle)
	if raw > maxAngle {
		raw = maxAngle
	} else if raw < -maxAngle {
		raw = -maxAngle
	}

	if part.Type.Base().IsOrgan() {
		return raw
	}

	pad := part.PadView()
	prev := pad.SmoothedAngle()
	smoothed := mix(prev, raw, float32(cfg.AngleSmoothFactor))

	maxStep := float32(cfg.MaxSignalStep)
	delta := smoothed - prev
	if delta > maxStep {
		smoothed = prev + maxStep
	} else if delta < -maxStep {
		smoothed = prev - maxStep
	}

	pad.SetSmoothedAngle(smoothed)
	return smoothed
}
