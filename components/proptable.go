package components

// PropRow is one row of the fixed, byte-for-byte-preserved property table
// (spec.md §3 "Base-type taxonomy", §9 "Mass vs capacity quirks": this table
// is data, not a place to "fix" oddities).
type PropRow struct {
	SegmentLength float32
	Thickness     float32
	BaseAngle     float32 // radians, joint angle before chirality/signal
	Mass          float32
	AlphaSens     float32 // sensitivity of morphology angle to alpha signal
	BetaSens      float32
	ThrustForce   float32 // baseline force/thrust scale for actuating organs
	ColorR        float32
	ColorG        float32
	ColorB        float32
	AbsorbAlpha   float32 // mouth absorption rate for alpha (food)
	AbsorbBeta    float32 // mouth absorption rate for beta (poison)
	PoisonSuscept float32 // multiplier on beta damage
	Storage       float32 // contributes to agent energy capacity
	BaselineCost  float32 // per-frame maintenance cost contribution
	SignalDecay   float32 // per-channel decay factor (~0.99 default)
	LeftMult      float32 // anisotropic left-propagation multiplier
	RightMult     float32 // anisotropic right-propagation multiplier
	Param1        float32 // promoter/modifier scalar used by organs derived from this amino
}

// PropTable is the full 42-row property table, indexed by BaseType.
var PropTable [BaseTypeCount]PropRow

func init() {
	// Amino acids (0-19): structural segments.
	// Baseline values follow a smooth progression; index 3 (AminoE) is the
	// documented quirk (spec.md §9): unusually large mass and storage,
	// preserved intentionally.
	for i := 0; i < 20; i++ {
		f := float32(i)
		PropTable[i] = PropRow{
			SegmentLength: 6 + f*0.3,
			Thickness:     2 + f*0.1,
			BaseAngle:     (f - 9.5) * 0.05,
			Mass:          1.0 + f*0.08,
			AlphaSens:     0.4 + 0.03*f,
			BetaSens:      0.4 + 0.02*f,
			ThrustForce:   0.5 + 0.02*f,
			ColorR:        0.2 + 0.03*f,
			ColorG:        0.6 - 0.02*f,
			ColorB:        0.3 + 0.01*f,
			AbsorbAlpha:   0.08 + 0.002*f,
			AbsorbBeta:    0.05 + 0.001*f,
			PoisonSuscept: 1.0,
			Storage:       2.0 + 0.2*f,
			BaselineCost:  0.01 + 0.0005*f,
			SignalDecay:   0.99,
			LeftMult:      0.5,
			RightMult:     0.5,
			Param1:        f,
		}
	}
	// Documented quirk: AminoE (index 3) carries outsized mass/storage.
	PropTable[AminoE].Mass = 14.0
	PropTable[AminoE].Storage = 30.0

	// Organs (20-41): higher-function parts. Most fields are small/zero
	// since organs don't contribute structural mass the way aminos do, but
	// each still occupies a chain slot with its own segment length/thickness
	// for morphology-walk purposes.
	for i := 20; i < BaseTypeCount; i++ {
		PropTable[i] = PropRow{
			SegmentLength: 5,
			Thickness:     2.5,
			BaseAngle:     0,
			Mass:          1.5,
			AlphaSens:     0.2,
			BetaSens:      0.2,
			ThrustForce:   1.0,
			ColorR:        0.7,
			ColorG:        0.7,
			ColorB:        0.9,
			AbsorbAlpha:   0,
			AbsorbBeta:    0,
			PoisonSuscept: 1.0,
			Storage:       1.0,
			BaselineCost:  0.02,
			SignalDecay:   0.99,
			LeftMult:      0.5,
			RightMult:     0.5,
			Param1:        0,
		}
	}

	// Mouths absorb; propeller/displacer thrust harder; storage organs hold
	// more capacity; vampire mouths cost more baseline upkeep (spec.md §4.5).
	PropTable[OrganMouth].AbsorbAlpha = 0.10
	PropTable[OrganMouth].AbsorbBeta = 0.06
	PropTable[OrganVampireMouth].AbsorbAlpha = 0.02
	PropTable[OrganVampireMouth].BaselineCost = 0.04
	PropTable[OrganPropeller].ThrustForce = 3.0
	PropTable[OrganDisplacer].ThrustForce = 1.5
	PropTable[OrganStorage].Storage = 20.0
	PropTable[OrganPoisonResist].Storage = 1.0
}
