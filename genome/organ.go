package genome

import (
	"math"

	"github.com/lumenark/vitae/components"
)

// resolveOrgan maps a promoter amino acid and its modifier index (0-19)
// to the produced organ base type and its packed parameter byte
// (spec.md §4.1 "Promoter+modifier composition", "Organ parameter").
func resolveOrgan(promoter components.BaseType, modifier int8) (components.BaseType, uint8) {
	m := int(modifier)
	var organ components.BaseType
	switch promoter {
	case components.AminoV, components.AminoM:
		organ = resolveVM(m)
	case components.AminoL, components.AminoP:
		organ = resolveLP(m)
	case components.AminoK, components.AminoC:
		organ = resolveKC(m)
	case components.AminoH, components.AminoQ:
		organ = resolveHQ(m)
	default:
		return 0, 0
	}

	param := uint8(math.Round(float64(m) / 19 * 255))
	switch organ {
	case components.OrganClock, components.OrganSlopeSensor,
		components.OrganPairingSensor, components.OrganTrailEnergySensor:
		param &= 0x7F
		if promoterIsAlphaEmitting(promoter) {
			param |= 0x80
		}
	}
	return organ, param
}

// promoterIsAlphaEmitting reports the family used by the spec's
// clock/slope/pairing/trail-energy organs to record bit 7 of their
// parameter byte: K and H are the alpha-emitting half of their pairs.
func promoterIsAlphaEmitting(p components.BaseType) bool {
	return p == components.AminoK || p == components.AminoH
}

func resolveVM(modifier int) components.BaseType {
	switch {
	case modifier == 7:
		return components.OrganAlphaMagnitude
	case modifier == 8:
		return components.OrganAlphaMagnitude2
	case modifier == 9:
		return components.OrganAgentAlphaSensor
	case modifier == 16:
		return components.OrganBetaMagnitude
	case modifier == 17:
		return components.OrganBetaMagnitude2
	case modifier == 19:
		return components.OrganAgentBetaSensor
	case modifier < 10:
		return components.OrganAlphaSensor
	default:
		return components.OrganBetaSensor
	}
}

func resolveLP(modifier int) components.BaseType {
	if modifier < 10 {
		return components.OrganPropeller
	}
	return components.OrganDisplacer
}

func resolveKC(modifier int) components.BaseType {
	switch {
	case modifier < 4:
		return components.OrganMouth
	case modifier <= 6:
		return components.OrganVampireMouth
	case modifier <= 9:
		return components.OrganEnabler
	case modifier <= 13:
		return components.OrganSlopeSensor
	default:
		return components.OrganClock
	}
}

func resolveHQ(modifier int) components.BaseType {
	switch {
	case modifier < 7:
		return components.OrganStorage
	case modifier <= 8:
		return components.OrganPairingSensor
	case modifier == 9:
		return components.OrganTrailEnergySensor
	case modifier <= 13:
		return components.OrganPoisonResist
	default:
		return components.OrganChiralityFlip
	}
}
