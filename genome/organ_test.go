package genome

import (
	"testing"

	"github.com/lumenark/vitae/components"
)

func TestResolveOrganNonPromoterAminoYieldsNothing(t *testing.T) {
	organ, param := resolveOrgan(components.AminoA, 5)
	if organ != 0 || param != 0 {
		t.Fatalf("a non-promoter amino should resolve to (0,0), got (%v, %d)", organ, param)
	}
}

func TestResolveVMSplitsOnModifierThresholds(t *testing.T) {
	cases := []struct {
		modifier int
		want     components.BaseType
	}{
		{7, components.OrganAlphaMagnitude},
		{8, components.OrganAlphaMagnitude2},
		{9, components.OrganAgentAlphaSensor},
		{0, components.OrganAlphaSensor},
		{16, components.OrganBetaMagnitude},
		{17, components.OrganBetaMagnitude2},
		{19, components.OrganAgentBetaSensor},
		{12, components.OrganBetaSensor},
	}
	for _, c := range cases {
		if got := resolveVM(c.modifier); got != c.want {
			t.Errorf("resolveVM(%d) = %v, want %v", c.modifier, got, c.want)
		}
	}
}

func TestResolveLPSplitsPropellerAndDisplacer(t *testing.T) {
	if got := resolveLP(0); got != components.OrganPropeller {
		t.Fatalf("resolveLP(0) = %v, want OrganPropeller", got)
	}
	if got := resolveLP(15); got != components.OrganDisplacer {
		t.Fatalf("resolveLP(15) = %v, want OrganDisplacer", got)
	}
}

func TestResolveKCCoversAllBands(t *testing.T) {
	cases := []struct {
		modifier int
		want     components.BaseType
	}{
		{0, components.OrganMouth},
		{3, components.OrganMouth},
		{4, components.OrganVampireMouth},
		{6, components.OrganVampireMouth},
		{7, components.OrganEnabler},
		{9, components.OrganEnabler},
		{10, components.OrganSlopeSensor},
		{13, components.OrganSlopeSensor},
		{14, components.OrganClock},
		{19, components.OrganClock},
	}
	for _, c := range cases {
		if got := resolveKC(c.modifier); got != c.want {
			t.Errorf("resolveKC(%d) = %v, want %v", c.modifier, got, c.want)
		}
	}
}

func TestResolveHQCoversAllBands(t *testing.T) {
	cases := []struct {
		modifier int
		want     components.BaseType
	}{
		{0, components.OrganStorage},
		{6, components.OrganStorage},
		{7, components.OrganPairingSensor},
		{8, components.OrganPairingSensor},
		{9, components.OrganTrailEnergySensor},
		{10, components.OrganPoisonResist},
		{13, components.OrganPoisonResist},
		{14, components.OrganChiralityFlip},
		{19, components.OrganChiralityFlip},
	}
	for _, c := range cases {
		if got := resolveHQ(c.modifier); got != c.want {
			t.Errorf("resolveHQ(%d) = %v, want %v", c.modifier, got, c.want)
		}
	}
}

func TestPromoterIsAlphaEmittingOnlyForKAndH(t *testing.T) {
	if !promoterIsAlphaEmitting(components.AminoK) {
		t.Error("AminoK should be alpha-emitting")
	}
	if !promoterIsAlphaEmitting(components.AminoH) {
		t.Error("AminoH should be alpha-emitting")
	}
	if promoterIsAlphaEmitting(components.AminoC) {
		t.Error("AminoC should not be alpha-emitting")
	}
	if promoterIsAlphaEmitting(components.AminoQ) {
		t.Error("AminoQ should not be alpha-emitting")
	}
}

func TestResolveOrganSetsAlphaBitOnSensorOrgansPerPromoterFamily(t *testing.T) {
	// K (alpha-emitting) + modifier 14 -> OrganClock, bit 7 should be set.
	organ, param := resolveOrgan(components.AminoK, 14)
	if organ != components.OrganClock {
		t.Fatalf("expected OrganClock, got %v", organ)
	}
	if param&0x80 == 0 {
		t.Fatalf("K-promoted clock organ should have the alpha bit set, got param=%08b", param)
	}

	// C (not alpha-emitting) + modifier 14 -> OrganClock, bit 7 should be clear.
	organ, param = resolveOrgan(components.AminoC, 14)
	if organ != components.OrganClock {
		t.Fatalf("expected OrganClock, got %v", organ)
	}
	if param&0x80 != 0 {
		t.Fatalf("C-promoted clock organ should have the alpha bit clear, got param=%08b", param)
	}
}

func TestResolveOrganNonSensorOrganLeavesFullParamRange(t *testing.T) {
	// L (not alpha/beta-bit family) + modifier 19 -> OrganDisplacer, param
	// uses the full round(m/19*255) range rather than being masked to 0x7F.
	_, param := resolveOrgan(components.AminoL, 19)
	if param != 255 {
		t.Fatalf("resolveOrgan(AminoL, 19) param = %d, want 255 (modifier at max)", param)
	}
}
