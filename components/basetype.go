package components

// BaseType identifies one of the 42 body-part kinds: 20 amino acids
// (structural segments) followed by 22 organs (higher-function parts),
// spec.md §3 "Base-type taxonomy".
type BaseType uint8

// Amino acids (0-19). Letters follow the one-letter amino-acid codes used
// by codonTable in genome/codon.go, which holds the codon -> index mapping.
const (
	AminoA BaseType = iota // 0
	AminoC                 // 1
	AminoD                 // 2
	AminoE                 // 3
	AminoF                 // 4
	AminoG                 // 5
	AminoH                 // 6
	AminoI                 // 7
	AminoK                 // 8
	AminoL                 // 9
	AminoM                 // 10
	AminoN                 // 11
	AminoP                 // 12
	AminoQ                 // 13
	AminoR                 // 14
	AminoS                 // 15
	AminoT                 // 16
	AminoV                 // 17
	AminoW                 // 18
	AminoY                 // 19
)

// Organs (20-41).
const (
	OrganMouth           BaseType = iota + 20 // 20
	OrganPropeller                            // 21
	OrganAlphaSensor                          // 22
	OrganBetaSensor                           // 23
	OrganEnergySensor                         // 24
	OrganDisplacer                            // 25
	OrganEnabler                              // 26
	OrganInert27                              // 27 (reserved, unused slot preserved for table parity)
	OrganStorage                              // 28
	OrganPoisonResist                         // 29
	OrganChiralityFlip                        // 30
	OrganClock                                // 31
	OrganSlopeSensor                          // 32
	OrganVampireMouth                         // 33
	OrganAgentAlphaSensor                     // 34
	OrganAgentBetaSensor                      // 35
	OrganPairingSensor                        // 36
	OrganTrailEnergySensor                    // 37
	OrganAlphaMagnitude                       // 38
	OrganAlphaMagnitude2                      // 39
	OrganBetaMagnitude                        // 40
	OrganBetaMagnitude2                       // 41
)

// BaseTypeCount is the total number of base types (spec.md: 42).
const BaseTypeCount = 42

// IsAmino reports whether t is an amino acid segment (0-19).
func (t BaseType) IsAmino() bool { return t < 20 }

// IsOrgan reports whether t is an organ (20-41).
func (t BaseType) IsOrgan() bool { return t >= 20 && t < BaseTypeCount }

// Capabilities is a boolean flag-set per base type marking capability
// membership (spec.md §3): every flag here is read by a dispatch site in
// systems/, not just carried for completeness.
type Capabilities uint32

const (
	CapMouth Capabilities = 1 << iota
	CapAlphaSensor
	CapBetaSensor
	CapEnergySensor
	CapAgentAlphaSensor
	CapAgentBetaSensor
	CapClock
	CapInhibitor // enabler
	CapTrailEnergySensor
	CapVampireMouth
	CapPoisonResist
	CapChiralityFlip
	CapSlopeSensor
	CapPairingSensor
)

// Has reports whether the flag-set contains cap.
func (c Capabilities) Has(cap Capabilities) bool { return c&cap != 0 }

// capabilityTable is filled once at package init and read through
// CapabilitiesOf.
var capabilityTable [BaseTypeCount]Capabilities

func init() {
	capabilityTable[OrganMouth] = CapMouth
	capabilityTable[OrganVampireMouth] = CapMouth | CapVampireMouth
	capabilityTable[OrganAlphaSensor] = CapAlphaSensor
	capabilityTable[OrganBetaSensor] = CapBetaSensor
	capabilityTable[OrganEnergySensor] = CapEnergySensor
	capabilityTable[OrganEnabler] = CapInhibitor
	capabilityTable[OrganPoisonResist] = CapPoisonResist
	capabilityTable[OrganChiralityFlip] = CapChiralityFlip
	capabilityTable[OrganClock] = CapClock
	capabilityTable[OrganSlopeSensor] = CapSlopeSensor
	capabilityTable[OrganAgentAlphaSensor] = CapAgentAlphaSensor
	capabilityTable[OrganAgentBetaSensor] = CapAgentBetaSensor
	capabilityTable[OrganPairingSensor] = CapPairingSensor
	capabilityTable[OrganTrailEnergySensor] = CapTrailEnergySensor
	capabilityTable[OrganAlphaMagnitude] = CapAlphaSensor
	capabilityTable[OrganAlphaMagnitude2] = CapAlphaSensor
	capabilityTable[OrganBetaMagnitude] = CapBetaSensor
	capabilityTable[OrganBetaMagnitude2] = CapBetaSensor
}

// CapabilitiesOf returns the capability flag-set for a base type.
func CapabilitiesOf(t BaseType) Capabilities {
	if int(t) >= BaseTypeCount {
		return 0
	}
	return capabilityTable[t]
}
