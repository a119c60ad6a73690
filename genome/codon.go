// Package genome translates the RNA-like symbol buffer carried by each
// agent into a sequence of body parts (spec.md §4.1). Decoding follows the
// standard genetic code (RNA codons, U in place of T) so that every one of
// the 64 codons has a biologically grounded amino-acid or stop mapping
// rather than an invented table.
package genome

import "github.com/lumenark/vitae/components"

// stopCodon marks a codon that terminates translation.
const stopCodon = -1

// codon is a 3-symbol lookup key.
type codon = [3]byte

// codonTable is the standard genetic code, amino acids mapped to the
// 0-19 BaseType indices declared in components.BaseType (alphabetical
// single-letter codes A,C,D,E,F,G,H,I,K,L,M,N,P,Q,R,S,T,V,W,Y).
var codonTable = map[codon]int8{
	{'U', 'U', 'U'}: int8(components.AminoF), {'U', 'U', 'C'}: int8(components.AminoF),
	{'U', 'U', 'A'}: int8(components.AminoL), {'U', 'U', 'G'}: int8(components.AminoL),
	{'U', 'C', 'U'}: int8(components.AminoS), {'U', 'C', 'C'}: int8(components.AminoS),
	{'U', 'C', 'A'}: int8(components.AminoS), {'U', 'C', 'G'}: int8(components.AminoS),
	{'U', 'A', 'U'}: int8(components.AminoY), {'U', 'A', 'C'}: int8(components.AminoY),
	{'U', 'A', 'A'}: stopCodon, {'U', 'A', 'G'}: stopCodon,
	{'U', 'G', 'U'}: int8(components.AminoC), {'U', 'G', 'C'}: int8(components.AminoC),
	{'U', 'G', 'A'}: stopCodon, {'U', 'G', 'G'}: int8(components.AminoW),

	{'C', 'U', 'U'}: int8(components.AminoL), {'C', 'U', 'C'}: int8(components.AminoL),
	{'C', 'U', 'A'}: int8(components.AminoL), {'C', 'U', 'G'}: int8(components.AminoL),
	{'C', 'C', 'U'}: int8(components.AminoP), {'C', 'C', 'C'}: int8(components.AminoP),
	{'C', 'C', 'A'}: int8(components.AminoP), {'C', 'C', 'G'}: int8(components.AminoP),
	{'C', 'A', 'U'}: int8(components.AminoH), {'C', 'A', 'C'}: int8(components.AminoH),
	{'C', 'A', 'A'}: int8(components.AminoQ), {'C', 'A', 'G'}: int8(components.AminoQ),
	{'C', 'G', 'U'}: int8(components.AminoR), {'C', 'G', 'C'}: int8(components.AminoR),
	{'C', 'G', 'A'}: int8(components.AminoR), {'C', 'G', 'G'}: int8(components.AminoR),

	{'A', 'U', 'U'}: int8(components.AminoI), {'A', 'U', 'C'}: int8(components.AminoI),
	{'A', 'U', 'A'}: int8(components.AminoI), {'A', 'U', 'G'}: int8(components.AminoM),
	{'A', 'C', 'U'}: int8(components.AminoT), {'A', 'C', 'C'}: int8(components.AminoT),
	{'A', 'C', 'A'}: int8(components.AminoT), {'A', 'C', 'G'}: int8(components.AminoT),
	{'A', 'A', 'U'}: int8(components.AminoN), {'A', 'A', 'C'}: int8(components.AminoN),
	{'A', 'A', 'A'}: int8(components.AminoK), {'A', 'A', 'G'}: int8(components.AminoK),
	{'A', 'G', 'U'}: int8(components.AminoS), {'A', 'G', 'C'}: int8(components.AminoS),
	{'A', 'G', 'A'}: int8(components.AminoR), {'A', 'G', 'G'}: int8(components.AminoR),

	{'G', 'U', 'U'}: int8(components.AminoV), {'G', 'U', 'C'}: int8(components.AminoV),
	{'G', 'U', 'A'}: int8(components.AminoV), {'G', 'U', 'G'}: int8(components.AminoV),
	{'G', 'C', 'U'}: int8(components.AminoA), {'G', 'C', 'C'}: int8(components.AminoA),
	{'G', 'C', 'A'}: int8(components.AminoA), {'G', 'C', 'G'}: int8(components.AminoA),
	{'G', 'A', 'U'}: int8(components.AminoD), {'G', 'A', 'C'}: int8(components.AminoD),
	{'G', 'A', 'A'}: int8(components.AminoE), {'G', 'A', 'G'}: int8(components.AminoE),
	{'G', 'G', 'U'}: int8(components.AminoG), {'G', 'G', 'C'}: int8(components.AminoG),
	{'G', 'G', 'A'}: int8(components.AminoG), {'G', 'G', 'G'}: int8(components.AminoG),
}

// decodeCodon resolves a codon to an amino index (0-19) or stopCodon.
// Any codon containing a symbol outside {A,C,G,U} (i.e. X, or garbage)
// is the caller's responsibility to filter before calling this.
func decodeCodon(c codon) int8 {
	if v, ok := codonTable[c]; ok {
		return v
	}
	return stopCodon
}

func containsX(c codon) bool {
	return c[0] == components.SymX || c[1] == components.SymX || c[2] == components.SymX
}

func isStopCodon(c codon) bool {
	v, ok := codonTable[c]
	return ok && v == stopCodon
}

// isPromoter reports whether amino is one of the eight promoter-capable
// acids: L, P, K, C, V, M, H, Q (spec.md §4.1 "Promoter+modifier composition").
func isPromoter(amino int8) bool {
	switch components.BaseType(amino) {
	case components.AminoL, components.AminoP, components.AminoK, components.AminoC,
		components.AminoV, components.AminoM, components.AminoH, components.AminoQ:
		return true
	}
	return false
}
