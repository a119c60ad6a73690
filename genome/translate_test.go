package genome

import (
	"testing"

	"github.com/lumenark/vitae/components"
)

func fillGenome(codons ...byte) [components.GenomeBytes]components.GenomeSymbol {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	copy(g[:], codons)
	return g
}

func repeatCodon(codon string, n int) [components.GenomeBytes]components.GenomeSymbol {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	for i := 0; i < n; i++ {
		copy(g[i*3:i*3+3], codon)
	}
	return g
}

func TestTranslateAllXGenomeIsNotViable(t *testing.T) {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	parts, viable := Translate(&g, Rules{})
	if viable || len(parts) != 0 {
		t.Fatalf("an all-X genome should translate to nothing, got %d parts viable=%v", len(parts), viable)
	}
}

func TestTranslateRequiresStartCodonWhenConfigured(t *testing.T) {
	g := repeatCodon("GCU", 5) // AminoA chain, no ATG start
	_, viable := Translate(&g, Rules{RequireStartCodon: true})
	if viable {
		t.Fatal("a genome with no AUG start codon should be non-viable when RequireStartCodon is set")
	}
}

func TestTranslateBuildsStructuralChainWithoutStartRequirement(t *testing.T) {
	g := repeatCodon("GCU", 5) // AminoA x5
	parts, viable := Translate(&g, Rules{RequireStartCodon: false})
	if !viable {
		t.Fatal("expected a viable translation without the start-codon requirement")
	}
	if len(parts) != 5 {
		t.Fatalf("expected 5 structural parts, got %d", len(parts))
	}
	for i, p := range parts {
		if p.Type.Base() != components.AminoA {
			t.Fatalf("part %d should decode to AminoA, got base %v", i, p.Type.Base())
		}
	}
}

func TestTranslateStopsAtStopCodonUnlessIgnored(t *testing.T) {
	g := fillGenome()
	copy(g[0:3], "GCU")  // AminoA
	copy(g[3:6], "UAA")  // stop
	copy(g[6:9], "GCU")  // AminoA, should not be reached

	parts, viable := Translate(&g, Rules{})
	if !viable || len(parts) != 1 {
		t.Fatalf("expected exactly 1 part before the stop codon, got %d parts viable=%v", len(parts), viable)
	}

	partsIgnored, viableIgnored := Translate(&g, Rules{IgnoreStopCodons: true})
	if !viableIgnored || len(partsIgnored) != 2 {
		t.Fatalf("with IgnoreStopCodons, expected 2 parts past the stop, got %d parts viable=%v",
			len(partsIgnored), viableIgnored)
	}
}

func TestTranslateCapsAtMaxBodyParts(t *testing.T) {
	g := repeatCodon("GCU", components.MaxBodyParts+10)
	parts, viable := Translate(&g, Rules{})
	if !viable {
		t.Fatal("expected a viable translation")
	}
	if len(parts) != components.MaxBodyParts {
		t.Fatalf("expected translation to cap at MaxBodyParts=%d, got %d", components.MaxBodyParts, len(parts))
	}
}

func TestTranslatePromoterConsumesSixSymbols(t *testing.T) {
	g := fillGenome()
	copy(g[0:3], "AAA") // AminoK, a promoter
	copy(g[3:6], "GCU") // modifier codon (AminoA)
	copy(g[6:9], "GCU") // AminoA, should start at index 6 not 3

	parts, viable := Translate(&g, Rules{})
	if !viable {
		t.Fatal("expected a viable translation")
	}
	if len(parts) != 2 {
		t.Fatalf("expected the promoter pair's organ plus one amino, got %d parts", len(parts))
	}
	if parts[0].Type.Base() != components.OrganMouth || parts[1].Type.Base() != components.AminoA {
		t.Fatalf("expected [OrganMouth, AminoA], got [%v, %v]", parts[0].Type.Base(), parts[1].Type.Base())
	}
}
