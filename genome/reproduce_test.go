package genome

import (
	"math/rand"
	"testing"

	"github.com/lumenark/vitae/components"
)

func paddedGenome(symbols string) [components.GenomeBytes]components.GenomeSymbol {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	start := (components.GenomeBytes - len(symbols)) / 2
	for i, c := range symbols {
		g[start+i] = components.GenomeSymbol(c)
	}
	return g
}

func TestReverseComplementMapsBasesAndReverses(t *testing.T) {
	g := paddedGenome("AUGC")
	rc := ReverseComplement(&g)

	start, length := activeRegion(&rc)
	got := string(rc[start : start+length])
	if got != "GCAU" {
		t.Fatalf("reverse complement of AUGC = %q, want GCAU", got)
	}
}

func TestCopyReturnsIdenticalGenome(t *testing.T) {
	g := paddedGenome("AUGCAUGC")
	c := Copy(&g)
	if c != g {
		t.Fatal("Copy should return a byte-identical genome")
	}
}

func TestEffectiveRateAmplifiesWithBetaExposure(t *testing.T) {
	noBeta := MutationParams{BaseRate: 0.01, BetaNormalized: 0}
	if noBeta.EffectiveRate() != 0.01 {
		t.Fatalf("with no beta exposure, rate should equal base rate, got %v", noBeta.EffectiveRate())
	}

	fullBeta := MutationParams{BaseRate: 0.01, BetaNormalized: 1}
	base := float32(0.01)
	want := base * 5
	if fullBeta.EffectiveRate() != want {
		t.Fatalf("EffectiveRate() with full beta exposure = %v, want %v", fullBeta.EffectiveRate(), want)
	}
}

func TestEffectiveRateClampsToOne(t *testing.T) {
	p := MutationParams{BaseRate: 1, BetaNormalized: 1}
	if p.EffectiveRate() != 1 {
		t.Fatalf("EffectiveRate() should clamp to 1, got %v", p.EffectiveRate())
	}
}

func TestActiveRegionFindsFirstAndLastNonX(t *testing.T) {
	g := paddedGenome("AUGC")
	start, length := activeRegion(&g)
	if length != 4 {
		t.Fatalf("expected active region length 4, got %d", length)
	}
	if g[start] != 'A' || g[start+length-1] != 'C' {
		t.Fatalf("active region boundaries wrong: start=%c end=%c", g[start], g[start+length-1])
	}
}

func TestActiveRegionAllXReturnsZeroLength(t *testing.T) {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	_, length := activeRegion(&g)
	if length != 0 {
		t.Fatalf("an all-X genome should have zero active length, got %d", length)
	}
}

func TestMutateZeroRateLeavesGenomeUnchanged(t *testing.T) {
	g := paddedGenome("AUGCAUGCAUGC")
	before := g
	rng := rand.New(rand.NewSource(1))

	Mutate(&g, MutationParams{BaseRate: 0, BetaNormalized: 0}, rng)

	if g != before {
		t.Fatal("Mutate with zero effective rate must not touch the genome")
	}
}

func TestMutateNeverTouchesPaddingSymbols(t *testing.T) {
	g := paddedGenome("AUGCAUGCAUGCAUGC")
	rng := rand.New(rand.NewSource(7))

	Mutate(&g, MutationParams{BaseRate: 1, BetaNormalized: 1}, rng)

	start, length := activeRegion(&g)
	for i := 0; i < start; i++ {
		if g[i] != components.SymX {
			t.Fatalf("byte %d before the active region should stay X, got %c", i, g[i])
		}
	}
	for i := start + length; i < components.GenomeBytes; i++ {
		if g[i] != components.SymX {
			t.Fatalf("byte %d after the active region should stay X, got %c", i, g[i])
		}
	}
}

func TestMutateNeverShrinksBelowMinGeneLength(t *testing.T) {
	g := paddedGenome("AUGCAU") // exactly MinGeneLength=6 symbols
	rng := rand.New(rand.NewSource(3))

	for i := 0; i < 50; i++ {
		Mutate(&g, MutationParams{BaseRate: 1, BetaNormalized: 1}, rng)
		_, length := activeRegion(&g)
		if length < components.MinGeneLength {
			t.Fatalf("active length fell to %d, below MinGeneLength=%d", length, components.MinGeneLength)
		}
	}
}

func TestInsertionPointStaysWithinActiveRegionBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	start, length := 100, 20
	for i := 0; i < 20; i++ {
		at := insertionPoint(start, length, rng)
		if at < start || at > start+length {
			t.Fatalf("insertionPoint() = %d, want within [%d, %d]", at, start, start+length)
		}
	}
}

func TestRecenterPlacesActiveRegionAtBufferMidpoint(t *testing.T) {
	var g [components.GenomeBytes]components.GenomeSymbol
	for i := range g {
		g[i] = components.SymX
	}
	copy(g[0:4], "AUGC") // deliberately off-center, near the start

	newStart, newLen := recenter(&g, 4)

	if newLen != 4 {
		t.Fatalf("recenter should preserve active length, got %d", newLen)
	}
	wantStart := (components.GenomeBytes - 4) / 2
	if newStart != wantStart {
		t.Fatalf("recenter() start = %d, want %d", newStart, wantStart)
	}
	if string(g[newStart:newStart+4]) != "AUGC" {
		t.Fatalf("recenter should preserve symbol order, got %q", string(g[newStart:newStart+4]))
	}
}

func TestClampProbabilityBounds(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{-1, 0},
		{0.5, 0.5},
		{2, 1},
	}
	for _, c := range cases {
		if got := clampProbability(c.in); got != c.want {
			t.Fatalf("clampProbability(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}
