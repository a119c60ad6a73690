package genome

import (
	"math"
	"math/rand"

	"github.com/lumenark/vitae/components"
)

var complement = map[components.GenomeSymbol]components.GenomeSymbol{
	'A': 'U', 'U': 'A', 'G': 'C', 'C': 'G', 'X': 'X',
}

// ReverseComplement returns the reverse complement of src (A<->U, G<->C,
// X unchanged), the default sexual-reproduction genome operator
// (spec.md §4.7 "Reproduction").
func ReverseComplement(src *[components.GenomeBytes]components.GenomeSymbol) [components.GenomeBytes]components.GenomeSymbol {
	var dst [components.GenomeBytes]components.GenomeSymbol
	n := len(src)
	for i := 0; i < n; i++ {
		dst[i] = complement[src[n-1-i]]
	}
	return dst
}

// Copy returns a direct copy, the asexual-reproduction genome operator.
func Copy(src *[components.GenomeBytes]components.GenomeSymbol) [components.GenomeBytes]components.GenomeSymbol {
	return *src
}

// MutationParams bundles the configured base rate and the child's
// beta-exposure-driven amplification (spec.md §4.7 "Mutations").
type MutationParams struct {
	BaseRate       float32
	BetaNormalized float32 // in [0,1], local beta exposure at conception
}

// EffectiveRate computes mutation_rate * (1 + beta_normalized^3 * 4),
// clamped to 1.
func (m MutationParams) EffectiveRate() float32 {
	r := m.BaseRate * (1 + m.BetaNormalized*m.BetaNormalized*m.BetaNormalized*4)
	if r > 1 {
		r = 1
	}
	if r < 0 {
		r = 0
	}
	return r
}

var bases = [4]components.GenomeSymbol{'A', 'U', 'G', 'C'}

// Mutate applies insertion, deletion, and point mutation to the active
// (non-X) region of genome in place, using rng for all random draws
// (spec.md §4.7 "Mutations").
func Mutate(genome *[components.GenomeBytes]components.GenomeSymbol, params MutationParams, rng *rand.Rand) {
	rate := params.EffectiveRate()
	if rate <= 0 {
		return
	}

	start, length := activeRegion(genome)

	if rng.Float32() < rate*0.20 {
		slack := components.GenomeBytes - length
		if slack > 0 {
			maxK := slack
			if maxK > 5 {
				maxK = 5
			}
			k := 1 + rng.Intn(maxK)
			start, length = insertBases(genome, start, length, k, rng)
		}
	}

	if rng.Float32() < rate*0.35 {
		maxK := length - components.MinGeneLength
		if maxK > 5 {
			maxK = 5
		}
		if maxK > 0 {
			k := 1 + rng.Intn(maxK)
			start, length = deleteBases(genome, start, length, k, rng)
		}
	}

	for i := start; i < start+length; i++ {
		if genome[i] == components.SymX {
			continue
		}
		if rng.Float32() < rate {
			genome[i] = bases[rng.Intn(4)]
		}
	}
}

// activeRegion returns the [start, length) span covering the first to
// last non-X symbol (inclusive), used as the center for insert/delete
// and as the point-mutation scan range.
func activeRegion(genome *[components.GenomeBytes]components.GenomeSymbol) (start, length int) {
	first, last := -1, -1
	for i, s := range genome {
		if s != components.SymX {
			if first < 0 {
				first = i
			}
			last = i
		}
	}
	if first < 0 {
		return 0, 0
	}
	return first, last - first + 1
}

// insertionPoint picks begin/end/middle of the active region uniformly,
// matching the three named insertion/deletion sites in spec.md §4.7.
func insertionPoint(start, length int, rng *rand.Rand) int {
	switch rng.Intn(3) {
	case 0:
		return start
	case 1:
		return start + length
	default:
		return start + length/2
	}
}

func insertBases(genome *[components.GenomeBytes]components.GenomeSymbol, start, length, k int, rng *rand.Rand) (int, int) {
	at := insertionPoint(start, length, rng)
	var buf [components.GenomeBytes]components.GenomeSymbol
	copy(buf[:at], genome[:at])
	for i := 0; i < k; i++ {
		buf[at+i] = bases[rng.Intn(4)]
	}
	copy(buf[at+k:], genome[at:components.GenomeBytes-k])
	*genome = buf
	return recenter(genome, length+k)
}

func deleteBases(genome *[components.GenomeBytes]components.GenomeSymbol, start, length, k int, rng *rand.Rand) (int, int) {
	at := insertionPoint(start, length, rng)
	if at+k > start+length {
		at = start + length - k
	}
	if at < start {
		at = start
	}
	var buf [components.GenomeBytes]components.GenomeSymbol
	copy(buf[:at], genome[:at])
	copy(buf[at:], genome[at+k:])
	*genome = buf
	return recenter(genome, length-k)
}

// recenter re-pads the active region with X on both sides so it sits in
// the middle of the fixed buffer, then returns its new (start, length).
func recenter(genome *[components.GenomeBytes]components.GenomeSymbol, length int) (int, int) {
	newStart, newLen := activeRegion(genome)
	if newLen != length {
		length = newLen
	}
	target := (components.GenomeBytes - length) / 2
	if target == newStart || length <= 0 {
		return newStart, length
	}
	var buf [components.GenomeBytes]components.GenomeSymbol
	for i := range buf {
		buf[i] = components.SymX
	}
	copy(buf[target:target+length], genome[newStart:newStart+length])
	*genome = buf
	return target, length
}

// clampProbability clamps p into [0, 1]. Nothing in this package calls
// it outside its own test.
func clampProbability(p float32) float32 {
	return float32(math.Max(0, math.Min(1, float64(p))))
}
