package genome

import "github.com/lumenark/vitae/components"

// Rules are the two configurable translation toggles (spec.md §4.1
// "Start rule", "Termination").
type Rules struct {
	RequireStartCodon bool
	IgnoreStopCodons  bool
}

// Translate decodes a genome buffer into a body-part chain. viable is
// false when the genome has no start (under RequireStartCodon) or
// produces zero parts; such agents are killed on their first frame
// (spec.md §4.1 "Viability").
func Translate(g *[components.GenomeBytes]components.GenomeSymbol, rules Rules) (parts []components.BodyPart, viable bool) {
	start, found := findStart(g, rules)
	if !found {
		return nil, false
	}

	n := len(g)
	i := start
	for len(parts) < components.MaxBodyParts && i+3 <= n {
		c := codon{g[i], g[i+1], g[i+2]}

		if containsX(c) || isStopCodon(c) {
			if rules.IgnoreStopCodons {
				if containsX(c) {
					i++
				} else {
					i += 3
				}
				continue
			}
			break
		}

		amino := decodeCodon(c)
		if isPromoter(amino) {
			if i+6 <= n {
				mod := codon{g[i+3], g[i+4], g[i+5]}
				if !containsX(mod) && !isStopCodon(mod) {
					modifier := decodeCodon(mod)
					organ, param := resolveOrgan(components.BaseType(amino), modifier)
					parts = append(parts, newPart(organ, param))
				}
				// Frame-alignment rule: a promoter pair always consumes 6
				// symbols, organ or not (spec.md §4.1).
				i += 6
				continue
			}
			// Not enough genome left for a modifier codon: fall through and
			// decode the promoter symbol as a plain structural amino acid.
		}

		parts = append(parts, newPart(components.BaseType(amino), 0))
		i += 3
	}

	return parts, len(parts) > 0
}

func newPart(base components.BaseType, param uint8) components.BodyPart {
	row := components.PropTable[base]
	return components.BodyPart{
		Size: row.SegmentLength,
		Type: components.NewPartType(base, param),
	}
}

func findStart(g *[components.GenomeBytes]components.GenomeSymbol, rules Rules) (int, bool) {
	n := len(g)
	if rules.RequireStartCodon {
		for i := 0; i+3 <= n; i++ {
			if g[i] == 'A' && g[i+1] == 'U' && g[i+2] == 'G' {
				return i, true
			}
		}
		return 0, false
	}
	for i := 0; i+3 <= n; i++ {
		if g[i] != components.SymX && g[i+1] != components.SymX && g[i+2] != components.SymX {
			return i, true
		}
	}
	return 0, false
}
