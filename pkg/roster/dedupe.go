package roster

import (
	"sort"
	"strings"
)

// Deduplicate collapses candidates referring to the same player. Input order
// does not matter: candidates are first sorted into reading order
// (yPosition, then matchOffset). Identity is the formatted name, with the
// lowercase surname as a secondary key so the same player recovered with a
// placeholder initial and a real one collapses too.
func Deduplicate(cands []Candidate) []Candidate {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].YPosition != sorted[j].YPosition {
			return sorted[i].YPosition < sorted[j].YPosition
		}
		return sorted[i].MatchOffset < sorted[j].MatchOffset
	})

	out := make([]Candidate, 0, len(sorted))
	byName := map[string]int{}
	bySurname := map[string]int{}
	for _, c := range sorted {
		if i, ok := byName[c.Name]; ok {
			// A later sighting with a price is higher-confidence evidence
			// than a kept priceless one; adopt the price only, keeping the
			// first sighting's geometry and order.
			if out[i].Price == nil && c.Price != nil {
				out[i].Price = c.Price
			}
			continue
		}
		key := strings.ToLower(c.Surname)
		if i, ok := bySurname[key]; ok {
			kept := out[i]
			if !validInitial(kept.Initial) && validInitial(c.Initial) {
				delete(byName, kept.Name)
				out[i] = c
				byName[c.Name] = i
			}
			// Two valid but disagreeing initials are different identities as
			// far as we can tell; keep the first-seen and drop the later one
			// rather than merging their positions or prices.
			continue
		}
		out = append(out, c)
		byName[c.Name] = len(out) - 1
		bySurname[key] = len(out) - 1
	}
	return out
}
