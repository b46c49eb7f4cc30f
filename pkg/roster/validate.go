package roster

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Validate cross-checks every filled slot against the authoritative player
// list. Rejected candidates degrade to empty slots that keep their templated
// position and remember the failed OCR guess for manual correction. An empty
// entry list means the list was unavailable: validation is skipped outright
// and the roster is trusted as-is rather than emptied.
func Validate(slots []Slot, entries []ValidationEntry) []Slot {
	if len(entries) == 0 {
		return slots
	}
	out := make([]Slot, len(slots))
	copy(out, slots)
	for i := range out {
		if out[i].Player == nil {
			continue
		}
		if matchesEntry(*out[i].Player, entries) {
			continue
		}
		out[i].OriginalFailedName = out[i].Player.Name
		out[i].Player = nil
	}
	return out
}

// matchesEntry accepts a candidate on exact abbreviated-name equality, or on
// the candidate's surname appearing case-insensitively inside an entry's full
// name (which forgives a wrong or placeholder initial).
func matchesEntry(c Candidate, entries []ValidationEntry) bool {
	surname := strings.ToLower(c.Surname)
	for _, e := range entries {
		if c.Name == e.AbbreviatedName {
			return true
		}
		if surname != "" && strings.Contains(strings.ToLower(e.FullName), surname) {
			return true
		}
	}
	return false
}

// Suggest returns up to limit full player names fuzzy-matching the query,
// best matches first. Used to offer corrections for slots that failed
// validation.
func Suggest(query string, entries []ValidationEntry, limit int) []string {
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.FullName
	}
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Sort(ranks)
	out := make([]string, 0, limit)
	for _, r := range ranks {
		if len(out) >= limit {
			break
		}
		out = append(out, r.Target)
	}
	return out
}
