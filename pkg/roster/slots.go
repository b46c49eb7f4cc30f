package roster

import "sort"

const (
	// defaultMedianSpacing stands in for the median row spacing when there
	// are too few candidates to measure one.
	defaultMedianSpacing = 50.0
	// gapFactor is the multiple of the median spacing a vertical gap must
	// exceed to be read as concealing missing players.
	gapFactor = 1.5
)

// AssignFormat2 places format2 candidates into the 21 template slots by
// vertical order. A full set of 21 fills sequentially; with fewer, vertical
// gaps wider than gapFactor times the median row spacing are read as one or
// more players OCR failed to recover, and empty slots are inserted before the
// next real candidate. Trailing slots beyond the last candidate stay empty.
func AssignFormat2(cands []Candidate) []Slot {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].YPosition < sorted[j].YPosition
	})

	slots := emptySlots()
	if len(sorted) >= TeamSize {
		for i := 0; i < TeamSize; i++ {
			c := sorted[i]
			slots[i].Player = &c
		}
		return slots
	}

	median := medianSpacing(sorted)
	idx := 0
	for i := range sorted {
		if i > 0 {
			gap := sorted[i].YPosition - sorted[i-1].YPosition
			if gap > gapFactor*median {
				idx += int(gap/(gapFactor*median) + 0.5)
			}
		}
		if idx >= TeamSize {
			break
		}
		c := sorted[i]
		slots[idx].Player = &c
		idx++
	}
	return slots
}

// medianSpacing is the median vertical distance between consecutive
// candidates, or the default when fewer than two candidates exist.
func medianSpacing(sorted []Candidate) float64 {
	if len(sorted) < 2 {
		return defaultMedianSpacing
	}
	gaps := make([]float64, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, sorted[i].YPosition-sorted[i-1].YPosition)
	}
	sort.Float64s(gaps)
	mid := len(gaps) / 2
	if len(gaps)%2 == 1 {
		return gaps[mid]
	}
	return (gaps[mid-1] + gaps[mid]) / 2
}

// AssignFormat1Split slots candidates from explicitly separated starting and
// bench screenshots: the on-field 13 fill slots 0-12 in extraction order, the
// bench fills 13-20, each side padded with empties when short.
func AssignFormat1Split(starting, bench []Candidate) []Slot {
	slots := emptySlots()
	fillRange(slots, 0, StartingSize, starting)
	fillRange(slots, StartingSize, TeamSize, bench)
	return slots
}

// AssignSequential fills all 21 slots in candidate order, padding the tail
// with empties. Used for a lone format1 screenshot that shows the whole team.
func AssignSequential(cands []Candidate) []Slot {
	slots := emptySlots()
	fillRange(slots, 0, TeamSize, cands)
	return slots
}

// fillRange fills slots[from:to] from cands in order. The slot keeps its
// templated position; whatever position the candidate was tagged with during
// extraction is a hint only and is never copied onto the slot.
func fillRange(slots []Slot, from, to int, cands []Candidate) {
	for i, c := range cands {
		if from+i >= to {
			break
		}
		cc := c
		slots[from+i].Player = &cc
	}
}
