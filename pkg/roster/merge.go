package roster

import "sort"

// screenshotOffset is added to every candidate's vertical position per
// screenshot ordinal when merging format2 screenshots. It is far larger than
// any real pixel coordinate, so spacing heuristics can never interleave
// players from different screenshots.
const screenshotOffset = 10000.0

// MergeScreenshots combines every screenshot accumulated so far into one
// slotted 21-entry roster. The overall format is format2 if any contributing
// screenshot was classified format2, otherwise format1 rules apply (unknown
// collapses to format1).
func MergeScreenshots(records []ScreenshotRecord) []Slot {
	if len(records) == 0 {
		return emptySlots()
	}
	for _, r := range records {
		if r.Format == Format2 {
			return mergeFormat2(records)
		}
	}
	return mergeFormat1(records)
}

func mergeFormat2(records []ScreenshotRecord) []Slot {
	ordered := make([]ScreenshotRecord, len(records))
	copy(ordered, records)
	// starting-side screenshots ahead of bench ones, upload order otherwise
	sort.SliceStable(ordered, func(i, j int) bool {
		return !HasBenchMarker(ordered[i].RawText) && HasBenchMarker(ordered[j].RawText)
	})

	var pooled []Candidate
	for ord, rec := range ordered {
		for _, c := range rec.Candidates {
			c.YPosition += float64(ord) * screenshotOffset
			pooled = append(pooled, c)
		}
	}
	return AssignFormat2(Deduplicate(pooled))
}

func mergeFormat1(records []ScreenshotRecord) []Slot {
	if len(records) == 1 {
		return AssignSequential(Deduplicate(records[0].Candidates))
	}
	var starting, bench []Candidate
	benchSeen := false
	for _, rec := range records {
		if HasBenchMarker(rec.RawText) {
			benchSeen = true
			bench = append(bench, rec.Candidates...)
		} else {
			starting = append(starting, rec.Candidates...)
		}
	}
	// Without a bench marker anywhere there is no ordering signal beyond
	// upload order; treat the batch as one continuous team list.
	if !benchSeen {
		return AssignSequential(Deduplicate(starting))
	}
	return AssignFormat1Split(Deduplicate(starting), Deduplicate(bench))
}
