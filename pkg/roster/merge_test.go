package roster

import (
	"fmt"
	"testing"
)

func format2Record(prefix string, n int, rawText string) ScreenshotRecord {
	cands := make([]Candidate, n)
	for i := range cands {
		cands[i] = Candidate{
			Name:      fmt.Sprintf("%s. %s%d", prefix, prefix, i),
			Initial:   prefix,
			Surname:   fmt.Sprintf("%s%d", prefix, i),
			YPosition: float64(i) * 100,
		}
	}
	return ScreenshotRecord{RawText: rawText, Format: Format2, Candidates: cands}
}

func TestMergeEmpty(t *testing.T) {
	slots := MergeScreenshots(nil)
	if len(slots) != TeamSize {
		t.Fatalf("len = %d", len(slots))
	}
	for _, s := range slots {
		if !s.IsEmpty() {
			t.Fatalf("slot %d not empty", s.Index)
		}
	}
}

func TestMergeFormat2BenchOrderedLast(t *testing.T) {
	// Bench screenshot uploaded first: the merger must still slot the
	// starting side ahead of it.
	bench := format2Record("B", 8, "BENCH (8/8)\n✓ B. Bench")
	starting := format2Record("S", 13, "✓ S. Starter")
	slots := MergeScreenshots([]ScreenshotRecord{bench, starting})

	if slots[0].Player == nil || slots[0].Player.Name != "S. S0" {
		t.Fatalf("slot 0 = %+v", slots[0].Player)
	}
	if slots[12].Player == nil || slots[12].Player.Name != "S. S12" {
		t.Fatalf("slot 12 = %+v", slots[12].Player)
	}
	if slots[13].Player == nil || slots[13].Player.Name != "B. B0" {
		t.Fatalf("slot 13 = %+v", slots[13].Player)
	}
	if slots[20].Player == nil || slots[20].Player.Name != "B. B7" {
		t.Fatalf("slot 20 = %+v", slots[20].Player)
	}
}

func TestMergeMixedFormatsResolvesFormat2(t *testing.T) {
	f1 := ScreenshotRecord{
		RawText:    "J. Smith |HLF| $450k",
		Format:     Format1,
		Candidates: []Candidate{{Name: "J. Smith", Initial: "J", Surname: "Smith", YPosition: 10}},
	}
	f2 := format2Record("S", 20, "✓ S. Starter")
	slots := MergeScreenshots([]ScreenshotRecord{f1, f2})
	// format2 rules: vertical order across both screenshots wins
	if slots[0].Player == nil || slots[0].Player.Name != "J. Smith" {
		t.Fatalf("slot 0 = %+v", slots[0].Player)
	}
	if slots[1].Player == nil || slots[1].Player.Name != "S. S0" {
		t.Fatalf("slot 1 = %+v", slots[1].Player)
	}
	if slots[20].Player == nil || slots[20].Player.Name != "S. S19" {
		t.Fatalf("slot 20 = %+v", slots[20].Player)
	}
}

func TestMergeFormat2DedupesAcrossScreenshots(t *testing.T) {
	a := format2Record("S", 13, "✓ S. Starter")
	b := format2Record("S", 13, "✓ S. Starter")
	slots := MergeScreenshots([]ScreenshotRecord{a, b})
	for i := 0; i < 13; i++ {
		if slots[i].Player == nil || slots[i].Player.Name != fmt.Sprintf("S. S%d", i) {
			t.Fatalf("slot %d = %+v", i, slots[i].Player)
		}
	}
	for i := 13; i < TeamSize; i++ {
		if !slots[i].IsEmpty() {
			t.Fatalf("duplicate screenshot leaked into slot %d", i)
		}
	}
}

func TestMergeFormat1Single(t *testing.T) {
	rec := ScreenshotRecord{
		RawText: "full team",
		Format:  Format1,
		Candidates: []Candidate{
			{Name: "J. Tedesco", Initial: "J", Surname: "Tedesco", YPosition: 10},
			{Name: "N. Hynes", Initial: "N", Surname: "Hynes", YPosition: 20},
		},
	}
	slots := MergeScreenshots([]ScreenshotRecord{rec})
	if slots[0].Player.Name != "J. Tedesco" || slots[1].Player.Name != "N. Hynes" {
		t.Fatalf("slots = %+v %+v", slots[0].Player, slots[1].Player)
	}
	if slots[0].Position != Hooker {
		t.Fatalf("slot 0 position = %s", slots[0].Position)
	}
}

func TestMergeFormat1StartingAndBench(t *testing.T) {
	starting := ScreenshotRecord{Format: Format1, RawText: "J. Smith |HLF| $450k"}
	for i := 0; i < 13; i++ {
		starting.Candidates = append(starting.Candidates, Candidate{
			Name: fmt.Sprintf("S. Start%d", i), Initial: "S", Surname: fmt.Sprintf("Start%d", i),
			YPosition: float64(i) * 100,
		})
	}
	bench := ScreenshotRecord{Format: Format1, RawText: "BENCH (8/8)\nJ. Jones |INT| $300k"}
	for i := 0; i < 8; i++ {
		bench.Candidates = append(bench.Candidates, Candidate{
			Name: fmt.Sprintf("B. Bench%d", i), Initial: "B", Surname: fmt.Sprintf("Bench%d", i),
			YPosition: float64(i) * 100,
		})
	}

	slots := MergeScreenshots([]ScreenshotRecord{starting, bench})
	if slots[12].Player == nil || slots[12].Player.Name != "S. Start12" {
		t.Fatalf("slot 12 = %+v", slots[12].Player)
	}
	if slots[13].Player == nil || slots[13].Player.Name != "B. Bench0" {
		t.Fatalf("slot 13 = %+v", slots[13].Player)
	}
	if slots[13].Position != Interchange {
		t.Fatalf("slot 13 position = %s", slots[13].Position)
	}
}

func TestMergeFormat1MultipleNoBenchMarker(t *testing.T) {
	a := ScreenshotRecord{Format: Format1, RawText: "half one", Candidates: []Candidate{
		{Name: "A. One", Initial: "A", Surname: "One", YPosition: 10},
	}}
	b := ScreenshotRecord{Format: Format1, RawText: "half two", Candidates: []Candidate{
		{Name: "B. Two", Initial: "B", Surname: "Two", YPosition: 10},
	}}
	slots := MergeScreenshots([]ScreenshotRecord{a, b})
	// no bench signal: pooled in upload order, filled sequentially
	if slots[0].Player.Name != "A. One" || slots[1].Player.Name != "B. Two" {
		t.Fatalf("slots = %+v %+v", slots[0].Player, slots[1].Player)
	}
}
