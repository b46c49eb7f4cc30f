package roster

import "testing"

func extractAll(t *testing.T, text string) []Candidate {
	t.Helper()
	rec := RecognizedText{Text: text}
	return Deduplicate(ExtractCandidates(rec, DefaultExtractorConfig()))
}

func names(cands []Candidate) []string {
	out := make([]string, len(cands))
	for i, c := range cands {
		out[i] = c.Name
	}
	return out
}

func containsName(cands []Candidate, name string) bool {
	for _, c := range cands {
		if c.Name == name {
			return true
		}
	}
	return false
}

func TestExtractCanonicalName(t *testing.T) {
	got := extractAll(t, "J. Tedesco |WFB| $845k")
	if !containsName(got, "J. Tedesco") {
		t.Fatalf("missing J. Tedesco in %v", names(got))
	}
}

func TestExtractOCRArtifacts(t *testing.T) {
	cases := []struct {
		text string
		want string
	}{
		{"J.Tedesco", "J. Tedesco"},                // dropped space
		{"J Tedesco", "J. Tedesco"},                // dropped dot
		{"J, Tedesco", "J. Tedesco"},               // comma for dot
		{"J- Tedesco", "J. Tedesco"},               // dash for dot
		{"✓ J. Tedesco", "J. Tedesco"},             // checkmark prefix
		{"• J. Tedesco", "J. Tedesco"},             // bullet prefix
		{"(c) J. Tedesco", "J. Tedesco"},           // captain tag
		{"A.J. Brimson", "A. Brimson"},             // double initial
		{"j. Tedesco", "J. Tedesco"},               // lowercase initial
		{"James Tedesco", "J. Tedesco"},            // full first name
		{"a. fonua-blake", "A. Fonua-Blake"},       // hyphen segment casing
		{"J. T edesco round", "J. Tedesco"},        // split surname
	}
	for _, c := range cases {
		got := extractAll(t, c.text)
		if !containsName(got, c.want) {
			t.Fatalf("%q: want %q, got %v", c.text, c.want, names(got))
		}
	}
}

func TestExtractSuspiciousInitialSurvives(t *testing.T) {
	// a confused initial alone is resolved later by validation, not dropped
	got := extractAll(t, "1. Tedesco")
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %v", names(got))
	}
	if got[0].Initial != "1" {
		t.Fatalf("initial = %q, want raw 1", got[0].Initial)
	}
}

func TestExtractCombinedEvidenceDiscards(t *testing.T) {
	// suspicious initial AND team-code-like surname: gone
	if got := extractAll(t, "1. XQZ"); len(got) != 0 {
		t.Fatalf("want no candidates, got %v", names(got))
	}
	// valid initial with the same surname survives to validation
	if got := extractAll(t, "J. XQZ"); len(got) != 1 {
		t.Fatalf("want 1 candidate, got %v", names(got))
	}
}

func TestExtractStopList(t *testing.T) {
	for _, text := range []string{"J. Bench", "T. Trade", "B. Broncos"} {
		if got := extractAll(t, text); len(got) != 0 {
			t.Fatalf("%q: stop word leaked through: %v", text, names(got))
		}
	}
}

func TestExtractShortSurnameRejected(t *testing.T) {
	if got := extractAll(t, "J. Ho"); len(got) != 0 {
		t.Fatalf("two-letter surname accepted: %v", names(got))
	}
}

func TestExtractTrailingWindow(t *testing.T) {
	got := extractAll(t, "N. Hynes |HLF| CTR $910k SHARKS")
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %v", names(got))
	}
	c := got[0]
	if len(c.Positions) != 2 || c.Positions[0] != Half || c.Positions[1] != Centre {
		t.Fatalf("positions = %v, want [HLF CTR]", c.Positions)
	}
	if c.Price == nil || *c.Price != 910000 {
		t.Fatalf("price = %v, want 910000", c.Price)
	}
}

func TestExtractPriceNoise(t *testing.T) {
	got := extractAll(t, "K. Ponga $84O5k")
	if len(got) != 1 || got[0].Price == nil {
		t.Fatalf("no price recovered: %v", got)
	}
	if *got[0].Price != 845000 {
		t.Fatalf("price = %d, want 845000", *got[0].Price)
	}
}

func TestExtractNoPriceOnBadDigits(t *testing.T) {
	// one leading digit cannot satisfy the price shape; say nothing rather
	// than guess
	got := extractAll(t, "K. Ponga $8k")
	if len(got) != 1 {
		t.Fatalf("want 1 candidate, got %v", names(got))
	}
	if got[0].Price != nil {
		t.Fatalf("price = %d, want none", *got[0].Price)
	}
}

func TestExtractLineGeometry(t *testing.T) {
	rec := RecognizedText{
		Text: "J. Tedesco\nN. Hynes",
		Lines: []Line{
			{Text: "J. Tedesco", Y: 120},
			{Text: "N. Hynes", Y: 260},
		},
	}
	got := Deduplicate(ExtractCandidates(rec, DefaultExtractorConfig()))
	if len(got) != 2 {
		t.Fatalf("want 2 candidates, got %v", names(got))
	}
	if got[0].YPosition != 120 || got[1].YPosition != 260 {
		t.Fatalf("y positions = %v %v, want 120 260", got[0].YPosition, got[1].YPosition)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"$845k", 845000, true},
		{"$84, 5k", 845000, true},
		{"$91O0k", 910000, true},
		{"$450k", 450000, true},
		{"no price here", 0, false},
		{"$8k", 0, false},
	}
	for _, c := range cases {
		got, ok := parsePrice(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("%q: got (%d,%v) want (%d,%v)", c.in, got, ok, c.want, c.ok)
		}
	}
}
