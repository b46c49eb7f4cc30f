package roster

import "testing"

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Format
	}{
		{"pipe positions", "J. Tedesco |WFB| $845k", Format1},
		{"pipes misread as I", "J. Tedesco IWFBI", Format1},
		{"pipe misread as bracket", "N. Hynes [HLF| $910k", Format1},
		{"price only", "K. Ponga $84O5k round 12", Format1},
		{"checkmark", "✓ J. Tedesco\n✓ N. Hynes", Format2},
		{"bench header", "BENCH (4/4)\nTedesco\nHynes", Format2},
		{"bench with spacing", "bench ( 8 / 8 )", Format2},
		{"plain text", "team list round 12", FormatUnknown},
		{"empty", "", FormatUnknown},
	}
	for _, c := range cases {
		if got := DetectFormat(c.text); got != c.want {
			t.Fatalf("%s: got %v want %v", c.name, got, c.want)
		}
	}
}

func TestFormat1WinsOverBenchMarker(t *testing.T) {
	// a format1 bench screenshot still shows prices; the layout decides
	text := "BENCH (8/8) J. Smith |INT| $450k"
	if got := DetectFormat(text); got != Format1 {
		t.Fatalf("got %v want Format1", got)
	}
	if !HasBenchMarker(text) {
		t.Fatalf("bench marker not detected")
	}
}
