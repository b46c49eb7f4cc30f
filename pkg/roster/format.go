package roster

import "regexp"

// Pipe-delimited position markers as format1 renders them ("|MID|"), with the
// delimiter widened to the glyphs OCR commonly confuses a pipe with.
var format1PositionRE = regexp.MustCompile(`[|Il1\[\]](HOK|MID|EDG|HLF|CTR|WFB)[|Il1\[\]]`)

// Format1 price text ("$845.5k" and friends). The separator between the
// leading digits and the trailing digit tolerates digit/letter confusion.
var format1PriceRE = regexp.MustCompile(`\$\s*\d{2,3}[^0-9kK]{0,3}\d{0,2}\s*[kK]`)

// Format2 shows a checkmark per picked player and a bench header.
var (
	checkmarkRE   = regexp.MustCompile(`[✓✔√]`)
	benchMarkerRE = regexp.MustCompile(`(?i)BENCH\s*\(\s*\d+\s*/\s*\d+\s*\)`)
)

// DetectFormat classifies one screenshot's raw text. Pure function; callers
// treat FormatUnknown as format1 downstream.
func DetectFormat(text string) Format {
	if format1PositionRE.MatchString(text) || format1PriceRE.MatchString(text) {
		return Format1
	}
	if checkmarkRE.MatchString(text) || benchMarkerRE.MatchString(text) {
		return Format2
	}
	return FormatUnknown
}

// HasBenchMarker reports whether text carries the "BENCH (n/m)" header that
// marks a bench/reserves screenshot.
func HasBenchMarker(text string) bool {
	return benchMarkerRE.MatchString(text)
}
