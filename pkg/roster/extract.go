package roster

import (
	"regexp"
	"strconv"
	"strings"
)

// ExtractorConfig carries the heuristic constants of the extractor. They are
// tuned empirically against real screenshots; keep them adjustable rather
// than baked in.
type ExtractorConfig struct {
	// SuspiciousInitials are characters OCR commonly produces in place of a
	// real initial.
	SuspiciousInitials string
	// TeamCodeLength is the length of an all-caps token treated as a likely
	// team code rather than a surname.
	TeamCodeLength int
	// TrailingWindow is how many characters after a name match are scanned
	// for position markers and a price.
	TrailingWindow int
	// MinSurnameLen is the minimum accepted surname length.
	MinSurnameLen int
}

// DefaultExtractorConfig returns the constants used in production.
func DefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		SuspiciousInitials: "10OolI",
		TeamCodeLength:     3,
		TrailingWindow:     150,
		MinSurnameLen:      3,
	}
}

// namePattern is one matcher strategy of the extraction battery. Each pattern
// recovers an (initial, surname) pair from a particular OCR artifact shape.
type namePattern struct {
	re *regexp.Regexp
	// submatch index of the initial; 0 means the pattern structurally cannot
	// recover one and a placeholder is used.
	initial int
	// submatch index of the surname.
	surname int
	// when set, the initial submatch holds a full first name and the initial
	// is its first letter.
	fullFirst bool
	// when set, the submatch after surname holds the rest of a surname OCR
	// split in two; the pieces are rejoined.
	joinNext bool
}

// The battery, most specific shapes first. All patterns run over the same
// text and their results are pooled; near-duplicates collapse in dedupe.
var namePatterns = []namePattern{
	// checkmark-prefixed entries (format2 rows)
	{re: regexp.MustCompile(`[✓✔√]\s*([A-Z])\s*[.,·:]?\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`[✓✔√]\s*([A-Z][a-z'’-]{2,})\b`), initial: 0, surname: 1},
	// bullet-prefixed entries
	{re: regexp.MustCompile(`[•●◦▪*]\s*([A-Za-z])\s*[.,·]?\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// captain tag before the name
	{re: regexp.MustCompile(`\([cC]\)\s*([A-Za-z])\s*[.,·]?\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// double initial ("A.J. Brimson"): keep the first
	{re: regexp.MustCompile(`\b([A-Z])\.\s*[A-Z]\.\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// canonical "J. Tedesco", with or without the space
	{re: regexp.MustCompile(`\b([A-Z])\s*\.\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// surname split by a stray space after its first letter ("J. T edesco")
	{re: regexp.MustCompile(`\b([A-Z])\.\s*([A-Za-z])\s([a-z'’-]{2,})\b`), initial: 1, surname: 2, joinNext: true},
	// dot misread as comma / semicolon / colon / apostrophe / middle dot
	{re: regexp.MustCompile(`\b([A-Z]),\s*([A-Z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`\b([A-Z]);\s*([A-Z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`\b([A-Z]):\s*([A-Z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`\b([A-Z])['’]\s*([A-Z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`\b([A-Z])·\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// dot misread as hyphen/dash
	{re: regexp.MustCompile(`\b([A-Z])[-–—]\s+([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// dot dropped entirely
	{re: regexp.MustCompile(`\b([A-Z])\s+([A-Z][a-z'’-]{2,})\b`), initial: 1, surname: 2},
	// initial misread as a digit or confusable letter
	{re: regexp.MustCompile(`\b([10OolI])\.\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	{re: regexp.MustCompile(`\b([10OolI])\s+([A-Z][a-z'’-]{2,})\b`), initial: 1, surname: 2},
	// lowercase initial (and possibly a lowercased surname with it)
	{re: regexp.MustCompile(`\b([a-z])\.\s*([A-Za-z][A-Za-z'’-]{2,})`), initial: 1, surname: 2},
	// full first name + surname ("James Tedesco")
	{re: regexp.MustCompile(`\b([A-Z][a-z]{2,})\s+([A-Z][a-z'’-]{2,})\b`), initial: 1, surname: 2, fullFirst: true},
	// surname alone on its own line
	{re: regexp.MustCompile(`(?m)^\s*([A-Z][a-z'’-]{3,})\s*$`), initial: 0, surname: 1},
	// all-caps surname row ("TEDESCO")
	{re: regexp.MustCompile(`(?m)^\s*([A-Z]{4,})\s*$`), initial: 0, surname: 1},
}

// Position markers and prices scanned for in the trailing window of a match.
var (
	positionMarkerRE = regexp.MustCompile(`\b(HOK|MID|EDG|HLF|CTR|WFB)\b`)
	priceCaptureRE   = regexp.MustCompile(`\$\s*(\d{2})[^0-9]{0,3}(\d)\s*[kK]`)
)

// ExtractCandidates runs the battery over each recognized line (for accurate
// vertical positions) and once more over the whole text (to catch names that
// straddle line-merge artifacts), pooling the results. The pool is unordered
// and undeduplicated.
func ExtractCandidates(rec RecognizedText, cfg ExtractorConfig) []Candidate {
	var out []Candidate
	seen := map[string]struct{}{}
	for _, line := range rec.Lines {
		for _, c := range extractFromText(line.Text, line.Y, cfg) {
			seen[strings.ToLower(c.Surname)] = struct{}{}
			out = append(out, c)
		}
	}
	// The whole-text pass supplements the per-line pass: it only contributes
	// players the line pass missed, so its zero yPosition never displaces
	// real line geometry.
	for _, c := range extractFromText(rec.Text, 0, cfg) {
		if _, ok := seen[strings.ToLower(c.Surname)]; ok {
			continue
		}
		out = append(out, c)
	}
	return out
}

func extractFromText(text string, y float64, cfg ExtractorConfig) []Candidate {
	var out []Candidate
	for _, p := range namePatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(text, -1) {
			cand, ok := buildCandidate(text, idx, p, y, cfg)
			if ok {
				out = append(out, cand)
			}
		}
	}
	return out
}

func buildCandidate(text string, idx []int, p namePattern, y float64, cfg ExtractorConfig) (Candidate, bool) {
	group := func(n int) string {
		if 2*n+1 >= len(idx) || idx[2*n] < 0 {
			return ""
		}
		return text[idx[2*n]:idx[2*n+1]]
	}
	surname := group(p.surname)
	if p.joinNext {
		surname += group(p.surname + 1)
	}
	if len(surname) < cfg.MinSurnameLen {
		return Candidate{}, false
	}
	initial := "?"
	if p.initial > 0 {
		initial = group(p.initial)
		if p.fullFirst {
			if isStopWord(initial) {
				return Candidate{}, false
			}
			initial = initial[:1]
		}
	}
	if isStopWord(surname) {
		return Candidate{}, false
	}
	// Combined-evidence filter: a suspicious initial or a suspicious surname
	// alone survives to validation, both together is discarded outright.
	if suspiciousInitial(initial, cfg) && suspiciousSurname(surname, cfg) {
		return Candidate{}, false
	}
	cand := Candidate{
		Name:        FormatName(initial, surname),
		Initial:     strings.ToUpper(initial),
		Surname:     NormalizeSurname(surname),
		YPosition:   y,
		MatchOffset: idx[0],
	}
	scanTrailingWindow(text, idx[1], cfg.TrailingWindow, &cand)
	return cand, true
}

// scanTrailingWindow attaches up to two position codes and a price found in
// the fixed window following the name match.
func scanTrailingWindow(text string, from, window int, cand *Candidate) {
	end := from + window
	if end > len(text) {
		end = len(text)
	}
	if from >= end {
		return
	}
	tail := text[from:end]
	for _, m := range positionMarkerRE.FindAllStringSubmatch(tail, 2) {
		cand.Positions = append(cand.Positions, PositionCode(m[1]))
	}
	if price, ok := parsePrice(tail); ok {
		cand.Price = &price
	}
}

// parsePrice reads a "$84x5k"-shaped match as the three-digit thousands value
// 845 -> 845000. Anything with an unexpected digit count is treated as no
// price rather than guessed at.
func parsePrice(text string) (int, bool) {
	m := priceCaptureRE.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	hundreds, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	tens, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	return (hundreds*10 + tens) * 1000, true
}

func suspiciousInitial(initial string, cfg ExtractorConfig) bool {
	return len(initial) == 1 && strings.ContainsAny(initial, cfg.SuspiciousInitials)
}

var posArtifactRE = regexp.MustCompile(`(?i)^(HOK|MID|EDG|HLF|CTR|WFB|INT|EMG)[A-Z0-9]*$`)

// suspiciousSurname flags team-code-like tokens (short all-caps) and tokens
// that look like position-marker OCR debris.
func suspiciousSurname(surname string, cfg ExtractorConfig) bool {
	if len(surname) == cfg.TeamCodeLength && surname == strings.ToUpper(surname) {
		return true
	}
	return posArtifactRE.MatchString(surname)
}
