package roster

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Format identifies which of the two known screenshot layouts produced a
// screenshot's text.
type Format int

const (
	FormatUnknown Format = iota
	Format1              // positions and prices visible in-frame
	Format2              // checkmark/bench style list, names only
)

func (f Format) String() string {
	switch f {
	case Format1:
		return "format1"
	case Format2:
		return "format2"
	default:
		return "unknown"
	}
}

// Candidate is a provisional player record recovered from OCR text. It is
// transient: candidates live only between extraction and slot assignment.
type Candidate struct {
	Name        string // always "<Initial>. <Surname>"
	Initial     string
	Surname     string
	Positions   []PositionCode
	Price       *int // nil when no price was detected
	YPosition   float64
	MatchOffset int
}

// Line is one recognized text line with the top of its bounding box.
type Line struct {
	Text string
	Y    float64
}

// RecognizedText is the shape the text source adapter hands the engine.
type RecognizedText struct {
	Text  string
	Lines []Line
}

// ScreenshotRecord holds everything extracted from one uploaded image.
type ScreenshotRecord struct {
	RawText    string
	Lines      []Line
	Format     Format
	Candidates []Candidate
}

// Slot is one of the 21 fixed roster positions. Position always comes from
// the template via the slot index; a filling candidate's detected position is
// never copied in.
type Slot struct {
	Index    int
	Position PositionCode
	Player   *Candidate
	// OriginalFailedName keeps a validation-rejected OCR guess around so the
	// user can correct it manually. It is never treated as a player.
	OriginalFailedName string
}

// IsEmpty reports whether the slot has no confirmed player.
func (s Slot) IsEmpty() bool { return s.Player == nil }

// ValidationEntry is one row of the authoritative player universe.
type ValidationEntry struct {
	FullName        string `json:"fullName"`
	AbbreviatedName string `json:"abbreviatedName"`
	Surname         string `json:"surname"`
}

var surnameCaser = cases.Title(language.English)

// FormatName builds the canonical "<Initial>. <Surname>" form. Surnames are
// case-normalized per hyphen segment (fonua-blake -> Fonua-Blake).
func FormatName(initial, surname string) string {
	return strings.ToUpper(initial) + ". " + NormalizeSurname(surname)
}

// NormalizeSurname title-cases a surname, capitalizing each hyphen segment.
func NormalizeSurname(surname string) string {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(surname)), "-")
	for i, p := range parts {
		parts[i] = surnameCaser.String(p)
	}
	return strings.Join(parts, "-")
}

// validInitial reports whether an initial is a single alphabetic character
// rather than a placeholder or an OCR artifact.
func validInitial(initial string) bool {
	if len(initial) != 1 {
		return false
	}
	c := initial[0]
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
