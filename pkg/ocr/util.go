package ocr

import "strings"

// Snippet returns a shortened version of text for logging.
func Snippet(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "…"
}

// normalizeText tidies raw Tesseract output while keeping line structure:
// carriage returns and tabs are stripped, per-line whitespace is collapsed,
// and blank lines are dropped. Newlines stay because downstream patterns are
// line-anchored.
func normalizeText(t string) string {
	t = strings.ReplaceAll(t, "\r", "")
	t = strings.ReplaceAll(t, "\t", " ")
	var lines []string
	for _, line := range strings.Split(t, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
