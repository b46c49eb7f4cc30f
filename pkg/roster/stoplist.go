package roster

import "strings"

// stopWords are tokens the battery keeps matching that are never player
// names: NRL team codes, UI chrome from both screenshot layouts, and common
// OCR debris of the position/price columns. Matched case-insensitively.
var stopWords = map[string]struct{}{}

func init() {
	for _, w := range []string{
		// team codes / short names
		"BRI", "BRO", "CAN", "CBY", "CRO", "DOL", "EEL", "GLD", "MAN", "MEL",
		"NEW", "NQL", "NSW", "PAR", "PEN", "QLD", "RAB", "ROO", "SOU", "SYD",
		"TIG", "TIT", "WAR", "WST",
		"Broncos", "Bulldogs", "Cowboys", "Dolphins", "Dragons", "Eels",
		"Knights", "Panthers", "Rabbitohs", "Raiders", "Roosters", "Sharks",
		"Storm", "Titans", "Warriors", "Tigers",
		// UI labels
		"Bench", "Boost", "Captain", "Coach", "Edit", "Emergency", "Field",
		"Interchange", "League", "Locked", "Next", "Played", "Player",
		"Players", "Points", "Price", "Reserves", "Round", "Salary", "Score",
		"Starting", "Team", "Total", "Trade", "Trades", "Value", "View",
		// position/price column debris
		"HOK", "MID", "EDG", "HLF", "CTR", "WFB", "INT", "EMG",
		"Hok", "Mid", "Edg", "Hlf", "Ctr", "Wfb",
	} {
		stopWords[strings.ToLower(w)] = struct{}{}
	}
}

func isStopWord(token string) bool {
	_, ok := stopWords[strings.ToLower(token)]
	return ok
}
