// Package grammar classifies raw export lines: either a line starts a new
// message (date, time, sender, text) or it doesn't. Pattern and format
// candidates are tried in a fixed priority order and the first match wins.
package grammar

import (
	"regexp"
	"strings"
	"time"
)

// LineMatch holds the tokens extracted from a line that starts a message.
type LineMatch struct {
	Timestamp time.Time
	Sender    string
	Text      string
}

// linePatterns are tried in order; the first structural match wins.
// Both '-' and '–' are accepted as the header/text separator.
var linePatterns = []*regexp.Regexp{
	// DD/MM/YY, HH:MM[:SS] - Sender: text
	regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}),?\s*(\d{1,2}:\d{2}(?::\d{2})?)\s*[-–]\s*([^:]+?):\s*(.*)$`),
	// [DD/MM/YY, HH:MM:SS] Sender: text
	regexp.MustCompile(`^\[(\d{1,2}/\d{1,2}/\d{2,4}),?\s*(\d{1,2}:\d{2}:\d{2})\]\s*([^:]+?):\s*(.*)$`),
	// DD.MM.YY, HH:MM[:SS] - Sender: text
	regexp.MustCompile(`^(\d{1,2}\.\d{1,2}\.\d{2,4}),?\s*(\d{1,2}:\d{2}(?::\d{2})?)\s*[-–]\s*([^:]+?):\s*(.*)$`),
	// MM/DD/YY, HH:MM[:SS] AM/PM - Sender: text
	regexp.MustCompile(`(?i)^(\d{1,2}/\d{1,2}/\d{2,4}),?\s*(\d{1,2}:\d{2}(?::\d{2})?\s*(?:AM|PM))\s*[-–]\s*([^:]+?):\s*(.*)$`),
}

// Format candidates, tried in order; the first that parses wins. Candidate
// order alone decides day/month ambiguity — the same raw date string always
// resolves the same way, regardless of content. Known limitation for
// day/month-ambiguous locales, kept deliberately.
var layouts24h = []string{
	"2/1/06 15:04",
	"1/2/06 15:04",
	"2/1/2006 15:04",
	"1/2/2006 15:04",
	"2.1.06 15:04",
	"2.1.2006 15:04",
	"2/1/06 15:04:05",
	"1/2/06 15:04:05",
	"2/1/2006 15:04:05",
	"1/2/2006 15:04:05",
}

var layouts12h = []string{
	"1/2/06 3:04 PM",
	"2/1/06 3:04 PM",
	"1/2/2006 3:04 PM",
	"2/1/2006 3:04 PM",
	"1/2/06 3:04:05 PM",
	"2/1/06 3:04:05 PM",
	"1/2/2006 3:04:05 PM",
	"2/1/2006 3:04:05 PM",
}

// Match tries each line pattern in priority order. A structural hit whose
// date/time tokens resolve to no known format falls through as a non-match
// (continuation candidate), not an error.
func Match(line string) (LineMatch, bool) {
	for _, pat := range linePatterns {
		groups := pat.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		ts, ok := ResolveTimestamp(groups[1], groups[2])
		if !ok {
			return LineMatch{}, false
		}
		return LineMatch{
			Timestamp: ts,
			Sender:    strings.TrimSpace(groups[3]),
			Text:      strings.TrimSpace(groups[4]),
		}, true
	}
	return LineMatch{}, false
}

// ResolveTimestamp resolves a date token and time token against the format
// candidates, choosing the 12-hour list when the time carries an AM/PM
// marker. Returns false when no candidate parses.
func ResolveTimestamp(dateTok, timeTok string) (time.Time, bool) {
	timeTok = normalizeTime(timeTok)
	layouts := layouts24h
	if strings.Contains(timeTok, "AM") || strings.Contains(timeTok, "PM") {
		layouts = layouts12h
	}
	raw := dateTok + " " + timeTok
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// normalizeTime uppercases an AM/PM marker and guarantees a single space
// before it, so "10:00am" and "10:00 AM" parse against the same layouts.
func normalizeTime(tok string) string {
	tok = strings.TrimSpace(tok)
	upper := strings.ToUpper(tok)
	for _, marker := range []string{"AM", "PM"} {
		idx := strings.Index(upper, marker)
		if idx < 0 {
			continue
		}
		return strings.TrimSpace(tok[:idx]) + " " + marker
	}
	return tok
}
