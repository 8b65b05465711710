package store

import "strings"

// Insert-time derived message fields. The emoji counter checks a small
// fixed glyph set; downstream analyzers that need full Unicode emoji
// classification own that themselves (the two granularities are
// intentionally different).
var emojiGlyphs = func() map[rune]struct{} {
	set := make(map[rune]struct{})
	for _, r := range "😀😁😂🤣😃😄😅😆😉😊😋😎😍😘🥰" {
		set[r] = struct{}{}
	}
	return set
}()

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func emojiCount(text string) int {
	n := 0
	for _, r := range text {
		if _, ok := emojiGlyphs[r]; ok {
			n++
		}
	}
	return n
}

func hasURL(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "http") || strings.Contains(lower, "www.")
}

func hasMedia(text string) bool {
	return strings.Contains(text, "<Media omitted>") ||
		strings.Contains(strings.ToLower(text), "<attached:")
}
