package store

import "testing"

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"  spaced   out  ", 2},
		{"Hello Alice, check https://example.com", 4},
	}
	for _, tt := range tests {
		if got := wordCount(tt.text); got != tt.want {
			t.Errorf("wordCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}

func TestEmojiCount(t *testing.T) {
	if got := emojiCount("😂 twice 😂"); got != 2 {
		t.Errorf("emojiCount = %d, want 2", got)
	}
	// Glyphs outside the fixed set don't count; the counter is a coarse
	// heuristic, not full emoji classification.
	if got := emojiCount("🚀🎉"); got != 0 {
		t.Errorf("emojiCount = %d, want 0 for out-of-set glyphs", got)
	}
}

func TestHasURL(t *testing.T) {
	if !hasURL("see HTTPS://Example.com") {
		t.Error("uppercase scheme should match")
	}
	if !hasURL("go to www.example.com") {
		t.Error("www. should match")
	}
	if hasURL("no links here") {
		t.Error("false positive")
	}
}

func TestHasMedia(t *testing.T) {
	if !hasMedia("<Media omitted>") {
		t.Error("media placeholder should match")
	}
	if !hasMedia("photo <ATTACHED: IMG_001.jpg>") {
		t.Error("attached marker should match case-insensitively")
	}
	if hasMedia("plain text") {
		t.Error("false positive")
	}
}
