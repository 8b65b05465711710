package parse

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// writeExport creates a temp export file and returns its path.
func writeExport(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFile_SingleLineMessages(t *testing.T) {
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: Hello",
		"01/02/23, 10:01 - Bob: Hi back",
	)

	msgs, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].Sender != "Alice" || msgs[0].Text != "Hello" {
		t.Errorf("msgs[0] = %+v", msgs[0])
	}
	if msgs[1].Sender != "Bob" || msgs[1].Text != "Hi back" {
		t.Errorf("msgs[1] = %+v", msgs[1])
	}
	if stats.ParsedMessages != 2 {
		t.Errorf("ParsedMessages = %d, want 2", stats.ParsedMessages)
	}
	if stats.UniqueSenders != 2 {
		t.Errorf("UniqueSenders = %d, want 2", stats.UniqueSenders)
	}
	if stats.FailedLines != 0 {
		t.Errorf("FailedLines = %d, want 0", stats.FailedLines)
	}
}

func TestParseFile_ContinuationJoining(t *testing.T) {
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: Hello",
		"world",
	)

	msgs, _, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	if msgs[0].Text != "Hello world" {
		t.Errorf("Text = %q, want %q", msgs[0].Text, "Hello world")
	}
}

func TestParseFile_MultiLineContinuation(t *testing.T) {
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: first",
		"second",
		"third",
		"01/02/23, 10:05 - Bob: next message",
	)

	msgs, _, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 2 {
		t.Fatalf("len(msgs) = %d, want 2", len(msgs))
	}
	if msgs[0].Text != "first second third" {
		t.Errorf("Text = %q", msgs[0].Text)
	}
}

func TestParseFile_SystemNoticeDropped(t *testing.T) {
	path := writeExport(t,
		"02/02/23, 09:00 - Bob added Carol",
	)

	msgs, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 0 {
		t.Fatalf("len(msgs) = %d, want 0 (system notice)", len(msgs))
	}
	if stats.ParsedMessages != 0 {
		t.Errorf("ParsedMessages = %d, want 0", stats.ParsedMessages)
	}
	if stats.FailedLines != 0 {
		t.Errorf("FailedLines = %d, want 0", stats.FailedLines)
	}
	if stats.TotalLines == 0 {
		t.Error("TotalLines should count the notice line")
	}
}

func TestParseFile_NoticeBetweenMessages(t *testing.T) {
	// A senderless notice must not merge into the accumulating message.
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: Hello",
		"02/02/23, 09:00 - Bob added Carol",
		"world",
	)

	msgs, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	if msgs[0].Text != "Hello world" {
		t.Errorf("Text = %q, want %q", msgs[0].Text, "Hello world")
	}
	if stats.FailedLines != 0 {
		t.Errorf("FailedLines = %d, want 0", stats.FailedLines)
	}
}

func TestNoticeLine_HeaderShapes(t *testing.T) {
	for _, line := range []string{
		"02/02/23, 09:00 - Bob added Carol",
		"[02/02/23, 09:00:15] Bob left",
		"02.02.23, 09:00 - Your security code changed",
		"2/2/23, 9:00 AM - Messages and calls are end-to-end encrypted",
	} {
		if !isNoticeLine(line) {
			t.Errorf("isNoticeLine(%q) = false, want true", line)
		}
	}
	for _, line := range []string{
		"02/02/23, 09:00 - Bob sent a location", // dated but not a notice
		"garbage before any message",
	} {
		if isNoticeLine(line) {
			t.Errorf("isNoticeLine(%q) = true, want false", line)
		}
	}
}

func TestParseFile_NoticePatterns(t *testing.T) {
	for _, text := range []string{
		"Bob left",
		"Carol joined using this group's invite link",
		"Bob removed Carol",
		"Alice changed the group description",
		"Your security code changed",
		"Messages and calls are end-to-end encrypted",
		"missed voice call",
		"missed video call",
	} {
		if !isSystemNotice(text) {
			t.Errorf("isSystemNotice(%q) = false, want true", text)
		}
	}
	if isSystemNotice("lunch at noon?") {
		t.Error("plain conversation flagged as notice")
	}
}

func TestParseFile_UnattributedLines(t *testing.T) {
	path := writeExport(t,
		"garbage before any message",
		"more garbage",
		"01/02/23, 10:00 - Alice: Hello",
	)

	msgs, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	if stats.FailedLines != 2 {
		t.Errorf("FailedLines = %d, want 2", stats.FailedLines)
	}
}

func TestParseFile_TextCap(t *testing.T) {
	long := strings.Repeat("a", 25)
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: "+long,
		"dropped continuation",
	)

	msgs, _, err := Parser{MaxTextLen: 20}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 {
		t.Fatalf("len(msgs) = %d, want 1", len(msgs))
	}
	if msgs[0].Text != long {
		t.Errorf("continuation past cap should be dropped, got %q", msgs[0].Text)
	}
}

func TestParseFile_EmptyTextDropped(t *testing.T) {
	path := writeExport(t,
		"01/02/23, 10:00 - Alice:",
		"01/02/23, 10:01 - Bob: real message",
	)

	msgs, _, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Sender != "Bob" {
		t.Errorf("msgs = %+v, want only Bob's message", msgs)
	}
}

func TestParseFile_StatsRange(t *testing.T) {
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: first",
		"03/02/23, 18:30 - Bob: last",
	)

	_, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantFirst := time.Date(2023, 2, 1, 10, 0, 0, 0, time.UTC)
	wantLast := time.Date(2023, 2, 3, 18, 30, 0, 0, time.UTC)
	if !stats.FirstMessage.Equal(wantFirst) {
		t.Errorf("FirstMessage = %v, want %v", stats.FirstMessage, wantFirst)
	}
	if !stats.LastMessage.Equal(wantLast) {
		t.Errorf("LastMessage = %v, want %v", stats.LastMessage, wantLast)
	}
	if stats.FileSize == 0 {
		t.Error("FileSize should be recorded")
	}
}

func TestParseFile_TotalLines(t *testing.T) {
	// The trailing newline must not count as a phantom line.
	path := writeExport(t,
		"01/02/23, 10:00 - Alice: one",
		"01/02/23, 10:01 - Bob: two",
		"continuation",
	)

	_, stats, err := Parser{}.ParseFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalLines != 3 {
		t.Errorf("TotalLines = %d, want 3", stats.TotalLines)
	}
}

func TestParseFile_MissingSource(t *testing.T) {
	_, _, err := Parser{}.ParseFile(filepath.Join(t.TempDir(), "nope.txt"))
	if err == nil {
		t.Fatal("expected error for missing source")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		senders  int
		messages int
		wantOK   bool
	}{
		{"enough messages and senders", 2, 11, true},
		{"exactly at thresholds", 2, 10, true},
		{"too few messages", 2, 9, false},
		{"single sender", 1, 50, false},
		{"nothing parsed", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := Validate(Stats{UniqueSenders: tt.senders}, tt.messages)
			if ok != tt.wantOK {
				t.Errorf("Validate = %v (%q), want %v", ok, reason, tt.wantOK)
			}
			if !ok && reason == "" {
				t.Error("not-ok result should carry a reason")
			}
		})
	}
}
