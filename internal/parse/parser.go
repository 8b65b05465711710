// Package parse turns an exported chat transcript into an ordered sequence
// of messages plus parse statistics. Unrecognized lines are recovered, not
// fatal; only a missing source aborts the parse.
package parse

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chatvault/chatvault/internal/grammar"
)

const (
	// DefaultMaxTextLen caps a single message's accumulated text so garbled
	// input without timestamp lines can't grow one message unboundedly.
	DefaultMaxTextLen = 10_000

	// Files above this are scanned line by line instead of read fully.
	largeFileThreshold = 50 * 1024 * 1024

	scanBufferSize = 64 * 1024
	maxLineSize    = 10 * 1024 * 1024
)

// Parser holds parse options. The zero value is ready to use.
type Parser struct {
	MaxTextLen int // per-message text cap; DefaultMaxTextLen when 0
}

// ParseFile parses a chat export. A missing or unreadable source is a hard
// error with nothing parsed; any individual line failing to match only
// increments Stats.FailedLines.
func (p Parser) ParseFile(path string) ([]Message, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("open chat export: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, Stats{}, fmt.Errorf("stat chat export: %w", err)
	}

	acc := newAccumulator(p.MaxTextLen)
	acc.stats.FileSize = info.Size()

	if info.Size() > largeFileThreshold {
		err = scanLines(f, acc)
	} else {
		err = readLines(f, acc)
	}
	if err != nil {
		return nil, Stats{}, fmt.Errorf("read chat export: %w", err)
	}

	acc.finalize()
	return acc.messages, acc.stats, nil
}

// readLines handles the small-file path: the whole input is read at once
// and split in memory.
func readLines(r io.Reader, acc *accumulator) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	lines := strings.Split(string(data), "\n")
	// A newline-terminated file splits into a trailing empty element that
	// the streamed path never sees; don't count it as a line.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for _, line := range lines {
		acc.stats.TotalLines++
		acc.line(line)
	}
	return nil
}

// scanLines handles the large-file path: bounded-buffer streaming so the
// input is never held in memory wholesale.
func scanLines(r io.Reader, acc *accumulator) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, scanBufferSize), maxLineSize)
	for scanner.Scan() {
		acc.stats.TotalLines++
		acc.line(scanner.Text())
	}
	return scanner.Err()
}

// accumulator is the parse state threaded through the line loop: the
// in-progress message plus the running stats.
type accumulator struct {
	maxTextLen int
	current    *Message
	messages   []Message
	stats      Stats
	senders    map[string]struct{}
}

func newAccumulator(maxTextLen int) *accumulator {
	if maxTextLen <= 0 {
		maxTextLen = DefaultMaxTextLen
	}
	return &accumulator{
		maxTextLen: maxTextLen,
		senders:    make(map[string]struct{}),
	}
}

func (a *accumulator) line(raw string) {
	line := strings.TrimSpace(raw)
	if line == "" {
		return
	}

	if m, ok := grammar.Match(line); ok {
		a.flush()
		a.current = &Message{Timestamp: m.Timestamp, Sender: m.Sender, Text: m.Text}
		return
	}

	// Senderless system notices carry a timestamp header but no sender
	// colon; they are dropped without counting as failures and never merge
	// into the accumulating message.
	if isNoticeLine(line) {
		return
	}

	if a.current != nil {
		// Continuation line. Text past the cap is dropped silently.
		if len(a.current.Text) < a.maxTextLen {
			a.current.Text += " " + line
		}
		return
	}

	a.stats.FailedLines++
}

// flush finalizes the in-progress message, rejecting empty texts and system
// notices before it reaches the output sequence.
func (a *accumulator) flush() {
	if a.current == nil {
		return
	}
	msg := *a.current
	a.current = nil

	msg.Text = strings.TrimSpace(msg.Text)
	if msg.Text == "" || isSystemNotice(msg.Text) {
		return
	}

	a.messages = append(a.messages, msg)
	a.stats.ParsedMessages++
	a.senders[msg.Sender] = struct{}{}
	if a.stats.FirstMessage.IsZero() || msg.Timestamp.Before(a.stats.FirstMessage) {
		a.stats.FirstMessage = msg.Timestamp
	}
	if msg.Timestamp.After(a.stats.LastMessage) {
		a.stats.LastMessage = msg.Timestamp
	}
}

func (a *accumulator) finalize() {
	a.flush()
	a.stats.UniqueSenders = len(a.senders)
}

// Validate reports whether a parse produced a usable dataset. It never
// discards data; callers decide what to do with a not-ok result.
func Validate(stats Stats, messageCount int) (bool, string) {
	if messageCount == 0 {
		return false, "no messages parsed"
	}
	if messageCount < 10 {
		return false, "too few messages parsed (less than 10)"
	}
	if stats.UniqueSenders < 2 {
		return false, "only one sender found - check if this is a group chat"
	}
	return true, ""
}
