// Package render formats query results for the terminal: a wrapped,
// colorized transcript view plus styled tables for aggregates.
package render

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/chatvault/chatvault/internal/store"
)

const (
	colorReset = "\033[0m"
	colorDim   = "\033[2m"
)

// senderColors are cycled through as new senders appear in a transcript.
var senderColors = []string{
	"\033[1;34m", // bold blue
	"\033[1;32m", // bold green
	"\033[1;35m", // bold magenta
	"\033[1;33m", // bold yellow
	"\033[1;36m", // bold cyan
}

type Options struct {
	Width int  // wrap width (0 = no wrap)
	Color bool // ANSI colors; off for piped output
}

// Transcript renders messages in source order, one header line per message
// and the text indented underneath.
func Transcript(msgs []store.StoredMessage, opts Options) string {
	var b strings.Builder
	palette := make(map[string]string)

	for i, m := range msgs {
		if i > 0 {
			b.WriteString("\n")
		}

		header := fmt.Sprintf("[%s] %s", m.Timestamp, m.Sender)
		if opts.Color {
			color, ok := palette[m.Sender]
			if !ok {
				color = senderColors[len(palette)%len(senderColors)]
				palette[m.Sender] = color
			}
			header = colorDim + "[" + m.Timestamp + "]" + colorReset + " " + color + m.Sender + colorReset
		}
		b.WriteString(header)
		b.WriteString("\n")

		text := m.Text
		if opts.Width > 0 {
			for _, line := range wrapLine(text, opts.Width-2) {
				b.WriteString("  " + line + "\n")
			}
		} else {
			b.WriteString("  " + text + "\n")
		}
	}
	return b.String()
}

// wrapLine breaks a line into pieces that fit within maxWidth visible
// columns, measuring display width so wide runes wrap correctly.
func wrapLine(line string, maxWidth int) []string {
	if maxWidth <= 0 {
		return []string{line}
	}

	var out []string
	var cur strings.Builder
	curWidth := 0

	for _, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if curWidth > 0 && curWidth+1+w > maxWidth {
			out = append(out, cur.String())
			cur.Reset()
			curWidth = 0
		}
		if curWidth > 0 {
			cur.WriteString(" ")
			curWidth++
		}
		cur.WriteString(word)
		curWidth += w
	}
	if cur.Len() > 0 || len(out) == 0 {
		out = append(out, cur.String())
	}
	return out
}
