package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/chatvault/chatvault/internal/store"
)

var styleHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))

// SenderTable renders sender aggregates, busiest sender first.
func SenderTable(aggs []store.SenderAggregate, color bool) string {
	header := []string{"SENDER", "MSGS", "AVG LEN", "WORDS", "EMOJI", "FIRST", "LAST"}
	rows := make([][]string, 0, len(aggs))
	for _, a := range aggs {
		rows = append(rows, []string{
			a.Sender,
			fmt.Sprintf("%d", a.MessageCount),
			fmt.Sprintf("%.1f", a.AvgMessageLength),
			fmt.Sprintf("%d", a.TotalWords),
			fmt.Sprintf("%d", a.EmojiCount),
			a.FirstMessageAt,
			a.LastMessageAt,
		})
	}
	return table(header, rows, color)
}

// TimelineTable renders activity buckets with a proportional bar.
func TimelineTable(buckets []store.TimelineBucket, color bool) string {
	maxCount := 0
	for _, b := range buckets {
		if b.MessageCount > maxCount {
			maxCount = b.MessageCount
		}
	}

	header := []string{"BUCKET", "MSGS", "SENDERS", ""}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		barLen := 0
		if maxCount > 0 {
			barLen = b.MessageCount * 30 / maxCount
		}
		rows = append(rows, []string{
			b.Bucket,
			fmt.Sprintf("%d", b.MessageCount),
			fmt.Sprintf("%d", b.ActiveSenders),
			strings.Repeat("█", barLen),
		})
	}
	return table(header, rows, color)
}

// ChatTable renders the dataset listing, most recently accessed first.
func ChatTable(chats []store.Chat, color bool) string {
	header := []string{"ID", "SOURCE", "MSGS", "SENDERS", "RANGE", "ACCESSED"}
	rows := make([][]string, 0, len(chats))
	for _, c := range chats {
		rng := "-"
		if c.FirstMessageAt != "" {
			rng = dateOnly(c.FirstMessageAt) + " .. " + dateOnly(c.LastMessageAt)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.ID),
			c.SourcePath,
			fmt.Sprintf("%d", c.MessageCount),
			fmt.Sprintf("%d", c.SenderCount),
			rng,
			c.LastAccessedAt,
		})
	}
	return table(header, rows, color)
}

func dateOnly(ts string) string {
	if len(ts) >= 10 {
		return ts[:10]
	}
	return ts
}

// table lays out rows with runewidth-aware column padding.
func table(header []string, rows [][]string, color bool) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string, style *lipgloss.Style) {
		parts := make([]string, len(cells))
		for i, cell := range cells {
			padded := cell + strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			if style != nil && color {
				padded = style.Render(padded)
			}
			parts[i] = padded
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, "  "), " "))
		b.WriteString("\n")
	}

	writeRow(header, &styleHeader)
	for _, row := range rows {
		writeRow(row, nil)
	}
	return b.String()
}
