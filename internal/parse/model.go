package parse

import "time"

// Message is one conversational turn recovered from an export. Ordering is
// insertion order as discovered in the source stream.
type Message struct {
	Timestamp time.Time
	Sender    string
	Text      string
}

// Stats are the counters for one parse run, finalized once at end of input.
type Stats struct {
	TotalLines     int
	ParsedMessages int
	FailedLines    int
	UniqueSenders  int
	FirstMessage   time.Time
	LastMessage    time.Time
	FileSize       int64
}
