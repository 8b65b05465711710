package store

import "database/sql"

// Chat is one imported, deduplicated dataset identified by its content
// fingerprint. Timestamps are stored formatted strings (see timeLayout).
type Chat struct {
	ID             int64
	SourcePath     string
	Fingerprint    string
	MessageCount   int
	SenderCount    int
	FirstMessageAt string
	LastMessageAt  string
	CreatedAt      string
	LastAccessedAt string
	Metadata       string // JSON blob: sender list, source byte size
}

// StoredMessage is a message row with its insert-time derived fields. The
// sentiment columns stay NULL until an external analyzer writes them back.
type StoredMessage struct {
	ID             int64
	ChatID         int64
	Timestamp      string
	Sender         string
	Text           string
	Sentiment      sql.NullFloat64
	SentimentLabel sql.NullString
	TextLength     int
	WordCount      int
	EmojiCount     int
	HasMedia       bool
	HasURL         bool
}

// SenderAggregate is derived per-sender statistics, fully recomputed from
// the current message rows on every load.
type SenderAggregate struct {
	ChatID           int64
	Sender           string
	MessageCount     int
	AvgMessageLength float64
	TotalWords       int
	EmojiCount       int
	FirstMessageAt   string
	LastMessageAt    string
}

// TimelineBucket is one point of the activity timeline.
type TimelineBucket struct {
	Bucket        string
	MessageCount  int
	ActiveSenders int
}

// MessageFilter narrows a message query. Zero-value fields are ignored;
// set fields combine with logical AND. Start/End compare against the
// stored timestamp string; a date-only End (e.g. "2023-02-01") is
// inclusive of that whole day.
type MessageFilter struct {
	Start          string
	End            string
	Sender         string
	Search         string // case-insensitive substring on text
	SentimentLabel string
}

// SentimentUpdate is one sentiment annotation writeback.
type SentimentUpdate struct {
	MessageID int64
	Score     float64
	Label     string
}
