// Package store persists imported chats, their messages, derived sender
// aggregates, and an opaque per-chat analysis cache in SQLite. Imports are
// deduplicated by content fingerprint. A Store owns its connection
// exclusively for its lifetime; it is single-writer by design.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// timeLayout is the stored timestamp format. It sorts lexicographically and
// is accepted by SQLite's date functions, so range filters and strftime
// bucketing work directly on the column.
const timeLayout = "2006-01-02T15:04:05"

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS chats (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    source_path      TEXT NOT NULL,
    fingerprint      TEXT NOT NULL UNIQUE,
    message_count    INTEGER NOT NULL DEFAULT 0,
    sender_count     INTEGER NOT NULL DEFAULT 0,
    first_message_at TEXT NOT NULL DEFAULT '',
    last_message_at  TEXT NOT NULL DEFAULT '',
    created_at       TEXT NOT NULL,
    last_accessed_at TEXT NOT NULL,
    metadata         TEXT NOT NULL DEFAULT '{}'
);

CREATE TABLE IF NOT EXISTS messages (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id         INTEGER NOT NULL,
    ts              TEXT NOT NULL,
    sender          TEXT NOT NULL,
    text            TEXT NOT NULL,
    sentiment       REAL,
    sentiment_label TEXT,
    text_length     INTEGER NOT NULL,
    word_count      INTEGER NOT NULL,
    emoji_count     INTEGER NOT NULL,
    has_media       INTEGER NOT NULL DEFAULT 0,
    has_url         INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS senders (
    id                 INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id            INTEGER NOT NULL,
    sender_name        TEXT NOT NULL,
    message_count      INTEGER NOT NULL,
    avg_message_length REAL NOT NULL,
    total_words        INTEGER NOT NULL,
    emoji_count        INTEGER NOT NULL,
    first_message_at   TEXT NOT NULL,
    last_message_at    TEXT NOT NULL,
    UNIQUE (chat_id, sender_name)
);

CREATE TABLE IF NOT EXISTS analysis_cache (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    chat_id    INTEGER NOT NULL,
    kind       TEXT NOT NULL,
    payload    BLOB NOT NULL,
    created_at TEXT NOT NULL,
    UNIQUE (chat_id, kind)
);

CREATE INDEX IF NOT EXISTS idx_messages_chat      ON messages(chat_id);
CREATE INDEX IF NOT EXISTS idx_messages_ts        ON messages(chat_id, ts);
CREATE INDEX IF NOT EXISTS idx_messages_sender    ON messages(chat_id, sender);
CREATE INDEX IF NOT EXISTS idx_messages_sentiment ON messages(chat_id, sentiment_label);
`

type Store struct {
	db *sql.DB
}

// Open creates the database file (and its parent directory) if needed and
// initializes the schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ChatCount() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

func (s *Store) MessageTotal() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}

// DeleteChat removes a chat and all of its dependent rows. Deleting an
// unknown id is a no-op.
func (s *Store) DeleteChat(chatID int64) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"messages", "senders", "analysis_cache"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE chat_id = ?", chatID); err != nil {
			return err
		}
	}
	if _, err := tx.Exec("DELETE FROM chats WHERE id = ?", chatID); err != nil {
		return err
	}
	return tx.Commit()
}
