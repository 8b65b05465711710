package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/chatvault/chatvault/internal/parse"
)

// insertBatchSize bounds the multi-row INSERT size; a tuning constant, not
// a correctness requirement.
const insertBatchSize = 500

// Load imports a parsed message set under the given content fingerprint.
//
// When forceReload is false and a chat with the same fingerprint exists,
// the existing id is returned after refreshing last_accessed_at — import is
// idempotent under unchanged content. Otherwise the chat row is upserted
// and its messages and sender aggregates are replaced wholesale, all inside
// one transaction: on error, prior state is left intact.
func (s *Store) Load(sourcePath, fp string, msgs []parse.Message, forceReload bool) (int64, error) {
	now := time.Now().UTC().Format(timeLayout)

	if !forceReload {
		var id int64
		err := s.db.QueryRow("SELECT id FROM chats WHERE fingerprint = ?", fp).Scan(&id)
		switch {
		case err == nil:
			if _, err := s.db.Exec("UPDATE chats SET last_accessed_at = ? WHERE id = ?", now, id); err != nil {
				return 0, fmt.Errorf("touch chat: %w", err)
			}
			return id, nil
		case err != sql.ErrNoRows:
			return 0, fmt.Errorf("lookup fingerprint: %w", err)
		}
	}

	senders := make(map[string]struct{})
	var first, last time.Time
	for _, m := range msgs {
		senders[m.Sender] = struct{}{}
		if first.IsZero() || m.Timestamp.Before(first) {
			first = m.Timestamp
		}
		if m.Timestamp.After(last) {
			last = m.Timestamp
		}
	}
	metadata, err := encodeMetadata(sourcePath, senders)
	if err != nil {
		return 0, fmt.Errorf("encode metadata: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin load: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO chats (source_path, fingerprint, message_count, sender_count,
		                   first_message_at, last_message_at, created_at, last_accessed_at, metadata)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(fingerprint) DO UPDATE SET
			source_path      = excluded.source_path,
			message_count    = excluded.message_count,
			sender_count     = excluded.sender_count,
			first_message_at = excluded.first_message_at,
			last_message_at  = excluded.last_message_at,
			last_accessed_at = excluded.last_accessed_at,
			metadata         = excluded.metadata`,
		sourcePath, fp, len(msgs), len(senders),
		formatTS(first), formatTS(last), now, now, metadata,
	)
	if err != nil {
		return 0, fmt.Errorf("upsert chat: %w", err)
	}

	var chatID int64
	if err := tx.QueryRow("SELECT id FROM chats WHERE fingerprint = ?", fp).Scan(&chatID); err != nil {
		return 0, fmt.Errorf("resolve chat id: %w", err)
	}

	// Replace, don't merge: a reload leaves exactly the new message set.
	if _, err := tx.Exec("DELETE FROM messages WHERE chat_id = ?", chatID); err != nil {
		return 0, fmt.Errorf("clear messages: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM senders WHERE chat_id = ?", chatID); err != nil {
		return 0, fmt.Errorf("clear senders: %w", err)
	}

	if err := insertMessages(tx, chatID, msgs); err != nil {
		return 0, fmt.Errorf("insert messages: %w", err)
	}

	// One grouped pass over the just-inserted rows; aggregates are
	// consistent with the message set the moment the transaction commits.
	_, err = tx.Exec(`
		INSERT INTO senders (chat_id, sender_name, message_count, avg_message_length,
		                     total_words, emoji_count, first_message_at, last_message_at)
		SELECT chat_id, sender, COUNT(*), AVG(text_length), SUM(word_count),
		       SUM(emoji_count), MIN(ts), MAX(ts)
		FROM messages
		WHERE chat_id = ?
		GROUP BY sender`, chatID)
	if err != nil {
		return 0, fmt.Errorf("compute sender aggregates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit load: %w", err)
	}
	return chatID, nil
}

// insertMessages bulk-inserts in fixed-size batches, computing the derived
// fields once at insert time.
func insertMessages(tx *sql.Tx, chatID int64, msgs []parse.Message) error {
	for start := 0; start < len(msgs); start += insertBatchSize {
		end := start + insertBatchSize
		if end > len(msgs) {
			end = len(msgs)
		}
		batch := msgs[start:end]

		var b strings.Builder
		b.WriteString(`INSERT INTO messages
			(chat_id, ts, sender, text, text_length, word_count, emoji_count, has_media, has_url)
			VALUES `)
		args := make([]any, 0, len(batch)*9)
		for i, m := range batch {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString("(?, ?, ?, ?, ?, ?, ?, ?, ?)")
			args = append(args,
				chatID, formatTS(m.Timestamp), m.Sender, m.Text,
				len(m.Text), wordCount(m.Text), emojiCount(m.Text),
				boolToInt(hasMedia(m.Text)), boolToInt(hasURL(m.Text)),
			)
		}
		if _, err := tx.Exec(b.String(), args...); err != nil {
			return err
		}
	}
	return nil
}

func encodeMetadata(sourcePath string, senders map[string]struct{}) (string, error) {
	var size int64
	if info, err := os.Stat(sourcePath); err == nil {
		size = info.Size()
	}
	names := make([]string, 0, len(senders))
	for name := range senders {
		names = append(names, name)
	}
	sort.Strings(names)
	out, err := json.Marshal(map[string]any{
		"file_size": size,
		"senders":   names,
	})
	return string(out), err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func formatTS(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(timeLayout)
}
