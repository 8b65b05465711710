package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

const messageColumns = `id, chat_id, ts, sender, text, sentiment, sentiment_label,
	text_length, word_count, emoji_count, has_media, has_url`

// QueryMessages returns a chat's messages matching the filter, ordered by
// timestamp ascending. limit <= 0 means no pagination. An unknown chat id
// yields an empty result, not an error.
func (s *Store) QueryMessages(chatID int64, f MessageFilter, limit, offset int) ([]StoredMessage, error) {
	conditions, args := f.build(chatID)

	query := fmt.Sprintf(
		"SELECT %s FROM messages WHERE %s ORDER BY ts ASC",
		messageColumns, strings.Join(conditions, " AND "),
	)
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	var msgs []StoredMessage
	for rows.Next() {
		var m StoredMessage
		if err := rows.Scan(
			&m.ID, &m.ChatID, &m.Timestamp, &m.Sender, &m.Text,
			&m.Sentiment, &m.SentimentLabel,
			&m.TextLength, &m.WordCount, &m.EmojiCount, &m.HasMedia, &m.HasURL,
		); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

// CountMessages returns how many messages match the filter, for pagination.
func (s *Store) CountMessages(chatID int64, f MessageFilter) (int, error) {
	conditions, args := f.build(chatID)
	var n int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM messages WHERE "+strings.Join(conditions, " AND "),
		args...,
	).Scan(&n)
	return n, err
}

func (f MessageFilter) build(chatID int64) ([]string, []any) {
	conditions := []string{"chat_id = ?"}
	args := []any{chatID}

	if f.Start != "" {
		conditions = append(conditions, "ts >= ?")
		args = append(args, f.Start)
	}
	if f.End != "" {
		end := f.End
		// A date-only upper bound means "through the end of that day";
		// without padding it would sort before every timestamp on the day.
		if len(end) == len("2006-01-02") {
			end += "T23:59:59"
		}
		conditions = append(conditions, "ts <= ?")
		args = append(args, end)
	}
	if f.Sender != "" {
		conditions = append(conditions, "sender = ?")
		args = append(args, f.Sender)
	}
	if f.Search != "" {
		conditions = append(conditions, "text LIKE ?")
		args = append(args, "%"+f.Search+"%")
	}
	if f.SentimentLabel != "" {
		conditions = append(conditions, "sentiment_label = ?")
		args = append(args, f.SentimentLabel)
	}
	return conditions, args
}

// SenderAggregates returns the per-sender statistics for a chat, busiest
// sender first.
func (s *Store) SenderAggregates(chatID int64) ([]SenderAggregate, error) {
	rows, err := s.db.Query(`
		SELECT chat_id, sender_name, message_count, avg_message_length,
		       total_words, emoji_count, first_message_at, last_message_at
		FROM senders
		WHERE chat_id = ?
		ORDER BY message_count DESC`, chatID)
	if err != nil {
		return nil, fmt.Errorf("query senders: %w", err)
	}
	defer rows.Close()

	var aggs []SenderAggregate
	for rows.Next() {
		var a SenderAggregate
		if err := rows.Scan(
			&a.ChatID, &a.Sender, &a.MessageCount, &a.AvgMessageLength,
			&a.TotalWords, &a.EmojiCount, &a.FirstMessageAt, &a.LastMessageAt,
		); err != nil {
			return nil, err
		}
		aggs = append(aggs, a)
	}
	return aggs, rows.Err()
}

// bucketFormats maps a timeline granularity to its strftime bucket format.
var bucketFormats = map[string]string{
	"hour":  "%Y-%m-%d %H:00",
	"day":   "%Y-%m-%d",
	"week":  "%Y-W%W",
	"month": "%Y-%m",
}

// ActivityTimeline buckets a chat's messages by the given granularity
// (hour, day, week, month; anything else falls back to day), ordered by
// bucket ascending.
func (s *Store) ActivityTimeline(chatID int64, granularity string) ([]TimelineBucket, error) {
	format, ok := bucketFormats[granularity]
	if !ok {
		format = bucketFormats["day"]
	}

	rows, err := s.db.Query(fmt.Sprintf(`
		SELECT strftime('%s', ts) AS bucket,
		       COUNT(*),
		       COUNT(DISTINCT sender)
		FROM messages
		WHERE chat_id = ?
		GROUP BY bucket
		ORDER BY bucket ASC`, format), chatID)
	if err != nil {
		return nil, fmt.Errorf("query timeline: %w", err)
	}
	defer rows.Close()

	var buckets []TimelineBucket
	for rows.Next() {
		var b TimelineBucket
		if err := rows.Scan(&b.Bucket, &b.MessageCount, &b.ActiveSenders); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

// CachePut upserts an opaque analysis payload for (chat, kind). The store
// never expires or interprets payloads; invalidation belongs to callers.
func (s *Store) CachePut(chatID int64, kind string, payload []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO analysis_cache (chat_id, kind, payload, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(chat_id, kind) DO UPDATE SET
			payload    = excluded.payload,
			created_at = excluded.created_at`,
		chatID, kind, payload, time.Now().UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// CacheGet returns the stored payload for (chat, kind), or ok=false when
// absent.
func (s *Store) CacheGet(chatID int64, kind string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRow(
		"SELECT payload FROM analysis_cache WHERE chat_id = ? AND kind = ?",
		chatID, kind,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}
	return payload, true, nil
}

// UpdateSentiment writes back one sentiment annotation, the only permitted
// post-insert message mutation.
func (s *Store) UpdateSentiment(messageID int64, score float64, label string) error {
	_, err := s.db.Exec(
		"UPDATE messages SET sentiment = ?, sentiment_label = ? WHERE id = ?",
		score, label, messageID)
	return err
}

// BatchUpdateSentiment applies many annotations in one transaction.
func (s *Store) BatchUpdateSentiment(updates []SentimentUpdate) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare("UPDATE messages SET sentiment = ?, sentiment_label = ? WHERE id = ?")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, u := range updates {
		if _, err := stmt.Exec(u.Score, u.Label, u.MessageID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// GetChat returns a chat by id, or nil when it doesn't exist.
func (s *Store) GetChat(chatID int64) (*Chat, error) {
	var c Chat
	err := s.db.QueryRow(`
		SELECT id, source_path, fingerprint, message_count, sender_count,
		       first_message_at, last_message_at, created_at, last_accessed_at, metadata
		FROM chats WHERE id = ?`, chatID).Scan(
		&c.ID, &c.SourcePath, &c.Fingerprint, &c.MessageCount, &c.SenderCount,
		&c.FirstMessageAt, &c.LastMessageAt, &c.CreatedAt, &c.LastAccessedAt, &c.Metadata,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChats returns all chats, most recently accessed first.
func (s *Store) ListChats() ([]Chat, error) {
	rows, err := s.db.Query(`
		SELECT id, source_path, fingerprint, message_count, sender_count,
		       first_message_at, last_message_at, created_at, last_accessed_at, metadata
		FROM chats
		ORDER BY last_accessed_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list chats: %w", err)
	}
	defer rows.Close()

	var chats []Chat
	for rows.Next() {
		var c Chat
		if err := rows.Scan(
			&c.ID, &c.SourcePath, &c.Fingerprint, &c.MessageCount, &c.SenderCount,
			&c.FirstMessageAt, &c.LastMessageAt, &c.CreatedAt, &c.LastAccessedAt, &c.Metadata,
		); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
