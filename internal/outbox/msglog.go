// SPDX-License-Identifier: MIT

package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure Go driver
)

// MessageLog is the SQLite-backed audit trail: one row per terminal send
// outcome. It is append-only from the pipeline's point of view.
type MessageLog struct {
	db *sql.DB
}

// LogEntry is one audit row.
type LogEntry struct {
	MessageID string
	Recipient string
	Text      string
	Status    Status
	Error     string
	Attempt   int
	CreatedAt time.Time
}

const msgLogSchema = `
CREATE TABLE IF NOT EXISTS message_log (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	message_id TEXT NOT NULL,
	recipient TEXT NOT NULL,
	text TEXT NOT NULL,
	status TEXT NOT NULL,
	error TEXT,
	attempt INTEGER NOT NULL,
	created_at_ms INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_message_log_recipient ON message_log(recipient, created_at_ms);
`

// OpenMessageLog opens (or creates) the audit log at dbPath.
func OpenMessageLog(dbPath string) (*MessageLog, error) {
	// Mandatory PRAGMAs go in the DSN so they apply to every pooled
	// connection.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("message log: open: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	if _, err := db.Exec(msgLogSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("message log: migrate: %w", err)
	}
	return &MessageLog{db: db}, nil
}

func (m *MessageLog) Close() error { return m.db.Close() }

// Record appends one audit row.
func (m *MessageLog) Record(ctx context.Context, e LogEntry) error {
	_, err := m.db.ExecContext(ctx,
		`INSERT INTO message_log (message_id, recipient, text, status, error, attempt, created_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.MessageID, e.Recipient, e.Text, string(e.Status), e.Error, e.Attempt,
		e.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("message log: insert: %w", err)
	}
	return nil
}

// Recent returns the latest rows, newest first.
func (m *MessageLog) Recent(ctx context.Context, limit int) ([]LogEntry, error) {
	rows, err := m.db.QueryContext(ctx,
		`SELECT message_id, recipient, text, status, COALESCE(error, ''), attempt, created_at_ms
		 FROM message_log ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("message log: query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []LogEntry
	for rows.Next() {
		var e LogEntry
		var createdMs int64
		var status string
		if err := rows.Scan(&e.MessageID, &e.Recipient, &e.Text, &status, &e.Error, &e.Attempt, &createdMs); err != nil {
			return nil, err
		}
		e.Status = Status(status)
		e.CreatedAt = time.UnixMilli(createdMs)
		out = append(out, e)
	}
	return out, rows.Err()
}
