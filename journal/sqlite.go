package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const busyTimeoutMs = 5000

const schema = `
CREATE TABLE IF NOT EXISTS records (
	stream_id TEXT NOT NULL,
	version   INTEGER NOT NULL,
	id        TEXT NOT NULL,
	type      TEXT NOT NULL,
	data      TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	PRIMARY KEY (stream_id, version)
);
`

// SQLiteStore is a Store backed by a SQLite database file. Use ":memory:"
// for an ephemeral database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (creating if needed) a SQLite-backed store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", "file:"+path)
	if err != nil {
		return nil, fmt.Errorf("journal: open sqlite: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: ping sqlite: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout=%d", busyTimeoutMs)); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: set busy timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("journal: create schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Append implements Store.
func (s *SQLiteStore) Append(ctx context.Context, streamID string, expectedVersion int, records []*Record) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return -1, fmt.Errorf("journal: begin: %w", err)
	}
	defer tx.Rollback()

	head, err := streamVersionTx(ctx, tx, streamID)
	if err != nil {
		return -1, err
	}
	if head != expectedVersion {
		return head, ErrConcurrencyConflict
	}

	for _, r := range records {
		head++
		_, err := tx.ExecContext(ctx,
			`INSERT INTO records (stream_id, version, id, type, data, timestamp) VALUES (?, ?, ?, ?, ?, ?)`,
			streamID, head, r.ID, r.Type, string(r.Data), r.Timestamp.UTC().Format(time.RFC3339Nano))
		if err != nil {
			return -1, fmt.Errorf("journal: insert record: %w", err)
		}
		r.StreamID = streamID
		r.Version = head
	}

	if err := tx.Commit(); err != nil {
		return -1, fmt.Errorf("journal: commit: %w", err)
	}
	return head, nil
}

// Read implements Store.
func (s *SQLiteStore) Read(ctx context.Context, streamID string, fromVersion int) ([]*Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT version, id, type, data, timestamp FROM records
		 WHERE stream_id = ? AND version >= ? ORDER BY version`,
		streamID, fromVersion)
	if err != nil {
		return nil, fmt.Errorf("journal: query records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		r := &Record{StreamID: streamID}
		var data, ts string
		if err := rows.Scan(&r.Version, &r.ID, &r.Type, &data, &ts); err != nil {
			return nil, fmt.Errorf("journal: scan record: %w", err)
		}
		r.Data = []byte(data)
		r.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("journal: parse timestamp: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("journal: iterate records: %w", err)
	}
	return records, nil
}

// StreamVersion implements Store.
func (s *SQLiteStore) StreamVersion(ctx context.Context, streamID string) (int, error) {
	var head int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM records WHERE stream_id = ?`,
		streamID).Scan(&head)
	if err != nil {
		return -1, fmt.Errorf("journal: query version: %w", err)
	}
	return head, nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func streamVersionTx(ctx context.Context, q queryer, streamID string) (int, error) {
	var head int
	err := q.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(version), -1) FROM records WHERE stream_id = ?`,
		streamID).Scan(&head)
	if err != nil {
		return -1, fmt.Errorf("journal: query version: %w", err)
	}
	return head, nil
}
