package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store records lookups in SQLite. It is bookkeeping only and is never
// read to answer a lookup.
type Store struct {
	db *sql.DB
}

// Entry represents one recorded lookup
type Entry struct {
	ID        string
	Kind      string
	EntityID  int
	URL       string
	Status    int // HTTP status, 0 when no response was received
	Summary   string
	Error     string
	Timestamp time.Time
}

// OK reports whether the lookup produced an entity.
func (e Entry) OK() bool {
	return e.Error == ""
}

// NewStore opens or creates the history database at dbPath
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps :memory: databases consistent
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS lookups (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			url TEXT NOT NULL,
			status INTEGER NOT NULL DEFAULT 0,
			summary TEXT,
			error TEXT,
			timestamp INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_lookups_timestamp ON lookups(timestamp);
		CREATE INDEX IF NOT EXISTS idx_lookups_kind ON lookups(kind, entity_id);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add records a lookup and returns its generated ID. A zero Timestamp
// means now.
func (s *Store) Add(ctx context.Context, e Entry) (string, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO lookups (id, kind, entity_id, url, status, summary, error, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.Kind,
		e.EntityID,
		e.URL,
		e.Status,
		nullString(e.Summary),
		nullString(e.Error),
		e.Timestamp.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert lookup: %w", err)
	}

	return e.ID, nil
}

// Recent returns the most recent lookups, newest first. A limit of 0
// returns everything.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	query := `
		SELECT id, kind, entity_id, url, status, COALESCE(summary, ''), COALESCE(error, ''), timestamp
		FROM lookups
		ORDER BY timestamp DESC
	`

	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query lookups: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var ts int64

		err := rows.Scan(
			&e.ID,
			&e.Kind,
			&e.EntityID,
			&e.URL,
			&e.Status,
			&e.Summary,
			&e.Error,
			&ts,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lookup: %w", err)
		}

		e.Timestamp = time.Unix(0, ts)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lookups: %w", err)
	}

	return entries, nil
}

// Cleanup removes lookups older than maxAge
func (s *Store) Cleanup(ctx context.Context, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UnixNano()

	result, err := s.db.ExecContext(ctx, "DELETE FROM lookups WHERE timestamp < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup old lookups: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

// Count returns the number of recorded lookups
func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM lookups").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count lookups: %w", err)
	}
	return count, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
