// Package history keeps a SQLite log of answered questions for the
// HTTP server. The answering engine itself stays stateless; this log
// lives entirely at the serving boundary.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Entry is one answered (or refused) question.
type Entry struct {
	ID          string    `json:"id"`
	Question    string    `json:"question"`
	Answer      string    `json:"answer"`
	SourceCount int       `json:"source_count"`
	Answered    bool      `json:"answered"` // false when the reply was the sentinel
	DurationMS  int64     `json:"duration_ms"`
	CreatedAt   time.Time `json:"created_at"`
}

// Store provides append and list operations over the chat log.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS chat_log (
    id TEXT PRIMARY KEY,
    question TEXT NOT NULL,
    answer TEXT NOT NULL,
    source_count INTEGER NOT NULL DEFAULT 0,
    answered INTEGER NOT NULL DEFAULT 0,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// Open creates or opens the chat log database at the given path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging history database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

// OpenMemory creates an in-memory chat log (useful for testing).
func OpenMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends an entry. If e.ID is empty a UUID is generated.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}

	answered := 0
	if e.Answered {
		answered = 1
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_log (id, question, answer, source_count, answered, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Question, e.Answer, e.SourceCount, answered, e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("inserting chat log entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first. Ordering is by
// rowid, which is insertion-monotonic; created_at only has second
// resolution and would shuffle entries recorded within the same second.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question, answer, source_count, answered, duration_ms, created_at
		FROM chat_log ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying chat log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e        Entry
			answered int
			created  string
		)
		if err := rows.Scan(&e.ID, &e.Question, &e.Answer, &e.SourceCount, &answered, &e.DurationMS, &created); err != nil {
			return nil, fmt.Errorf("scanning chat log entry: %w", err)
		}
		e.Answered = answered != 0
		if t, err := time.Parse("2006-01-02 15:04:05", created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the total number of logged questions.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting chat log entries: %w", err)
	}
	return n, nil
}
