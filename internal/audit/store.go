package audit

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store persists audit events to a local sqlite database for the history
// command.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (and migrates) the history database at path.
func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal=WAL&_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		operation TEXT NOT NULL,
		tool TEXT,
		plan TEXT,
		model TEXT,
		status TEXT NOT NULL,
		error_message TEXT,
		session_id TEXT,
		started_at DATETIME NOT NULL,
		completed_at DATETIME,
		duration_ms INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_events_started ON events(started_at DESC);
	CREATE INDEX IF NOT EXISTS idx_events_tool ON events(tool);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one event.
func (s *Store) Save(ctx context.Context, e *Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO events
			(event_id, category, operation, tool, plan, model, status, error_message, session_id, started_at, completed_at, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, e.EventID, e.Category, e.Operation, e.Tool, e.Plan, e.Model, e.Status, e.ErrorMessage, e.SessionID, e.StartedAt, e.CompletedAt, e.DurationMs)
	return err
}

// Recent returns the newest events, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_id, category, operation, tool, plan, model, status, error_message, session_id, started_at, completed_at, duration_ms
		FROM events ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var tool, plan, model, errMsg, sessionID sql.NullString
		var completedAt sql.NullTime
		if err := rows.Scan(&e.EventID, &e.Category, &e.Operation, &tool, &plan, &model, &e.Status, &errMsg, &sessionID, &e.StartedAt, &completedAt, &e.DurationMs); err != nil {
			return nil, err
		}
		e.Tool = tool.String
		e.Plan = plan.String
		e.Model = model.String
		e.ErrorMessage = errMsg.String
		e.SessionID = sessionID.String
		if completedAt.Valid {
			e.CompletedAt = completedAt.Time
		}
		e.Duration = time.Duration(e.DurationMs) * time.Millisecond
		events = append(events, e)
	}
	return events, rows.Err()
}

// CountByStatus returns event counts grouped by status.
func (s *Store) CountByStatus(ctx context.Context) (map[Status]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(*) FROM events GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[Status]int)
	for rows.Next() {
		var status Status
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		counts[status] = n
	}
	return counts, rows.Err()
}
