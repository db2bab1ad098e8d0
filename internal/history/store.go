// Package history journals navigation stack snapshots to SQLite so a
// session's navigation can be inspected after the fact.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// ErrInvalidSnapshot indicates a snapshot without a session or stack name.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// Snapshot is one recorded stack state.
type Snapshot struct {
	ID         int64
	Session    string
	Stack      string
	Depth      int
	IDs        []string // view-model IDs, bottom to top
	RecordedAt time.Time
}

// Store is a SQLite-backed snapshot journal.
type Store struct {
	db *sql.DB
}

// Open creates or opens the journal at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("history: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("history: create schema: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Append records snap and returns its row ID. Depth is taken from IDs.
func (s *Store) Append(ctx context.Context, snap Snapshot) (int64, error) {
	if snap.Session == "" || snap.Stack == "" {
		return 0, ErrInvalidSnapshot
	}
	ids := snap.IDs
	if ids == nil {
		ids = []string{}
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return 0, fmt.Errorf("history: encode ids: %w", err)
	}
	recordedAt := snap.RecordedAt
	if recordedAt.IsZero() {
		recordedAt = time.Now()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO snapshots (session, stack, depth, ids, recorded_at) VALUES (?, ?, ?, ?, ?)`,
		snap.Session, snap.Stack, len(ids), string(encoded), recordedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("history: insert snapshot: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit snapshots, newest first. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	query := `SELECT id, session, stack, depth, ids, recorded_at FROM snapshots ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	return s.query(ctx, query, args...)
}

// ListSession returns every snapshot of session in recording order.
func (s *Store) ListSession(ctx context.Context, session string) ([]Snapshot, error) {
	return s.query(ctx,
		`SELECT id, session, stack, depth, ids, recorded_at FROM snapshots WHERE session = ? ORDER BY id`,
		session)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: query snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var (
			snap       Snapshot
			ids        string
			recordedAt string
		)
		if err := rows.Scan(&snap.ID, &snap.Session, &snap.Stack, &snap.Depth, &ids, &recordedAt); err != nil {
			return nil, fmt.Errorf("history: scan snapshot: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &snap.IDs); err != nil {
			return nil, fmt.Errorf("history: decode ids of snapshot %d: %w", snap.ID, err)
		}
		if snap.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("history: parse time of snapshot %d: %w", snap.ID, err)
		}
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate snapshots: %w", err)
	}
	return out, nil
}
