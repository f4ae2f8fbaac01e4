// Package store keeps client-local state that outlives a single run: the
// last analysis task id and the drafted geometry of each floor.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/alexiusacademia/gorcdraft/internal/floor"
)

const keyLastTaskID = "currentTaskId"

const schema = `
CREATE TABLE IF NOT EXISTS kv (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);`

// Store is a SQLite-backed key/value store.
type Store struct {
	db *sql.DB
}

// Open opens (creating when needed) the database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?mode=rwc&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key; ok is false when there is none.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key)
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Put stores value under key, replacing any previous value.
func (s *Store) Put(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO kv (key, value) VALUES (?, ?)
        ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = datetime('now')
    `, key, value)
	if err != nil {
		return fmt.Errorf("put %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// LastTaskID returns the most recently recorded analysis task id, or "".
func (s *Store) LastTaskID(ctx context.Context) (string, error) {
	v, _, err := s.Get(ctx, keyLastTaskID)
	return v, err
}

// SetLastTaskID records the analysis task id for later runs.
func (s *Store) SetLastTaskID(ctx context.Context, taskID string) error {
	if taskID == "" {
		return nil
	}
	return s.Put(ctx, keyLastTaskID, taskID)
}

// FloorState is the durable part of a floor.
type FloorState struct {
	Scale  float64     `json:"scale"`
	Width  float64     `json:"width"`
	Height float64     `json:"height"`
	TaskID string      `json:"taskId,omitempty"`
	Draft  floor.Draft `json:"draft"`
}

// StateOf captures the durable part of f.
func StateOf(f *floor.Floor) FloorState {
	return FloorState{
		Scale:  f.Scale,
		Width:  f.Width,
		Height: f.Height,
		TaskID: f.TaskID,
		Draft:  f.Draft,
	}
}

// Apply restores the state onto f. History restarts with the restored draft
// as its first entry and the computed layer is cleared.
func (st FloorState) Apply(f *floor.Floor) {
	f.LoadImage(st.Width, st.Height)
	f.Scale = st.Scale
	f.TaskID = st.TaskID
	f.Draft = st.Draft
	f.History = floor.NewHistory(st.Draft)
}

func draftKey(id floor.ID) string { return "draft:" + string(id) }

// SaveDraft stores a floor's state.
func (s *Store) SaveDraft(ctx context.Context, id floor.ID, st FloorState) error {
	buf, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode draft %s: %w", id, err)
	}
	return s.Put(ctx, draftKey(id), string(buf))
}

// LoadDraft returns a floor's stored state; ok is false when none was saved.
func (s *Store) LoadDraft(ctx context.Context, id floor.ID) (st FloorState, ok bool, err error) {
	v, ok, err := s.Get(ctx, draftKey(id))
	if err != nil || !ok {
		return FloorState{}, ok, err
	}
	if err := json.Unmarshal([]byte(v), &st); err != nil {
		return FloorState{}, false, fmt.Errorf("decode draft %s: %w", id, err)
	}
	return st, true, nil
}
