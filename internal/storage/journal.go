package storage

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// State is the lifecycle position of a settings document.
type State string

// Document states recorded in the journal.
const (
	StateUnmodified          State = "unmodified"
	StateBackedUp            State = "backed-up"
	StateMerged              State = "merged"
	StateRestoredFromBackup  State = "restored-from-backup"
	StateRestoredFromDefault State = "restored-from-default"
)

// Entry is one recorded transition.
type Entry struct {
	CreatedAt    time.Time
	ID           string
	SettingsPath string
	Operation    string
	State        State
}

// Journal records operations applied to settings documents using SQLite.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// OpenJournal opens (creating if needed) the journal database at dbPath.
func OpenJournal(ctx context.Context, dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure WAL mode and other pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if err := runSchemaMigration(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run schema migration: %w", err)
	}

	return &Journal{db: db, now: time.Now}, nil
}

// runSchemaMigration ensures the journal table exists
func runSchemaMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS journal (
			id TEXT PRIMARY KEY,
			settings_path TEXT NOT NULL,
			operation TEXT NOT NULL,
			state TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_journal_path ON journal(settings_path, created_at);
	`)
	if err != nil {
		return fmt.Errorf("failed to create journal table: %w", err)
	}
	return nil
}

// Close closes the journal
func (j *Journal) Close() error {
	if j.db != nil {
		if err := j.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}

// Record appends a transition for settingsPath and returns the stored entry.
func (j *Journal) Record(ctx context.Context, settingsPath, operation string, state State) (*Entry, error) {
	entry := &Entry{
		ID:           uuid.NewString(),
		SettingsPath: normalizePath(settingsPath),
		Operation:    operation,
		State:        state,
		CreatedAt:    j.now().UTC(),
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO journal (id, settings_path, operation, state, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.ID, entry.SettingsPath, entry.Operation, string(entry.State), entry.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("failed to record %s: %w", operation, err)
	}

	return entry, nil
}

// Last returns the most recent state of settingsPath, or StateUnmodified when
// nothing has been recorded.
func (j *Journal) Last(ctx context.Context, settingsPath string) (State, error) {
	entries, err := j.History(ctx, settingsPath, 1)
	if err != nil {
		return StateUnmodified, err
	}
	if len(entries) == 0 {
		return StateUnmodified, nil
	}
	return entries[0].State, nil
}

// History returns up to limit entries for settingsPath, newest first.
func (j *Journal) History(ctx context.Context, settingsPath string, limit int) ([]Entry, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, settings_path, operation, state, created_at FROM journal
		 WHERE settings_path = ? ORDER BY created_at DESC, rowid DESC LIMIT ?`,
		normalizePath(settingsPath), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var (
			entry     Entry
			state     string
			createdAt int64
		)
		if err := rows.Scan(&entry.ID, &entry.SettingsPath, &entry.Operation, &state, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entry.State = State(state)
		entry.CreatedAt = time.Unix(0, createdAt).UTC()
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}

	return entries, nil
}

func normalizePath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}
