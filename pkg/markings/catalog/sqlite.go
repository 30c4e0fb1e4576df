package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/randalmurphal/markings/pkg/markings"
)

// SQLiteStore persists catalog entries to SQLite.
// It is suitable for single-process production use.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore creates a new SQLite catalog store.
// The path should be a file path (e.g., "./markings.db") or ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Every pooled connection to ":memory:" would see its own empty database.
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	// Enable WAL mode for better concurrent read performance
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS templates (
			name TEXT PRIMARY KEY,
			id TEXT NOT NULL UNIQUE,
			text TEXT NOT NULL,
			optional_keys INTEGER NOT NULL DEFAULT 0,
			duplicate_keys INTEGER NOT NULL DEFAULT 0,
			empty_template INTEGER NOT NULL DEFAULT 0,
			key_rule TEXT NOT NULL DEFAULT '',
			revision INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Save implements Store.
func (s *SQLiteStore) Save(entry Entry) (Entry, error) {
	if !validName(entry.Name) {
		return Entry{}, ErrInvalidName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	tx, err := s.db.Begin()
	if err != nil {
		return Entry{}, fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	var id string
	var revision int
	err = tx.QueryRow(`SELECT id, revision FROM templates WHERE name = ?`, entry.Name).Scan(&id, &revision)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		entry.Revision = 1
	case err != nil:
		return Entry{}, fmt.Errorf("read revision: %w", err)
	default:
		if entry.ID, err = uuid.Parse(id); err != nil {
			return Entry{}, fmt.Errorf("parse stored id: %w", err)
		}
		entry.Revision = revision + 1
	}
	entry.UpdatedAt = time.Now().UTC()

	if _, err := tx.Exec(`
		INSERT INTO templates (name, id, text, optional_keys, duplicate_keys, empty_template, key_rule, revision, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			text = excluded.text,
			optional_keys = excluded.optional_keys,
			duplicate_keys = excluded.duplicate_keys,
			empty_template = excluded.empty_template,
			key_rule = excluded.key_rule,
			revision = excluded.revision,
			updated_at = excluded.updated_at
	`, entry.Name, entry.ID.String(), entry.Text,
		entry.Opts.OptionalKeys, entry.Opts.DuplicateKeys, entry.Opts.EmptyTemplate,
		entry.Rule, entry.Revision, entry.UpdatedAt.Format(time.RFC3339Nano),
	); err != nil {
		return Entry{}, fmt.Errorf("save template: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return Entry{}, fmt.Errorf("commit save: %w", err)
	}
	return entry, nil
}

const selectEntry = `
	SELECT name, id, text, optional_keys, duplicate_keys, empty_template, key_rule, revision, updated_at
	FROM templates`

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (Entry, error) {
	var (
		entry     Entry
		id        string
		updatedAt string
		opts      markings.Opts
	)
	if err := row.Scan(&entry.Name, &id, &entry.Text,
		&opts.OptionalKeys, &opts.DuplicateKeys, &opts.EmptyTemplate,
		&entry.Rule, &entry.Revision, &updatedAt); err != nil {
		return Entry{}, err
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Entry{}, fmt.Errorf("parse stored id: %w", err)
	}
	entry.ID = parsed
	entry.Opts = opts
	entry.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	return entry, nil
}

// Load implements Store.
func (s *SQLiteStore) Load(name string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Entry{}, ErrStoreClosed
	}

	entry, err := scanEntry(s.db.QueryRow(selectEntry+` WHERE name = ?`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("load template: %w", err)
	}
	return entry, nil
}

// List implements Store.
func (s *SQLiteStore) List() ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.Query(selectEntry + ` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate templates: %w", err)
	}

	return entries, nil
}

// Delete implements Store.
func (s *SQLiteStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	if _, err := s.db.Exec(`DELETE FROM templates WHERE name = ?`, name); err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true
	return s.db.Close()
}
