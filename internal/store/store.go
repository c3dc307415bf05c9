// Package store persists attempt history in a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store wraps the SQLite handle and hands out repositories.
type Store struct {
	db *sql.DB
}

// Open connects to the SQLite database at dsn, tunes it for local use and
// creates the schema when missing.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := prepare(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Attempts returns the attempt history repository backed by this store.
func (s *Store) Attempts() AttemptRepo {
	return &attemptRepo{db: s.db}
}

// prepare applies pragmas and the schema on a fresh connection.
func prepare(db *sql.DB) error {
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS attempts (
	id            TEXT PRIMARY KEY,
	source        TEXT NOT NULL,
	taken_at      INTEGER NOT NULL,
	total         INTEGER NOT NULL,
	correct       INTEGER NOT NULL,
	score         INTEGER NOT NULL,
	duration_secs INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempt_answers (
	attempt_id  TEXT NOT NULL REFERENCES attempts(id) ON DELETE CASCADE,
	idx         INTEGER NOT NULL,
	question_id TEXT NOT NULL,
	title       TEXT NOT NULL,
	chosen      TEXT NOT NULL,
	answer      TEXT NOT NULL,
	correct     INTEGER NOT NULL,
	PRIMARY KEY (attempt_id, idx)
);

CREATE INDEX IF NOT EXISTS idx_attempt_answers_question
	ON attempt_answers(question_id);
`

// DefaultDBPath resolves the history database location: QUIZDOC_DB wins,
// then $XDG_DATA_HOME/quizdoc/history.db, then the ~/.local/share fallback.
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZDOC_DB"); p != "" {
		return p, EnsureDir(p)
	}

	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(base, "quizdoc", "history.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
