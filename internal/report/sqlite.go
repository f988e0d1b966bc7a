package report

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists credential records to a SQLite database for offline
// analysis.  Fields are stored in their sanitized text form, never as
// raw attacker bytes.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and ensures the
// schema exists.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: ensure dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// Single connection keeps writes serialized without a busy loop.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func initSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS credentials (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    peer TEXT NOT NULL,
    username TEXT NOT NULL,
    password TEXT NOT NULL,
    seen_at INTEGER NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("sqlite: init schema: %w", err)
	}
	return nil
}

// Name implements Sink.
func (s *Store) Name() string { return "sqlite" }

// Record inserts one credential row.
func (s *Store) Record(peer string, username, password []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO credentials (peer, username, password, seen_at) VALUES (?, ?, ?, ?)`,
		peer, Sanitize(username), Sanitize(password), time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
