package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded synthesis run
type Entry struct {
	ID        int64
	Text      string // The text that was spoken
	Stem      string // Derived filename stem
	Path      string // Final artifact path
	Provider  string // Speech provider used
	CreatedAt time.Time
}

// Store is an append-only sqlite log of generated artifacts
type Store struct {
	db *sql.DB
}

// DefaultPath returns the default history database location
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "aispeak-history.db")
	}
	return filepath.Join(home, ".local", "state", "aispeak", "history.db")
}

// Open opens (and if needed creates) the history database at path
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS syntheses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		stem TEXT NOT NULL,
		path TEXT NOT NULL,
		provider TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one synthesis run to the log
func (s *Store) Record(entry Entry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := s.db.Exec(
		"INSERT INTO syntheses (text, stem, path, provider, created_at) VALUES (?, ?, ?, ?, ?)",
		entry.Text, entry.Stem, entry.Path, entry.Provider, createdAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record synthesis: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first
func (s *Store) List(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT id, text, stem, path, provider, created_at FROM syntheses ORDER BY created_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt int64
		if err := rows.Scan(&e.ID, &e.Text, &e.Stem, &e.Path, &e.Provider, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}
		e.CreatedAt = time.Unix(createdAt, 0)
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Print writes entries to stdout in a compact listing
func Print(entries []Entry) {
	if len(entries) == 0 {
		fmt.Println("No synthesis history yet.")
		return
	}

	for _, e := range entries {
		text := e.Text
		if len(text) > 60 {
			text = text[:57] + "..."
		}
		fmt.Printf("%s  %-24s  %s  (%s)\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Stem, text, e.Provider)
	}
}
