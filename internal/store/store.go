// Package store persists generation history and debugging artifacts.
package store

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Generation is one recorded generation cycle.
type Generation struct {
	ID        int64     `json:"id"`
	Kind      string    `json:"kind"`
	PostID    int       `json:"post_id"`
	Author    string    `json:"author,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	Output    string    `json:"output,omitempty"`
	Success   bool      `json:"success"`
	Error     string    `json:"error,omitempty"`
	Fallback  bool      `json:"clipboard_fallback"`
	CreatedAt time.Time `json:"created_at"`
}

// Store handles all database operations
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite backend
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS generations (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		kind TEXT NOT NULL,
		post_id INTEGER,
		author TEXT,
		prompt TEXT,
		output TEXT,
		success BOOLEAN NOT NULL,
		error TEXT,
		clipboard_fallback BOOLEAN,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_generations_created_at ON generations(created_at);
	CREATE INDEX IF NOT EXISTS idx_generations_kind ON generations(kind);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveGeneration records one completed cycle.
func (s *Store) SaveGeneration(g *Generation) error {
	if g.CreatedAt.IsZero() {
		g.CreatedAt = time.Now()
	}

	res, err := s.db.Exec(`
		INSERT INTO generations (kind, post_id, author, prompt, output, success, error, clipboard_fallback, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, g.Kind, g.PostID, g.Author, g.Prompt, g.Output, g.Success, g.Error, g.Fallback, g.CreatedAt)
	if err != nil {
		return err
	}

	g.ID, _ = res.LastInsertId()
	return nil
}

// RecentGenerations returns the most recent cycles, newest first.
func (s *Store) RecentGenerations(limit int) ([]Generation, error) {
	rows, err := s.db.Query(`
		SELECT id, kind, post_id, author, prompt, output, success, error, clipboard_fallback, created_at
		FROM generations
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var gens []Generation
	for rows.Next() {
		var g Generation
		err := rows.Scan(&g.ID, &g.Kind, &g.PostID, &g.Author, &g.Prompt,
			&g.Output, &g.Success, &g.Error, &g.Fallback, &g.CreatedAt)
		if err != nil {
			return nil, err
		}
		gens = append(gens, g)
	}
	return gens, rows.Err()
}

// PruneOlderThan deletes history older than the cutoff and returns the
// number of rows removed.
func (s *Store) PruneOlderThan(cutoff time.Time) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM generations WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
