package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/gscheck/internal/models"
)

// Store persists the item name cache in SQLite
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS item_names (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			source TEXT,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_item_names_source ON item_names(source)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// GetNames returns the whole cache as id -> name
func (s *Store) GetNames() (map[string]string, error) {
	rows, err := s.db.Query(`SELECT id, name FROM item_names`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := make(map[string]string)
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		names[id] = name
	}
	return names, rows.Err()
}

// GetName returns a cached name, or nil when the id is unknown
func (s *Store) GetName(id string) (*models.ItemName, error) {
	var n models.ItemName
	var source sql.NullString
	err := s.db.QueryRow(`
		SELECT id, name, source, updated_at FROM item_names WHERE id = ?
	`, id).Scan(&n.ID, &n.Name, &source, &n.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	n.Source = source.String
	return &n, nil
}

// Count returns the number of cached names
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM item_names`).Scan(&n)
	return n, err
}

// MissingIDs returns the ids from ids that have no cached name, in input order
func (s *Store) MissingIDs(ids []string) ([]string, error) {
	known, err := s.GetNames()
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, id := range ids {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// UpsertNames stores names in a single transaction, replacing existing rows
func (s *Store) UpsertNames(names map[string]string, source string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO item_names (id, name, source, updated_at)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for id, name := range names {
		if _, err := stmt.Exec(id, name, source, now); err != nil {
			return fmt.Errorf("upsert %s: %w", id, err)
		}
	}

	return tx.Commit()
}
