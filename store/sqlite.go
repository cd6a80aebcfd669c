package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)
)

var _ Store = (*sqliteStore)(nil)

// sqliteStore keeps the whole document as a single row, overwritten inside a
// transaction so a failed write never leaves partial content behind.
type sqliteStore struct {
	db *sql.DB
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS document (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	blob       TEXT    NOT NULL,
	updated_at TEXT    NOT NULL
);`

func openSQLite(path string) (*sqliteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create storage directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}
	// sql.Open is lazy; force the file open so Open can downgrade now rather
	// than on the first write.
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not acquire database: %w", err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Load(ctx context.Context) ([]byte, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT blob FROM document WHERE id = 1`).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read document: %w", err)
	}
	return blob, nil
}

func (s *sqliteStore) Save(ctx context.Context, blob []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO document (id, blob, updated_at) VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET blob = excluded.blob, updated_at = excluded.updated_at`,
		string(blob), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("could not write document: %w", err)
	}
	return nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM document`); err != nil {
		return fmt.Errorf("could not clear document: %w", err)
	}
	return nil
}

func (s *sqliteStore) Kind() Kind { return Primary }

func (s *sqliteStore) Close() error { return s.db.Close() }
