package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS blobs (
	category   TEXT NOT NULL,
	id         TEXT NOT NULL,
	content    BLOB NOT NULL,
	updated_at TEXT NOT NULL DEFAULT (datetime('now')),
	PRIMARY KEY (category, id)
)`

// SQLiteStore keeps objects in a local SQLite file.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the database at path. ":memory:" is accepted.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared and serializes writers
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create blobs table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Put(ctx context.Context, category, id string, blob []byte) error {
	if err := checkKey(category, id); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO blobs (category, id, content) VALUES (?, ?, ?)
		 ON CONFLICT (category, id) DO UPDATE SET content = excluded.content, updated_at = datetime('now')`,
		category, id, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", Key(category, id), err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, category, id string) ([]byte, bool, error) {
	if err := checkKey(category, id); err != nil {
		return nil, false, err
	}
	var blob []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT content FROM blobs WHERE category = ? AND id = ?`,
		category, id,
	).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", Key(category, id), err)
	}
	return blob, true, nil
}

func (s *SQLiteStore) Delete(ctx context.Context, category, id string) (bool, error) {
	if err := checkKey(category, id); err != nil {
		return false, err
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM blobs WHERE category = ? AND id = ?`,
		category, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", Key(category, id), err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", Key(category, id), err)
	}
	return n > 0, nil
}

func (s *SQLiteStore) List(ctx context.Context, category string) ([]string, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM blobs WHERE category = ? ORDER BY id`,
		category,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", category, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) Backend() string { return "sqlite" }

func (s *SQLiteStore) Close() error { return s.db.Close() }
