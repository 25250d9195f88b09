package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS blobs (
	category   TEXT NOT NULL,
	id         TEXT NOT NULL,
	content    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (category, id)
)`

// PostgresStore keeps objects in a blobs table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres opens a pool, verifies it and creates the blobs table.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create blobs table: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (p *PostgresStore) Put(ctx context.Context, category, id string, blob []byte) error {
	if err := checkKey(category, id); err != nil {
		return err
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO blobs (category, id, content)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (category, id) DO UPDATE SET content = $3, updated_at = NOW()`,
		category, id, blob,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", Key(category, id), err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, category, id string) ([]byte, bool, error) {
	if err := checkKey(category, id); err != nil {
		return nil, false, err
	}
	var blob []byte
	err := p.pool.QueryRow(ctx,
		`SELECT content FROM blobs WHERE category = $1 AND id = $2`,
		category, id,
	).Scan(&blob)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", Key(category, id), err)
	}
	return blob, true, nil
}

func (p *PostgresStore) Delete(ctx context.Context, category, id string) (bool, error) {
	if err := checkKey(category, id); err != nil {
		return false, err
	}
	tag, err := p.pool.Exec(ctx,
		`DELETE FROM blobs WHERE category = $1 AND id = $2`,
		category, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", Key(category, id), err)
	}
	return tag.RowsAffected() > 0, nil
}

func (p *PostgresStore) List(ctx context.Context, category string) ([]string, error) {
	if err := checkCategory(category); err != nil {
		return nil, err
	}
	rows, err := p.pool.Query(ctx,
		`SELECT id FROM blobs WHERE category = $1 ORDER BY id`,
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
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ids: %w", err)
	}
	return ids, nil
}

func (p *PostgresStore) Backend() string { return "postgres" }

func (p *PostgresStore) Close() error {
	if p.pool != nil {
		p.pool.Close()
	}
	return nil
}
