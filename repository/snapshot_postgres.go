package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/Shooukoo/yesmos.com/db"
)

// PostgresSnapshotStore persists the quoting snapshot as a single keyed row
type PostgresSnapshotStore struct {
	key string
}

// NewPostgresSnapshotStore creates a new PostgresSnapshotStore for the given key
func NewPostgresSnapshotStore(key string) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{key: key}
}

// Ensure PostgresSnapshotStore implements SnapshotStore
var _ SnapshotStore = (*PostgresSnapshotStore)(nil)

// EnsureTable creates the snapshot table if it doesn't exist
func (r *PostgresSnapshotStore) EnsureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS pos_snapshots (
			key        TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := db.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create pos_snapshots table: %w", err)
	}
	log.Printf("✓ Snapshot table ready")
	return nil
}

// Load retrieves the stored snapshot blob
func (r *PostgresSnapshotStore) Load(ctx context.Context) ([]byte, error) {
	query := `SELECT data FROM pos_snapshots WHERE key = $1`

	var data []byte
	err := db.DB.QueryRowContext(ctx, query, r.key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return data, nil
}

// Save upserts the snapshot blob
func (r *PostgresSnapshotStore) Save(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO pos_snapshots (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`
	if _, err := db.DB.ExecContext(ctx, query, r.key, data); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}
