// Package cache implements the persistent local cache: a sqlite-backed
// key-value store mapping a collection name to a JSON-serialized entity
// array. The cache is advisory, not authoritative: callers must treat any
// unreadable value as "never written" and fall back to seed defaults.
package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/dbx"
)

// Store persists whole collections as opaque payloads. A missing key is
// reported via found=false and is distinct from a stored empty array; the
// distinction is what prevents seed data from regenerating after a user
// empties a collection.
type Store struct {
	db dbx.DBTX
}

func NewStore(db dbx.DBTX) *Store {
	return &Store{db: db}
}

// Get returns the stored payload for collection. found is false when the
// key was never written.
func (s *Store) Get(ctx context.Context, collection string) ([]byte, bool, error) {
	query := `SELECT payload FROM collections WHERE name = ?`

	var payload []byte
	err := s.db.QueryRowContext(ctx, query, collection).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: read %s: %w", common.ErrLocalStorage, collection, err)
	}

	return payload, true, nil
}

// Set stores the payload for collection, replacing any previous value.
func (s *Store) Set(ctx context.Context, collection string, payload []byte) error {
	query := `
		INSERT INTO collections (name, payload, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT (name)
		DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, collection, payload); err != nil {
		return fmt.Errorf("%w: write %s: %w", common.ErrLocalStorage, collection, err)
	}
	return nil
}

// Remove deletes the collection key entirely. A subsequent Get reports
// found=false, so seed defaults materialize again.
func (s *Store) Remove(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collection); err != nil {
		return fmt.Errorf("%w: remove %s: %w", common.ErrLocalStorage, collection, err)
	}
	return nil
}
