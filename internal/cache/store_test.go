package cache

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE collections (
  name TEXT PRIMARY KEY,
  payload BLOB NOT NULL,
  updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);
`)
	require.NoError(t, err)

	return NewStore(db)
}

func TestStore_GetMissingKey(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	payload, found, err := s.Get(ctx, "articles")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, payload)
}

func TestStore_SetThenGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "articles", []byte(`[{"id":"a1"}]`)))

	payload, found, err := s.Get(ctx, "articles")
	require.NoError(t, err)
	assert.True(t, found)
	assert.JSONEq(t, `[{"id":"a1"}]`, string(payload))
}

func TestStore_EmptyArrayIsFound(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	// an intentionally emptied collection is still "written"
	require.NoError(t, s.Set(ctx, "categories", []byte(`[]`)))

	payload, found, err := s.Get(ctx, "categories")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, string(payload))
}

func TestStore_SetOverwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "media", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "media", []byte(`[1,2]`)))

	payload, found, err := s.Get(ctx, "media")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[1,2]`, string(payload))
}

func TestStore_Remove(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users", []byte(`[]`)))
	require.NoError(t, s.Remove(ctx, "users"))

	_, found, err := s.Get(ctx, "users")
	require.NoError(t, err)
	assert.False(t, found)

	// removing a missing key is a no-op
	require.NoError(t, s.Remove(ctx, "users"))
}
