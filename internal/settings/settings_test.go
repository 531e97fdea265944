package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/gateway"
	"github.com/aghannam/manassa/internal/logging"

	_ "modernc.org/sqlite"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// offlineGateway satisfies gateway.Gateway with every remote operation
// failing, matching the unavailable variant's contract.
type offlineGateway struct{ gateway.Gateway }

func (offlineGateway) Available() bool { return false }

func setupCache(t *testing.T) *cache.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, cache.RunMigrations(context.Background(), db))
	return cache.NewStore(db)
}

func TestStore_DefaultsMaterializedAndPersisted(t *testing.T) {
	store := setupCache(t)
	ctx := context.Background()

	s := NewStore(offlineGateway{}, store, nopLogger{})
	doc, err := s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ar", doc["language"])
	assert.Equal(t, "rtl", doc["direction"])

	payload, found, err := store.Get(ctx, "settings")
	require.NoError(t, err)
	require.True(t, found)
	var persisted map[string]any
	require.NoError(t, json.Unmarshal(payload, &persisted))
	assert.Equal(t, "site", persisted["id"])
}

func TestStore_UpdateShallowMerge(t *testing.T) {
	store := setupCache(t)
	ctx := context.Background()

	s := NewStore(offlineGateway{}, store, nopLogger{})
	merged, err := s.Update(ctx, map[string]any{
		"siteName": "منصة جديدة",
		"id":       "hijacked",
	})
	require.NoError(t, err)

	assert.Equal(t, "منصة جديدة", merged["siteName"])
	assert.Equal(t, "site", merged["id"], "id is immutable")
	assert.Equal(t, "ar", merged["language"], "untouched keys survive")

	// a fresh store over the same cache sees the merged document
	again := NewStore(offlineGateway{}, store, nopLogger{})
	doc, err := again.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "منصة جديدة", doc["siteName"])
}

func TestStore_GetReturnsCopy(t *testing.T) {
	s := NewStore(offlineGateway{}, setupCache(t), nopLogger{})
	ctx := context.Background()

	doc, err := s.Get(ctx)
	require.NoError(t, err)
	doc["siteName"] = "mutated"

	doc2, err := s.Get(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", doc2["siteName"])
}

func TestStore_UpdateSurvivesRemoteFailure(t *testing.T) {
	// the unavailable variant rejects the update, the local path proceeds
	gw := gateway.NewUnavailable("test outage")
	store := setupCache(t)
	ctx := context.Background()

	s := NewStore(gw, store, nopLogger{})
	merged, err := s.Update(ctx, map[string]any{"siteName": "بعد الانقطاع"})
	require.NoError(t, err)
	assert.Equal(t, "بعد الانقطاع", merged["siteName"])

	// sanity: the gateway itself still reports the sentinel
	_, gwErr := gw.GetDoc(ctx, "settings", "site")
	assert.ErrorIs(t, gwErr, common.ErrRemoteUnavailable)
}
