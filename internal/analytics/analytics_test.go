package analytics

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghannam/manassa/internal/cache"
	"github.com/aghannam/manassa/internal/logging"

	_ "modernc.org/sqlite"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

func setupLog(t *testing.T) *Log {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, cache.RunMigrations(context.Background(), db))
	return NewLog(cache.NewStore(db), nopLogger{})
}

// recordAt appends an event with a fixed timestamp by pinning the clock.
func recordAt(t *testing.T, l *Log, at time.Time, kind string, payload map[string]string) {
	t.Helper()
	prev := l.now
	l.now = func() time.Time { return at }
	require.NoError(t, l.Record(context.Background(), kind, payload))
	l.now = prev
}

func TestLog_WindowFiltersByAge(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	recordAt(t, l, now.AddDate(0, 0, -40), KindVisit, nil)
	recordAt(t, l, now.AddDate(0, 0, -10), KindVisit, nil)
	recordAt(t, l, now.AddDate(0, 0, -1), KindVisit, nil)
	l.now = func() time.Time { return now }

	got, err := l.Window(ctx, Period30d)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = l.Window(ctx, Period90d)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	got, err = l.Window(ctx, Period7d)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLog_WindowRejectsUnknownPeriod(t *testing.T) {
	l := setupLog(t)
	_, err := l.Window(context.Background(), "14d")
	assert.Error(t, err)
}

func TestLog_TopPages(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Record(ctx, KindPageView, map[string]string{"path": "/articles"}))
	}
	require.NoError(t, l.Record(ctx, KindPageView, map[string]string{"path": "/about"}))
	require.NoError(t, l.Record(ctx, KindVisit, map[string]string{"path": "/ignored"}))

	got, err := l.TopPages(ctx, Period7d, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, Count{Key: "/articles", Count: 3}, got[0])
}

func TestLog_TopArticles(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	require.NoError(t, l.Record(ctx, KindArticleView, map[string]string{"articleId": "a1"}))
	require.NoError(t, l.Record(ctx, KindArticleView, map[string]string{"articleId": "a1"}))
	require.NoError(t, l.Record(ctx, KindArticleView, map[string]string{"articleId": "a2"}))

	got, err := l.TopArticles(ctx, Period30d, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a1", got[0].Key)
	assert.Equal(t, 2, got[0].Count)
}

func TestLog_DevicesAndBrowsers(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()

	uas := []string{
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148 Safari/604.1",
		"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) Safari/604.1",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/120.0 Safari/537.36",
		"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	}
	for _, ua := range uas {
		require.NoError(t, l.Record(ctx, KindVisit, map[string]string{"userAgent": ua}))
	}

	devices, err := l.Devices(ctx, Period7d)
	require.NoError(t, err)
	byKey := map[string]int{}
	for _, c := range devices {
		byKey[c.Key] = c.Count
	}
	assert.Equal(t, map[string]int{"mobile": 1, "tablet": 1, "desktop": 2}, byKey)

	browsers, err := l.Browsers(ctx, Period7d)
	require.NoError(t, err)
	byKey = map[string]int{}
	for _, c := range browsers {
		byKey[c.Key] = c.Count
	}
	assert.Equal(t, 1, byKey["chrome"])
	assert.Equal(t, 1, byKey["firefox"])
	assert.Equal(t, 2, byKey["safari"])
}

func TestBrowserFamily_EmbeddedTokens(t *testing.T) {
	assert.Equal(t, "edge", BrowserFamily("Mozilla/5.0 Chrome/120.0 Safari/537.36 Edg/120.0"))
	assert.Equal(t, "opera", BrowserFamily("Mozilla/5.0 Chrome/120.0 Safari/537.36 OPR/106.0"))
	assert.Equal(t, "chrome", BrowserFamily("Mozilla/5.0 Chrome/120.0 Safari/537.36"))
	assert.Equal(t, "other", BrowserFamily("curl/8.4.0"))
}

func TestLog_PruneIdempotent(t *testing.T) {
	l := setupLog(t)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	recordAt(t, l, now.AddDate(0, 0, -100), KindVisit, nil)
	recordAt(t, l, now.AddDate(0, 0, -5), KindVisit, nil)
	l.now = func() time.Time { return now }

	removed, err := l.Prune(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = l.Prune(ctx, 30)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	got, err := l.Window(ctx, Period1y)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLog_PersistsAcrossInstances(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, cache.RunMigrations(context.Background(), db))
	store := cache.NewStore(db)
	ctx := context.Background()

	first := NewLog(store, nopLogger{})
	require.NoError(t, first.Record(ctx, KindVisit, nil))

	second := NewLog(store, nopLogger{})
	got, err := second.Window(ctx, Period7d)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
