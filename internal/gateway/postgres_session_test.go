package gateway

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/aghannam/manassa/internal/auth"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/config"
	"github.com/aghannam/manassa/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

// setupSessionGateway builds a Postgres gateway over an in-memory sqlite
// database carrying only the refresh_tokens table. The token queries are
// portable, so the session paths can be exercised without a server.
func setupSessionGateway(t *testing.T) (*Postgres, *sql.DB) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE refresh_tokens (
			token TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			expires_at TIMESTAMP NOT NULL
		)`)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.LoadDefaults()

	p := &Postgres{
		db:       db,
		cfg:      cfg,
		logger:   nopLogger{},
		authSubs: map[int]func(*Session){},
	}
	return p, db
}

// seedSession installs a signed-in session whose access token has the given
// remaining validity, with a matching refresh token row in the store.
func seedSession(t *testing.T, p *Postgres, db *sql.DB, accessValidity, refreshValidity time.Duration) *Session {
	t.Helper()

	access, err := auth.GenerateToken("acc-1", []byte(p.cfg.SecretKey), accessValidity)
	require.NoError(t, err)

	refresh, err := common.MakeRandHexString(32)
	require.NoError(t, err)
	_, err = db.Exec(
		`INSERT INTO refresh_tokens (token, account_id, expires_at) VALUES ($1, $2, $3)`,
		refresh, "acc-1", time.Now().Add(refreshValidity))
	require.NoError(t, err)

	s := &Session{
		UserID:       "acc-1",
		Email:        "admin@manassa.example",
		Name:         "مدير المنصة",
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    time.Now().Add(accessValidity),
	}
	p.setSession(s)
	return s
}

func countTokens(t *testing.T, db *sql.DB, token string) int {
	t.Helper()
	var n int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM refresh_tokens WHERE token = $1`, token).Scan(&n))
	return n
}

func TestSessionFor_ValidTokenPassesThrough(t *testing.T) {
	p, db := setupSessionGateway(t)
	seeded := seedSession(t, p, db, 15*time.Minute, 24*time.Hour)

	got := p.sessionFor(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, seeded.AccessToken, got.AccessToken)
	assert.Equal(t, 1, countTokens(t, db, seeded.RefreshToken))
}

func TestSessionFor_RotatesExpiredAccessToken(t *testing.T) {
	p, db := setupSessionGateway(t)
	seeded := seedSession(t, p, db, -time.Minute, 24*time.Hour)

	var notified *Session
	unsub := p.OnAuthChange(func(s *Session) { notified = s })
	defer unsub()

	got := p.sessionFor(context.Background())
	require.NotNil(t, got)

	assert.NotEqual(t, seeded.AccessToken, got.AccessToken)
	assert.NotEqual(t, seeded.RefreshToken, got.RefreshToken)

	uid, err := auth.GetUserIDFromToken(got.AccessToken, []byte(p.cfg.SecretKey))
	require.NoError(t, err)
	assert.Equal(t, "acc-1", uid)

	assert.Equal(t, 0, countTokens(t, db, seeded.RefreshToken))
	assert.Equal(t, 1, countTokens(t, db, got.RefreshToken))

	current := p.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, got.AccessToken, current.AccessToken)

	require.NotNil(t, notified)
	assert.Equal(t, got.RefreshToken, notified.RefreshToken)
}

func TestRefresh_ExpiredRefreshTokenEndsSession(t *testing.T) {
	p, db := setupSessionGateway(t)
	seedSession(t, p, db, -time.Minute, -time.Minute)

	_, err := p.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrRefreshTokenExpired)
	assert.Nil(t, p.CurrentUser())
}

func TestSessionFor_ExpiredRefreshTokenSignsOut(t *testing.T) {
	p, db := setupSessionGateway(t)
	seedSession(t, p, db, -time.Minute, -time.Minute)

	assert.Nil(t, p.sessionFor(context.Background()))
	assert.Nil(t, p.CurrentUser())
}

func TestRefresh_UnknownTokenInvalid(t *testing.T) {
	p, _ := setupSessionGateway(t)

	access, err := auth.GenerateToken("acc-1", []byte(p.cfg.SecretKey), -time.Minute)
	require.NoError(t, err)
	p.setSession(&Session{
		UserID:       "acc-1",
		AccessToken:  access,
		RefreshToken: "never-issued",
		ExpiresAt:    time.Now().Add(-time.Minute),
	})

	_, err = p.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestRefresh_SignedOut(t *testing.T) {
	p, _ := setupSessionGateway(t)

	assert.Nil(t, p.sessionFor(context.Background()))

	_, err := p.Refresh(context.Background())
	assert.ErrorIs(t, err, common.ErrUnauthenticated)
}
