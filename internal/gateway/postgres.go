package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aghannam/manassa/internal/auth"
	"github.com/aghannam/manassa/internal/common"
	"github.com/aghannam/manassa/internal/config"
	"github.com/aghannam/manassa/internal/dbx"
	"github.com/aghannam/manassa/internal/gateway/migrations"
	"github.com/aghannam/manassa/internal/logging"
	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/sethvargo/go-retry"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Postgres implements Gateway over the hosted document store: one JSONB
// document per entity, keyed by (collection, id).
type Postgres struct {
	db     *sql.DB
	cfg    *config.Config
	logger logging.Logger

	mu       sync.Mutex
	session  *Session
	authSubs map[int]func(*Session)
	nextSub  int
}

// New connects to the configured document store. The capability check
// happens once, here: any failure (no DSN, unreachable host, migration
// error) yields the Unavailable variant instead of an error, so callers
// never hold a half-initialized gateway.
func New(ctx context.Context, cfg *config.Config, logger logging.Logger) Gateway {
	if cfg.DatabaseDSN == "" {
		return NewUnavailable("no remote configured")
	}

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		logger.Warn(ctx, "remote store open failed", "error", err)
		return NewUnavailable(err.Error())
	}

	// Transient startup hiccups are retried briefly; a store that stays
	// unreachable is treated as absent for this session.
	backoff := retry.WithMaxRetries(3, retry.NewConstant(500*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		return retry.RetryableError(db.PingContext(ctx))
	})
	if err != nil {
		logger.Warn(ctx, "remote store unreachable", "error", err)
		_ = db.Close()
		return NewUnavailable(err.Error())
	}

	if err := runMigrations(ctx, db); err != nil {
		logger.Warn(ctx, "remote store migration failed", "error", err)
		_ = db.Close()
		return NewUnavailable(err.Error())
	}

	return &Postgres{
		db:       db,
		cfg:      cfg,
		logger:   logger,
		authSubs: make(map[int]func(*Session)),
	}
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

func (p *Postgres) Available() bool { return true }

func (p *Postgres) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", common.ErrRemoteUnavailable, err)
	}
	return nil
}

// Close releases the underlying pool.
func (p *Postgres) Close() error { return p.db.Close() }

func (p *Postgres) List(ctx context.Context, collection string) ([][]byte, error) {
	query := `
		SELECT doc FROM documents
		WHERE collection = $1
		ORDER BY created_at DESC
	`
	rows, err := p.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", common.ErrRemoteOperation, collection, err)
	}
	defer rows.Close()

	var result [][]byte
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %w", common.ErrRemoteOperation, collection, err)
		}
		result = append(result, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: list %s: %w", common.ErrRemoteOperation, collection, err)
	}
	return result, nil
}

func (p *Postgres) GetDoc(ctx context.Context, collection, id string) ([]byte, error) {
	query := `SELECT doc FROM documents WHERE collection = $1 AND id = $2`

	var doc []byte
	err := p.db.QueryRowContext(ctx, query, collection, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("%w: get %s/%s: %w", common.ErrRemoteOperation, collection, id, err)
	}
	return doc, nil
}

// Create inserts a new document and returns the assigned id. The id is
// injected into the stored JSON so the document is self-describing.
func (p *Postgres) Create(ctx context.Context, collection string, doc []byte) (string, error) {
	if p.sessionFor(ctx) == nil {
		return "", common.ErrUnauthenticated
	}

	id := uuid.NewString()
	query := `
		INSERT INTO documents (collection, id, doc)
		VALUES ($1, $2, jsonb_set($3::jsonb, '{id}', to_jsonb($2::text)))
	`
	if _, err := p.db.ExecContext(ctx, query, collection, id, doc); err != nil {
		return "", fmt.Errorf("%w: create in %s: %w", common.ErrRemoteOperation, collection, err)
	}
	return id, nil
}

// Update replaces the whole stored document. Merge semantics live in the
// repository layer so both the remote and local paths persist the exact
// same merged document.
func (p *Postgres) Update(ctx context.Context, collection, id string, doc []byte) error {
	if p.sessionFor(ctx) == nil {
		return common.ErrUnauthenticated
	}

	query := `
		UPDATE documents
		SET doc = $3::jsonb, updated_at = now()
		WHERE collection = $1 AND id = $2
	`
	res, err := p.db.ExecContext(ctx, query, collection, id, doc)
	if err != nil {
		return fmt.Errorf("%w: update %s/%s: %w", common.ErrRemoteOperation, collection, id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, collection, id string) error {
	if p.sessionFor(ctx) == nil {
		return common.ErrUnauthenticated
	}

	// Deleting an absent row is not an error: delete is idempotent.
	query := `DELETE FROM documents WHERE collection = $1 AND id = $2`
	if _, err := p.db.ExecContext(ctx, query, collection, id); err != nil {
		return fmt.Errorf("%w: delete %s/%s: %w", common.ErrRemoteOperation, collection, id, err)
	}
	return nil
}

// IncrementViews bumps the views counter of an article document atomically
// on the server, so concurrent readers do not lose counts.
func (p *Postgres) IncrementViews(ctx context.Context, articleID string) error {
	query := `
		UPDATE documents
		SET doc = jsonb_set(doc, '{views}', to_jsonb(COALESCE((doc->>'views')::int, 0) + 1), true),
		    updated_at = now()
		WHERE collection = 'articles' AND id = $1
	`
	res, err := p.db.ExecContext(ctx, query, articleID)
	if err != nil {
		return fmt.Errorf("%w: increment views %s: %w", common.ErrRemoteOperation, articleID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

// --- auth ---

func (p *Postgres) SignUp(ctx context.Context, email string, password []byte, displayName string) (*Session, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("%w: sign up: %w", common.ErrRemoteOperation, err)
	}
	if exists {
		return nil, common.ErrEmailTaken
	}

	salt := common.GenerateRandByteArray(32)
	verifier := auth.MakeVerifier(auth.DeriveKey(password, salt))

	id := uuid.NewString()
	query := `
		INSERT INTO accounts (id, email, display_name, salt, verifier)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := p.db.ExecContext(ctx, query, id, email, displayName, salt, verifier); err != nil {
		return nil, fmt.Errorf("%w: sign up: %w", common.ErrRemoteOperation, err)
	}

	return p.startSession(ctx, id, email, displayName)
}

func (p *Postgres) SignIn(ctx context.Context, email string, password []byte) (*Session, error) {
	query := `SELECT id, display_name, salt, verifier FROM accounts WHERE email = $1`

	var id, displayName string
	var salt, verifier []byte
	err := p.db.QueryRowContext(ctx, query, email).Scan(&id, &displayName, &salt, &verifier)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: sign in: %w", common.ErrRemoteOperation, err)
	}

	candidate := auth.MakeVerifier(auth.DeriveKey(password, salt))
	if string(candidate) != string(verifier) {
		return nil, common.ErrUnauthenticated
	}

	return p.startSession(ctx, id, email, displayName)
}

func (p *Postgres) startSession(ctx context.Context, accountID, email, displayName string) (*Session, error) {
	accessToken, err := auth.GenerateToken(accountID, []byte(p.cfg.SecretKey), p.cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	expires := time.Now().Add(p.cfg.RefreshTokenValidityDuration)
	query := `INSERT INTO refresh_tokens (token, account_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := p.db.ExecContext(ctx, query, refreshToken, accountID, expires); err != nil {
		return nil, fmt.Errorf("%w: save refresh token: %w", common.ErrRemoteOperation, err)
	}

	s := &Session{
		UserID:       accountID,
		Email:        email,
		Name:         displayName,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(p.cfg.AccessTokenValidityDuration),
	}

	p.setSession(s)
	return s, nil
}

// Refresh rotates the refresh token and mints a new access token. Expired
// refresh tokens end the session.
func (p *Postgres) Refresh(ctx context.Context) (*Session, error) {
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()

	if current == nil {
		return nil, common.ErrUnauthenticated
	}

	var accountID string
	var expires time.Time
	query := `SELECT account_id, expires_at FROM refresh_tokens WHERE token = $1`
	err := p.db.QueryRowContext(ctx, query, current.RefreshToken).Scan(&accountID, &expires)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrInvalidToken
		}
		return nil, fmt.Errorf("%w: find refresh token: %w", common.ErrRemoteOperation, err)
	}
	if expires.Before(time.Now()) {
		p.setSession(nil)
		return nil, common.ErrRefreshTokenExpired
	}

	var next *Session
	err = dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, current.RefreshToken); err != nil {
			return fmt.Errorf("delete refresh token: %w", err)
		}

		accessToken, err := auth.GenerateToken(accountID, []byte(p.cfg.SecretKey), p.cfg.AccessTokenValidityDuration)
		if err != nil {
			return fmt.Errorf("generate access token: %w", err)
		}
		refreshToken, err := common.MakeRandHexString(32)
		if err != nil {
			return fmt.Errorf("generate refresh token: %w", err)
		}

		rtExpires := time.Now().Add(p.cfg.RefreshTokenValidityDuration)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO refresh_tokens (token, account_id, expires_at) VALUES ($1, $2, $3)`,
			refreshToken, accountID, rtExpires); err != nil {
			return fmt.Errorf("save refresh token: %w", err)
		}

		next = &Session{
			UserID:       accountID,
			Email:        current.Email,
			Name:         current.Name,
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			ExpiresAt:    time.Now().Add(p.cfg.AccessTokenValidityDuration),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.setSession(next)
	return next, nil
}

func (p *Postgres) SignOut(ctx context.Context) error {
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()

	if current != nil {
		if _, err := p.db.ExecContext(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, current.RefreshToken); err != nil {
			p.logger.Warn(ctx, "refresh token cleanup failed", "error", err)
		}
	}

	p.setSession(nil)
	return nil
}

// sessionFor returns the session to use for an authenticated operation.
// The access token is verified for real, not just compared against the
// remembered expiry; a token that fails verification is rotated through
// Refresh before the caller is treated as signed out.
func (p *Postgres) sessionFor(ctx context.Context) *Session {
	p.mu.Lock()
	current := p.session
	p.mu.Unlock()

	if current == nil {
		return nil
	}
	if _, err := auth.GetUserIDFromToken(current.AccessToken, []byte(p.cfg.SecretKey)); err == nil {
		return current
	}

	next, err := p.Refresh(ctx)
	if err != nil {
		p.logger.Warn(ctx, "session refresh failed", "error", err)
		return nil
	}
	return next
}

// CurrentUser returns the active session, or nil when signed out or the
// access token has expired.
func (p *Postgres) CurrentUser() *Session {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.session == nil {
		return nil
	}
	if time.Now().After(p.session.ExpiresAt) {
		return nil
	}
	return p.session
}

// OnAuthChange registers fn to be invoked on every sign-in/sign-out with
// the new session (nil on sign-out). The returned function unsubscribes.
func (p *Postgres) OnAuthChange(fn func(*Session)) func() {
	p.mu.Lock()
	defer p.mu.Unlock()

	id := p.nextSub
	p.nextSub++
	p.authSubs[id] = fn

	return func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		delete(p.authSubs, id)
	}
}

func (p *Postgres) setSession(s *Session) {
	p.mu.Lock()
	p.session = s
	subs := make([]func(*Session), 0, len(p.authSubs))
	for _, fn := range p.authSubs {
		subs = append(subs, fn)
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(s)
	}
}
