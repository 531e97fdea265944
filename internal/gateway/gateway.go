// Package gateway is the boundary to the hosted backend: a Postgres
// document store, session auth, and S3-compatible blob storage. Every
// repository speaks to the remote side only through the Gateway interface,
// so the whole backend can be swapped for the Unavailable variant (or a
// test fake) without touching callers.
package gateway

import (
	"context"
	"time"
)

// Session describes the signed-in user. A nil session means signed out.
type Session struct {
	UserID       string
	Email        string
	Name         string
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Gateway exposes the remote data operations. Implementations must return
// common.ErrRemoteUnavailable when the backing service cannot be reached,
// and common.ErrUnauthenticated for writes without a session; repositories
// rely on the two being distinguishable to pick the fallback path.
//
// List results are ordered by creation time descending.
type Gateway interface {
	Available() bool
	Ping(ctx context.Context) error

	List(ctx context.Context, collection string) ([][]byte, error)
	GetDoc(ctx context.Context, collection, id string) ([]byte, error)
	Create(ctx context.Context, collection string, doc []byte) (string, error)
	Update(ctx context.Context, collection, id string, doc []byte) error
	Delete(ctx context.Context, collection, id string) error
	IncrementViews(ctx context.Context, articleID string) error

	SignUp(ctx context.Context, email string, password []byte, displayName string) (*Session, error)
	SignIn(ctx context.Context, email string, password []byte) (*Session, error)
	SignOut(ctx context.Context) error
	CurrentUser() *Session
	OnAuthChange(fn func(*Session)) (unsubscribe func())
}

// BlobStore hands out presigned URLs for media objects. The actual bytes
// never pass through this process except via the presigned PUT.
type BlobStore interface {
	PresignPut(ctx context.Context) (key, url string, err error)
	PresignGet(ctx context.Context, key string) (string, error)
	DeleteObject(ctx context.Context, key string) error
}
