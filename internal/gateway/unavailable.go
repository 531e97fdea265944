package gateway

import (
	"context"

	"github.com/aghannam/manassa/internal/common"
)

// Unavailable is the Gateway used when the remote backend could not be
// initialized (bad config, unreachable host). Every operation fails fast
// with ErrRemoteUnavailable instead of forcing callers to guard each call.
type Unavailable struct {
	Reason string
}

func NewUnavailable(reason string) *Unavailable {
	return &Unavailable{Reason: reason}
}

func (u *Unavailable) Available() bool { return false }

func (u *Unavailable) Ping(ctx context.Context) error {
	return common.ErrRemoteUnavailable
}

func (u *Unavailable) List(ctx context.Context, collection string) ([][]byte, error) {
	return nil, common.ErrRemoteUnavailable
}

func (u *Unavailable) GetDoc(ctx context.Context, collection, id string) ([]byte, error) {
	return nil, common.ErrRemoteUnavailable
}

func (u *Unavailable) Create(ctx context.Context, collection string, doc []byte) (string, error) {
	return "", common.ErrRemoteUnavailable
}

func (u *Unavailable) Update(ctx context.Context, collection, id string, doc []byte) error {
	return common.ErrRemoteUnavailable
}

func (u *Unavailable) Delete(ctx context.Context, collection, id string) error {
	return common.ErrRemoteUnavailable
}

func (u *Unavailable) IncrementViews(ctx context.Context, articleID string) error {
	return common.ErrRemoteUnavailable
}

func (u *Unavailable) SignUp(ctx context.Context, email string, password []byte, displayName string) (*Session, error) {
	return nil, common.ErrRemoteUnavailable
}

func (u *Unavailable) SignIn(ctx context.Context, email string, password []byte) (*Session, error) {
	return nil, common.ErrRemoteUnavailable
}

func (u *Unavailable) SignOut(ctx context.Context) error {
	return common.ErrRemoteUnavailable
}

func (u *Unavailable) CurrentUser() *Session { return nil }

func (u *Unavailable) OnAuthChange(fn func(*Session)) func() {
	return func() {}
}
