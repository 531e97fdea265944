package gateway

import (
	"context"
	"testing"

	"github.com/aghannam/manassa/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnavailable_AllOperationsFailFast(t *testing.T) {
	g := NewUnavailable("sdk failed to load")
	ctx := context.Background()

	assert.False(t, g.Available())
	assert.ErrorIs(t, g.Ping(ctx), common.ErrRemoteUnavailable)

	_, err := g.List(ctx, "articles")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	_, err = g.GetDoc(ctx, "articles", "a1")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	_, err = g.Create(ctx, "articles", []byte(`{}`))
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	assert.ErrorIs(t, g.Update(ctx, "articles", "a1", []byte(`{}`)), common.ErrRemoteUnavailable)
	assert.ErrorIs(t, g.Delete(ctx, "articles", "a1"), common.ErrRemoteUnavailable)
	assert.ErrorIs(t, g.IncrementViews(ctx, "a1"), common.ErrRemoteUnavailable)

	_, err = g.SignIn(ctx, "a@b.co", []byte("pw"))
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	_, err = g.SignUp(ctx, "a@b.co", []byte("pw"), "A")
	assert.ErrorIs(t, err, common.ErrRemoteUnavailable)

	assert.Nil(t, g.CurrentUser())

	unsubscribe := g.OnAuthChange(func(*Session) {})
	require.NotNil(t, unsubscribe)
	unsubscribe()
}
