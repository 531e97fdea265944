package gateway

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aghannam/manassa/internal/config"
)

func blobTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestS3Blobs_PresignPut(t *testing.T) {
	b := NewS3Blobs(blobTestConfig())

	key, url, err := b.PresignPut(context.Background())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "media/"))
	assert.Contains(t, url, key)
	assert.Contains(t, url, "X-Amz-Signature")
}

func TestS3Blobs_PresignGet(t *testing.T) {
	b := NewS3Blobs(blobTestConfig())

	key := "media/2026/1/2/some-object"
	url, err := b.PresignGet(context.Background(), key)
	require.NoError(t, err)

	assert.Contains(t, url, key)
	assert.Contains(t, url, "X-Amz-Signature")
	assert.Contains(t, url, "X-Amz-Expires")
}
