package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "", cfg.DatabaseDSN)
	assert.Equal(t, "data", cfg.CacheDir)
	assert.Equal(t, "manassa.db", cfg.CacheFile)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 5*time.Second, cfg.InitLoadTimeout)
}

func TestParseJson_Overlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	content := `{
		"database_dsn": "postgres://doc-store/manassa",
		"secret_key": "k1",
		"init_load_timeout": "2s",
		"access_token_validity_duration": "30m"
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-c", path}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	assert.Equal(t, "postgres://doc-store/manassa", cfg.DatabaseDSN)
	assert.Equal(t, "k1", cfg.SecretKey)
	assert.Equal(t, 2*time.Second, cfg.InitLoadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)

	// untouched fields keep defaults
	assert.Equal(t, "data", cfg.CacheDir)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestParseFlags_Overlay(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"test", "-d", "postgres://flagged", "-k", "flagkey"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "postgres://flagged", cfg.DatabaseDSN)
	assert.Equal(t, "flagkey", cfg.SecretKey)
}
