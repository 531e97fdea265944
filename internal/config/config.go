// Package config handles runtime configuration for the platform, including
// defaults, JSON overlay, and command-line flags. Later sources take
// precedence over earlier ones.
package config

import "time"

// Config holds runtime settings shared by the admin CLI and the data layer.
//
// Fields:
//   - DatabaseDSN: PostgreSQL DSN of the hosted document store (pgx).
//     Empty means "no remote configured" and the gateway starts unavailable.
//   - CacheDir / CacheFile: location of the local sqlite cache.
//   - SecretKey: HMAC secret for signing session JWTs (HS256).
//   - AccessTokenValidityDuration / RefreshTokenValidityDuration: session
//     token lifetimes.
//   - S3RootUser / S3RootPassword / S3Bucket / S3Region / S3BaseEndpoint:
//     S3-compatible blob storage for media uploads.
//   - InitLoadTimeout: budget for the initial article load; when exceeded
//     the app proceeds with cached data.
//   - OnlineCheckInterval: how often the app probes remote reachability.
type Config struct {
	DatabaseDSN                  string
	CacheDir                     string
	CacheFile                    string
	SecretKey                    string
	AccessTokenValidityDuration  time.Duration
	RefreshTokenValidityDuration time.Duration
	S3RootUser                   string
	S3RootPassword               string
	S3Bucket                     string
	S3Region                     string
	S3BaseEndpoint               string
	InitLoadTimeout              time.Duration
	OnlineCheckInterval          time.Duration
}

// LoadDefaults populates Config with development defaults.
// NOTE: These values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = ""
	c.CacheDir = "data"
	c.CacheFile = "manassa.db"
	c.SecretKey = "secretKey"
	c.AccessTokenValidityDuration = 15 * time.Minute
	c.RefreshTokenValidityDuration = 24 * time.Hour
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "media"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
	c.InitLoadTimeout = 5 * time.Second
	c.OnlineCheckInterval = 30 * time.Second
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
