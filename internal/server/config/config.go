// Package config handles configuration for the server, loaded from the
// environment. Startup is rejected when a required option is absent.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime settings for the cloudshelf server.
//
// Fields:
//   - ListenAddr: bind address for the public HTTP endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx).
//   - JWTSecret: HMAC secret for signing JWTs (HS256). Do not use test defaults in prod.
//   - AccessTokenTTL / RefreshTokenTTL: token lifetimes. The refresh default is
//     intentionally short for development; tune upward for production.
//   - CORSAllowedOrigins: origins allowed to call the API with credentials.
//   - CookieSecure / CookieSameSite: attributes of the refresh-token cookie.
//   - S3Region / S3AccessKeyID / S3SecretAccessKey / S3Bucket: object storage
//     credentials and location.
//   - S3BaseEndpoint: optional override for S3-compatible backends (MinIO).
//   - UploadMaxBytes: per-request ceiling on uploaded bodies.
type Config struct {
	ListenAddr         string        `envconfig:"LISTEN_ADDR" default:":4001"`
	DatabaseDSN        string        `envconfig:"DATABASE_DSN" required:"true"`
	JWTSecret          string        `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenTTL     time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"90s"`
	RefreshTokenTTL    time.Duration `envconfig:"REFRESH_TOKEN_TTL" default:"4m"`
	CORSAllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" required:"true"`
	CookieSecure       bool          `envconfig:"COOKIE_SECURE" default:"true"`
	CookieSameSite     string        `envconfig:"COOKIE_SAME_SITE" default:"strict"`
	S3Region           string        `envconfig:"S3_REGION" required:"true"`
	S3AccessKeyID      string        `envconfig:"S3_ACCESS_KEY_ID" required:"true"`
	S3SecretAccessKey  string        `envconfig:"S3_SECRET_ACCESS_KEY" required:"true"`
	S3Bucket           string        `envconfig:"S3_BUCKET" required:"true"`
	S3BaseEndpoint     string        `envconfig:"S3_BASE_ENDPOINT"`
	UploadMaxBytes     int64         `envconfig:"UPLOAD_MAX_BYTES" default:"52428800"`
	AuthRateLimit      int           `envconfig:"AUTH_RATE_LIMIT" default:"5"`
	AuthRateWindow     time.Duration `envconfig:"AUTH_RATE_WINDOW" default:"15m"`
}

// LoadConfig builds a Config from environment variables. Missing required
// variables make it fail, which aborts startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
