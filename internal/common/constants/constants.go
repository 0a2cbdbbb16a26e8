package constants

import "time"

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"

const (
	UsernameMinLength     = 2
	UsernameMaxLength     = 80
	EmailMaxLength        = 120
	PasswordMinLength     = 6
	PasswordMaxLength     = 72
	SessionSecretMinLen   = 32
	PictureNameHexBytes   = 8
	DefaultProfilePicture = "default.jpg"

	DefaultMaxRequestSize = 1 << 20
	MaxPictureSizeBytes   = 5 * 1024 * 1024

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "8080"
	DefaultRequestTimeout = 5 * time.Second
	DefaultSessionTTL     = 24 * time.Hour
	DefaultNewsTimeout    = 10 * time.Second
	DefaultNewsCountry    = "us"

	RevokedSessionCleanupInterval = time.Hour
	RateLimitCleanupInterval      = 5 * time.Minute
)
