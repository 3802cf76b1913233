package config

import "time"

// Database connection pool settings
const (
	DBMaxOpenConns    = 25
	DBMaxIdleConns    = 5
	DBConnMaxLifetime = 5 * time.Minute
)

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Database ping timeout for health checks
const DBPingTimeout = 5 * time.Second

// Password hashing
const (
	BcryptCost        = 12
	MinPasswordLength = 6
)

// Session field limits (characters, not bytes)
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Cache TTL for the public session listing
const PublicListingCacheTTL = 60 * time.Second
