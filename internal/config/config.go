package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "password", "wellness-secret-key",
}

type Config struct {
	Port           int    `env:"PORT" envDefault:"8080"`
	DatabaseURL    string `env:"DATABASE_URL,required"`
	RedisURL       string `env:"REDIS_URL,required"`
	JWTSecret      string `env:"JWT_SECRET,required"`
	TokenTTLHours  int    `env:"TOKEN_TTL_HOURS" envDefault:"168"`
	LoginRateLimit int    `env:"LOGIN_RATE_LIMIT_PER_MIN" envDefault:"20"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
}

func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate rejects configurations that would run the server with an insecure
// signing key. A missing or weak JWT_SECRET is a deployment error, never a
// fallback default.
func (c *Config) Validate(isProduction bool) error {
	for _, weak := range knownWeakSecrets {
		if c.JWTSecret == weak {
			return fmt.Errorf("JWT_SECRET is a known weak default; set a strong secret (generate with: openssl rand -base64 32)")
		}
	}

	if isProduction && len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters in production (generate with: openssl rand -base64 32)")
	}

	if c.TokenTTLHours <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive, got %d", c.TokenTTLHours)
	}

	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
