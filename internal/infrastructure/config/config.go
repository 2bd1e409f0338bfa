package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const envProduction = "production"

type Config struct {
	Port            string        `env:"PORT, default=8080"`
	Env             string        `env:"ENV, default=development"`
	LogLevel        string        `env:"LOG_LEVEL, default=info"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`
	AllowedOrigins  []string      `env:"CORS_ALLOWED_ORIGINS, default=http://localhost:8080"`

	Database DatabaseConfig
	Security SecurityConfig
	Session  SessionConfig
}

type DatabaseConfig struct {
	Driver       string        `env:"DB_DRIVER, default=sqlite"`
	URL          string        `env:"DATABASE_URL, default=file:tasks.db?_foreign_keys=on"`
	QueryTimeout time.Duration `env:"DB_QUERY_TIMEOUT, default=5s"`
}

type SecurityConfig struct {
	Salt       string `env:"SECURITY_SALT"`
	SaltRounds int    `env:"SECURITY_SALT_ROUNDS, default=10000"`
	Scheme     string `env:"PASSWORD_SCHEME, default=legacy"`
}

type SessionConfig struct {
	CookieName    string        `env:"SESSION_COOKIE_NAME, default=SessionId"`
	IdleTimeout   time.Duration `env:"SESSION_IDLE_TIMEOUT, default=60m"`
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL, default=1m"`
	HashKey       string        `env:"SESSION_HASH_KEY"`
	BlockKey      string        `env:"SESSION_BLOCK_KEY"`
}

// Load reads a .env file when one exists, then configuration from
// environment variables using go-envconfig. Variables already set in the
// environment win over the file. A malformed .env is an error.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith processes configuration from l and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool { return c.Env == envProduction }

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	var errs []error
	if c.Security.Salt == "" {
		errs = append(errs, errors.New("SECURITY_SALT is required"))
	}
	if c.Security.SaltRounds <= 0 {
		errs = append(errs, errors.New("SECURITY_SALT_ROUNDS must be positive"))
	}
	switch c.Security.Scheme {
	case "legacy", "bcrypt":
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_SCHEME %q is not one of legacy, bcrypt", c.Security.Scheme))
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q is not one of sqlite, postgres", c.Database.Driver))
	}

	if n := len(c.Session.HashKey); n > 0 && n < 32 {
		errs = append(errs, errors.New("SESSION_HASH_KEY must be at least 32 bytes"))
	}
	if c.Session.HashKey == "" && c.IsProduction() {
		errs = append(errs, errors.New("SESSION_HASH_KEY is required in production"))
	}
	switch len(c.Session.BlockKey) {
	case 0, 16, 24, 32:
	default:
		errs = append(errs, errors.New("SESSION_BLOCK_KEY must be 16, 24 or 32 bytes"))
	}
	if c.Session.IdleTimeout <= 0 {
		errs = append(errs, errors.New("SESSION_IDLE_TIMEOUT must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
