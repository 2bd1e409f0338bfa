package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECURITY_SALT": "pepper",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Port != "8080" || cfg.Env != "development" {
		t.Fatalf("unexpected server defaults: %+v", cfg)
	}
	if cfg.Session.CookieName != "SessionId" || cfg.Session.IdleTimeout != 60*time.Minute {
		t.Fatalf("unexpected session defaults: %+v", cfg.Session)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Security.Scheme != "legacy" || cfg.Security.SaltRounds != 10000 {
		t.Fatalf("unexpected defaults: %+v %+v", cfg.Database, cfg.Security)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:8080" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"SECURITY_SALT":        "pepper",
		"DB_DRIVER":            "postgres",
		"DATABASE_URL":         "postgres://tasks@localhost/tasks",
		"PASSWORD_SCHEME":      "bcrypt",
		"SESSION_IDLE_TIMEOUT": "15m",
		"CORS_ALLOWED_ORIGINS": "https://a.example,https://b.example",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Database.Driver != "postgres" || cfg.Session.IdleTimeout != 15*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{name: "missing salt", env: map[string]string{}, wantErr: "SECURITY_SALT is required"},
		{name: "bad rounds", env: map[string]string{"SECURITY_SALT": "s", "SECURITY_SALT_ROUNDS": "0"}, wantErr: "SECURITY_SALT_ROUNDS"},
		{name: "bad scheme", env: map[string]string{"SECURITY_SALT": "s", "PASSWORD_SCHEME": "md5"}, wantErr: "PASSWORD_SCHEME"},
		{name: "bad driver", env: map[string]string{"SECURITY_SALT": "s", "DB_DRIVER": "mysql"}, wantErr: "DB_DRIVER"},
		{name: "short hash key", env: map[string]string{"SECURITY_SALT": "s", "SESSION_HASH_KEY": "short"}, wantErr: "SESSION_HASH_KEY must be at least"},
		{name: "production needs hash key", env: map[string]string{"SECURITY_SALT": "s", "ENV": "production"}, wantErr: "required in production"},
		{name: "bad block key", env: map[string]string{"SECURITY_SALT": "s", "SESSION_BLOCK_KEY": "abc"}, wantErr: "SESSION_BLOCK_KEY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWith(context.Background(), envconfig.MapLookuper(tt.env))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	t.Run("missing file is fine", func(t *testing.T) {
		t.Chdir(t.TempDir())
		t.Setenv("SECURITY_SALT", "pepper")

		if _, err := Load(context.Background()); err != nil {
			t.Fatalf("load: %v", err)
		}
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("BAD-KEY=1\n"), 0o600); err != nil {
			t.Fatalf("write .env: %v", err)
		}
		t.Chdir(dir)
		t.Setenv("SECURITY_SALT", "pepper")

		_, err := Load(context.Background())
		if err == nil || !strings.Contains(err.Error(), ".env") {
			t.Fatalf("expected .env error, got %v", err)
		}
	})
}
