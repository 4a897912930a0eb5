// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestParseFlags_Defaults(t *testing.T) {
	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected default port 3318, got %d", cfg.Port)
	}
	if cfg.Env != "local" {
		t.Errorf("expected env local, got %s", cfg.Env)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("archive should be off by default, got %q", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected 24h ttl, got %s", cfg.SessionTTL)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"*"}) {
		t.Errorf("expected wildcard CORS, got %v", cfg.CORSOrigins)
	}
	if cfg.QRSize != 256 {
		t.Errorf("expected qr size 256, got %d", cfg.QRSize)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("SESSION_SALT", "test-salt")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Env != "prod" || cfg.DatabaseType != "postgres" || cfg.SessionSalt != "test-salt" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.SessionTTL != 90*time.Minute {
		t.Errorf("expected 90m ttl, got %s", cfg.SessionTTL)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-session-salt", "s1", "-seed", "polls.yaml", "-cors", "https://x.example"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SessionSalt != "s1" {
		t.Errorf("CLI should override env: expected s1, got %s", cfg.SessionSalt)
	}
	if cfg.DatabaseURL != "file:test.db" || cfg.SeedFile != "polls.yaml" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"https://x.example"}) {
		t.Errorf("unexpected CORS origins %v", cfg.CORSOrigins)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"bad port env", map[string]string{"PORT": "not-a-number"}, nil},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"unknown db type", nil, []string{"-t", "mysql"}},
		{"zero ttl", nil, []string{"-session-ttl", "0s"}},
		{"zero qr size", nil, []string{"-qr-size", "0"}},
		{"unknown flag", nil, []string{"-nope"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tc.args); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Errorf("missing file should be ignored, got %v", err)
	}

	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("POLLSHARE_TEST_VAR=from-dotenv\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("POLLSHARE_TEST_VAR", "")
	os.Unsetenv("POLLSHARE_TEST_VAR")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	if got := os.Getenv("POLLSHARE_TEST_VAR"); got != "from-dotenv" {
		t.Errorf("expected from-dotenv, got %q", got)
	}
}
