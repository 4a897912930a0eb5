package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port         int           `env:"PORT" env-default:"3318"`
	Env          string        `env:"APP_ENV" env-default:"local"`
	DatabaseURL  string        `env:"DATABASE_URL"`
	DatabaseType string        `env:"DATABASE_TYPE" env-default:"sqlite"`
	SessionSalt  string        `env:"SESSION_SALT"`
	SeedFile     string        `env:"SEED_FILE"`
	SessionTTL   time.Duration `env:"SESSION_TTL" env-default:"24h"`
	CORSOrigins  []string      `env:"CORS_ORIGINS" env-separator:"," env-default:"*"`
	QRSize       int           `env:"QR_SIZE" env-default:"256"`
}

// LoadDotEnv loads variables from a .env file. A missing file is not an error.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// ParseFlags reads the environment, then lets CLI flags override it
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	fs := flag.NewFlagSet("pollshare", flag.ContinueOnError)

	// Network config
	fs.IntVar(&cfg.Port, "p", cfg.Port, "Server port")
	fs.StringVar(&cfg.Env, "env", cfg.Env, "Environment (local, dev, prod)")
	fs.Func("cors", "Comma-separated allowed CORS origins", func(s string) error {
		cfg.CORSOrigins = splitList(s)
		return nil
	})

	// Archive config (optional)
	fs.StringVar(&cfg.DatabaseURL, "d", cfg.DatabaseURL, "Archive database URL")
	fs.StringVar(&cfg.DatabaseType, "t", cfg.DatabaseType, "Database type (sqlite or postgres)")

	// Sessions
	fs.StringVar(&cfg.SessionSalt, "session-salt", cfg.SessionSalt, "Session hash salt (prefer env)")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Idle time before a session is discarded")
	fs.StringVar(&cfg.SeedFile, "seed", cfg.SeedFile, "YAML file with polls to preload into new sessions")

	fs.IntVar(&cfg.QRSize, "qr-size", cfg.QRSize, "Default share image size in pixels")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("database type must be sqlite or postgres, got %q", cfg.DatabaseType)
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("session ttl must be positive")
	}
	if cfg.QRSize <= 0 {
		return Config{}, errors.New("qr size must be positive")
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{"*"}
	}

	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
