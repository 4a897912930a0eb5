package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/danielhkuo/pollshare/archive"
	"github.com/danielhkuo/pollshare/auth"
	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/router"
	"github.com/danielhkuo/pollshare/seed"
	"github.com/danielhkuo/pollshare/session"
	"github.com/danielhkuo/pollshare/store"
)

func main() {
	var err error

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(cfg.Env))

	if cfg.SessionSalt == "" {
		slog.Warn("SESSION_SALT is empty; session hashes in logs and the archive are unsalted")
	}

	registry := session.NewRegistry()

	// Preload polls into every new session
	if cfg.SeedFile != "" {
		entries, err := seed.Load(cfg.SeedFile)
		if err != nil {
			slog.Error("seed load failed", "error", err)
			os.Exit(1)
		}
		registry.OnCreate(func(id string, s *store.Store) func() {
			seed.Apply(s, entries)
			return nil
		})
		slog.Info("Seed loaded", "polls", len(entries))
	}

	// Journal store events when an archive database is configured
	var arch *archive.Archive
	if cfg.DatabaseURL != "" {
		arch, err = archive.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("archive setup failed", "error", err)
			os.Exit(1)
		}
		registry.OnCreate(func(id string, s *store.Store) func() {
			return s.Subscribe(arch.Observer(auth.HashSessionID(id, cfg.SessionSalt)))
		})
		slog.Info("Archive ready", "type", cfg.DatabaseType)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweepSessions(ctx, registry, cfg.SessionTTL)

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(registry, cfg),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
		defer done()
		if err := server.Shutdown(shutdownCtx); err != nil {
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "env", cfg.Env)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}

	if arch != nil {
		if err := arch.Close(); err != nil {
			slog.Error("archive close failed", "error", err)
		}
		if n := arch.Dropped(); n > 0 {
			slog.Warn("archive dropped events", "count", n)
		}
	}
}

func newLogger(env string) *slog.Logger {
	if env == "local" {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// sweepSessions discards idle sessions until ctx is cancelled
func sweepSessions(ctx context.Context, registry *session.Registry, ttl time.Duration) {
	interval := ttl / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := registry.Sweep(ttl); n > 0 {
				slog.Info("sessions swept", "count", n, "remaining", registry.Len())
			}
		}
	}
}
