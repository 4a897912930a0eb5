// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - Env: local uses a text logger at debug level, anything else JSON
  - DatabaseURL: Archive database (optional, archive disabled when empty)
  - DatabaseType: sqlite (default) or postgres
  - SessionSalt: Secret for hashing session ids in the archive
  - SeedFile: YAML polls loaded into every new session
  - SessionTTL: Idle time before a session is discarded (default: 24h)
  - CORSOrigins: Allowed origins (default: *)
  - QRSize: Default share image size (default: 256)

# CLI Flags

	-p             Server port
	-env           Environment name
	-d             Archive database URL
	-t             Database type
	-session-salt  Session hash salt
	-session-ttl   Session idle timeout
	-seed          Seed file
	-cors          Comma-separated origins
	-qr-size       Share image size

# Environment Variables

Flags fall back to environment variables, read with cleanenv:

	PORT           → -p
	APP_ENV        → -env
	DATABASE_URL   → -d
	DATABASE_TYPE  → -t
	SESSION_SALT   → -session-salt
	SESSION_TTL    → -session-ttl
	SEED_FILE      → -seed
	CORS_ORIGINS   → -cors
	QR_SIZE        → -qr-size

CLI flags take precedence over environment variables. LoadDotEnv can be
called first to populate the environment from a .env file.
*/
package cliparse
