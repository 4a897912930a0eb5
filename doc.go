// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the pollshare API server.

pollshare keeps a per-session list of polls and the option chosen for
each one, splits them into voted and created sections, and renders any
poll's question as a QR code for sharing.

# Starting the Server

Every setting has a default, so the server runs with no configuration:

	go run .

Or with flags:

	go run . -p 3318 -seed polls.yaml -d pollshare.db

Variables in a .env file in the working directory are loaded first.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - APP_ENV (-env): local logs text at debug level, anything else JSON at info
  - CORS_ORIGINS (-cors): Comma-separated allowed origins (default: *)
  - SESSION_SALT (-session-salt): Secret for hashing session ids in logs
  - SESSION_TTL (-session-ttl): Idle time before a session is discarded (default: 24h)
  - SEED_FILE (-seed): YAML polls added to every new session
  - QR_SIZE (-qr-size): Default share image size (default: 256)
  - DATABASE_URL (-d): Optional event archive database
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

  - store: Poll store, intents, reducer and observers
  - form: Poll creation form gating
  - share: QR code rendering
  - session: Registry of per-session stores
  - archive: Write-only SQL journal of store events
  - seed: YAML seed polls
  - handlers: HTTP and websocket handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, gzip, logging, JSON helpers
  - models: Request/response and message types
  - auth: Session id generation, validation and hashing
  - cliparse: Environment and CLI configuration

# Graceful Shutdown

SIGINT or SIGTERM stops the sweeper, drains in-flight requests and
flushes the archive before exit.
*/
package main
