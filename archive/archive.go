// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/pollshare/store"
)

const (
	KindAddPoll      = "add_poll"
	KindSelectOption = "select_option"

	DefaultQueueSize = 4096
)

var ErrClosed = errors.New("archive closed")

type row struct {
	sessionHash string
	event       store.Event
	recordedAt  time.Time

	flush chan struct{}
}

// Archive journals store events to SQL. Writes happen on a single writer
// goroutine; a full queue drops events instead of blocking the store.
type Archive struct {
	db *sql.DB
	ch chan row
	wg sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	dropped atomic.Int64
}

// DriverName maps a configured database type to its database/sql driver.
func DriverName(dbType string) (string, error) {
	switch dbType {
	case "sqlite":
		return "sqlite", nil
	case "postgres":
		return "postgres", nil
	}
	return "", fmt.Errorf("unsupported database type %q", dbType)
}

// Open connects to the database and starts the writer.
func Open(dbType, url string) (*Archive, error) {
	driver, err := DriverName(dbType)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if driver == "sqlite" {
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	a, err := New(db, DefaultQueueSize)
	if err != nil {
		db.Close()
		return nil, err
	}
	return a, nil
}

// New creates the schema on db and starts the writer. The archive owns db
// from here on.
func New(db *sql.DB, queueSize int) (*Archive, error) {
	if err := CreateSchema(db); err != nil {
		return nil, err
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	a := &Archive{db: db, ch: make(chan row, queueSize)}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		a.loop()
	}()
	return a, nil
}

// Observer returns a store observer that journals every event under
// sessionHash.
func (a *Archive) Observer(sessionHash string) store.Observer {
	return func(e store.Event) {
		a.enqueue(row{sessionHash: sessionHash, event: e, recordedAt: time.Now()})
	}
}

// Dropped reports how many events were lost to a full queue.
func (a *Archive) Dropped() int64 {
	return a.dropped.Load()
}

func (a *Archive) enqueue(r row) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return
	}

	select {
	case a.ch <- r:
	default:
		a.dropped.Add(1)
		slog.Warn("archive queue full, dropping event", "session", r.sessionHash)
	}
}

// Flush waits until every event queued before the call is written.
func (a *Archive) Flush(ctx context.Context) error {
	done := make(chan struct{})

	a.mu.RLock()
	if a.closed {
		a.mu.RUnlock()
		return ErrClosed
	}
	select {
	case a.ch <- row{flush: done}:
		a.mu.RUnlock()
	case <-ctx.Done():
		a.mu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Count returns the number of journaled events for a session.
func (a *Archive) Count(ctx context.Context, sessionHash string) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM poll_event WHERE session_hash = $1
	`, sessionHash).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return n, nil
}

// Close drains the queue and closes the database.
func (a *Archive) Close() error {
	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		return nil
	}
	a.closed = true
	close(a.ch)
	a.mu.Unlock()

	a.wg.Wait()
	return a.db.Close()
}

func (a *Archive) loop() {
	for r := range a.ch {
		if r.flush != nil {
			close(r.flush)
			continue
		}
		if err := a.insert(r); err != nil {
			slog.Error("failed to archive event", "error", err, "session", r.sessionHash)
		}
	}
}

func (a *Archive) insert(r row) error {
	var (
		kind, question string
		pollID, option sql.NullString
		optionsJSON    sql.NullString
	)

	switch in := r.event.Intent.(type) {
	case store.AddPoll:
		kind = KindAddPoll
		question = in.Question
		pollID = sql.NullString{String: in.ID, Valid: true}
		b, err := json.Marshal(in.Options)
		if err != nil {
			return fmt.Errorf("failed to encode options: %w", err)
		}
		optionsJSON = sql.NullString{String: string(b), Valid: true}
	case store.SelectOption:
		kind = KindSelectOption
		question = in.Question
		option = sql.NullString{String: in.Option, Valid: true}
	default:
		return fmt.Errorf("unknown intent %T", r.event.Intent)
	}

	_, err := a.db.Exec(`
		INSERT INTO poll_event (id, session_hash, kind, poll_id, question, option_text, options_json, state_version, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.NewString(), r.sessionHash, kind, pollID, question, option, optionsJSON, int64(r.event.State.Version), r.recordedAt)
	if err != nil {
		return fmt.Errorf("failed to insert event: %w", err)
	}
	return nil
}
