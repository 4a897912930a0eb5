// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"
	"time"

	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/store"
)

// Hook runs once when a session's store is created. A non-nil return value
// runs when the session ends.
type Hook func(id string, s *store.Store) (closer func())

type closer struct {
	id uint64
	fn func()
}

type entry struct {
	store      *store.Store
	createdAt  time.Time
	lastSeenAt time.Time
	closers    []closer
}

// detach takes the closers out of e. Callers hold the registry lock and run
// the result after releasing it.
func (e *entry) detach() []closer {
	cs := e.closers
	e.closers = nil
	return cs
}

func runClosers(cs []closer) {
	for _, c := range cs {
		c.fn()
	}
}

// Registry maps session ids to their stores. A session lives until it is
// ended or swept; its state is discarded with it.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*entry
	hooks    []Hook
	nextID   uint64
	now      func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// OnCreate registers a hook. Hooks run in registration order.
func (r *Registry) OnCreate(h Hook) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hooks = append(r.hooks, h)
}

// Get returns the store for id, creating the session if needed.
func (r *Registry) Get(id string) *store.Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if e, ok := r.sessions[id]; ok {
		e.lastSeenAt = now
		return e.store
	}

	e := &entry{store: store.New(), createdAt: now, lastSeenAt: now}
	r.sessions[id] = e
	for _, h := range r.hooks {
		if fn := h(id, e.store); fn != nil {
			e.closers = append(e.closers, r.newCloser(fn))
		}
	}
	return e.store
}

// Lookup returns the store for an existing session without creating one.
func (r *Registry) Lookup(id string) (*store.Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeenAt = r.now()
	return e.store, true
}

func (r *Registry) newCloser(fn func()) closer {
	r.nextID++
	return closer{id: r.nextID, fn: fn}
}

// AddCloser registers fn to run when the session ends. The returned remove
// func unregisters fn; callers whose work finishes before the session does
// must call it. remove is safe to call more than once and after the session
// has ended.
func (r *Registry) AddCloser(id string, fn func()) (remove func(), ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, found := r.sessions[id]
	if !found {
		return func() {}, false
	}
	c := r.newCloser(fn)
	e.closers = append(e.closers, c)

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, other := range e.closers {
			if other.id == c.id {
				e.closers = append(e.closers[:i], e.closers[i+1:]...)
				return
			}
		}
	}, true
}

// Closers reports how many close funcs are registered for a session.
func (r *Registry) Closers(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return 0
	}
	return len(e.closers)
}

func (r *Registry) Info(id string) (models.SessionInfo, bool) {
	r.mu.Lock()
	e, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return models.SessionInfo{}, false
	}

	st := e.store.State()
	voted, _ := st.Partition()

	r.mu.Lock()
	defer r.mu.Unlock()
	return models.SessionInfo{
		PollCount:  len(st.Polls),
		VotedCount: len(voted),
		CreatedAt:  e.createdAt,
		LastSeenAt: e.lastSeenAt,
	}, true
}

// End discards a session and its state.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	e, ok := r.sessions[id]
	var closers []closer
	if ok {
		delete(r.sessions, id)
		closers = e.detach()
	}
	r.mu.Unlock()

	runClosers(closers)
	return ok
}

// Sweep ends every session idle for longer than idle and returns how many
// were ended.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	cutoff := r.now().Add(-idle)
	var stale [][]closer
	for id, e := range r.sessions {
		if e.lastSeenAt.Before(cutoff) {
			stale = append(stale, e.detach())
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, cs := range stale {
		runClosers(cs)
	}
	return len(stale)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
