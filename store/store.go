// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/danielhkuo/pollshare/models"
)

// Event is delivered to observers after every dispatched intent.
type Event struct {
	Intent Intent
	State  State
}

// Observer is notified synchronously after each state change.
type Observer func(Event)

type subscriber struct {
	id uint64
	fn Observer
}

// Store holds one session's polls and selections.
// Observers may call State but must not dispatch from inside a notification.
type Store struct {
	dispatchMu sync.Mutex // serializes reduce+notify

	mu     sync.RWMutex
	state  State
	subs   []subscriber
	nextID uint64
	newID  func() string
}

func New() *Store {
	return &Store{
		state: State{Polls: []models.Poll{}, Selections: map[string]string{}},
		newID: uuid.NewString,
	}
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// AddPoll appends a poll with a fresh ID. Input is not validated.
func (s *Store) AddPoll(question string, options []string) models.Poll {
	id := s.newID()
	s.Dispatch(AddPoll{ID: id, Question: question, Options: options})
	return models.Poll{ID: id, Question: question, Options: append([]string(nil), options...)}
}

// SelectOption overwrites the selection for question. Neither the question
// nor the option is checked against existing polls.
func (s *Store) SelectOption(question, option string) {
	s.Dispatch(SelectOption{Question: question, Option: option})
}

// Dispatch applies in and notifies observers before returning.
func (s *Store) Dispatch(in Intent) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	s.mu.Lock()
	s.state = Reduce(s.state, in)
	snapshot := s.state.clone()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(Event{Intent: in, State: snapshot})
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.subs {
				if sub.id == id {
					s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Subscribers returns the number of registered observers.
func (s *Store) Subscribers() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
