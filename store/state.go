// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "github.com/danielhkuo/pollshare/models"

// State is an immutable snapshot of a session's polls and selections.
// Selections are keyed by poll question, not poll ID, so polls sharing a
// question share a single vote slot.
type State struct {
	Version    uint64
	Polls      []models.Poll
	Selections map[string]string
}

// Intent is a user action the store knows how to apply.
type Intent interface {
	intent()
}

// AddPoll appends a poll. ID is assigned by the store before reduction.
type AddPoll struct {
	ID       string
	Question string
	Options  []string
}

// SelectOption records option as the choice for question, overwriting any
// earlier choice.
type SelectOption struct {
	Question string
	Option   string
}

func (AddPoll) intent()      {}
func (SelectOption) intent() {}

// Reduce returns the state that results from applying in to s.
// It never mutates s.
func Reduce(s State, in Intent) State {
	switch in := in.(type) {
	case AddPoll:
		next := s.clone()
		next.Polls = append(next.Polls, models.Poll{
			ID:       in.ID,
			Question: in.Question,
			Options:  append([]string(nil), in.Options...),
		})
		next.Version++
		return next
	case SelectOption:
		next := s.clone()
		next.Selections[in.Question] = in.Option
		next.Version++
		return next
	default:
		return s
	}
}

// Selected returns the option chosen for p's question.
func (s State) Selected(p models.Poll) (string, bool) {
	opt, ok := s.Selections[p.Question]
	return opt, ok
}

// Partition splits the polls into voted and created (not voted) lists,
// both in creation order.
func (s State) Partition() (voted, created []models.Poll) {
	voted = []models.Poll{}
	created = []models.Poll{}
	for _, p := range s.Polls {
		if _, ok := s.Selected(p); ok {
			voted = append(voted, p)
		} else {
			created = append(created, p)
		}
	}
	return voted, created
}

// Lookup finds a poll by ID.
func (s State) Lookup(id string) (models.Poll, bool) {
	for _, p := range s.Polls {
		if p.ID == id {
			return p, true
		}
	}
	return models.Poll{}, false
}

func (s State) clone() State {
	next := State{
		Version:    s.Version,
		Polls:      make([]models.Poll, len(s.Polls), len(s.Polls)+1),
		Selections: make(map[string]string, len(s.Selections)+1),
	}
	copy(next.Polls, s.Polls)
	for k, v := range s.Selections {
		next.Selections[k] = v
	}
	return next
}
