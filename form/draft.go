// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package form

import (
	"errors"

	"github.com/danielhkuo/pollshare/models"
)

// Bounds on the option list of a savable poll.
const (
	MinOptions = 2
	MaxOptions = 10
)

// Errors returned by AddOption and FromRequest.
var (
	ErrEmptyOption     = errors.New("option cannot be empty")
	ErrDuplicateOption = errors.New("option already added")
	ErrTooManyOptions  = errors.New("at most 10 options allowed")
	ErrCannotSave      = errors.New("question and at least 2 options required")
)

// PollAdder is the part of the store a draft saves into.
type PollAdder interface {
	AddPoll(question string, options []string) models.Poll
}

// Draft is the pending state of the poll creation form.
type Draft struct {
	Question string
	Option   string
	Options  []string
}

// SetQuestion replaces the question text.
func (d *Draft) SetQuestion(q string) { d.Question = q }

// SetOption replaces the pending option text.
func (d *Draft) SetOption(text string) { d.Option = text }

// AddOption moves the pending option text into the option list.
// The pending text is kept when the option is rejected.
func (d *Draft) AddOption() error {
	switch {
	case d.Option == "":
		return ErrEmptyOption
	case len(d.Options) >= MaxOptions:
		return ErrTooManyOptions
	}
	for _, o := range d.Options {
		if o == d.Option {
			return ErrDuplicateOption
		}
	}
	d.Options = append(d.Options, d.Option)
	d.Option = ""
	return nil
}

// RemoveOption removes the first occurrence of opt.
func (d *Draft) RemoveOption(opt string) bool {
	for i, o := range d.Options {
		if o == opt {
			d.Options = append(d.Options[:i], d.Options[i+1:]...)
			return true
		}
	}
	return false
}

// CanSave gates the save action.
func (d *Draft) CanSave() bool {
	return len(d.Options) >= MinOptions && d.Question != ""
}

// Save adds the poll to a and resets the draft. Nothing happens when the
// draft cannot be saved.
func (d *Draft) Save(a PollAdder) (models.Poll, bool) {
	if !d.CanSave() {
		return models.Poll{}, false
	}
	p := a.AddPoll(d.Question, d.Options)
	*d = Draft{}
	return p, true
}

// FromRequest replays a complete question and option list through the same
// gating an interactive form applies.
func FromRequest(question string, options []string) (*Draft, error) {
	d := &Draft{}
	d.SetQuestion(question)
	for _, o := range options {
		d.SetOption(o)
		if err := d.AddOption(); err != nil {
			return nil, err
		}
	}
	if !d.CanSave() {
		return nil, ErrCannotSave
	}
	return d, nil
}
