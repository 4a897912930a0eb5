// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package seed loads starter polls from a YAML file into new sessions.
package seed

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/pollshare/form"
	"github.com/danielhkuo/pollshare/store"
)

type Entry struct {
	Question string   `yaml:"question"`
	Options  []string `yaml:"options"`
}

type File struct {
	Polls []Entry `yaml:"polls"`
}

// Parse decodes a seed document. Every entry must pass the same rules as
// the poll creation form.
func Parse(raw []byte) ([]Entry, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}
	for i, e := range f.Polls {
		if _, err := form.FromRequest(e.Question, e.Options); err != nil {
			return nil, fmt.Errorf("seed poll %d (%q): %w", i, e.Question, err)
		}
	}
	return f.Polls, nil
}

func Load(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(raw)
}

// Apply adds every entry to s in file order.
func Apply(s *store.Store, entries []Entry) {
	for _, e := range entries {
		s.AddPoll(e.Question, e.Options)
	}
}
