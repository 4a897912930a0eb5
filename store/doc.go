// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store holds the poll state for a single session.

# Data Flow

Views read a State snapshot, turn user input into an Intent, and dispatch
it. Reduce computes the next State and every observer is notified before
Dispatch returns:

	s := store.New()
	unsubscribe := s.Subscribe(func(e store.Event) {
		render(e.State)
	})
	defer unsubscribe()

	poll := s.AddPoll("Color?", []string{"Red", "Blue"})
	s.SelectOption(poll.Question, "Blue")

# Selections

Selections map a poll's question text to the chosen option. The last vote
for a question wins. Two polls with the same question share one entry, so
voting on either marks both as voted.

The store performs no validation. Question and option rules live in
package form.

# Partitions

State.Partition splits polls into voted (question has a selection) and
created (no selection). Both lists keep creation order and together
contain every poll exactly once.
*/
package store
