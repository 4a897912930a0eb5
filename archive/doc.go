// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package archive journals poll store events to a SQL database.

The archive is write-only: live session state is never rebuilt from it, so
polls and selections still disappear when a session ends.

# Opening

	a, err := archive.Open("sqlite", "file:events.db")
	defer a.Close()

Supported database types are sqlite (modernc.org/sqlite) and postgres
(github.com/lib/pq). Open creates the schema if needed.

# Recording

Attach an observer to each session store:

	unsubscribe := s.Subscribe(a.Observer(auth.HashSessionID(id, salt)))

Events are queued and written by a single goroutine. When the queue is
full the event is dropped and counted in Dropped.

# Tables

  - poll_event: one row per add_poll or select_option intent, with the
    resulting state version
*/
package archive
