// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers implements the HTTP and websocket handlers for pollshare.

# Handler Types

Each handler groups related endpoints:

	SessionHandler - Issue, inspect and end sessions
	PollHandler    - Create polls, list them, vote
	ResultsHandler - Voted/created sections and history
	ShareHandler   - QR code image of a poll's question
	StreamHandler  - Live state over a websocket

All handlers take the session registry and configuration:

	handler := handlers.NewPollHandler(registry, cfg)

# Sessions

Requests identify their session with the X-Session-ID header. The
websocket endpoint also accepts ?session= because browsers cannot set
headers on the handshake. An unknown but well-formed id starts a new,
empty session.

Session ids are never logged; logs carry an HMAC of the id keyed by
the configured salt.

# Poll Creation

POST /polls and the add_poll websocket message both replay the request
through form.FromRequest, so the API enforces the same rules as the
interactive form: a non-empty question and 2 to 10 distinct, non-empty
options.

# Votes

A vote is recorded against the poll's question. Polls that share a
question therefore share a selection.

# Live Updates

StreamHandler subscribes to the session's store and pushes a full state
message after every change, in version order. Slow clients skip
intermediate states rather than block the store.

	{"type":"state","version":3,"polls":[...],"selections":{...},"voted":[...],"created":[...]}

Clients send intents:

	{"type":"add_poll","question":"Color?","options":["Red","Blue"]}
	{"type":"select_option","question":"Color?","option":"Red"}

Rejected intents get {"type":"error","message":"..."}.

# Response Formats

Success responses return JSON with 200 or 201. Errors use:

	{"error": "Bad Request", "message": "option is not part of this poll"}

The share image is image/png, or 204 with no body when the question
cannot be encoded.
*/
package handlers
