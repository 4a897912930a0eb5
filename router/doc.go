// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the pollshare API.

# Route Registration

NewRouter builds the full handler tree for a session registry:

	handler := router.NewRouter(registry, cfg)

Every request except /health, / and POST /sessions identifies its
session with the X-Session-ID header.

# Endpoints

Health:

	GET /health

Sessions:

	POST   /sessions    - Issue a session id
	GET    /sessions/me - Poll and vote counts, timestamps
	DELETE /sessions/me - Discard the session

Polls:

	GET  /polls                - All polls in creation order
	POST /polls                - Create a poll (question + 2..10 options)
	GET  /polls/{id}           - Poll with its current selection
	POST /polls/{id}/selection - Vote for one of the poll's options
	GET  /selections           - Raw question to option map

Results:

	GET /results - Voted and created sections
	GET /history - Every poll with its selection or "None"

Sharing:

	GET /polls/{id}/share.png?size=N - QR code of the question

Live updates:

	GET /ws?session=ID - State pushed on every change

# Middleware

JSON routes are served through gzip. The websocket route is registered
on an outer mux so the upgrade sees the raw connection. CORS wraps
everything.
*/
package router
