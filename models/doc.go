// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: question, options
  - SelectOptionRequest: option
  - IntentMessage: websocket intent (add_poll, select_option)

# Response Types

Types for JSON responses:

  - SessionResponse: session_id
  - SelectOptionResponse: poll_id, question, option
  - ResultsResponse: voted, created
  - PollDetailResponse: poll, selected_option
  - StateMessage: full websocket state push
  - ErrorResponse: error, message

# Domain Types

  - Poll: question with ordered options, immutable once created
  - PollRow: poll plus the session's selection (nil when not voted)
  - HistoryEntry: question plus selection, "None" when not voted
  - SessionInfo: per-session counters and timestamps
*/
package models
