package models

import "time"

// Shown in history rows for polls without a selection
const NoSelection = "None"

// Websocket message types
const (
	MessageState        = "state"
	MessageError        = "error"
	MessageAddPoll      = "add_poll"
	MessageSelectOption = "select_option"
)

// Request types

type CreatePollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type SelectOptionRequest struct {
	Option string `json:"option"`
}

// Response types

type SelectOptionResponse struct {
	PollID   string `json:"poll_id"`
	Question string `json:"question"`
	Option   string `json:"option"`
}

type SessionResponse struct {
	SessionID string `json:"session_id"`
}

type ResultsResponse struct {
	Voted   []PollRow `json:"voted"`
	Created []PollRow `json:"created"`
}

type PollDetailResponse struct {
	Poll           Poll    `json:"poll"`
	SelectedOption *string `json:"selected_option"`
}

// Domain types

type Poll struct {
	ID       string   `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// HasOption reports whether opt is one of the poll's declared options.
func (p Poll) HasOption(opt string) bool {
	for _, o := range p.Options {
		if o == opt {
			return true
		}
	}
	return false
}

type PollRow struct {
	Poll           Poll    `json:"poll"`
	SelectedOption *string `json:"selected_option"`
}

type HistoryEntry struct {
	PollID    string `json:"poll_id"`
	Question  string `json:"question"`
	Selection string `json:"selection"`
}

type SessionInfo struct {
	PollCount  int       `json:"poll_count"`
	VotedCount int       `json:"voted_count"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// Websocket messages

type StateMessage struct {
	Type       string            `json:"type"`
	Version    uint64            `json:"version"`
	Polls      []Poll            `json:"polls"`
	Selections map[string]string `json:"selections"`
	Voted      []string          `json:"voted"`
	Created    []string          `json:"created"`
}

type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

type IntentMessage struct {
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
	Option   string   `json:"option,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
