// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollshare/auth"
	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/form"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/session"
)

type PollHandler struct {
	registry *session.Registry
	cfg      cliparse.Config
}

func NewPollHandler(registry *session.Registry, cfg cliparse.Config) *PollHandler {
	return &PollHandler{registry: registry, cfg: cfg}
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, st.State().Polls)
}

// CreatePoll handles POST /polls
// Runs the request through the creation form's gating before touching the store
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	st, id, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	draft, err := form.FromRequest(req.Question, req.Options)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	poll, saved := draft.Save(st)
	if !saved {
		middleware.ErrorResponse(w, http.StatusBadRequest, form.ErrCannotSave.Error())
		return
	}

	slog.Info("poll created",
		"poll_id", poll.ID,
		"options", len(poll.Options),
		"session", auth.HashSessionID(id, h.cfg.SessionSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, poll)
}

// GetPoll handles GET /polls/{id}
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	state := st.State()
	poll, found := state.Lookup(r.PathValue("id"))
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PollDetailResponse{
		Poll:           poll,
		SelectedOption: selectedOption(state, poll),
	})
}

// SelectOption handles POST /polls/{id}/selection
// Only the poll's declared options can be chosen; the vote is recorded
// against the poll's question
func (h *PollHandler) SelectOption(w http.ResponseWriter, r *http.Request) {
	st, id, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	var req models.SelectOptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Option == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option is required")
		return
	}

	poll, found := st.State().Lookup(r.PathValue("id"))
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if !poll.HasOption(req.Option) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "option is not part of this poll")
		return
	}

	st.SelectOption(poll.Question, req.Option)

	slog.Info("option selected",
		"poll_id", poll.ID,
		"session", auth.HashSessionID(id, h.cfg.SessionSalt),
	)

	middleware.JSONResponse(w, http.StatusOK, models.SelectOptionResponse{
		PollID:   poll.ID,
		Question: poll.Question,
		Option:   req.Option,
	})
}

// GetSelections handles GET /selections
// Returns the raw question -> option mapping
func (h *PollHandler) GetSelections(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, st.State().Selections)
}
