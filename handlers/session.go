// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollshare/auth"
	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/session"
	"github.com/danielhkuo/pollshare/store"
)

const SessionHeader = "X-Session-ID"

type SessionHandler struct {
	registry *session.Registry
	cfg      cliparse.Config
}

func NewSessionHandler(registry *session.Registry, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{registry: registry, cfg: cfg}
}

// sessionID reads and validates the X-Session-ID header, writing a 400 on failure
func sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Session-ID header required")
		return "", false
	}
	if err := auth.ValidateSessionID(id); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid X-Session-ID header")
		return "", false
	}
	return id, true
}

// sessionStore returns the caller's store, creating the session on first use
func sessionStore(w http.ResponseWriter, r *http.Request, registry *session.Registry) (*store.Store, string, bool) {
	id, ok := sessionID(w, r)
	if !ok {
		return nil, "", false
	}
	return registry.Get(id), id, true
}

// Create handles POST /sessions
// Issues a fresh session id; the session itself is created on first use
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, err := auth.GenerateSessionID()
	if err != nil {
		slog.Error("failed to generate session id", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}
	h.registry.Get(id)

	slog.Info("session created", "session", auth.HashSessionID(id, h.cfg.SessionSalt))

	middleware.JSONResponse(w, http.StatusCreated, models.SessionResponse{
		SessionID: id,
	})
}

// GetMe handles GET /sessions/me
func (h *SessionHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	info, found := h.registry.Info(id)
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, info)
}

// End handles DELETE /sessions/me
// Discards the session's polls and selections
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	if !h.registry.End(id) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}

	slog.Info("session ended", "session", auth.HashSessionID(id, h.cfg.SessionSalt))
	w.WriteHeader(http.StatusNoContent)
}
