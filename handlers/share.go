// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/session"
	"github.com/danielhkuo/pollshare/share"
)

type ShareHandler struct {
	registry *session.Registry
	cfg      cliparse.Config
}

func NewShareHandler(registry *session.Registry, cfg cliparse.Config) *ShareHandler {
	return &ShareHandler{registry: registry, cfg: cfg}
}

// GetShareImage handles GET /polls/{id}/share.png
// Encodes the poll's question as a QR code. If encoding fails there is
// nothing to share: the response is 204 with no body.
func (h *ShareHandler) GetShareImage(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	size := h.cfg.QRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "size must be an integer")
			return
		}
		size = n
	}

	poll, found := st.State().Lookup(r.PathValue("id"))
	if !found {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}

	png, err := share.QRCode(poll.Question, size)
	if err != nil {
		slog.Warn("share image unavailable", "poll_id", poll.ID, "error", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", `inline; filename="poll-`+poll.ID+`.png"`)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		slog.Warn("failed to write share image", "poll_id", poll.ID, "error", err)
	}
}
