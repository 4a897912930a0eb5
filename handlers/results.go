// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/session"
	"github.com/danielhkuo/pollshare/store"
)

type ResultsHandler struct {
	registry *session.Registry
	cfg      cliparse.Config
}

func NewResultsHandler(registry *session.Registry, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{registry: registry, cfg: cfg}
}

// GetResults handles GET /results
// Splits polls into voted and created sections
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, BuildResults(st.State()))
}

// GetHistory handles GET /history
func (h *ResultsHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	st, _, ok := sessionStore(w, r, h.registry)
	if !ok {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, BuildHistory(st.State()))
}

func BuildResults(st store.State) models.ResultsResponse {
	voted, created := st.Partition()
	return models.ResultsResponse{
		Voted:   pollRows(st, voted),
		Created: pollRows(st, created),
	}
}

// BuildHistory lists every poll in creation order with its selection,
// or "None" when the poll has not been voted on.
func BuildHistory(st store.State) []models.HistoryEntry {
	entries := make([]models.HistoryEntry, 0, len(st.Polls))
	for _, p := range st.Polls {
		selection, ok := st.Selected(p)
		if !ok {
			selection = models.NoSelection
		}
		entries = append(entries, models.HistoryEntry{
			PollID:    p.ID,
			Question:  p.Question,
			Selection: selection,
		})
	}
	return entries
}

// BuildStateMessage renders the full state pushed to websocket clients.
func BuildStateMessage(st store.State) models.StateMessage {
	voted, created := st.Partition()
	return models.StateMessage{
		Type:       models.MessageState,
		Version:    st.Version,
		Polls:      st.Polls,
		Selections: st.Selections,
		Voted:      pollIDs(voted),
		Created:    pollIDs(created),
	}
}

func pollRows(st store.State, polls []models.Poll) []models.PollRow {
	rows := make([]models.PollRow, 0, len(polls))
	for _, p := range polls {
		rows = append(rows, models.PollRow{
			Poll:           p,
			SelectedOption: selectedOption(st, p),
		})
	}
	return rows
}

func selectedOption(st store.State, p models.Poll) *string {
	opt, ok := st.Selected(p)
	if !ok {
		return nil
	}
	return &opt
}

func pollIDs(polls []models.Poll) []string {
	ids := make([]string, 0, len(polls))
	for _, p := range polls {
		ids = append(ids, p.ID)
	}
	return ids
}
