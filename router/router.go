// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/handlers"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/session"
)

func NewRouter(registry *session.Registry, cfg cliparse.Config) http.Handler {
	api := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(registry, cfg)
	pollHandler := handlers.NewPollHandler(registry, cfg)
	resultsHandler := handlers.NewResultsHandler(registry, cfg)
	shareHandler := handlers.NewShareHandler(registry, cfg)
	streamHandler := handlers.NewStreamHandler(registry, cfg)

	// Health check
	api.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Sessions
	api.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.Create))
	api.HandleFunc("GET /sessions/me", middleware.WithLogging(sessionHandler.GetMe))
	api.HandleFunc("DELETE /sessions/me", middleware.WithLogging(sessionHandler.End))

	// Polls and voting
	api.HandleFunc("GET /polls", middleware.WithLogging(pollHandler.ListPolls))
	api.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	api.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	api.HandleFunc("POST /polls/{id}/selection", middleware.WithLogging(pollHandler.SelectOption))
	api.HandleFunc("GET /selections", middleware.WithLogging(pollHandler.GetSelections))

	// Results
	api.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	api.HandleFunc("GET /history", middleware.WithLogging(resultsHandler.GetHistory))

	// Sharing
	api.HandleFunc("GET /polls/{id}/share.png", middleware.WithLogging(shareHandler.GetShareImage))

	// Root endpoint
	api.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pollshare API v1"))
	})

	// The websocket needs the raw connection, so it stays outside gzip
	mux := http.NewServeMux()
	mux.Handle("/", middleware.Gzip(api))
	mux.HandleFunc("GET /ws", middleware.WithLogging(streamHandler.Stream))

	return middleware.CORS(cfg.CORSOrigins)(mux)
}
