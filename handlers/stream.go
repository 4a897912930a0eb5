// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/pollshare/auth"
	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/form"
	"github.com/danielhkuo/pollshare/middleware"
	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/session"
	"github.com/danielhkuo/pollshare/store"
)

const (
	errQueueSize   = 16
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 64 * 1024
)

type StreamHandler struct {
	registry *session.Registry
	cfg      cliparse.Config
	upgrader websocket.Upgrader
}

func NewStreamHandler(registry *session.Registry, cfg cliparse.Config) *StreamHandler {
	return &StreamHandler{
		registry: registry,
		cfg:      cfg,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			// CORS does not cover websocket upgrades
			CheckOrigin: originChecker(cfg.CORSOrigins),
		},
	}
}

// originChecker accepts handshakes without an Origin header (non-browser
// clients) and browser handshakes from one of origins. "*" allows any.
func originChecker(origins []string) func(*http.Request) bool {
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[strings.ToLower(o)] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[strings.ToLower(origin)]
	}
}

// streamSessionID accepts the session from the header or, for browsers that
// cannot set headers on a websocket handshake, the session query parameter.
func streamSessionID(r *http.Request) (string, bool) {
	id := r.Header.Get(SessionHeader)
	if id == "" {
		id = r.URL.Query().Get("session")
	}
	if auth.ValidateSessionID(id) != nil {
		return "", false
	}
	return id, true
}

// pusher forwards store snapshots to one connection. Only the newest
// unsent snapshot is kept: a snapshot pushed before the writer took the
// previous one replaces it, so the client always ends on the current state.
type pusher struct {
	mu     sync.Mutex
	last   uint64
	queued bool
	latest []byte
	merged int

	ready chan struct{}
	errs  chan []byte
}

func newPusher() *pusher {
	return &pusher{
		ready: make(chan struct{}, 1),
		errs:  make(chan []byte, errQueueSize),
	}
}

func (p *pusher) push(st store.State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.queued && st.Version <= p.last {
		return
	}
	b, err := json.Marshal(BuildStateMessage(st))
	if err != nil {
		slog.Error("failed to encode state message", "error", err)
		return
	}
	if p.latest != nil {
		p.merged++
	}
	p.latest = b
	p.last = st.Version
	p.queued = true

	select {
	case p.ready <- struct{}{}:
	default:
	}
}

// take returns the pending snapshot, or nil when there is none.
func (p *pusher) take() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()

	b := p.latest
	p.latest = nil
	return b
}

func (p *pusher) sendError(msg string) {
	b, err := json.Marshal(models.ErrorMessage{Type: models.MessageError, Message: msg})
	if err != nil {
		return
	}
	select {
	case p.errs <- b:
	default:
	}
}

func (p *pusher) mergedCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.merged
}

// Stream handles GET /ws
// Pushes the session's state on connect and after every change, and
// accepts add_poll and select_option messages
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ok := streamSessionID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "valid session required")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response
		slog.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	st := h.registry.Get(id)
	hashed := auth.HashSessionID(id, h.cfg.SessionSalt)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	removeCloser, _ := h.registry.AddCloser(id, func() {
		cancel()
		_ = conn.Close()
	})
	defer removeCloser()

	p := newPusher()
	unsubscribe := st.Subscribe(func(ev store.Event) {
		p.push(ev.State)
	})
	defer unsubscribe()
	p.push(st.State())

	slog.Info("stream connected", "session", hashed)

	go h.writeLoop(ctx, cancel, conn, p)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg models.IntentMessage
		if err := conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
				p.sendError("invalid JSON")
				continue
			}
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				slog.Warn("stream read failed", "session", hashed, "error", err)
			}
			break
		}
		if errMsg := applyIntent(st, msg); errMsg != "" {
			p.sendError(errMsg)
		}
	}

	cancel()
	slog.Info("stream disconnected", "session", hashed, "merged", p.mergedCount())
}

func (h *StreamHandler) writeLoop(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, p *pusher) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	write := func(messageType int, b []byte) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(messageType, b); err != nil {
			cancel()
			return false
		}
		return true
	}

	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
				time.Now().Add(time.Second))
			return
		case <-p.ready:
			if b := p.take(); b != nil && !write(websocket.TextMessage, b) {
				return
			}
		case b := <-p.errs:
			if !write(websocket.TextMessage, b) {
				return
			}
		case <-ticker.C:
			if !write(websocket.PingMessage, nil) {
				return
			}
		}
	}
}

// applyIntent validates a client message and dispatches it. It returns a
// message for the client when the intent is rejected.
func applyIntent(st *store.Store, msg models.IntentMessage) string {
	switch msg.Type {
	case models.MessageAddPoll:
		draft, err := form.FromRequest(msg.Question, msg.Options)
		if err != nil {
			return err.Error()
		}
		if _, saved := draft.Save(st); !saved {
			return form.ErrCannotSave.Error()
		}
		return ""
	case models.MessageSelectOption:
		for _, p := range st.State().Polls {
			if p.Question == msg.Question && p.HasOption(msg.Option) {
				st.SelectOption(p.Question, msg.Option)
				return ""
			}
		}
		return "unknown poll or option"
	default:
		return "unknown message type"
	}
}
