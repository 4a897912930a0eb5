// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "pollshare API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	// 400 and 404 are valid handler responses; 405 means no route
	testCases := []struct {
		method string
		path   string
	}{
		{"GET", "/health"},
		{"GET", "/"},

		{"POST", "/sessions"},
		{"GET", "/sessions/me"},
		{"DELETE", "/sessions/me"},

		{"GET", "/polls"},
		{"POST", "/polls"},
		{"GET", "/polls/test-id"},
		{"POST", "/polls/test-id/selection"},
		{"GET", "/selections"},

		{"GET", "/results"},
		{"GET", "/history"},

		{"GET", "/polls/test-id/share.png"},
		{"GET", "/ws"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},
		{"PUT", "/polls/test-id/selection"},
		{"DELETE", "/polls/test-id"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())
	sid := testutil.NewTestSession(t, reg)
	poll := testutil.CreateTestPoll(t, reg, sid, "Color?", "Red", "Blue")

	t.Run("poll ID extraction", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/"+poll.ID, nil, testutil.SessionHeaders(sid))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
	})

	t.Run("share image", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/polls/"+poll.ID+"/share.png", nil, testutil.SessionHeaders(sid))
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %s", ct)
		}
	})
}

func TestEndToEndFlow(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/sessions", nil, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var sess models.SessionResponse
	testutil.AssertJSON(t, w, &sess)
	headers := testutil.SessionHeaders(sess.SessionID)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls",
		models.CreatePollRequest{Question: "Color?", Options: []string{"Red", "Blue"}}, headers))
	testutil.AssertStatus(t, w, http.StatusCreated)
	var poll models.Poll
	testutil.AssertJSON(t, w, &poll)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/polls/"+poll.ID+"/selection",
		models.SelectOptionRequest{Option: "Blue"}, headers))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/history", nil, headers))
	testutil.AssertStatus(t, w, http.StatusOK)
	var history []models.HistoryEntry
	testutil.AssertJSON(t, w, &history)
	if len(history) != 1 || history[0].Selection != "Blue" {
		t.Errorf("Unexpected history: %+v", history)
	}
}

func TestGzipOnJSONRoutes(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())
	sid := testutil.NewTestSession(t, reg)
	for i := 0; i < 50; i++ {
		testutil.CreateTestPoll(t, reg, sid, strings.Repeat("Long question text ", 5)+string(rune('A'+i%26)))
	}

	req := testutil.MakeRequest("GET", "/polls", nil, testutil.SessionHeaders(sid))
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Header().Get("Content-Encoding") != "gzip" {
		t.Fatalf("Expected gzip encoding, got %q", w.Header().Get("Content-Encoding"))
	}

	zr, err := gzip.NewReader(w.Body)
	if err != nil {
		t.Fatalf("Invalid gzip body: %v", err)
	}
	body, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("Failed to read gzip body: %v", err)
	}
	if !strings.Contains(string(body), "Long question text") {
		t.Error("Decompressed body missing poll data")
	}
}

func TestCORSPreflight(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	mux := NewRouter(reg, testutil.GetTestConfig())

	req := httptest.NewRequest("OPTIONS", "/polls", nil)
	req.Header.Set("Origin", "https://example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "X-Session-ID")
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Expected Access-Control-Allow-Origin on preflight")
	}
}

func TestWebsocketThroughRouter(t *testing.T) {
	reg := testutil.NewTestRegistry(t)
	server := httptest.NewServer(NewRouter(reg, testutil.GetTestConfig()))
	defer server.Close()

	sid := testutil.NewTestSession(t, reg)
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?session=" + sid

	header := http.Header{}
	header.Set("Accept-Encoding", "gzip")
	conn, _, err := websocket.DefaultDialer.Dial(url, header)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	var msg models.StateMessage
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("Failed to read initial state: %v", err)
	}
	if msg.Type != models.MessageState {
		t.Errorf("Expected state message, got %q", msg.Type)
	}
}
