// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/pollshare/auth"
	"github.com/danielhkuo/pollshare/cliparse"
	"github.com/danielhkuo/pollshare/models"
	"github.com/danielhkuo/pollshare/session"
)

// NewTestRegistry returns an empty registry with no hooks
func NewTestRegistry(t *testing.T) *session.Registry {
	t.Helper()
	return session.NewRegistry()
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		Env:          "test",
		DatabaseType: "sqlite",
		SessionSalt:  "test-session-salt",
		SessionTTL:   time.Hour,
		CORSOrigins:  []string{"*"},
		QRSize:       256,
	}
}

// NewTestSession generates a valid session id and registers it
func NewTestSession(t *testing.T, reg *session.Registry) string {
	t.Helper()

	id, err := auth.GenerateSessionID()
	if err != nil {
		t.Fatalf("Failed to generate session id: %v", err)
	}
	reg.Get(id)
	return id
}

// SessionHeaders returns the headers that identify a session
func SessionHeaders(id string) map[string]string {
	return map[string]string{"X-Session-ID": id}
}

// CreateTestPoll adds a poll directly to the session's store
func CreateTestPoll(t *testing.T, reg *session.Registry, sessionID, question string, options ...string) models.Poll {
	t.Helper()

	if len(options) == 0 {
		options = []string{"Yes", "No"}
	}
	return reg.Get(sessionID).AddPoll(question, options)
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
