// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidSessionID = errors.New("invalid session id")

// Longest session id accepted from clients
const maxSessionIDLen = 128

// GenerateSessionID creates a random secure token identifying one app session
func GenerateSessionID() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSessionID checks a client-supplied session id is usable as a key.
// Ids are opaque; only emptiness, length and printable ASCII are checked.
func ValidateSessionID(id string) error {
	if id == "" || len(id) > maxSessionIDLen {
		return ErrInvalidSessionID
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return ErrInvalidSessionID
		}
	}
	return nil
}

// HashSessionID creates a one-way hash of a session id for logs and the archive
// Includes salt so raw tokens cannot be recovered by brute force
func HashSessionID(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough to group events
	return hex.EncodeToString(sum[:8])
}
