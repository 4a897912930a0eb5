// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides session identifier generation and hashing.

# Session IDs

Session ids are random 24-byte (192-bit) secrets:

	id, err := auth.GenerateSessionID()

They are URL-safe base64 encoded. Clients may also bring their own id
(a device UUID, for example); ValidateSessionID accepts any printable
ASCII string up to 128 bytes.

# Hashing

Raw session ids never reach logs or the archive:

	hash := auth.HashSessionID(id, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
