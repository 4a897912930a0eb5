// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package session keeps one poll store per client session. A session plays
// the role of a single app launch: it is created on first use, and its polls
// and selections are discarded when it ends or goes idle.
package session
