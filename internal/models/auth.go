// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package models

import (
	"time"
)

// AuthToken is a server-side record of an issued opaque bearer token.
//
// The plaintext token is shown to the client exactly once at login and is
// never stored: only a bcrypt hash of its SHA-256 digest is persisted.
// Deleting the row revokes the token immediately, which is the property
// stateless JWTs cannot offer.
type AuthToken struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	TokenHash  string     `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	LastUsedAt *time.Time `json:"last_used_at,omitempty"`
}

// IsExpired reports whether the token is past its expiry. Tokens with no
// expiry never expire.
func (t *AuthToken) IsExpired(now time.Time) bool {
	return t.ExpiresAt != nil && now.After(*t.ExpiresAt)
}
