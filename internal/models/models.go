// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package models defines the domain entities and API payload types shared
// by the database, access, and HTTP layers.
package models

import (
	"time"
)

// User represents a registered account. The password hash never leaves the
// database layer and is excluded from JSON serialization.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Movie represents a film in the shared catalog. Movies are global: any
// authenticated user may add one, and every user references the same rows
// from their watchlists and ratings.
//
// ExternalID is the identifier in an upstream catalog (e.g. TMDB). It is
// deliberately NOT unique: two users importing the same film from different
// sources may create separate rows, and lookup-or-create matches on the
// (title, externalID) pair instead.
type Movie struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	ExternalID int64     `json:"externalId"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Watchlist represents a named collection of movies owned by a single user.
//
// Visibility rules:
//   - IsPublic true: readable by any authenticated user
//   - IsPublic false: readable only by the owner
//   - Mutations (update, delete, membership changes) are owner-only
//     regardless of visibility
type Watchlist struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	OwnerID   string    `json:"ownerId"`
	IsPublic  bool      `json:"isPublic"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WatchlistMovie is a membership row linking one movie into one watchlist.
// The (WatchlistID, MovieID) pair is unique per the store schema.
type WatchlistMovie struct {
	ID          string    `json:"id"`
	WatchlistID string    `json:"watchlistId"`
	MovieID     string    `json:"movieId"`
	AddedAt     time.Time `json:"addedAt"`
}

// Rating is one user's score for one movie, 1 to 5 inclusive. A user holds
// at most one rating per movie; re-rating updates the existing row in place
// and preserves CreatedAt.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Comment is a free-text remark on a movie, visible to all authenticated
// users and deletable only by its author.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	MovieID   string    `json:"movieId"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
