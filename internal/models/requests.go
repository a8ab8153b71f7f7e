// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package models

import (
	"time"
)

// RegisterRequest creates a new account. Usernames are unique; registering
// an existing name fails with VALIDATION_ERROR.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64,username"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest exchanges credentials for a bearer token.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token. Clients send it back as
// "Authorization: Token <token>" on subsequent requests.
type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
}

// RegisterResponse returns the new account together with a freshly issued
// token, so clients are signed in without a follow-up login call.
type RegisterResponse struct {
	Token     string     `json:"token"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	UserID    string     `json:"user_id"`
	Username  string     `json:"username"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreateMovieRequest adds a movie to the shared catalog.
type CreateMovieRequest struct {
	Title      string `json:"title" validate:"required,max=255"`
	ExternalID int64  `json:"externalId" validate:"required,min=1"`
}

// CreateWatchlistRequest creates a watchlist owned by the caller. IsPublic
// defaults to true when omitted.
type CreateWatchlistRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	IsPublic *bool  `json:"isPublic"`
}

// UpdateWatchlistRequest modifies a watchlist. Nil fields are left
// unchanged. Ownership cannot be transferred.
type UpdateWatchlistRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=255"`
	IsPublic *bool   `json:"isPublic"`
}

// AddWatchlistMovieRequest links a movie into a watchlist. Both referenced
// resources must exist and the caller must own the watchlist.
type AddWatchlistMovieRequest struct {
	WatchlistID string `json:"watchlistId" validate:"required,uuid"`
	MovieID     string `json:"movieId" validate:"required,uuid"`
}

// CreateRatingRequest scores a movie 1 to 5. If the caller has already
// rated the movie the existing rating is updated in place.
type CreateRatingRequest struct {
	MovieID string `json:"movieId" validate:"required,uuid"`
	Value   int    `json:"value" validate:"required,min=1,max=5"`
}

// UpdateRatingRequest changes the score of an existing rating. The movie
// reference is fixed at creation and cannot be changed here.
type UpdateRatingRequest struct {
	Value int `json:"value" validate:"required,min=1,max=5"`
}

// CreateCommentRequest posts a comment on a movie.
type CreateCommentRequest struct {
	MovieID string `json:"movieId" validate:"required,uuid"`
	Text    string `json:"text" validate:"required,max=2000"`
}
