// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package access implements the permission-aware service layer: every
// operation takes the caller's identity and decides what that caller may
// see or change before touching the store.
//
// The rules are ownership-based, not role-based:
//
//   - Watchlists are readable when public or owned, mutable only by their
//     owner. Private lists are reported as not found to everyone else.
//   - Ratings and comments are readable broadly but writable only by the
//     user who created them.
//   - The movie catalog is shared: any authenticated user may add to it
//     and read all of it.
//
// Failures are typed (see Error and Kind); the HTTP layer maps them to
// status codes without re-deriving any permission logic.
package access

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/models"
)

// Service exposes every domain operation, guarded by the caller's identity.
type Service struct {
	db  *database.DB
	now func() time.Time
}

// NewService creates a Service backed by db.
func NewService(db *database.DB) *Service {
	return &Service{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// CreateMovie adds a movie to the shared catalog, reusing an existing row
// when one already matches both title and external ID.
func (s *Service) CreateMovie(ctx context.Context, callerID string, req *models.CreateMovieRequest) (*models.Movie, bool, error) {
	if callerID == "" {
		return nil, false, newError(KindUnauthenticated, "authentication required")
	}

	movie, created, err := s.db.LookupOrCreateMovie(ctx, req.Title, req.ExternalID)
	if err != nil {
		return nil, false, wrapError(KindUnexpected, "failed to create movie", err)
	}
	return movie, created, nil
}

// GetMovie returns one catalog movie. The catalog has no per-row
// permissions, so any authenticated caller may read any movie.
func (s *Service) GetMovie(ctx context.Context, callerID, movieID string) (*models.Movie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	movie, err := s.db.GetMovieByID(ctx, movieID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "movie not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load movie", err)
	}
	return movie, nil
}

// ListMovies returns catalog movies, optionally filtered by external ID.
// The filter arrives as the raw query string value: a non-numeric value
// matches nothing and yields an empty list rather than an error, so
// clients wired to upstream catalogs can pass IDs through untrusted.
func (s *Service) ListMovies(ctx context.Context, callerID, externalIDFilter string) ([]models.Movie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	var filter *int64
	if externalIDFilter != "" {
		id, err := strconv.ParseInt(externalIDFilter, 10, 64)
		if err != nil {
			return []models.Movie{}, nil
		}
		filter = &id
	}

	movies, err := s.db.ListMovies(ctx, filter)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list movies", err)
	}
	return movies, nil
}

// isNotFound reports whether err is the store's missing-row sentinel.
func isNotFound(err error) bool {
	return errors.Is(err, database.ErrNotFound)
}

// isDuplicate reports whether err is the store's uniqueness sentinel.
func isDuplicate(err error) bool {
	return errors.Is(err, database.ErrDuplicate)
}

// newID returns a fresh UUID string.
func newID() string {
	return uuid.New().String()
}
