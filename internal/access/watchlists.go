// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"context"

	"github.com/tomtom215/reelist/internal/models"
)

// CreateWatchlist creates a watchlist owned by the caller. Ownership is
// forced server-side: there is no way to create a list for someone else.
// Visibility defaults to public when the request omits it.
func (s *Service) CreateWatchlist(ctx context.Context, callerID string, req *models.CreateWatchlistRequest) (*models.Watchlist, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	now := s.now()
	wl := &models.Watchlist{
		ID:        newID(),
		Name:      req.Name,
		OwnerID:   callerID,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.CreateWatchlist(ctx, wl); err != nil {
		return nil, wrapError(KindUnexpected, "failed to create watchlist", err)
	}
	return wl, nil
}

// ListWatchlists returns every watchlist the caller may read: their own
// plus all public ones.
func (s *Service) ListWatchlists(ctx context.Context, callerID string) ([]models.Watchlist, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	lists, err := s.db.ListWatchlistsVisibleTo(ctx, callerID)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list watchlists", err)
	}
	return lists, nil
}

// GetWatchlist returns one watchlist if the caller may read it. Private
// lists owned by others are reported as not found.
func (s *Service) GetWatchlist(ctx context.Context, callerID, watchlistID string) (*models.Watchlist, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	return s.visibleWatchlist(ctx, callerID, watchlistID)
}

// UpdateWatchlist applies name and visibility changes, owner-only. Nil
// request fields leave the current value untouched, so flipping visibility
// doesn't require resending the name.
func (s *Service) UpdateWatchlist(ctx context.Context, callerID, watchlistID string, req *models.UpdateWatchlistRequest) (*models.Watchlist, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	wl, err := s.ownedWatchlist(ctx, callerID, watchlistID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		wl.Name = *req.Name
	}
	if req.IsPublic != nil {
		wl.IsPublic = *req.IsPublic
	}
	wl.UpdatedAt = s.now()

	if err := s.db.UpdateWatchlist(ctx, wl); err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "watchlist not found")
		}
		return nil, wrapError(KindUnexpected, "failed to update watchlist", err)
	}
	return wl, nil
}

// DeleteWatchlist removes a watchlist and its memberships, owner-only.
func (s *Service) DeleteWatchlist(ctx context.Context, callerID, watchlistID string) error {
	if callerID == "" {
		return newError(KindUnauthenticated, "authentication required")
	}

	if _, err := s.ownedWatchlist(ctx, callerID, watchlistID); err != nil {
		return err
	}

	if err := s.db.DeleteWatchlist(ctx, watchlistID); err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "watchlist not found")
		}
		return wrapError(KindUnexpected, "failed to delete watchlist", err)
	}
	return nil
}

// GetWatchlistMovies returns the movies in a watchlist. Unlike GetWatchlist
// this distinguishes the two refusal cases: a missing list is not found,
// while a private list owned by someone else is a permission error. The
// list's existence is already discoverable through its owner sharing the
// URL, so there is nothing left to hide.
func (s *Service) GetWatchlistMovies(ctx context.Context, callerID, watchlistID string) ([]models.Movie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	wl, err := s.db.GetWatchlistByID(ctx, watchlistID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "watchlist not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
	}

	if wl.OwnerID != callerID && !wl.IsPublic {
		return nil, newError(KindPermissionDenied, "this watchlist is private")
	}

	movies, err := s.db.ListWatchlistMovies(ctx, watchlistID)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list watchlist movies", err)
	}
	return movies, nil
}
