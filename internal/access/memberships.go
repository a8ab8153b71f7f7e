// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"context"

	"github.com/tomtom215/reelist/internal/models"
)

// AddMovieToWatchlist links a movie into a watchlist the caller owns.
//
// Failure ordering matters here: referential problems (unknown watchlist or
// movie) are validation failures because they concern the request body, not
// the URL. Ownership is checked only after both references resolve, and a
// duplicate link is also a validation failure since it is a request the
// client can simply stop repeating.
func (s *Service) AddMovieToWatchlist(ctx context.Context, callerID string, req *models.AddWatchlistMovieRequest) (*models.WatchlistMovie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	wl, err := s.db.GetWatchlistByID(ctx, req.WatchlistID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindValidationFailed, "watchlist does not exist")
		}
		return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
	}

	if _, err := s.db.GetMovieByID(ctx, req.MovieID); err != nil {
		if isNotFound(err) {
			return nil, newError(KindValidationFailed, "movie does not exist")
		}
		return nil, wrapError(KindUnexpected, "failed to load movie", err)
	}

	if wl.OwnerID != callerID {
		return nil, newError(KindPermissionDenied, "you do not own this watchlist")
	}

	wm := &models.WatchlistMovie{
		ID:          newID(),
		WatchlistID: req.WatchlistID,
		MovieID:     req.MovieID,
		AddedAt:     s.now(),
	}

	if err := s.db.AddWatchlistMovie(ctx, wm); err != nil {
		switch {
		case isDuplicate(err):
			return nil, newError(KindValidationFailed, "movie is already in this watchlist")
		case isNotFound(err):
			// Watchlist or movie vanished between the checks and the
			// insert's own transactional re-check.
			return nil, newError(KindValidationFailed, "watchlist or movie does not exist")
		default:
			return nil, wrapError(KindUnexpected, "failed to add movie to watchlist", err)
		}
	}

	return wm, nil
}

// ListMemberships returns membership rows, optionally narrowed by a
// watchlist and/or movie filter. Without a watchlist filter it covers
// every watchlist the caller may see, their own plus public ones. The
// watchlist filter fails to empty: an unknown ID or a private list the
// caller doesn't own yields an empty list, never an error, so the endpoint
// can't be used to probe hidden lists. An unknown movie filter likewise
// just matches nothing.
func (s *Service) ListMemberships(ctx context.Context, callerID, watchlistFilter, movieFilter string) ([]models.WatchlistMovie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	if watchlistFilter != "" {
		wl, err := s.db.GetWatchlistByID(ctx, watchlistFilter)
		if err != nil {
			if isNotFound(err) {
				return []models.WatchlistMovie{}, nil
			}
			return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
		}
		if wl.OwnerID != callerID && !wl.IsPublic {
			return []models.WatchlistMovie{}, nil
		}

		memberships, err := s.db.ListWatchlistMemberships(ctx, watchlistFilter, movieFilter)
		if err != nil {
			return nil, wrapError(KindUnexpected, "failed to list memberships", err)
		}
		return memberships, nil
	}

	visible, err := s.db.ListWatchlistsVisibleTo(ctx, callerID)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list watchlists", err)
	}

	memberships := []models.WatchlistMovie{}
	for _, wl := range visible {
		rows, err := s.db.ListWatchlistMemberships(ctx, wl.ID, movieFilter)
		if err != nil {
			return nil, wrapError(KindUnexpected, "failed to list memberships", err)
		}
		memberships = append(memberships, rows...)
	}
	return memberships, nil
}

// GetMembership returns one membership row if the parent watchlist is
// visible to the caller; anything else is not found.
func (s *Service) GetMembership(ctx context.Context, callerID, membershipID string) (*models.WatchlistMovie, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	wm, err := s.db.GetWatchlistMovieByID(ctx, membershipID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "watchlist membership not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load membership", err)
	}

	wl, err := s.db.GetWatchlistByID(ctx, wm.WatchlistID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "watchlist membership not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
	}
	if wl.OwnerID != callerID && !wl.IsPublic {
		return nil, newError(KindNotFound, "watchlist membership not found")
	}

	return wm, nil
}

// RemoveMovieFromWatchlist deletes a membership row, owner-only. The row
// itself names no owner; authority flows from the parent watchlist.
func (s *Service) RemoveMovieFromWatchlist(ctx context.Context, callerID, membershipID string) error {
	if callerID == "" {
		return newError(KindUnauthenticated, "authentication required")
	}

	wm, err := s.db.GetWatchlistMovieByID(ctx, membershipID)
	if err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "watchlist membership not found")
		}
		return wrapError(KindUnexpected, "failed to load membership", err)
	}

	wl, err := s.db.GetWatchlistByID(ctx, wm.WatchlistID)
	if err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "watchlist membership not found")
		}
		return wrapError(KindUnexpected, "failed to load watchlist", err)
	}
	if wl.OwnerID != callerID {
		return newError(KindPermissionDenied, "you do not own this watchlist")
	}

	if err := s.db.DeleteWatchlistMovie(ctx, membershipID); err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "watchlist membership not found")
		}
		return wrapError(KindUnexpected, "failed to remove movie from watchlist", err)
	}
	return nil
}
