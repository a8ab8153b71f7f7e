// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"context"
	"errors"

	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/models"
)

// The two permission primitives every watchlist operation reduces to.
//
// visibleWatchlist answers "may this caller read the list", and hides
// private lists behind a not-found answer so probing IDs reveals nothing.
//
// ownedWatchlist answers "may this caller mutate the list". Here existence
// IS disclosed: a caller who finds someone else's list (because it is
// public, or was) gets a permission error, not a 404, matching the read
// semantics they already have.

// visibleWatchlist loads a watchlist the caller may read: their own, or any
// public one. A private list owned by someone else is indistinguishable
// from a missing one.
func (s *Service) visibleWatchlist(ctx context.Context, callerID, watchlistID string) (*models.Watchlist, error) {
	wl, err := s.db.GetWatchlistByID(ctx, watchlistID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newError(KindNotFound, "watchlist not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
	}

	if wl.OwnerID != callerID && !wl.IsPublic {
		return nil, newError(KindNotFound, "watchlist not found")
	}

	return wl, nil
}

// ownedWatchlist loads a watchlist the caller may mutate. Non-owners are
// refused with a permission error; only truly missing lists yield not
// found.
func (s *Service) ownedWatchlist(ctx context.Context, callerID, watchlistID string) (*models.Watchlist, error) {
	wl, err := s.db.GetWatchlistByID(ctx, watchlistID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, newError(KindNotFound, "watchlist not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load watchlist", err)
	}

	if wl.OwnerID != callerID {
		return nil, newError(KindPermissionDenied, "you do not own this watchlist")
	}

	return wl, nil
}
