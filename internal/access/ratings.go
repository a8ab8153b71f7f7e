// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"context"

	"github.com/tomtom215/reelist/internal/models"
)

// RateMovie records the caller's score for a movie. If the caller has
// already rated it, the existing rating is updated in place: the id and
// created_at survive, only the value and updated_at change. There is no
// way to hold two ratings for one movie.
func (s *Service) RateMovie(ctx context.Context, callerID string, req *models.CreateRatingRequest) (*models.Rating, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	if _, err := s.db.GetMovieByID(ctx, req.MovieID); err != nil {
		if isNotFound(err) {
			return nil, newError(KindValidationFailed, "movie does not exist")
		}
		return nil, wrapError(KindUnexpected, "failed to load movie", err)
	}

	now := s.now()
	rating := &models.Rating{
		ID:        newID(),
		UserID:    callerID,
		MovieID:   req.MovieID,
		Value:     req.Value,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.db.UpsertRating(ctx, rating); err != nil {
		return nil, wrapError(KindUnexpected, "failed to save rating", err)
	}
	return rating, nil
}

// ListRatings returns ratings. With no filters it covers only the
// caller's own rows. An explicit movie or user filter turns the listing
// into a public view: ratings are not secret, only the unfiltered "my
// ratings" default is scoped to the caller.
func (s *Service) ListRatings(ctx context.Context, callerID, movieFilter, userFilter string) ([]models.Rating, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	if movieFilter == "" && userFilter == "" {
		ratings, err := s.db.ListRatingsByUser(ctx, callerID)
		if err != nil {
			return nil, wrapError(KindUnexpected, "failed to list ratings", err)
		}
		return ratings, nil
	}

	ratings, err := s.db.ListRatingsFiltered(ctx, movieFilter, userFilter)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list ratings", err)
	}
	return ratings, nil
}

// GetRating returns one of the caller's ratings. Ratings belonging to other
// users are reported as not found, the same answer as for a missing ID.
func (s *Service) GetRating(ctx context.Context, callerID, ratingID string) (*models.Rating, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	rating, err := s.db.GetRatingByID(ctx, ratingID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "rating not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load rating", err)
	}
	if rating.UserID != callerID {
		return nil, newError(KindNotFound, "rating not found")
	}

	return rating, nil
}

// UpdateRating changes the score of one of the caller's ratings. The movie
// reference is immutable after creation. Foreign ratings are not found.
func (s *Service) UpdateRating(ctx context.Context, callerID, ratingID string, req *models.UpdateRatingRequest) (*models.Rating, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	if err := s.db.UpdateRatingValue(ctx, ratingID, callerID, req.Value, s.now()); err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "rating not found")
		}
		return nil, wrapError(KindUnexpected, "failed to update rating", err)
	}

	rating, err := s.db.GetRatingByID(ctx, ratingID)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to load rating", err)
	}
	return rating, nil
}

// DeleteRating removes one of the caller's ratings. Foreign ratings are not
// found.
func (s *Service) DeleteRating(ctx context.Context, callerID, ratingID string) error {
	if callerID == "" {
		return newError(KindUnauthenticated, "authentication required")
	}

	if err := s.db.DeleteRating(ctx, ratingID, callerID); err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "rating not found")
		}
		return wrapError(KindUnexpected, "failed to delete rating", err)
	}
	return nil
}
