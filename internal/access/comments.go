// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"context"

	"github.com/tomtom215/reelist/internal/models"
)

// CreateComment posts a comment on a movie. The movie must exist; comments
// themselves carry no visibility, every authenticated user can read them.
func (s *Service) CreateComment(ctx context.Context, callerID string, req *models.CreateCommentRequest) (*models.Comment, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	if _, err := s.db.GetMovieByID(ctx, req.MovieID); err != nil {
		if isNotFound(err) {
			return nil, newError(KindValidationFailed, "movie does not exist")
		}
		return nil, wrapError(KindUnexpected, "failed to load movie", err)
	}

	comment := &models.Comment{
		ID:        newID(),
		UserID:    callerID,
		MovieID:   req.MovieID,
		Text:      req.Text,
		CreatedAt: s.now(),
	}

	if err := s.db.CreateComment(ctx, comment); err != nil {
		return nil, wrapError(KindUnexpected, "failed to create comment", err)
	}
	return comment, nil
}

// ListComments returns comments newest first, optionally scoped to one
// movie and/or one author. Comments carry no visibility, so both filters
// are public views.
func (s *Service) ListComments(ctx context.Context, callerID, movieFilter, userFilter string) ([]models.Comment, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	comments, err := s.db.ListComments(ctx, movieFilter, userFilter)
	if err != nil {
		return nil, wrapError(KindUnexpected, "failed to list comments", err)
	}
	return comments, nil
}

// GetComment returns one comment. Readable by any authenticated user.
func (s *Service) GetComment(ctx context.Context, callerID, commentID string) (*models.Comment, error) {
	if callerID == "" {
		return nil, newError(KindUnauthenticated, "authentication required")
	}

	comment, err := s.db.GetCommentByID(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return nil, newError(KindNotFound, "comment not found")
		}
		return nil, wrapError(KindUnexpected, "failed to load comment", err)
	}
	return comment, nil
}

// DeleteComment removes a comment, author-only. Since comments are readable
// by everyone, a non-author caller gets a permission error rather than not
// found: the comment's existence was never secret.
func (s *Service) DeleteComment(ctx context.Context, callerID, commentID string) error {
	if callerID == "" {
		return newError(KindUnauthenticated, "authentication required")
	}

	comment, err := s.db.GetCommentByID(ctx, commentID)
	if err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "comment not found")
		}
		return wrapError(KindUnexpected, "failed to load comment", err)
	}
	if comment.UserID != callerID {
		return newError(KindPermissionDenied, "only the author can delete a comment")
	}

	if err := s.db.DeleteComment(ctx, commentID, callerID); err != nil {
		if isNotFound(err) {
			return newError(KindNotFound, "comment not found")
		}
		return wrapError(KindUnexpected, "failed to delete comment", err)
	}
	return nil
}
