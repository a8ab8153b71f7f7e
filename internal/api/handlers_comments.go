// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelist/internal/metrics"
	"github.com/tomtom215/reelist/internal/models"
)

// CreateComment posts a comment on a movie.
// POST /api/v1/comments
func (h *Handler) CreateComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	comment, err := h.access.CreateComment(r.Context(), caller, &req)
	if err != nil {
		respondAccessError(w, r, "comment", err)
		return
	}

	metrics.CommentsCreated.Inc()
	respondJSON(w, r, http.StatusCreated, comment, start)
}

// ListComments returns comments across all users, newest first,
// optionally filtered to one movie and/or one author.
// GET /api/v1/comments?movieId=&userId=
func (h *Handler) ListComments(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	comments, err := h.access.ListComments(r.Context(), caller,
		r.URL.Query().Get("movieId"), r.URL.Query().Get("userId"))
	if err != nil {
		respondAccessError(w, r, "comment", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(comments, limit, offset), start)
}

// GetComment returns a single comment. Comments are readable by any
// authenticated user.
// GET /api/v1/comments/{id}
func (h *Handler) GetComment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	comment, err := h.access.GetComment(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "comment", err)
		return
	}

	respondJSON(w, r, http.StatusOK, comment, start)
}

// DeleteComment removes a comment. Author only.
// DELETE /api/v1/comments/{id}
func (h *Handler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.access.DeleteComment(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondAccessError(w, r, "comment", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
