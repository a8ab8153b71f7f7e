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

// CreateRating records the caller's score for a movie. Rating a movie the
// caller has already rated replaces the previous score.
// POST /api/v1/ratings
func (h *Handler) CreateRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.CreateRatingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rating, err := h.access.RateMovie(r.Context(), caller, &req)
	if err != nil {
		respondAccessError(w, r, "rating", err)
		return
	}

	metrics.RatingsUpserted.Inc()
	respondJSON(w, r, http.StatusCreated, rating, start)
}

// ListRatings returns the caller's own ratings, or a public view when an
// explicit movieId or userId filter is given.
// GET /api/v1/ratings?movieId=&userId=
func (h *Handler) ListRatings(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	movieFilter := r.URL.Query().Get("movieId")
	userFilter := r.URL.Query().Get("userId")
	ratings, err := h.access.ListRatings(r.Context(), caller, movieFilter, userFilter)
	if err != nil {
		respondAccessError(w, r, "rating", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(ratings, limit, offset), start)
}

// GetRating returns one of the caller's ratings. Other users' ratings are
// reported as not found.
// GET /api/v1/ratings/{id}
func (h *Handler) GetRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	rating, err := h.access.GetRating(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "rating", err)
		return
	}

	respondJSON(w, r, http.StatusOK, rating, start)
}

// UpdateRating changes the score on one of the caller's ratings.
// PATCH /api/v1/ratings/{id}
func (h *Handler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.UpdateRatingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	rating, err := h.access.UpdateRating(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondAccessError(w, r, "rating", err)
		return
	}

	respondJSON(w, r, http.StatusOK, rating, start)
}

// DeleteRating removes one of the caller's ratings.
// DELETE /api/v1/ratings/{id}
func (h *Handler) DeleteRating(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.access.DeleteRating(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondAccessError(w, r, "rating", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
