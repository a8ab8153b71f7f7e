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

// CreateMovie adds a movie to the shared catalog. Submitting a title and
// external ID pair that already exists returns the existing record.
// POST /api/v1/movies
func (h *Handler) CreateMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.CreateMovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	movie, created, err := h.access.CreateMovie(r.Context(), caller, &req)
	if err != nil {
		respondAccessError(w, r, "movie", err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		metrics.MoviesCreated.Inc()
	}
	respondJSON(w, r, status, movie, start)
}

// ListMovies returns the catalog, optionally filtered by external ID.
// A non-numeric filter matches nothing.
// GET /api/v1/movies?externalId=42
func (h *Handler) ListMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	movies, err := h.access.ListMovies(r.Context(), caller, r.URL.Query().Get("externalId"))
	if err != nil {
		respondAccessError(w, r, "movie", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(movies, limit, offset), start)
}

// GetMovie returns a single catalog entry.
// GET /api/v1/movies/{id}
func (h *Handler) GetMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	movie, err := h.access.GetMovie(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "movie", err)
		return
	}

	respondJSON(w, r, http.StatusOK, movie, start)
}
