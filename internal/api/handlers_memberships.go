// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelist/internal/models"
)

// AddWatchlistMovie puts a movie on a list the caller owns.
// POST /api/v1/watchlist-movies
func (h *Handler) AddWatchlistMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.AddWatchlistMovieRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	entry, err := h.access.AddMovieToWatchlist(r.Context(), caller, &req)
	if err != nil {
		respondAccessError(w, r, "watchlist_movie", err)
		return
	}

	respondJSON(w, r, http.StatusCreated, entry, start)
}

// ListWatchlistMovies returns membership records across the lists the
// caller can see, optionally narrowed to one list and/or one movie. A
// filter naming an unknown or hidden list yields an empty result rather
// than an error.
// GET /api/v1/watchlist-movies?watchlistId=&movieId=
func (h *Handler) ListWatchlistMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	entries, err := h.access.ListMemberships(r.Context(), caller,
		r.URL.Query().Get("watchlistId"), r.URL.Query().Get("movieId"))
	if err != nil {
		respondAccessError(w, r, "watchlist_movie", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(entries, limit, offset), start)
}

// GetWatchlistMovie returns one membership record from a list the caller
// owns.
// GET /api/v1/watchlist-movies/{id}
func (h *Handler) GetWatchlistMovie(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	entry, err := h.access.GetMembership(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "watchlist_movie", err)
		return
	}

	respondJSON(w, r, http.StatusOK, entry, start)
}

// RemoveWatchlistMovie takes a movie off a list the caller owns.
// DELETE /api/v1/watchlist-movies/{id}
func (h *Handler) RemoveWatchlistMovie(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.access.RemoveMovieFromWatchlist(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondAccessError(w, r, "watchlist_movie", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
