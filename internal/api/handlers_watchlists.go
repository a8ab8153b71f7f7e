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

// CreateWatchlist creates a list owned by the caller. Lists default to
// public unless isPublic is explicitly false.
// POST /api/v1/watchlists
func (h *Handler) CreateWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.CreateWatchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.access.CreateWatchlist(r.Context(), caller, &req)
	if err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	metrics.WatchlistsCreated.Inc()
	respondJSON(w, r, http.StatusCreated, list, start)
}

// ListWatchlists returns every list the caller may see: their own plus
// all public lists.
// GET /api/v1/watchlists
func (h *Handler) ListWatchlists(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	lists, err := h.access.ListWatchlists(r.Context(), caller)
	if err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(lists, limit, offset), start)
}

// GetWatchlist returns one list. Private lists owned by someone else are
// reported as not found.
// GET /api/v1/watchlists/{id}
func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	list, err := h.access.GetWatchlist(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	respondJSON(w, r, http.StatusOK, list, start)
}

// UpdateWatchlist renames a list or toggles its visibility. Owner only.
// PATCH /api/v1/watchlists/{id}
func (h *Handler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	var req models.UpdateWatchlistRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	list, err := h.access.UpdateWatchlist(r.Context(), caller, chi.URLParam(r, "id"), &req)
	if err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	respondJSON(w, r, http.StatusOK, list, start)
}

// DeleteWatchlist removes a list and its memberships. Owner only.
// DELETE /api/v1/watchlists/{id}
func (h *Handler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	if err := h.access.DeleteWatchlist(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetWatchlistMovies returns the movies on a list, in the order they were
// added. Private lists owned by someone else are rejected rather than
// hidden because the list's existence was already confirmed.
// GET /api/v1/watchlists/{id}/movies
func (h *Handler) GetWatchlistMovies(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	movies, err := h.access.GetWatchlistMovies(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		respondAccessError(w, r, "watchlist", err)
		return
	}

	limit, offset := h.pageParams(r)
	respondJSON(w, r, http.StatusOK, listEnvelope(movies, limit, offset), start)
}
