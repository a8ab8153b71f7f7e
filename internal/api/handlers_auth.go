// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/reelist/internal/auth"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/metrics"
	"github.com/tomtom215/reelist/internal/models"
)

// Register creates a new account.
// POST /api/v1/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.auth.Register(r.Context(), &req)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameTaken) {
			respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "username is already taken", nil)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Registration failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
		return
	}

	metrics.AuthRegistrations.Inc()
	respondJSON(w, r, http.StatusCreated, resp, start)
}

// Login verifies credentials and issues a token.
// POST /api/v1/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := h.auth.Login(r.Context(), &req)
	if err != nil {
		metrics.RecordLogin(false)
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, r, http.StatusUnauthorized, ErrCodeAuthentication, "invalid username or password", nil)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Login failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
		return
	}

	metrics.RecordLogin(true)
	respondJSON(w, r, http.StatusOK, resp, start)
}

// Logout revokes the presented token.
// POST /api/v1/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	plaintext := auth.ExtractBearerToken(r)

	if err := h.auth.Logout(r.Context(), plaintext); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			respondError(w, r, http.StatusUnauthorized, ErrCodeAuthentication, "invalid or expired token", nil)
			return
		}
		logging.Ctx(r.Context()).Error().Err(err).Msg("Logout failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
		return
	}

	metrics.AuthTokensRevoked.Inc()
	w.WriteHeader(http.StatusNoContent)
}

// CurrentUser returns the authenticated caller's own account.
// GET /api/v1/users/me
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	caller, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.db.GetUserByID(r.Context(), caller)
	if err != nil {
		logging.Ctx(r.Context()).Error().Err(err).Str("user_id", caller).Msg("Failed to load current user")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
		return
	}

	respondJSON(w, r, http.StatusOK, user, start)
}
