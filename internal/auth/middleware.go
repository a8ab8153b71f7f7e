// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package auth

import (
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/metrics"
	"github.com/tomtom215/reelist/internal/models"
)

// authFailureLogLimiter throttles failed-authentication warnings so a
// token-guessing flood can't drown the logs.
var authFailureLogLimiter = rate.NewLimiter(rate.Every(time.Second), 10)

// RequireAuth enforces authentication on every request it wraps. The
// resolved Subject is stored in the request context for handlers.
//
// Expected header: "Authorization: Token <value>". "Bearer" is accepted as
// an alias for clients that insist on the standard scheme.
func (s *Service) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		plaintext := ExtractBearerToken(r)
		if plaintext == "" && s.mode != config.AuthModeNone {
			unauthorized(w, "authentication required")
			return
		}

		sub, err := s.Authenticate(r.Context(), plaintext)
		if err != nil {
			metrics.RecordTokenValidation(false)
			if authFailureLogLimiter.Allow() {
				logging.Ctx(r.Context()).Warn().Err(err).Msg("Authentication failed")
			}
			unauthorized(w, "invalid or expired token")
			return
		}
		metrics.RecordTokenValidation(true)

		next.ServeHTTP(w, r.WithContext(ContextWithSubject(r.Context(), sub)))
	})
}

// ExtractBearerToken pulls the token out of the Authorization header.
// Returns "" when the header is missing or uses an unknown scheme.
func ExtractBearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return ""
	}

	switch strings.ToLower(parts[0]) {
	case "token", "bearer":
		return strings.TrimSpace(parts[1])
	default:
		return ""
	}
}

// unauthorized writes a 401 in the standard API envelope. Implemented here
// rather than reusing the api package helpers to keep auth free of an
// import cycle.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error: &models.APIError{
			Code:    "AUTHENTICATION_ERROR",
			Message: message,
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error response")
	}
}
