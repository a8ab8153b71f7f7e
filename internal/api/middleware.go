// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/metrics"
)

// middlewareStack builds the CORS and rate limiting middleware from
// security configuration. Rate limiters key by client IP.
type middlewareStack struct {
	cfg  *config.SecurityConfig
	cors func(http.Handler) http.Handler
}

func newMiddlewareStack(cfg *config.SecurityConfig) *middlewareStack {
	corsHandler := cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
		MaxAge:         86400,
	})

	return &middlewareStack{
		cfg:  cfg,
		cors: corsHandler,
	}
}

// CORS returns the configured CORS handler.
func (m *middlewareStack) CORS() func(http.Handler) http.Handler {
	return m.cors
}

// RateLimit limits general API traffic per client IP.
func (m *middlewareStack) RateLimit() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return passthrough
	}
	return m.limiter(m.cfg.RateLimitReqs, m.cfg.RateLimitWindow)
}

// RateLimitLogin applies the much stricter login budget, defending
// against credential stuffing.
func (m *middlewareStack) RateLimitLogin() func(http.Handler) http.Handler {
	if m.cfg.RateLimitDisabled {
		return passthrough
	}
	return m.limiter(m.cfg.LoginRateLimitReqs, m.cfg.LoginRateLimitWindow)
}

func (m *middlewareStack) limiter(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordRateLimitHit(r.URL.Path)
			respondError(w, r, http.StatusTooManyRequests, ErrCodeRateLimit,
				"too many requests, slow down", nil)
		}),
	)
}

func passthrough(next http.Handler) http.Handler {
	return next
}
