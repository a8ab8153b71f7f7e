// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package metrics exposes Prometheus instrumentation for the HTTP API,
// the DuckDB layer, and the auth subsystem. All collectors are registered
// with the default registry via promauto and scraped at /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table"},
	)

	// API endpoint metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Auth metrics
	AuthLogins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_logins_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // "success", "failure"
	)

	AuthRegistrations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_registrations_total",
			Help: "Total number of accounts registered",
		},
	)

	AuthTokenValidations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auth_token_validations_total",
			Help: "Total number of bearer token validations",
		},
		[]string{"result"}, // "valid", "invalid"
	)

	AuthTokensRevoked = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_tokens_revoked_total",
			Help: "Total number of bearer tokens revoked",
		},
	)

	AuthExpiredTokensPurged = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auth_expired_tokens_purged_total",
			Help: "Total number of expired bearer tokens removed by the janitor",
		},
	)

	// Access control metrics
	AccessDenials = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "access_denials_total",
			Help: "Total number of operations rejected by access control",
		},
		[]string{"resource", "reason"}, // reason: "permission_denied", "not_found"
	)

	// Domain metrics
	WatchlistsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "watchlists_created_total",
			Help: "Total number of watchlists created",
		},
	)

	MoviesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movies_created_total",
			Help: "Total number of movie records created",
		},
	)

	RatingsUpserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ratings_upserted_total",
			Help: "Total number of ratings created or replaced",
		},
	)

	CommentsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_created_total",
			Help: "Total number of comments posted",
		},
	)
)

// RecordDBQuery records query duration and increments the error counter
// when err is non-nil.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordAPIRequest records a completed API request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest adjusts the in-flight request gauge.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRateLimitHit increments the rejection counter for an endpoint.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordLogin records a login attempt outcome.
func RecordLogin(success bool) {
	if success {
		AuthLogins.WithLabelValues("success").Inc()
	} else {
		AuthLogins.WithLabelValues("failure").Inc()
	}
}

// RecordTokenValidation records a bearer token validation outcome.
func RecordTokenValidation(valid bool) {
	if valid {
		AuthTokenValidations.WithLabelValues("valid").Inc()
	} else {
		AuthTokenValidations.WithLabelValues("invalid").Inc()
	}
}

// RecordAccessDenial records an access control rejection.
func RecordAccessDenial(resource, reason string) {
	AccessDenials.WithLabelValues(resource, reason).Inc()
}

// RecordExpiredTokensPurged adds the janitor's per-sweep removal count.
func RecordExpiredTokensPurged(n int64) {
	if n > 0 {
		AuthExpiredTokensPurged.Add(float64(n))
	}
}
