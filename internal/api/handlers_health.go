// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"
	"time"
)

// healthStatus is the payload for the health endpoints.
type healthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Version  int    `json:"schemaVersion,omitempty"`
}

// Health reports readiness, including database connectivity.
// GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	status := healthStatus{Status: "ok", Database: "ok"}
	code := http.StatusOK

	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "degraded"
		status.Database = "unreachable"
		code = http.StatusServiceUnavailable
	} else if version, err := h.db.GetCurrentSchemaVersion(); err == nil {
		status.Version = version
	}

	respondJSON(w, r, code, status, start)
}

// HealthLive reports process liveness only. It never touches the database
// so orchestrators won't restart the process over a slow query.
// GET /api/v1/health/live
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, healthStatus{Status: "ok"}, time.Now())
}

// HealthReady reports whether the service can take traffic, which for this
// service means the database answers.
// GET /api/v1/health/ready
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	if err := h.db.Ping(r.Context()); err != nil {
		respondJSON(w, r, http.StatusServiceUnavailable,
			healthStatus{Status: "degraded", Database: "unreachable"}, start)
		return
	}
	respondJSON(w, r, http.StatusOK, healthStatus{Status: "ok", Database: "ok"}, start)
}
