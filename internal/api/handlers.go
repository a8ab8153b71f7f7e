// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelist/internal/access"
	"github.com/tomtom215/reelist/internal/auth"
	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/models"
	"github.com/tomtom215/reelist/internal/validation"
)

// maxBodyBytes caps request bodies. Watchlist payloads are tiny; anything
// larger is abuse.
const maxBodyBytes = 1 << 20

// Handler holds the services the HTTP endpoints delegate to.
type Handler struct {
	access *access.Service
	auth   *auth.Service
	db     *database.DB
	cfg    *config.Config
}

// NewHandler creates a handler backed by the given services.
func NewHandler(accessSvc *access.Service, authSvc *auth.Service, db *database.DB, cfg *config.Config) *Handler {
	return &Handler{
		access: accessSvc,
		auth:   authSvc,
		db:     db,
		cfg:    cfg,
	}
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. On failure it writes the error response and returns false.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, "invalid JSON body", nil)
		return false
	}

	if verr := validation.ValidateStruct(dst); verr != nil {
		apiErr := verr.ToAPIError()
		respondError(w, r, http.StatusBadRequest, apiErr.Code, apiErr.Message, apiErr.Details)
		return false
	}

	return true
}

// callerID resolves the authenticated subject from the request context.
// Handlers behind RequireAuth always have one; a missing subject means a
// routing mistake and is rejected.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub := auth.SubjectFromContext(r.Context())
	if sub == nil {
		respondError(w, r, http.StatusUnauthorized, ErrCodeAuthentication, "authentication required", nil)
		return "", false
	}
	return sub.UserID, true
}

// pageParams reads limit and offset query parameters, clamping them to
// the configured bounds. Malformed values fall back to the defaults.
func (h *Handler) pageParams(r *http.Request) (limit, offset int) {
	limit = h.cfg.API.DefaultPageSize

	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > h.cfg.API.MaxPageSize {
		limit = h.cfg.API.MaxPageSize
	}

	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			offset = n
		}
	}

	return limit, offset
}

// listEnvelope builds the standard collection payload. Total counts the
// full result set; Results holds the requested page.
func listEnvelope[T any](items []T, limit, offset int) models.ListResponse[T] {
	if items == nil {
		items = []T{}
	}

	total := len(items)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	return models.ListResponse[T]{
		Total:   total,
		Results: items[offset:end],
	}
}
