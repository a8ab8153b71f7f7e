// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"net/http"

	"github.com/tomtom215/reelist/internal/access"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/metrics"
)

// respondAccessError maps access layer errors onto HTTP status codes and
// error codes. Unexpected errors are logged with their cause but surface
// to the client as an opaque 500.
func respondAccessError(w http.ResponseWriter, r *http.Request, resource string, err error) {
	reason := access.ReasonOf(err)

	switch access.KindOf(err) {
	case access.KindValidationFailed:
		respondError(w, r, http.StatusBadRequest, ErrCodeValidation, reason, nil)
	case access.KindUnauthenticated:
		respondError(w, r, http.StatusUnauthorized, ErrCodeAuthentication, reason, nil)
	case access.KindPermissionDenied:
		metrics.RecordAccessDenial(resource, "permission_denied")
		respondError(w, r, http.StatusForbidden, ErrCodeAuthorization, reason, nil)
	case access.KindNotFound:
		metrics.RecordAccessDenial(resource, "not_found")
		respondError(w, r, http.StatusNotFound, ErrCodeNotFound, reason, nil)
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("resource", resource).Msg("Request failed")
		respondError(w, r, http.StatusInternalServerError, ErrCodeInternal, "internal server error", nil)
	}
}
