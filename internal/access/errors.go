// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package access

import (
	"errors"
	"fmt"
)

// Kind classifies an access failure. The HTTP layer maps kinds to status
// codes; this package never sees status codes itself.
type Kind int

const (
	// KindUnexpected covers internal failures that should surface as 500s.
	KindUnexpected Kind = iota

	// KindValidationFailed covers malformed input and referential problems
	// the caller can fix: unknown movie IDs in a request body, duplicate
	// memberships, taken usernames.
	KindValidationFailed

	// KindUnauthenticated means no valid caller identity was presented.
	KindUnauthenticated

	// KindPermissionDenied means the caller is known but the operation is
	// reserved for someone else, typically the resource owner.
	KindPermissionDenied

	// KindNotFound means the resource doesn't exist, or exists but is
	// hidden from this caller. Private watchlists are reported as not
	// found to non-owners so their existence doesn't leak.
	KindNotFound
)

// String returns a stable label for the kind, used in logs.
func (k Kind) String() string {
	switch k {
	case KindValidationFailed:
		return "validation_failed"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindPermissionDenied:
		return "permission_denied"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is the failure type returned by every Service operation.
type Error struct {
	Kind   Kind
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
}

// Unwrap exposes the underlying cause for errors.Is chains.
func (e *Error) Unwrap() error {
	return e.Err
}

// newError builds an *Error without a cause.
func newError(kind Kind, reason string) *Error {
	return &Error{Kind: kind, Reason: reason}
}

// wrapError builds an *Error carrying its cause.
func wrapError(kind Kind, reason string, err error) *Error {
	return &Error{Kind: kind, Reason: reason, Err: err}
}

// KindOf extracts the Kind from err, or KindUnexpected when err is not an
// access error.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

// ReasonOf extracts the human-readable reason from err, falling back to a
// generic message for non-access errors so internals never leak to clients.
func ReasonOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Reason
	}
	return "internal error"
}
