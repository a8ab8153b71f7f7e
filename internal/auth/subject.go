// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package auth

import (
	"context"
)

// Subject is the authenticated caller identity carried through request
// context to the access layer.
type Subject struct {
	UserID   string
	Username string
}

type contextKey string

// SubjectContextKey is the context key under which the middleware stores
// the authenticated Subject.
const SubjectContextKey contextKey = "subject"

// ContextWithSubject attaches the subject to the context.
func ContextWithSubject(ctx context.Context, sub *Subject) context.Context {
	return context.WithValue(ctx, SubjectContextKey, sub)
}

// SubjectFromContext extracts the authenticated subject, or nil when the
// request was not authenticated.
func SubjectFromContext(ctx context.Context) *Subject {
	sub, _ := ctx.Value(SubjectContextKey).(*Subject)
	return sub
}
