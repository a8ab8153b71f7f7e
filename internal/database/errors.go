// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package database

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tomtom215/reelist/internal/logging"
)

// Sentinel errors returned by data access methods. Callers map these to the
// API error taxonomy; the database layer never decides HTTP status codes.
var (
	// ErrNotFound indicates the requested row does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a uniqueness constraint rejected the write,
	// e.g. registering a taken username or re-adding a movie to a watchlist.
	ErrDuplicate = errors.New("duplicate record")
)

// isUniqueViolation reports whether err is a DuckDB unique constraint
// failure. The driver exposes these only as text, so match the messages
// DuckDB emits for primary key and UNIQUE violations.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "primary key constraint")
}

// closeQuietly closes a resource and explicitly ignores any error. Use in
// error paths where Close() errors are not actionable.
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close() // Explicitly ignore error - cleanup is best-effort
	}
}

// rollbackQuietly rolls back a transaction, ignoring the ErrTxDone that
// follows a successful commit.
func rollbackQuietly(tx *sql.Tx) {
	if tx == nil {
		return
	}
	if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		logging.Warn().Err(err).Msg("Failed to roll back transaction")
	}
}

// checkRowsAffected verifies that at least one row was affected, returning
// ErrNotFound with context otherwise.
func checkRowsAffected(result sql.Result, resource string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", resource, ErrNotFound)
	}
	return nil
}
