// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Bearer token persistence. Plaintext tokens are never stored; the auth
// package hashes them before handing them to this layer.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelist/internal/models"
)

// CreateAuthToken persists an issued token record.
func (db *DB) CreateAuthToken(ctx context.Context, token *models.AuthToken) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO auth_tokens (id, user_id, token_hash, created_at, expires_at, last_used_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		token.ID, token.UserID, token.TokenHash, token.CreatedAt,
		token.ExpiresAt, token.LastUsedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert auth token: %w", err)
	}

	return nil
}

// GetAuthTokenByID retrieves a token record by its embedded ID. The token
// format carries the ID in plaintext so validation is a single indexed
// lookup plus one hash comparison.
func (db *DB) GetAuthTokenByID(ctx context.Context, id string) (*models.AuthToken, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, token_hash, created_at, expires_at, last_used_at
		FROM auth_tokens
		WHERE id = ?
	`

	var token models.AuthToken
	var expiresAt, lastUsedAt sql.NullTime

	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&token.ID, &token.UserID, &token.TokenHash,
		&token.CreatedAt, &expiresAt, &lastUsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("auth token: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan auth token: %w", err)
	}

	if expiresAt.Valid {
		token.ExpiresAt = &expiresAt.Time
	}
	if lastUsedAt.Valid {
		token.LastUsedAt = &lastUsedAt.Time
	}

	return &token, nil
}

// TouchAuthToken records when a token was last used. Best effort: callers
// treat failures as non-fatal.
func (db *DB) TouchAuthToken(ctx context.Context, id string, usedAt time.Time) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`UPDATE auth_tokens SET last_used_at = ? WHERE id = ?`, usedAt, id)
	if err != nil {
		return fmt.Errorf("failed to touch auth token: %w", err)
	}
	return nil
}

// DeleteAuthToken revokes a token by removing its record. Returns
// ErrNotFound when the token was already revoked or never existed.
func (db *DB) DeleteAuthToken(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM auth_tokens WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete auth token: %w", err)
	}

	return checkRowsAffected(result, "auth token")
}

// DeleteAuthTokensByUser revokes every token belonging to a user.
func (db *DB) DeleteAuthTokensByUser(ctx context.Context, userID string) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM auth_tokens WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete auth tokens for user: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

// DeleteExpiredAuthTokens removes every token past its expiry. Run
// periodically by the server's background janitor.
func (db *DB) DeleteExpiredAuthTokens(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE expires_at IS NOT NULL AND expires_at <= ?`, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired auth tokens: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}
