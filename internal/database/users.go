// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/reelist/internal/metrics"
	"github.com/tomtom215/reelist/internal/models"
)

// CreateUser inserts a new user. Returns ErrDuplicate when the username is
// already taken.
func (db *DB) CreateUser(ctx context.Context, user *models.User) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.CreatedAt,
	)
	metrics.RecordDBQuery("insert", "users", time.Since(start), err)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("username %q: %w", user.Username, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
func (db *DB) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE id = ?
	`

	return scanUser(db.conn.QueryRowContext(ctx, query, id))
}

// GetUserByUsername retrieves a user by username. Returns ErrNotFound if
// absent.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, username, password_hash, created_at
		FROM users
		WHERE username = ?
	`

	return scanUser(db.conn.QueryRowContext(ctx, query, username))
}

func scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
