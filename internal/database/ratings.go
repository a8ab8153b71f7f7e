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

// UpsertRating inserts a rating, or updates the score in place when the
// user has already rated the movie. The UNIQUE(user_id, movie_id)
// constraint makes this race-safe: two concurrent raters settle on a
// single row. On conflict the original id and created_at are preserved.
//
// The rating passed in is updated to reflect the stored row.
func (db *DB) UpsertRating(ctx context.Context, rating *models.Rating) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO ratings (id, user_id, movie_id, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, movie_id)
		DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`

	start := time.Now()
	_, err := db.conn.ExecContext(ctx, query,
		rating.ID, rating.UserID, rating.MovieID, rating.Value,
		rating.CreatedAt, rating.UpdatedAt,
	)
	metrics.RecordDBQuery("upsert", "ratings", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	// Read back the stored row: on conflict the existing id and created_at
	// survive, not the ones the caller generated.
	stored, err := db.getRatingByUserAndMovie(ctx, rating.UserID, rating.MovieID)
	if err != nil {
		return err
	}
	*rating = *stored

	return nil
}

// GetRatingByID retrieves a rating by ID.
func (db *DB) GetRatingByID(ctx context.Context, id string) (*models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, movie_id, value, created_at, updated_at
		FROM ratings
		WHERE id = ?
	`

	return scanRating(db.conn.QueryRowContext(ctx, query, id))
}

func (db *DB) getRatingByUserAndMovie(ctx context.Context, userID, movieID string) (*models.Rating, error) {
	query := `
		SELECT id, user_id, movie_id, value, created_at, updated_at
		FROM ratings
		WHERE user_id = ? AND movie_id = ?
	`

	return scanRating(db.conn.QueryRowContext(ctx, query, userID, movieID))
}

// ListRatingsByUser returns a user's ratings, most recently updated first.
func (db *DB) ListRatingsByUser(ctx context.Context, userID string) ([]models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, movie_id, value, created_at, updated_at
		FROM ratings
		WHERE user_id = ?
		ORDER BY updated_at DESC, id
	`

	rows, err := db.conn.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// ListRatingsFiltered returns ratings matching the given constraints,
// most recently updated first. Empty strings leave a dimension
// unconstrained.
func (db *DB) ListRatingsFiltered(ctx context.Context, movieID, userID string) ([]models.Rating, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, movie_id, value, created_at, updated_at
		FROM ratings
		WHERE 1 = 1
	`
	args := []interface{}{}
	if movieID != "" {
		query += " AND movie_id = ?"
		args = append(args, movieID)
	}
	if userID != "" {
		query += " AND user_id = ?"
		args = append(args, userID)
	}
	query += " ORDER BY updated_at DESC, id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ratings: %w", err)
	}
	defer rows.Close()

	ratings := []models.Rating{}
	for rows.Next() {
		var r models.Rating
		if err := rows.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}
		ratings = append(ratings, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ratings: %w", err)
	}

	return ratings, nil
}

// UpdateRatingValue changes the score of an existing rating. The movie
// reference is immutable after creation, so only value and updated_at are
// written. Scoped to the owning user: a mismatched userID yields
// ErrNotFound rather than leaking another user's rating.
func (db *DB) UpdateRatingValue(ctx context.Context, id, userID string, value int, updatedAt time.Time) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		UPDATE ratings
		SET value = ?, updated_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := db.conn.ExecContext(ctx, query, value, updatedAt, id, userID)
	if err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}

	return checkRowsAffected(result, "rating")
}

// DeleteRating removes a rating, scoped to the owning user.
func (db *DB) DeleteRating(ctx context.Context, id, userID string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM ratings WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	return checkRowsAffected(result, "rating")
}

func scanRating(row *sql.Row) (*models.Rating, error) {
	var r models.Rating
	err := row.Scan(&r.ID, &r.UserID, &r.MovieID, &r.Value, &r.CreatedAt, &r.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("rating: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan rating: %w", err)
	}
	return &r, nil
}
