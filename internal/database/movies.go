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

	"github.com/google/uuid"

	"github.com/tomtom215/reelist/internal/models"
)

// CreateMovie inserts a movie into the shared catalog.
func (db *DB) CreateMovie(ctx context.Context, movie *models.Movie) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO movies (id, title, external_id, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		movie.ID, movie.Title, movie.ExternalID, movie.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}

// GetMovieByID retrieves a movie by ID. Returns ErrNotFound if absent.
func (db *DB) GetMovieByID(ctx context.Context, id string) (*models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, title, external_id, created_at
		FROM movies
		WHERE id = ?
	`

	var movie models.Movie
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&movie.ID, &movie.Title, &movie.ExternalID, &movie.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("movie: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan movie: %w", err)
	}

	return &movie, nil
}

// ListMovies returns catalog movies, newest first. When externalID is
// non-nil only movies carrying that external catalog ID are returned;
// external_id is not unique so this can match several rows.
func (db *DB) ListMovies(ctx context.Context, externalID *int64) ([]models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, title, external_id, created_at
		FROM movies
	`
	var args []interface{}
	if externalID != nil {
		query += ` WHERE external_id = ?`
		args = append(args, *externalID)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var movie models.Movie
		if err := rows.Scan(&movie.ID, &movie.Title, &movie.ExternalID, &movie.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, movie)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating movies: %w", err)
	}

	return movies, nil
}

// LookupOrCreateMovie returns an existing movie matching both title and
// external ID, creating one if no such pair exists. Matching requires the
// full pair: the same external ID under a different title creates a new row.
//
// Runs in a transaction so concurrent callers with the same pair settle on
// one row rather than racing between the SELECT and the INSERT.
func (db *DB) LookupOrCreateMovie(ctx context.Context, title string, externalID int64) (*models.Movie, bool, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var movie models.Movie
	err = tx.QueryRowContext(ctx, `
		SELECT id, title, external_id, created_at
		FROM movies
		WHERE title = ? AND external_id = ?
		ORDER BY created_at
		LIMIT 1
	`, title, externalID).Scan(&movie.ID, &movie.Title, &movie.ExternalID, &movie.CreatedAt)

	switch {
	case err == nil:
		if err := tx.Commit(); err != nil {
			return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
		}
		return &movie, false, nil
	case errors.Is(err, sql.ErrNoRows):
		// Fall through to creation.
	default:
		return nil, false, fmt.Errorf("failed to look up movie: %w", err)
	}

	movie = models.Movie{
		ID:         uuid.New().String(),
		Title:      title,
		ExternalID: externalID,
		CreatedAt:  time.Now().UTC(),
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO movies (id, title, external_id, created_at)
		VALUES (?, ?, ?, ?)
	`, movie.ID, movie.Title, movie.ExternalID, movie.CreatedAt)
	if err != nil {
		return nil, false, fmt.Errorf("failed to insert movie: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, false, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return &movie, true, nil
}
