// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Watchlist membership rows: the many-to-many link between watchlists and
// catalog movies.
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

// AddWatchlistMovie links a movie into a watchlist. Both referenced rows
// must exist; the existence checks run inside the same transaction as the
// insert so a concurrent watchlist delete cannot leave an orphan link.
// Returns ErrDuplicate when the movie is already in the watchlist.
func (db *DB) AddWatchlistMovie(ctx context.Context, wm *models.WatchlistMovie) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM watchlists WHERE id = ?)`, wm.WatchlistID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check watchlist existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("watchlist: %w", ErrNotFound)
	}

	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM movies WHERE id = ?)`, wm.MovieID).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check movie existence: %w", err)
	}
	if !exists {
		return fmt.Errorf("movie: %w", ErrNotFound)
	}

	start := time.Now()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO watchlist_movies (id, watchlist_id, movie_id, added_at)
		VALUES (?, ?, ?, ?)
	`, wm.ID, wm.WatchlistID, wm.MovieID, wm.AddedAt)
	metrics.RecordDBQuery("insert", "watchlist_movies", time.Since(start), err)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("movie already in watchlist: %w", ErrDuplicate)
		}
		return fmt.Errorf("failed to insert watchlist membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetWatchlistMovieByID retrieves a membership row by ID.
func (db *DB) GetWatchlistMovieByID(ctx context.Context, id string) (*models.WatchlistMovie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, watchlist_id, movie_id, added_at
		FROM watchlist_movies
		WHERE id = ?
	`

	var wm models.WatchlistMovie
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&wm.ID, &wm.WatchlistID, &wm.MovieID, &wm.AddedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("watchlist membership: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan watchlist membership: %w", err)
	}

	return &wm, nil
}

// ListWatchlistMemberships returns the membership rows of one watchlist in
// insertion order. A non-empty movieID narrows the result to rows linking
// that movie.
func (db *DB) ListWatchlistMemberships(ctx context.Context, watchlistID, movieID string) ([]models.WatchlistMovie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, watchlist_id, movie_id, added_at
		FROM watchlist_movies
		WHERE watchlist_id = ?
	`
	args := []interface{}{watchlistID}
	if movieID != "" {
		query += " AND movie_id = ?"
		args = append(args, movieID)
	}
	query += " ORDER BY added_at, id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist memberships: %w", err)
	}
	defer rows.Close()

	memberships := []models.WatchlistMovie{}
	for rows.Next() {
		var wm models.WatchlistMovie
		if err := rows.Scan(&wm.ID, &wm.WatchlistID, &wm.MovieID, &wm.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist membership: %w", err)
		}
		memberships = append(memberships, wm)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlist memberships: %w", err)
	}

	return memberships, nil
}

// ListWatchlistMovies returns the movies linked into one watchlist, in the
// order they were added.
func (db *DB) ListWatchlistMovies(ctx context.Context, watchlistID string) ([]models.Movie, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT m.id, m.title, m.external_id, m.created_at
		FROM watchlist_movies wm
		JOIN movies m ON m.id = wm.movie_id
		WHERE wm.watchlist_id = ?
		ORDER BY wm.added_at, wm.id
	`

	rows, err := db.conn.QueryContext(ctx, query, watchlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlist movies: %w", err)
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
		return nil, fmt.Errorf("error iterating watchlist movies: %w", err)
	}

	return movies, nil
}

// DeleteWatchlistMovie removes one membership row.
func (db *DB) DeleteWatchlistMovie(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx, `DELETE FROM watchlist_movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist membership: %w", err)
	}

	return checkRowsAffected(result, "watchlist membership")
}
