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

// CreateWatchlist inserts a new watchlist.
func (db *DB) CreateWatchlist(ctx context.Context, wl *models.Watchlist) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO watchlists (id, name, owner_id, is_public, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		wl.ID, wl.Name, wl.OwnerID, wl.IsPublic, wl.CreatedAt, wl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert watchlist: %w", err)
	}

	return nil
}

// GetWatchlistByID retrieves a watchlist by ID regardless of visibility.
// Visibility decisions belong to the access layer, not here.
func (db *DB) GetWatchlistByID(ctx context.Context, id string) (*models.Watchlist, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, name, owner_id, is_public, created_at, updated_at
		FROM watchlists
		WHERE id = ?
	`

	var wl models.Watchlist
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&wl.ID, &wl.Name, &wl.OwnerID, &wl.IsPublic, &wl.CreatedAt, &wl.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("watchlist: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan watchlist: %w", err)
	}

	return &wl, nil
}

// ListWatchlistsVisibleTo returns every watchlist the user may read: their
// own plus all public ones, in creation order.
func (db *DB) ListWatchlistsVisibleTo(ctx context.Context, userID string) ([]models.Watchlist, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, name, owner_id, is_public, created_at, updated_at
		FROM watchlists
		WHERE owner_id = ? OR is_public
		ORDER BY created_at, id
	`

	return db.queryWatchlists(ctx, query, userID)
}

func (db *DB) queryWatchlists(ctx context.Context, query string, args ...interface{}) ([]models.Watchlist, error) {
	start := time.Now()
	rows, err := db.conn.QueryContext(ctx, query, args...)
	metrics.RecordDBQuery("select", "watchlists", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("failed to query watchlists: %w", err)
	}
	defer rows.Close()

	lists := []models.Watchlist{}
	for rows.Next() {
		var wl models.Watchlist
		if err := rows.Scan(&wl.ID, &wl.Name, &wl.OwnerID, &wl.IsPublic, &wl.CreatedAt, &wl.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist: %w", err)
		}
		lists = append(lists, wl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating watchlists: %w", err)
	}

	return lists, nil
}

// UpdateWatchlist persists name and visibility changes. Ownership is fixed
// at creation and never written here.
func (db *DB) UpdateWatchlist(ctx context.Context, wl *models.Watchlist) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		UPDATE watchlists
		SET name = ?, is_public = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := db.conn.ExecContext(ctx, query, wl.Name, wl.IsPublic, wl.UpdatedAt, wl.ID)
	if err != nil {
		return fmt.Errorf("failed to update watchlist: %w", err)
	}

	return checkRowsAffected(result, "watchlist")
}

// DeleteWatchlist removes a watchlist and its membership rows in one
// transaction. DuckDB has no ON DELETE CASCADE, so the membership delete is
// explicit.
func (db *DB) DeleteWatchlist(ctx context.Context, id string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	if _, err := tx.ExecContext(ctx, `DELETE FROM watchlist_movies WHERE watchlist_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete watchlist memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM watchlists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist: %w", err)
	}
	if err := checkRowsAffected(result, "watchlist"); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
