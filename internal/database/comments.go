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

	"github.com/tomtom215/reelist/internal/models"
)

// CreateComment inserts a comment.
func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		INSERT INTO comments (id, user_id, movie_id, body, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := db.conn.ExecContext(ctx, query,
		comment.ID, comment.UserID, comment.MovieID, comment.Text, comment.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// GetCommentByID retrieves a comment by ID.
func (db *DB) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, movie_id, body, created_at
		FROM comments
		WHERE id = ?
	`

	var c models.Comment
	err := db.conn.QueryRowContext(ctx, query, id).Scan(
		&c.ID, &c.UserID, &c.MovieID, &c.Text, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("comment: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan comment: %w", err)
	}

	return &c, nil
}

// ListComments returns comments newest first, matching the given
// constraints. Empty strings leave a dimension unconstrained.
func (db *DB) ListComments(ctx context.Context, movieID, userID string) ([]models.Comment, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	query := `
		SELECT id, user_id, movie_id, body, created_at
		FROM comments
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
	query += " ORDER BY created_at DESC, id"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		var c models.Comment
		if err := rows.Scan(&c.ID, &c.UserID, &c.MovieID, &c.Text, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comments: %w", err)
	}

	return comments, nil
}

// DeleteComment removes a comment, scoped to its author.
func (db *DB) DeleteComment(ctx context.Context, id, userID string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM comments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return checkRowsAffected(result, "comment")
}
