// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package database

import (
	"fmt"
)

// Schema notes:
//
//   - IDs are UUID strings generated in Go, not database sequences.
//   - movies.external_id is intentionally NOT unique: separate imports of
//     the same film may create distinct rows, matched on (title, external_id)
//     by lookup-or-create.
//   - DuckDB has no ON DELETE CASCADE. Watchlist deletion removes membership
//     rows in the same transaction (see DeleteWatchlist).
//   - UNIQUE(watchlist_id, movie_id) and UNIQUE(user_id, movie_id) are the
//     store-level backstop for duplicate memberships and ratings under
//     concurrent writers.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id VARCHAR PRIMARY KEY,
		username VARCHAR NOT NULL UNIQUE,
		password_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS auth_tokens (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		token_hash VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		expires_at TIMESTAMP,
		last_used_at TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS movies (
		id VARCHAR PRIMARY KEY,
		title VARCHAR NOT NULL,
		external_id BIGINT NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS watchlists (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		owner_id VARCHAR NOT NULL,
		is_public BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,

	`CREATE TABLE IF NOT EXISTS watchlist_movies (
		id VARCHAR PRIMARY KEY,
		watchlist_id VARCHAR NOT NULL,
		movie_id VARCHAR NOT NULL,
		added_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (watchlist_id, movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS ratings (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		movie_id VARCHAR NOT NULL,
		value INTEGER NOT NULL CHECK (value BETWEEN 1 AND 5),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, movie_id)
	)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id VARCHAR PRIMARY KEY,
		user_id VARCHAR NOT NULL,
		movie_id VARCHAR NOT NULL,
		body VARCHAR NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

// indexStatements covers the hot lookup paths: token validation, visibility
// filtering, membership listing, and per-user rating queries.
var indexStatements = []string{
	`CREATE INDEX IF NOT EXISTS idx_auth_tokens_user ON auth_tokens (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_movies_external ON movies (external_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlists_owner ON watchlists (owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlists_public ON watchlists (is_public)`,
	`CREATE INDEX IF NOT EXISTS idx_watchlist_movies_list ON watchlist_movies (watchlist_id)`,
	`CREATE INDEX IF NOT EXISTS idx_ratings_user ON ratings (user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_movie ON comments (movie_id)`,
}

// createTables creates all application tables if they don't exist.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// createIndexes creates all application indexes if they don't exist.
func (db *DB) createIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, stmt := range indexStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}
	return nil
}
