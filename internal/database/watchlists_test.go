// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/reelist/internal/models"
)

func TestListWatchlistsVisibleTo(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestWatchlist(t, db, alice.ID, "alice private", false)
	createTestWatchlist(t, db, alice.ID, "alice public", true)
	createTestWatchlist(t, db, bob.ID, "bob private", false)
	createTestWatchlist(t, db, bob.ID, "bob public", true)

	visible, err := db.ListWatchlistsVisibleTo(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListWatchlistsVisibleTo failed: %v", err)
	}
	// Alice sees her own two plus Bob's public one.
	if len(visible) != 3 {
		t.Fatalf("expected 3 visible watchlists, got %d", len(visible))
	}
	for _, wl := range visible {
		if wl.OwnerID != alice.ID && !wl.IsPublic {
			t.Errorf("watchlist %q is neither owned nor public", wl.Name)
		}
	}
}

func TestUpdateWatchlist(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	wl := createTestWatchlist(t, db, alice.ID, "old name", true)

	wl.Name = "new name"
	wl.IsPublic = false
	wl.UpdatedAt = time.Now().UTC()
	if err := db.UpdateWatchlist(ctx, wl); err != nil {
		t.Fatalf("UpdateWatchlist failed: %v", err)
	}

	loaded, err := db.GetWatchlistByID(ctx, wl.ID)
	if err != nil {
		t.Fatalf("GetWatchlistByID failed: %v", err)
	}
	if loaded.Name != "new name" || loaded.IsPublic {
		t.Errorf("update not persisted: %+v", loaded)
	}
}

func TestDeleteWatchlistCascadesMemberships(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	wl := createTestWatchlist(t, db, alice.ID, "weekend", true)
	movie := createTestMovie(t, db, "Heat", 949)

	wm := &models.WatchlistMovie{
		ID:          uuid.New().String(),
		WatchlistID: wl.ID,
		MovieID:     movie.ID,
		AddedAt:     time.Now().UTC(),
	}
	if err := db.AddWatchlistMovie(ctx, wm); err != nil {
		t.Fatalf("AddWatchlistMovie failed: %v", err)
	}

	if err := db.DeleteWatchlist(ctx, wl.ID); err != nil {
		t.Fatalf("DeleteWatchlist failed: %v", err)
	}

	if _, err := db.GetWatchlistByID(ctx, wl.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected watchlist gone, got %v", err)
	}
	if _, err := db.GetWatchlistMovieByID(ctx, wm.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected membership gone with its watchlist, got %v", err)
	}

	// The movie itself stays in the catalog.
	if _, err := db.GetMovieByID(ctx, movie.ID); err != nil {
		t.Errorf("movie should survive watchlist deletion: %v", err)
	}
}

func TestDeleteWatchlistNotFound(t *testing.T) {
	db := setupTestDB(t)

	err := db.DeleteWatchlist(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddWatchlistMovieDuplicate(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	wl := createTestWatchlist(t, db, alice.ID, "weekend", true)
	movie := createTestMovie(t, db, "Heat", 949)

	first := &models.WatchlistMovie{
		ID:          uuid.New().String(),
		WatchlistID: wl.ID,
		MovieID:     movie.ID,
		AddedAt:     time.Now().UTC(),
	}
	if err := db.AddWatchlistMovie(ctx, first); err != nil {
		t.Fatalf("AddWatchlistMovie failed: %v", err)
	}

	dup := &models.WatchlistMovie{
		ID:          uuid.New().String(),
		WatchlistID: wl.ID,
		MovieID:     movie.ID,
		AddedAt:     time.Now().UTC(),
	}
	if err := db.AddWatchlistMovie(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}

	memberships, err := db.ListWatchlistMemberships(ctx, wl.ID, "")
	if err != nil {
		t.Fatalf("ListWatchlistMemberships failed: %v", err)
	}
	if len(memberships) != 1 {
		t.Errorf("expected exactly 1 membership, got %d", len(memberships))
	}

	// The movie filter narrows to matching rows only.
	filtered, err := db.ListWatchlistMemberships(ctx, wl.ID, movie.ID)
	if err != nil {
		t.Fatalf("ListWatchlistMemberships failed: %v", err)
	}
	if len(filtered) != 1 {
		t.Errorf("expected 1 filtered membership, got %d", len(filtered))
	}
	none, err := db.ListWatchlistMemberships(ctx, wl.ID, uuid.New().String())
	if err != nil {
		t.Fatalf("ListWatchlistMemberships failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no memberships for unknown movie, got %d", len(none))
	}
}

func TestAddWatchlistMovieMissingReferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	wl := createTestWatchlist(t, db, alice.ID, "weekend", true)
	movie := createTestMovie(t, db, "Heat", 949)

	noList := &models.WatchlistMovie{
		ID:          uuid.New().String(),
		WatchlistID: uuid.New().String(),
		MovieID:     movie.ID,
		AddedAt:     time.Now().UTC(),
	}
	if err := db.AddWatchlistMovie(ctx, noList); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing watchlist, got %v", err)
	}

	noMovie := &models.WatchlistMovie{
		ID:          uuid.New().String(),
		WatchlistID: wl.ID,
		MovieID:     uuid.New().String(),
		AddedAt:     time.Now().UTC(),
	}
	if err := db.AddWatchlistMovie(ctx, noMovie); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing movie, got %v", err)
	}
}

func TestListWatchlistMoviesOrder(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	wl := createTestWatchlist(t, db, alice.ID, "weekend", true)

	base := time.Now().UTC()
	titles := []string{"First", "Second", "Third"}
	for i, title := range titles {
		movie := createTestMovie(t, db, title, int64(i+1))
		wm := &models.WatchlistMovie{
			ID:          uuid.New().String(),
			WatchlistID: wl.ID,
			MovieID:     movie.ID,
			AddedAt:     base.Add(time.Duration(i) * time.Second),
		}
		if err := db.AddWatchlistMovie(ctx, wm); err != nil {
			t.Fatalf("AddWatchlistMovie failed: %v", err)
		}
	}

	movies, err := db.ListWatchlistMovies(ctx, wl.ID)
	if err != nil {
		t.Fatalf("ListWatchlistMovies failed: %v", err)
	}
	if len(movies) != 3 {
		t.Fatalf("expected 3 movies, got %d", len(movies))
	}
	for i, title := range titles {
		if movies[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, movies[i].Title)
		}
	}
}
