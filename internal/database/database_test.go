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

	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/models"
)

// testDBSemaphore serializes test database lifecycles. Concurrent DuckDB
// CGO operations from parallel tests can hang under CI resource pressure,
// so only one test holds an active connection at a time.
var testDBSemaphore = make(chan struct{}, 1)

// setupTestDB creates a new in-memory test database. The semaphore is held
// for the entire test lifecycle and released via t.Cleanup.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	}

	db, err := New(cfg)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	return db
}

// createTestUser inserts a user and returns it.
func createTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: "$2a$12$notarealhashnotarealhashnotarealhashnotarealha",
		CreatedAt:    time.Now().UTC(),
	}
	if err := db.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("Failed to create test user %s: %v", username, err)
	}
	return user
}

// createTestMovie inserts a movie and returns it.
func createTestMovie(t *testing.T, db *DB, title string, externalID int64) *models.Movie {
	t.Helper()

	movie := &models.Movie{
		ID:         uuid.New().String(),
		Title:      title,
		ExternalID: externalID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.CreateMovie(context.Background(), movie); err != nil {
		t.Fatalf("Failed to create test movie %s: %v", title, err)
	}
	return movie
}

// createTestWatchlist inserts a watchlist and returns it.
func createTestWatchlist(t *testing.T, db *DB, ownerID, name string, isPublic bool) *models.Watchlist {
	t.Helper()

	now := time.Now().UTC()
	wl := &models.Watchlist{
		ID:        uuid.New().String(),
		Name:      name,
		OwnerID:   ownerID,
		IsPublic:  isPublic,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.CreateWatchlist(context.Background(), wl); err != nil {
		t.Fatalf("Failed to create test watchlist %s: %v", name, err)
	}
	return wl
}

func TestNewInitializesSchema(t *testing.T) {
	db := setupTestDB(t)

	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping failed: %v", err)
	}

	version, err := db.GetCurrentSchemaVersion()
	if err != nil {
		t.Fatalf("GetCurrentSchemaVersion failed: %v", err)
	}
	if version < 1 {
		t.Errorf("expected schema version >= 1 after migrations, got %d", version)
	}
}

func TestCreateUserAndLookup(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	byID, err := db.GetUserByID(ctx, alice.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if byID.Username != "alice" {
		t.Errorf("expected username alice, got %q", byID.Username)
	}

	byName, err := db.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if byName.ID != alice.ID {
		t.Errorf("expected ID %s, got %s", alice.ID, byName.ID)
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := setupTestDB(t)

	createTestUser(t, db, "alice")

	dup := &models.User{
		ID:           uuid.New().String(),
		Username:     "alice",
		PasswordHash: "irrelevant",
		CreatedAt:    time.Now().UTC(),
	}
	err := db.CreateUser(context.Background(), dup)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.GetUserByID(context.Background(), uuid.New().String())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAuthTokenLifecycle(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")

	expires := time.Now().UTC().Add(24 * time.Hour)
	token := &models.AuthToken{
		ID:        uuid.New().String(),
		UserID:    alice.ID,
		TokenHash: "hash-placeholder",
		CreatedAt: time.Now().UTC(),
		ExpiresAt: &expires,
	}
	if err := db.CreateAuthToken(ctx, token); err != nil {
		t.Fatalf("CreateAuthToken failed: %v", err)
	}

	loaded, err := db.GetAuthTokenByID(ctx, token.ID)
	if err != nil {
		t.Fatalf("GetAuthTokenByID failed: %v", err)
	}
	if loaded.UserID != alice.ID {
		t.Errorf("expected user %s, got %s", alice.ID, loaded.UserID)
	}
	if loaded.ExpiresAt == nil {
		t.Error("expected expiry to round-trip")
	}

	if err := db.TouchAuthToken(ctx, token.ID, time.Now().UTC()); err != nil {
		t.Fatalf("TouchAuthToken failed: %v", err)
	}

	if err := db.DeleteAuthToken(ctx, token.ID); err != nil {
		t.Fatalf("DeleteAuthToken failed: %v", err)
	}
	if _, err := db.GetAuthTokenByID(ctx, token.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := db.DeleteAuthToken(ctx, token.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestDeleteExpiredAuthTokens(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	now := time.Now().UTC()

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	expired := &models.AuthToken{
		ID: uuid.New().String(), UserID: alice.ID,
		TokenHash: "h1", CreatedAt: now.Add(-2 * time.Hour), ExpiresAt: &past,
	}
	live := &models.AuthToken{
		ID: uuid.New().String(), UserID: alice.ID,
		TokenHash: "h2", CreatedAt: now, ExpiresAt: &future,
	}
	eternal := &models.AuthToken{
		ID: uuid.New().String(), UserID: alice.ID,
		TokenHash: "h3", CreatedAt: now,
	}
	for _, tok := range []*models.AuthToken{expired, live, eternal} {
		if err := db.CreateAuthToken(ctx, tok); err != nil {
			t.Fatalf("CreateAuthToken failed: %v", err)
		}
	}

	n, err := db.DeleteExpiredAuthTokens(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpiredAuthTokens failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 expired token deleted, got %d", n)
	}

	if _, err := db.GetAuthTokenByID(ctx, live.ID); err != nil {
		t.Errorf("live token should survive: %v", err)
	}
	if _, err := db.GetAuthTokenByID(ctx, eternal.ID); err != nil {
		t.Errorf("token without expiry should survive: %v", err)
	}
}
