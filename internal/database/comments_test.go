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

func TestListCommentsNewestFirst(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	movie := createTestMovie(t, db, "Heat", 949)

	base := time.Now().UTC()
	for i, body := range []string{"oldest", "middle", "newest"} {
		comment := &models.Comment{
			ID:        uuid.New().String(),
			UserID:    alice.ID,
			MovieID:   movie.ID,
			Text:      body,
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}
		if err := db.CreateComment(ctx, comment); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}

	comments, err := db.ListComments(ctx, movie.ID, "")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(comments) != 3 {
		t.Fatalf("expected 3 comments, got %d", len(comments))
	}
	want := []string{"newest", "middle", "oldest"}
	for i := range want {
		if comments[i].Text != want[i] {
			t.Errorf("position %d: expected %q, got %q", i, want[i], comments[i].Text)
		}
	}
}

func TestListCommentsFiltered(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	heat := createTestMovie(t, db, "Heat", 949)
	collateral := createTestMovie(t, db, "Collateral", 787)

	for _, c := range []struct{ userID, movieID string }{
		{alice.ID, heat.ID},
		{alice.ID, heat.ID},
		{bob.ID, collateral.ID},
	} {
		comment := &models.Comment{
			ID:        uuid.New().String(),
			UserID:    c.userID,
			MovieID:   c.movieID,
			Text:      "a comment",
			CreatedAt: time.Now().UTC(),
		}
		if err := db.CreateComment(ctx, comment); err != nil {
			t.Fatalf("CreateComment failed: %v", err)
		}
	}

	heatComments, err := db.ListComments(ctx, heat.ID, "")
	if err != nil {
		t.Fatalf("ListComments failed: %v", err)
	}
	if len(heatComments) != 2 {
		t.Errorf("expected 2 comments on heat, got %d", len(heatComments))
	}

	bobComments, err := db.ListComments(ctx, "", bob.ID)
	if err != nil {
		t.Fatalf("ListComments (by user) failed: %v", err)
	}
	if len(bobComments) != 1 || bobComments[0].MovieID != collateral.ID {
		t.Errorf("unexpected bob comments: %+v", bobComments)
	}

	both, err := db.ListComments(ctx, heat.ID, bob.ID)
	if err != nil {
		t.Fatalf("ListComments (combined) failed: %v", err)
	}
	if len(both) != 0 {
		t.Errorf("expected no heat comments by bob, got %d", len(both))
	}

	all, err := db.ListComments(ctx, "", "")
	if err != nil {
		t.Fatalf("ListComments (all) failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 comments total, got %d", len(all))
	}
}

func TestDeleteCommentScopedToAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	movie := createTestMovie(t, db, "Heat", 949)

	comment := &models.Comment{
		ID:        uuid.New().String(),
		UserID:    alice.ID,
		MovieID:   movie.ID,
		Text:      "great movie",
		CreatedAt: time.Now().UTC(),
	}
	if err := db.CreateComment(ctx, comment); err != nil {
		t.Fatalf("CreateComment failed: %v", err)
	}

	if err := db.DeleteComment(ctx, comment.ID, bob.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign comment, got %v", err)
	}

	if err := db.DeleteComment(ctx, comment.ID, alice.ID); err != nil {
		t.Fatalf("DeleteComment failed: %v", err)
	}
	if _, err := db.GetCommentByID(ctx, comment.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected comment gone, got %v", err)
	}
}
