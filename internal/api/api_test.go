// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/reelist/internal/access"
	"github.com/tomtom215/reelist/internal/auth"
	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/models"
)

// testAPISemaphore serializes test database lifecycles for DuckDB.
var testAPISemaphore = make(chan struct{}, 1)

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	testAPISemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testAPISemaphore
	})

	db, err := database.New(&config.DatabaseConfig{
		Path:      ":memory:",
		MaxMemory: "1GB",
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("Failed to close test database: %v", err)
		}
	})

	cfg := config.DefaultConfig()
	cfg.Security.BcryptCost = 10
	cfg.Security.RateLimitDisabled = true

	authSvc, err := auth.NewService(&cfg.Security, db)
	if err != nil {
		t.Fatalf("Failed to create auth service: %v", err)
	}
	accessSvc := access.NewService(db)

	handler := NewHandler(accessSvc, authSvc, db, cfg)
	return NewRouter(handler, &cfg.Security).Setup()
}

// doJSON issues a request with an optional token and JSON body.
func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	r.Header.Set("Content-Type", "application/json")
	if token != "" {
		r.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

// decodeData unmarshals the envelope's data field into dst.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	var envelope struct {
		Status string           `json:"status"`
		Data   json.RawMessage  `json:"data"`
		Error  *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if envelope.Status != "success" {
		t.Fatalf("expected success envelope, got %s (error: %+v)", envelope.Status, envelope.Error)
	}
	if err := json.Unmarshal(envelope.Data, dst); err != nil {
		t.Fatalf("Failed to decode data: %v", err)
	}
}

// errorCode extracts the error code from an error envelope.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var envelope struct {
		Status string           `json:"status"`
		Error  *models.APIError `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("Failed to decode envelope: %v (body: %s)", err, rec.Body.String())
	}
	if envelope.Error == nil {
		t.Fatalf("expected error envelope, got: %s", rec.Body.String())
	}
	return envelope.Error.Code
}

// registerAndLogin creates an account and returns its token and user ID.
func registerAndLogin(t *testing.T, h http.Handler, username string) (token, userID string) {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"password": "password-" + username,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed with status %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password-" + username,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.LoginResponse
	decodeData(t, rec, &resp)
	return resp.Token, resp.UserID
}

// createMovie inserts a catalog entry and returns it.
func createMovie(t *testing.T, h http.Handler, token, title string, externalID int64) models.Movie {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/movies", token, map[string]interface{}{
		"title":      title,
		"externalId": externalID,
	})
	if rec.Code != http.StatusCreated && rec.Code != http.StatusOK {
		t.Fatalf("create movie failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var movie models.Movie
	decodeData(t, rec, &movie)
	return movie
}

// createWatchlist creates a list and returns it.
func createWatchlist(t *testing.T, h http.Handler, token, name string, isPublic bool) models.Watchlist {
	t.Helper()

	rec := doJSON(t, h, http.MethodPost, "/api/v1/watchlists", token, map[string]interface{}{
		"name":     name,
		"isPublic": isPublic,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create watchlist failed with status %d: %s", rec.Code, rec.Body.String())
	}

	var list models.Watchlist
	decodeData(t, rec, &list)
	return list
}

func TestAuthEndpoints(t *testing.T) {
	h := setupTestRouter(t)

	token, userID := registerAndLogin(t, h, "alice")

	// The caller can look up their own account; the password hash never
	// leaves the server.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/users/me", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("users/me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me models.User
	decodeData(t, rec, &me)
	if me.ID != userID || me.Username != "alice" {
		t.Errorf("unexpected current user: %+v", me)
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Error("users/me response leaks password material")
	}

	// Registration signs the user in: the 201 payload carries a token that
	// works without a login round-trip.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "carol",
		"password": "password-carol",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var reg models.RegisterResponse
	decodeData(t, rec, &reg)
	if reg.Token == "" {
		t.Fatal("register response carries no token")
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/users/me", reg.Token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("registration token rejected: got %d", rec.Code)
	}

	// Duplicate usernames are rejected as validation failures.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "alice",
		"password": "another-password",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate username, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != ErrCodeValidation {
		t.Errorf("expected %s, got %s", ErrCodeValidation, code)
	}

	// Wrong password and unknown username are indistinguishable 401s.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody",
		"password": "whatever",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown user, got %d", rec.Code)
	}

	// Data endpoints demand a token.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Logout kills the token immediately.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/auth/logout", token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with revoked token, got %d", rec.Code)
	}
}

func TestMovieEndpoints(t *testing.T) {
	h := setupTestRouter(t)
	token, _ := registerAndLogin(t, h, "alice")

	movie := createMovie(t, h, token, "Heat", 949)

	// The same title and external ID pair returns the existing record.
	rec := doJSON(t, h, http.MethodPost, "/api/v1/movies", token, map[string]interface{}{
		"title":      "Heat",
		"externalId": 949,
	})
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for existing movie, got %d", rec.Code)
	}
	var again models.Movie
	decodeData(t, rec, &again)
	if again.ID != movie.ID {
		t.Errorf("expected existing movie %s, got %s", movie.ID, again.ID)
	}

	// Same external ID with a different title is a distinct record.
	other := createMovie(t, h, token, "Heat (Director's Cut)", 949)
	if other.ID == movie.ID {
		t.Error("expected a new record for a different title")
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies?externalId=949", token, nil)
	var list models.ListResponse[models.Movie]
	decodeData(t, rec, &list)
	if list.Total != 2 {
		t.Errorf("expected 2 movies with external ID 949, got %d", list.Total)
	}

	// Non-numeric filters match nothing instead of erroring.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies?externalId=abc", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for non-numeric filter, got %d", rec.Code)
	}
	decodeData(t, rec, &list)
	if list.Total != 0 {
		t.Errorf("expected empty result for non-numeric filter, got %d", list.Total)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies/"+movie.ID, token, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 for get movie, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies/"+uuid.NewString(), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown movie, got %d", rec.Code)
	}

	// Missing title fails validation.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/movies", token, map[string]interface{}{
		"externalId": 1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing title, got %d", rec.Code)
	}
}

// TestWatchlistAccessControl walks two users through the visibility and
// ownership rules.
func TestWatchlistAccessControl(t *testing.T) {
	h := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, h, "alice")
	bobToken, _ := registerAndLogin(t, h, "bob")

	private := createWatchlist(t, h, aliceToken, "Guilty Pleasures", false)
	public := createWatchlist(t, h, aliceToken, "Weekend Picks", true)

	// Alice sees her own private list.
	rec := doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+private.ID, aliceToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("owner read of private list: expected 200, got %d", rec.Code)
	}

	// To bob the private list does not exist.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+private.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign read of private list: expected 404, got %d", rec.Code)
	}

	// Bob can read the public list but not change it.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+public.ID, bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("foreign read of public list: expected 200, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodPatch, "/api/v1/watchlists/"+public.ID, bobToken, map[string]interface{}{
		"name": "Bob Was Here",
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign update: expected 403, got %d", rec.Code)
	}
	if code := errorCode(t, rec); code != ErrCodeAuthorization {
		t.Errorf("expected %s, got %s", ErrCodeAuthorization, code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/watchlists/"+public.ID, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign delete: expected 403, got %d", rec.Code)
	}

	// Bob sees the public list in his overview but not the private one.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists", bobToken, nil)
	var lists models.ListResponse[models.Watchlist]
	decodeData(t, rec, &lists)
	if lists.Total != 1 {
		t.Fatalf("expected bob to see 1 list, got %d", lists.Total)
	}
	if lists.Results[0].ID != public.ID {
		t.Errorf("expected public list, got %s", lists.Results[0].ID)
	}

	// Viewing the movies of a private list is denied, not hidden.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+private.ID+"/movies", bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign movie listing of private list: expected 403, got %d", rec.Code)
	}

	// The owner renames and privatizes a list.
	rec = doJSON(t, h, http.MethodPatch, "/api/v1/watchlists/"+public.ID, aliceToken, map[string]interface{}{
		"name":     "Weeknight Picks",
		"isPublic": false,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var updated models.Watchlist
	decodeData(t, rec, &updated)
	if updated.Name != "Weeknight Picks" || updated.IsPublic {
		t.Errorf("update not applied: %+v", updated)
	}

	// After privatizing, bob loses sight of it.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+public.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after privatizing, got %d", rec.Code)
	}
}

func TestMembershipEndpoints(t *testing.T) {
	h := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, h, "alice")
	bobToken, _ := registerAndLogin(t, h, "bob")

	list := createWatchlist(t, h, aliceToken, "Weekend Picks", true)
	movie := createMovie(t, h, aliceToken, "Heat", 949)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/watchlist-movies", aliceToken, map[string]string{
		"watchlistId": list.ID,
		"movieId":     movie.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add movie: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var entry models.WatchlistMovie
	decodeData(t, rec, &entry)

	// Adding the same movie twice fails validation.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/watchlist-movies", aliceToken, map[string]string{
		"watchlistId": list.ID,
		"movieId":     movie.ID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("duplicate membership: expected 400, got %d", rec.Code)
	}

	// Unknown movie references fail validation, not lookup.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/watchlist-movies", aliceToken, map[string]string{
		"watchlistId": list.ID,
		"movieId":     uuid.NewString(),
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown movie reference: expected 400, got %d", rec.Code)
	}

	// Bob cannot add to alice's list even though it is public.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/watchlist-movies", bobToken, map[string]string{
		"watchlistId": list.ID,
		"movieId":     movie.ID,
	})
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign add: expected 403, got %d", rec.Code)
	}

	// A public list's memberships are readable by anyone.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlist-movies?watchlistId="+list.ID, bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("public filter: expected 200, got %d", rec.Code)
	}
	var entries models.ListResponse[models.WatchlistMovie]
	decodeData(t, rec, &entries)
	if entries.Total != 1 {
		t.Errorf("public filter: expected 1 entry, got %d", entries.Total)
	}

	// Filtering by a hidden list yields an empty set, not an error.
	hidden := createWatchlist(t, h, aliceToken, "Hidden Picks", false)
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlist-movies?watchlistId="+hidden.ID, bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("hidden filter: expected 200, got %d", rec.Code)
	}
	decodeData(t, rec, &entries)
	if entries.Total != 0 {
		t.Errorf("hidden filter: expected empty result, got %d", entries.Total)
	}

	// The owner sees the membership and the joined movie listing.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlist-movies?watchlistId="+list.ID, aliceToken, nil)
	decodeData(t, rec, &entries)
	if entries.Total != 1 {
		t.Errorf("owner filter: expected 1 entry, got %d", entries.Total)
	}

	// A movie filter narrows membership rows to those linking that movie.
	other := createMovie(t, h, aliceToken, "Ronin", 10036)
	rec = doJSON(t, h, http.MethodPost, "/api/v1/watchlist-movies", aliceToken, map[string]string{
		"watchlistId": list.ID,
		"movieId":     other.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add second movie: expected 201, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlist-movies?movieId="+other.ID, aliceToken, nil)
	decodeData(t, rec, &entries)
	if entries.Total != 1 || entries.Results[0].MovieID != other.ID {
		t.Errorf("movie filter: expected only the Ronin row, got %+v", entries)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/watchlists/"+list.ID+"/movies", aliceToken, nil)
	var movies models.ListResponse[models.Movie]
	decodeData(t, rec, &movies)
	if movies.Total != 1 || movies.Results[0].ID != movie.ID {
		t.Errorf("unexpected watchlist movies: %+v", movies)
	}

	// Bob cannot remove alice's entry; alice can.
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/watchlist-movies/"+entry.ID, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign removal: expected 403, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/watchlist-movies/"+entry.ID, aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("owner removal: expected 204, got %d", rec.Code)
	}
}

func TestRatingEndpoints(t *testing.T) {
	h := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, h, "alice")
	bobToken, _ := registerAndLogin(t, h, "bob")

	movie := createMovie(t, h, aliceToken, "Heat", 949)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/ratings", aliceToken, map[string]interface{}{
		"movieId": movie.ID,
		"value":   4,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create rating: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var rating models.Rating
	decodeData(t, rec, &rating)

	// Rating the same movie again replaces the score in place.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/ratings", aliceToken, map[string]interface{}{
		"movieId": movie.ID,
		"value":   5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("re-rate: expected 201, got %d", rec.Code)
	}
	var rerated models.Rating
	decodeData(t, rec, &rerated)
	if rerated.ID != rating.ID {
		t.Errorf("expected same rating record, got %s and %s", rating.ID, rerated.ID)
	}
	if rerated.Value != 5 {
		t.Errorf("expected value 5, got %d", rerated.Value)
	}

	// Out-of-range values fail validation.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/ratings", aliceToken, map[string]interface{}{
		"movieId": movie.ID,
		"value":   6,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("value 6: expected 400, got %d", rec.Code)
	}

	// Ratings are private to their owner.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/ratings/"+rating.ID, bobToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign rating read: expected 404, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/ratings", bobToken, nil)
	var ratings models.ListResponse[models.Rating]
	decodeData(t, rec, &ratings)
	if ratings.Total != 0 {
		t.Errorf("bob should have no ratings, got %d", ratings.Total)
	}

	// An explicit movie filter is a public view.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/ratings?movieId="+movie.ID, bobToken, nil)
	decodeData(t, rec, &ratings)
	if ratings.Total != 1 || ratings.Results[0].Value != 5 {
		t.Errorf("movie filter: expected alice's rating, got %+v", ratings)
	}

	rec = doJSON(t, h, http.MethodPatch, "/api/v1/ratings/"+rating.ID, aliceToken, map[string]interface{}{
		"value": 3,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d", rec.Code)
	}
	var patched models.Rating
	decodeData(t, rec, &patched)
	if patched.Value != 3 {
		t.Errorf("expected value 3, got %d", patched.Value)
	}

	rec = doJSON(t, h, http.MethodDelete, "/api/v1/ratings/"+rating.ID, aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("owner delete: expected 204, got %d", rec.Code)
	}
}

func TestCommentEndpoints(t *testing.T) {
	h := setupTestRouter(t)
	aliceToken, _ := registerAndLogin(t, h, "alice")
	bobToken, bobID := registerAndLogin(t, h, "bob")

	movie := createMovie(t, h, aliceToken, "Heat", 949)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/comments", aliceToken, map[string]string{
		"movieId": movie.ID,
		"text":    "The diner scene alone is worth it.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create comment: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var comment models.Comment
	decodeData(t, rec, &comment)

	// All authenticated users can read comments.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/comments?movieId="+movie.ID, bobToken, nil)
	var comments models.ListResponse[models.Comment]
	decodeData(t, rec, &comments)
	if comments.Total != 1 {
		t.Errorf("expected 1 comment, got %d", comments.Total)
	}

	// The userId filter scopes the listing to one author.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/comments", bobToken, map[string]string{
		"movieId": movie.ID,
		"text":    "Slow in the middle.",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("bob comment: expected 201, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/comments?userId="+bobID, aliceToken, nil)
	decodeData(t, rec, &comments)
	if comments.Total != 1 || comments.Results[0].Text != "Slow in the middle." {
		t.Errorf("user filter: expected only bob's comment, got %+v", comments)
	}
	rec = doJSON(t, h, http.MethodGet, "/api/v1/comments?movieId="+movie.ID+"&userId="+bobID, aliceToken, nil)
	decodeData(t, rec, &comments)
	if comments.Total != 1 {
		t.Errorf("combined filter: expected 1 comment, got %d", comments.Total)
	}

	// Only the author may delete.
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/comments/"+comment.ID, bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("foreign delete: expected 403, got %d", rec.Code)
	}
	rec = doJSON(t, h, http.MethodDelete, "/api/v1/comments/"+comment.ID, aliceToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Errorf("author delete: expected 204, got %d", rec.Code)
	}

	// Commenting on an unknown movie fails validation.
	rec = doJSON(t, h, http.MethodPost, "/api/v1/comments", aliceToken, map[string]string{
		"movieId": uuid.NewString(),
		"text":    "ghost",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown movie: expected 400, got %d", rec.Code)
	}
}

func TestListPagination(t *testing.T) {
	h := setupTestRouter(t)
	token, _ := registerAndLogin(t, h, "alice")

	createMovie(t, h, token, "Heat", 949)
	createMovie(t, h, token, "Ronin", 8195)
	createMovie(t, h, token, "Thief", 11368)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/movies?limit=1&offset=1", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var list models.ListResponse[models.Movie]
	decodeData(t, rec, &list)
	if list.Total != 3 {
		t.Errorf("expected total 3, got %d", list.Total)
	}
	if len(list.Results) != 1 {
		t.Errorf("expected 1 result, got %d", len(list.Results))
	}

	// An offset past the end returns an empty page, not an error.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/movies?offset=100", token, nil)
	decodeData(t, rec, &list)
	if list.Total != 3 || len(list.Results) != 0 {
		t.Errorf("expected empty page with total 3, got %+v", list)
	}
}

func TestHealthEndpoints(t *testing.T) {
	h := setupTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}
	var status healthStatus
	decodeData(t, rec, &status)
	if status.Status != "ok" || status.Database != "ok" {
		t.Errorf("unexpected health payload: %+v", status)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/health/live", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("live: expected 200, got %d", rec.Code)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/v1/health/ready", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("ready: expected 200, got %d", rec.Code)
	}

	// Request IDs are stamped on every response.
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
}
