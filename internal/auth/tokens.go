// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Opaque bearer token management.
//
// Token format: reel_tok_<base64-encoded-id>_<random-secret>
//
// Security:
//   - The plaintext token is returned once at login and never stored
//   - Storage holds bcrypt(SHA-256(token)): SHA-256 first because bcrypt
//     truncates input at 72 bytes, the pattern GitHub uses for its tokens
//   - The embedded ID makes validation a single indexed lookup plus one
//     hash comparison instead of a scan
//   - Deleting the row revokes the token immediately
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/models"
)

const (
	// tokenPrefix marks all Reelist bearer tokens.
	tokenPrefix = "reel_tok_"

	// tokenSecretLength is the random secret size in bytes before encoding.
	tokenSecretLength = 32
)

// ErrInvalidToken is returned for tokens that are malformed, unknown,
// revoked, or expired. Callers get one error for all four cases so probing
// reveals nothing about which check failed.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenStore is the persistence surface the TokenManager needs. *database.DB
// satisfies it.
type TokenStore interface {
	CreateAuthToken(ctx context.Context, token *models.AuthToken) error
	GetAuthTokenByID(ctx context.Context, id string) (*models.AuthToken, error)
	TouchAuthToken(ctx context.Context, id string, usedAt time.Time) error
	DeleteAuthToken(ctx context.Context, id string) error
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// TokenManager issues, validates, and revokes opaque bearer tokens.
type TokenManager struct {
	store      TokenStore
	ttl        time.Duration // zero = tokens never expire
	bcryptCost int
}

// NewTokenManager creates a TokenManager. A zero ttl issues non-expiring
// tokens; they remain revocable through Revoke.
func NewTokenManager(store TokenStore, ttl time.Duration, bcryptCost int) *TokenManager {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &TokenManager{
		store:      store,
		ttl:        ttl,
		bcryptCost: bcryptCost,
	}
}

// Issue creates a new token for the user and returns the plaintext exactly
// once alongside the stored record.
func (m *TokenManager) Issue(ctx context.Context, userID string) (string, *models.AuthToken, error) {
	tokenID := uuid.New().String()

	secretBytes := make([]byte, tokenSecretLength)
	if _, err := rand.Read(secretBytes); err != nil {
		return "", nil, fmt.Errorf("failed to generate token secret: %w", err)
	}
	secret := base64.RawURLEncoding.EncodeToString(secretBytes)

	idEncoded := base64.RawURLEncoding.EncodeToString([]byte(tokenID))
	plaintext := fmt.Sprintf("%s%s_%s", tokenPrefix, idEncoded, secret)

	tokenHash, err := hashToken(plaintext, m.bcryptCost)
	if err != nil {
		return "", nil, err
	}

	now := time.Now().UTC()
	var expiresAt *time.Time
	if m.ttl > 0 {
		exp := now.Add(m.ttl)
		expiresAt = &exp
	}

	token := &models.AuthToken{
		ID:        tokenID,
		UserID:    userID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	if err := m.store.CreateAuthToken(ctx, token); err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}

	logging.Info().
		Str("token_id", tokenID).
		Str("user_id", userID).
		Msg("Bearer token issued")

	return plaintext, token, nil
}

// Validate checks a plaintext token and returns the authenticated subject.
// All failures collapse into ErrInvalidToken.
func (m *TokenManager) Validate(ctx context.Context, plaintext string) (*Subject, error) {
	tokenID, err := extractTokenID(plaintext)
	if err != nil {
		return nil, ErrInvalidToken
	}

	token, err := m.store.GetAuthTokenByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("token lookup failed: %w", err)
	}

	if !verifyToken(plaintext, token.TokenHash) {
		logging.Warn().Str("token_id", tokenID).Msg("Token hash mismatch")
		return nil, ErrInvalidToken
	}

	if token.IsExpired(time.Now().UTC()) {
		return nil, ErrInvalidToken
	}

	user, err := m.store.GetUserByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("user lookup failed: %w", err)
	}

	// Best effort usage tracking; validation outcome doesn't depend on it.
	if err := m.store.TouchAuthToken(ctx, tokenID, time.Now().UTC()); err != nil {
		logging.Warn().Err(err).Str("token_id", tokenID).Msg("Failed to record token use")
	}

	return &Subject{UserID: user.ID, Username: user.Username}, nil
}

// Revoke deletes the token record, invalidating the plaintext immediately.
// Revoking an unknown or already revoked token returns ErrInvalidToken.
func (m *TokenManager) Revoke(ctx context.Context, plaintext string) error {
	tokenID, err := extractTokenID(plaintext)
	if err != nil {
		return ErrInvalidToken
	}

	if err := m.store.DeleteAuthToken(ctx, tokenID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	logging.Info().Str("token_id", tokenID).Msg("Bearer token revoked")
	return nil
}

// extractTokenID pulls the embedded token ID out of the plaintext format.
func extractTokenID(plaintext string) (string, error) {
	if !strings.HasPrefix(plaintext, tokenPrefix) {
		return "", fmt.Errorf("invalid token format")
	}

	parts := strings.SplitN(strings.TrimPrefix(plaintext, tokenPrefix), "_", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid token format")
	}

	idBytes, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("invalid token format")
	}

	return string(idBytes), nil
}

// hashToken creates a bcrypt hash of SHA-256(token). The SHA-256 step keeps
// the input under bcrypt's 72-byte limit.
func hashToken(plaintext string, cost int) (string, error) {
	sha := sha256.Sum256([]byte(plaintext))
	hash, err := bcrypt.GenerateFromPassword(sha[:], cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt failed: %w", err)
	}
	return string(hash), nil
}

// verifyToken checks a plaintext token against the stored hash.
func verifyToken(plaintext, storedHash string) bool {
	sha := sha256.Sum256([]byte(plaintext))
	return bcrypt.CompareHashAndPassword([]byte(storedHash), sha[:]) == nil
}
