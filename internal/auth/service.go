// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package auth implements account registration and bearer token
// authentication.
//
// Three modes, selected by security.auth_mode:
//
//	token  Opaque DB-backed tokens (default). Revocable: logout deletes
//	       the server-side record and the token dies instantly.
//	jwt    Stateless HS256 JWTs. No storage, but logout is advisory only.
//	none   Every request is treated as an anonymous development user.
//
// Clients authenticate with "Authorization: Token <value>" (the scheme
// "Bearer" is accepted as an alias).
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/reelist/internal/config"
	"github.com/tomtom215/reelist/internal/database"
	"github.com/tomtom215/reelist/internal/logging"
	"github.com/tomtom215/reelist/internal/models"
)

// Errors returned by Service operations.
var (
	// ErrInvalidCredentials covers unknown usernames and wrong passwords,
	// indistinguishably.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("username is already taken")
)

// Service orchestrates registration, login, logout, and request
// authentication across the configured auth mode.
type Service struct {
	mode   string
	db     *database.DB
	tokens *TokenManager
	jwt    *JWTManager
	cost   int
}

// NewService wires a Service for the configured mode. In jwt mode the
// secret is validated here so a bad config fails at startup, not at the
// first login.
func NewService(cfg *config.SecurityConfig, db *database.DB) (*Service, error) {
	s := &Service{
		mode: cfg.AuthMode,
		db:   db,
		cost: cfg.BcryptCost,
	}

	switch cfg.AuthMode {
	case config.AuthModeToken:
		s.tokens = NewTokenManager(db, cfg.TokenTTL, cfg.BcryptCost)
	case config.AuthModeJWT:
		jm, err := NewJWTManager(cfg)
		if err != nil {
			return nil, err
		}
		s.jwt = jm
	case config.AuthModeNone:
		logging.Warn().Msg("Authentication disabled, all requests run as the dev user")
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.AuthMode)
	}

	return s, nil
}

// Mode returns the configured auth mode.
func (s *Service) Mode() string {
	return s.mode
}

// Register creates a new account and signs it in: the response carries a
// freshly issued token alongside the user identity. Returns
// ErrUsernameTaken when the name is in use.
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.RegisterResponse, error) {
	hash, err := HashPassword(req.Password, s.cost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.CreateUser(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, expiresAt, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	logging.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("User registered")
	return &models.RegisterResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
		CreatedAt: user.CreatedAt,
	}, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords both return ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.db.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			// Burn comparable time so username probing can't use latency.
			VerifyPassword(req.Password, "$2a$12$C6UzMDM.H6dfI/f/IKcEeO7ZUWsXleZb0c6LO/XKRbex1LWSLZz1K")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !VerifyPassword(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.issueToken(ctx, user)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		UserID:    user.ID,
		Username:  user.Username,
	}, nil
}

// issueToken mints a credential for the user according to the configured
// mode. In none mode there is nothing to issue.
func (s *Service) issueToken(ctx context.Context, user *models.User) (string, *time.Time, error) {
	switch s.mode {
	case config.AuthModeJWT:
		token, expiresAt, err := s.jwt.GenerateToken(user.ID, user.Username)
		if err != nil {
			return "", nil, err
		}
		return token, &expiresAt, nil
	case config.AuthModeNone:
		return "", nil, nil
	default:
		plaintext, record, err := s.tokens.Issue(ctx, user.ID)
		if err != nil {
			return "", nil, err
		}
		return plaintext, record.ExpiresAt, nil
	}
}

// Logout invalidates the presented token. In token mode the record is
// deleted and the token dies immediately. In jwt mode there is no record
// to delete; the call succeeds but the token stays valid until expiry,
// which is logged so operators see the limitation.
func (s *Service) Logout(ctx context.Context, plaintext string) error {
	switch s.mode {
	case config.AuthModeJWT:
		logging.Warn().Msg("Logout in jwt mode cannot revoke the token, it remains valid until expiry")
		return nil
	case config.AuthModeNone:
		return nil
	default:
		return s.tokens.Revoke(ctx, plaintext)
	}
}

// devSubject is the identity every request assumes in none mode.
var devSubject = &Subject{UserID: "dev", Username: "dev"}

// Authenticate resolves a plaintext token to a subject. Failures return
// ErrInvalidToken regardless of cause.
func (s *Service) Authenticate(ctx context.Context, plaintext string) (*Subject, error) {
	switch s.mode {
	case config.AuthModeNone:
		return devSubject, nil
	case config.AuthModeJWT:
		claims, err := s.jwt.ValidateToken(plaintext)
		if err != nil {
			return nil, ErrInvalidToken
		}
		return &Subject{UserID: claims.UserID, Username: claims.Username}, nil
	default:
		return s.tokens.Validate(ctx, plaintext)
	}
}
