// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

// Package config provides layered application configuration via Koanf v2.
//
// Configuration is loaded from three layers, highest priority last:
//
//  1. Built-in defaults
//  2. Config file (config.yaml)
//  3. Environment variables
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the Reelist server.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
	// Environment is "development" or "production". Production enforces
	// stricter security validation (non-empty JWT secret, no wildcard CORS).
	Environment string `koanf:"environment"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path, or ":memory:" for an ephemeral store.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`
}

// APIConfig holds API behavior settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// AuthMode values accepted by SecurityConfig.AuthMode.
const (
	AuthModeToken = "token" // Opaque DB-backed bearer tokens (default, revocable)
	AuthModeJWT   = "jwt"   // Stateless HS256 JWTs (logout cannot revoke)
	AuthModeNone  = "none"  // No authentication (development only)
)

// SecurityConfig holds authentication and rate limiting settings.
type SecurityConfig struct {
	// AuthMode selects the authentication backend: token, jwt, or none.
	AuthMode string `koanf:"auth_mode"`

	// JWTSecret signs tokens in jwt mode. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// TokenTTL bounds the lifetime of issued tokens. Zero means no expiry
	// for opaque tokens; jwt mode always applies a TTL (default 24h).
	TokenTTL time.Duration `koanf:"token_ttl"`

	// BcryptCost is the cost factor for password and token hashing.
	BcryptCost int `koanf:"bcrypt_cost"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`

	// LoginRateLimitReqs caps login/register attempts per IP per window
	// (brute force prevention).
	LoginRateLimitReqs   int           `koanf:"login_rate_limit_reqs"`
	LoginRateLimitWindow time.Duration `koanf:"login_rate_limit_window"`

	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// DefaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and environment variables.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8315,
			Timeout:     30 * time.Second,
			Environment: "development",
		},
		Database: DatabaseConfig{
			Path:      "/data/reelist.duckdb",
			MaxMemory: "1GB",
			Threads:   0,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Security: SecurityConfig{
			AuthMode:             AuthModeToken,
			JWTSecret:            "",
			TokenTTL:             0,
			BcryptCost:           12,
			RateLimitReqs:        100,
			RateLimitWindow:      1 * time.Minute,
			RateLimitDisabled:    false,
			LoginRateLimitReqs:   5,
			LoginRateLimitWindow: 5 * time.Minute,
			CORSOrigins:          []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks the configuration for inconsistencies. It is called by
// Load after all layers are merged, so startup fails fast on bad config.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("server.environment must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	switch c.Security.AuthMode {
	case AuthModeToken, AuthModeJWT, AuthModeNone:
	default:
		return fmt.Errorf("security.auth_mode must be token, jwt, or none, got %q", c.Security.AuthMode)
	}

	if c.Security.AuthMode == AuthModeJWT && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters in jwt mode")
	}

	if c.Security.AuthMode == AuthModeNone && c.Server.Environment == "production" {
		return fmt.Errorf("security.auth_mode none is not allowed in production")
	}

	if c.Security.BcryptCost < 10 || c.Security.BcryptCost > 16 {
		return fmt.Errorf("security.bcrypt_cost must be between 10 and 16, got %d", c.Security.BcryptCost)
	}

	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs <= 0 {
			return fmt.Errorf("security.rate_limit_reqs must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("security.rate_limit_window must be positive, got %s", c.Security.RateLimitWindow)
		}
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("logging.level %q is not a valid level", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
