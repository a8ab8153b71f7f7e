// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// envPrefix namespaces every Reelist environment variable.
const envPrefix = "REELIST_"

// envKeyMap maps flat environment variable names (after the prefix is
// stripped) to dotted config paths. Variables not in this map are ignored.
var envKeyMap = map[string]string{
	"SERVER_HOST":             "server.host",
	"SERVER_PORT":             "server.port",
	"SERVER_TIMEOUT":          "server.timeout",
	"ENVIRONMENT":             "server.environment",
	"DATABASE_PATH":           "database.path",
	"DATABASE_MAX_MEMORY":     "database.max_memory",
	"DATABASE_THREADS":        "database.threads",
	"API_DEFAULT_PAGE_SIZE":   "api.default_page_size",
	"API_MAX_PAGE_SIZE":       "api.max_page_size",
	"AUTH_MODE":               "security.auth_mode",
	"JWT_SECRET":              "security.jwt_secret",
	"TOKEN_TTL":               "security.token_ttl",
	"BCRYPT_COST":             "security.bcrypt_cost",
	"RATE_LIMIT_REQS":         "security.rate_limit_reqs",
	"RATE_LIMIT_WINDOW":       "security.rate_limit_window",
	"RATE_LIMIT_DISABLED":     "security.rate_limit_disabled",
	"LOGIN_RATE_LIMIT_REQS":   "security.login_rate_limit_reqs",
	"LOGIN_RATE_LIMIT_WINDOW": "security.login_rate_limit_window",
	"CORS_ORIGINS":            "security.cors_origins",
	"LOG_LEVEL":               "logging.level",
	"LOG_FORMAT":              "logging.format",
	"LOG_CALLER":              "logging.caller",
}

// sliceKeys are config paths whose env values are comma-separated lists.
var sliceKeys = map[string]bool{
	"security.cors_origins": true,
}

// Load builds the configuration from defaults, an optional YAML file, and
// environment variables, then validates the merged result.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: struct defaults.
	if err := k.Load(structs.Provider(DefaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: optional config file.
	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Layer 3: environment variables.
	envProvider := env.Provider(envPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, envPrefix)
		if path, ok := envKeyMap[key]; ok {
			return path
		}
		return ""
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	normalizeSliceKeys(k)

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// normalizeSliceKeys splits comma-separated env values for slice-typed
// config paths so unmarshalling into []string succeeds.
func normalizeSliceKeys(k *koanf.Koanf) {
	for key := range sliceKeys {
		raw := k.Get(key)
		s, ok := raw.(string)
		if !ok {
			continue
		}
		parts := strings.Split(s, ",")
		vals := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				vals = append(vals, p)
			}
		}
		_ = k.Set(key, vals)
	}
}

// findConfigFile locates the YAML config file. REELIST_CONFIG_PATH takes
// precedence; otherwise well-known locations are probed in order. Returns
// an empty string when no file exists, which is not an error.
func findConfigFile() string {
	if path := os.Getenv("REELIST_CONFIG_PATH"); path != "" {
		return path
	}
	for _, path := range []string{"config.yaml", "/etc/reelist/config.yaml"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}
