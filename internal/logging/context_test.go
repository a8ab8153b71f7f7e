// Reelist - Movie Watchlist Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelist

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestCtxCarriesRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	ctx := ContextWithRequestID(context.Background(), "req-123")
	Ctx(ctx).Warn().Str("extra", "field").Msg("something happened")

	line := buf.String()
	if !strings.Contains(line, `"request_id":"req-123"`) {
		t.Errorf("expected request_id in log line, got %s", line)
	}
	if !strings.Contains(line, `"extra":"field"`) {
		t.Errorf("expected chained field in log line, got %s", line)
	}
}

func TestCtxWithoutRequestID(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })

	Ctx(context.Background()).Error().Msg("bare context")

	if strings.Contains(buf.String(), "request_id") {
		t.Errorf("expected no request_id, got %s", buf.String())
	}
}

func TestRequestIDRoundTrip(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("expected empty request ID, got %q", got)
	}

	id := GenerateRequestID()
	ctx := ContextWithRequestID(context.Background(), id)
	if got := RequestIDFromContext(ctx); got != id {
		t.Errorf("expected %q, got %q", id, got)
	}
}
