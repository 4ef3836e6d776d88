// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

// newTestSender creates an httpEventSender pointed at the test server.
func newTestSender(t *testing.T, serverURL string) EventSender {
	t.Helper()
	u, err := url.Parse(serverURL + "/")
	require.NoError(t, err)

	s, err := NewEventSender(EventSenderConfig{EventURI: u, EnvSecret: "env-secret"}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func testEvents() []models.Event {
	u := models.NewUserBuilder("u-1").Name("Alice").Build()
	now := time.UnixMilli(1700000000000)
	return []models.Event{
		models.NewEvalEvent(u, "dark-mode", models.Variation{ID: "on", Value: "true"}, false, now),
		models.NewMetricEvent(u, "checkout", 1, now),
	}
}

// ── Send ────────────────────────────────────────────────────────────────────

func TestSend_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/public/insight/track", r.URL.Path)
		assert.Equal(t, "env-secret", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Content-Type"), "application/json")

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var payload []map[string]any
		require.NoError(t, json.Unmarshal(body, &payload))
		require.Len(t, payload, 2)
		assert.Contains(t, payload[0], "variations")
		assert.Contains(t, payload[1], "metrics")

		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestSender(t, srv.URL).Send(context.Background(), testEvents())
	require.NoError(t, err)
}

func TestSend_EmptyBatchSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	require.NoError(t, newTestSender(t, srv.URL).Send(context.Background(), nil))
	assert.False(t, called)
}

func TestSend_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		wantErr   error
		retryable bool
	}{
		{"bad request", http.StatusBadRequest, ErrBadRequest, true},
		{"unauthorized", http.StatusUnauthorized, ErrUnauthorized, false},
		{"forbidden", http.StatusForbidden, ErrForbidden, false},
		{"not found", http.StatusNotFound, ErrNotFound, true},
		{"too large", http.StatusRequestEntityTooLarge, ErrPayloadTooLarge, true},
		{"throttled", http.StatusTooManyRequests, ErrTooManyRequests, true},
		{"server error", http.StatusServiceUnavailable, ErrServerError, true},
		{"teapot", http.StatusTeapot, ErrUnexpectedStatus, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte("nope"))
			}))
			defer srv.Close()

			err := newTestSender(t, srv.URL).Send(context.Background(), testEvents())
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), "nope")
			assert.Equal(t, tt.retryable, IsRetryable(err))
		})
	}
}

func TestSend_ContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := newTestSender(t, srv.URL).Send(ctx, testEvents())
	require.Error(t, err)
	assert.True(t, IsRetryable(err))
}

// ── Construction ────────────────────────────────────────────────────────────

func TestNewEventSender_NilURI(t *testing.T) {
	s, err := NewEventSender(EventSenderConfig{}, logger.Nop())
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestIsRetryable_Nil(t *testing.T) {
	assert.False(t, IsRetryable(nil))
}
