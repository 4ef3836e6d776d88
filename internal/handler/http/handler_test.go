// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	featbit "github.com/MKhiriev/featbit-go-sdk"
	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/utils"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

const testDataSet = `{
	"featureFlags": [
		{
			"id": "f1", "key": "beta", "variationType": "boolean", "isEnabled": true,
			"variations": [{"id": "on", "value": "true"}, {"id": "off", "value": "false"}],
			"targetUsers": [{"keyIds": ["vip"], "variationId": "on"}],
			"rules": [{
				"id": "r1", "name": "germany",
				"conditions": [{"property": "country", "op": "Equal", "value": "DE"}],
				"variations": [{"id": "on", "rollout": [0, 1]}]
			}],
			"fallthrough": {"variations": [{"id": "off", "rollout": [0, 1]}]},
			"updatedAt": "2024-05-01T10:00:00Z"
		},
		{
			"id": "f2", "key": "banner", "variationType": "string", "isEnabled": true,
			"variations": [{"id": "b", "value": "spring-sale"}],
			"fallthrough": {"variations": [{"id": "b", "rollout": [0, 1]}]},
			"updatedAt": "2024-05-01T10:00:00Z"
		}
	]
}`

// ── Helpers ─────────────────────────────────────────────────────────────────

func newTestClient(t *testing.T) *featbit.Client {
	t.Helper()
	opts, err := featbit.Default("secret")
	require.NoError(t, err)
	client, err := featbit.NewClientFromBootstrap(opts, []byte(testDataSet))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func newTestHandler(t *testing.T, client FlagClient, log *logger.Logger) *Handler {
	t.Helper()
	if log == nil {
		log = logger.Nop()
	}
	return NewHandler(client, models.NewAppBuildInfo("1.2.3", "2026-10-01", "abc123"), 5*time.Second, log)
}

func serve(h http.Handler, method, target string, body io.Reader, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// ── Flags ───────────────────────────────────────────────────────────────────

func TestAllFlags(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	rr := serve(router, http.MethodGet, "/api/flags?user=vip", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var states []models.FlagState
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &states))
	require.Len(t, states, 2)
	assert.Equal(t, "banner", states[0].Key)
	assert.Equal(t, "spring-sale", states[0].Value)
	assert.Equal(t, "beta", states[1].Key)
	assert.Equal(t, "true", states[1].Value)
	assert.Equal(t, models.KindTargetMatch, states[1].Kind)
}

func TestAllFlags_UserRequired(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	rr := serve(router, http.MethodGet, "/api/flags", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "`user` is required")
}

func TestFlag(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	tests := []struct {
		name       string
		target     string
		wantStatus int
		wantValue  string
		wantReason string
	}{
		{"rule match on query property", "/api/flags/beta?user=u-1&country=DE", http.StatusOK, "true", "match rule germany"},
		{"fallthrough", "/api/flags/beta?user=u-1&country=FR", http.StatusOK, "false", models.ReasonFallthrough},
		{"flag not found", "/api/flags/missing?user=u-1", http.StatusNotFound, "", models.ReasonFlagNotFound},
		{"missing user", "/api/flags/beta", http.StatusBadRequest, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodGet, tt.target, nil, nil)
			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusBadRequest {
				return
			}

			var resp flagResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantValue, resp.Value)
			assert.Equal(t, tt.wantReason, resp.Reason)
		})
	}
}

// ── Track / flush / status ──────────────────────────────────────────────────

func TestTrack(t *testing.T) {
	client := newTestClient(t)
	router := newTestHandler(t, client, nil).Init()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"valid", `{"user":{"keyId":"u-1","customizedProperties":[{"name":"plan","value":"pro"}]},"event":"checkout","value":19.9}`, http.StatusAccepted},
		{"default value", `{"user":{"keyId":"u-1"},"event":"click"}`, http.StatusAccepted},
		{"invalid json", `{"user":`, http.StatusBadRequest},
		{"missing user", `{"user":{},"event":"click"}`, http.StatusBadRequest},
		{"missing event", `{"user":{"keyId":"u-1"},"event":" "}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(router, http.MethodPost, "/api/track", strings.NewReader(tt.body), nil)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}

	require.NoError(t, client.Close())
	rr := serve(router, http.MethodPost, "/api/track", strings.NewReader(`{"user":{"keyId":"u-1"},"event":"click"}`), nil)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestFlush(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	rr := serve(router, http.MethodPost, "/api/flush", nil, nil)
	assert.Equal(t, http.StatusAccepted, rr.Code)
}

func TestStatus(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	rr := serve(router, http.MethodGet, "/api/status", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"initialized":true,"version":"1.2.3","buildDate":"2026-10-01","buildCommit":"abc123"}`, rr.Body.String())
}

func TestMethodNotAllowed(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	rr := serve(router, http.MethodPost, "/api/status", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestMetrics(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()
	serve(router, http.MethodGet, "/api/flags/beta?user=u-1", nil, nil)

	rr := serve(router, http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "featbit_client_evaluations_total")
}

// ── Middleware ──────────────────────────────────────────────────────────────

func TestWithTraceID(t *testing.T) {
	h := newTestHandler(t, newTestClient(t), nil)

	var ctxTraceID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxTraceID, _ = utils.GetTraceIDFromContext(r.Context())
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		rr := serve(h.withTraceID(next), http.MethodGet, "/", nil, map[string]string{traceIDHeader: "my-trace"})
		assert.Equal(t, "my-trace", rr.Header().Get(traceIDHeader))
		assert.Equal(t, "my-trace", ctxTraceID)
	})

	t.Run("generates uuid", func(t *testing.T) {
		rr := serve(h.withTraceID(next), http.MethodGet, "/", nil, nil)
		id, err := uuid.Parse(rr.Header().Get(traceIDHeader))
		require.NoError(t, err)
		assert.Equal(t, uuid.Version(7), id.Version())
		assert.Equal(t, id.String(), ctxTraceID)
	})
}

func TestWithLogging(t *testing.T) {
	var buf bytes.Buffer
	h := newTestHandler(t, newTestClient(t), logger.New(zerolog.New(&buf)))
	router := h.Init()

	serve(router, http.MethodGet, "/api/flags?user=vip", nil, map[string]string{traceIDHeader: "trace-1"})

	var entry map[string]any
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &entry))
	assert.Equal(t, "/api/flags?user=vip", entry["uri"])
	assert.Equal(t, "GET", entry["method"])
	assert.EqualValues(t, http.StatusOK, entry["status"])
	assert.Equal(t, "trace-1", entry["trace_id"])
	assert.Greater(t, entry["size"], float64(0))
}

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	w := &responseWriter{ResponseWriter: rr}

	_, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	w.WriteHeader(http.StatusTeapot)
	_, err = w.Write([]byte(" world"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestWithGZip(t *testing.T) {
	router := newTestHandler(t, newTestClient(t), nil).Init()

	t.Run("compresses response", func(t *testing.T) {
		rr := serve(router, http.MethodGet, "/api/status", nil, map[string]string{"Accept-Encoding": "gzip"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(rr.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)
		assert.Contains(t, string(body), `"initialized":true`)
	})

	t.Run("decompresses request", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		_, _ = zw.Write([]byte(`{"user":{"keyId":"u-1"},"event":"click"}`))
		require.NoError(t, zw.Close())

		rr := serve(router, http.MethodPost, "/api/track", &buf, map[string]string{"Content-Encoding": "gzip"})
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
	})

	t.Run("rejects corrupt request", func(t *testing.T) {
		rr := serve(router, http.MethodPost, "/api/track", strings.NewReader("not gzip"), map[string]string{"Content-Encoding": "gzip"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty body stays empty", func(t *testing.T) {
		rr := serve(router, http.MethodPost, "/api/flush", nil, map[string]string{"Accept-Encoding": "gzip"})
		assert.Equal(t, http.StatusAccepted, rr.Code)
		assert.Zero(t, rr.Body.Len())
		assert.Empty(t, rr.Header().Get("Content-Encoding"))
	})
}
