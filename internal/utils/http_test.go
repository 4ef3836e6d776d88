// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		value    any
		wantBody string
	}{
		{name: "object", status: http.StatusOK, value: map[string]string{"key": "value"}, wantBody: `{"key":"value"}`},
		{name: "empty slice", status: http.StatusOK, value: []int{}, wantBody: `[]`},
		{name: "nil", status: http.StatusNotFound, value: nil, wantBody: `null`},
		{name: "custom status", status: http.StatusAccepted, value: struct {
			Accepted bool `json:"accepted"`
		}{true}, wantBody: `{"accepted":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			require.NoError(t, WriteJSON(rr, tt.status, tt.value))

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.JSONEq(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestWriteJSON_EncodingFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	err := WriteJSON(rr, http.StatusOK, make(chan int))

	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotEqual(t, "application/json", rr.Header().Get("Content-Type"))
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	WriteError(rr, http.StatusBadRequest, errors.New("query parameter `user` is required"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"query parameter `+"`user`"+` is required"}`, rr.Body.String())
}
