// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
)

const contentTypeJSON = "application/json"

// ErrorBody is the JSON body written by [WriteError].
type ErrorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status. The body is
// encoded before any header is sent, so an encoding failure still leaves the
// writer untouched and is answered with 500.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return fmt.Errorf("error encoding response: %w", err)
	}

	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(status)
	if _, err = w.Write(body); err != nil {
		return fmt.Errorf("error writing response: %w", err)
	}
	return nil
}

// WriteError answers with {"error": err.Error()} and the given status.
func WriteError(w http.ResponseWriter, status int, err error) {
	_ = WriteJSON(w, status, ErrorBody{Error: err.Error()})
}
