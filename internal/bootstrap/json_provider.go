// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package bootstrap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

const dataSyncMessageType = "data-sync"

var (
	// ErrEmptyBootstrap is returned for empty or whitespace-only input.
	ErrEmptyBootstrap = errors.New("bootstrap data is empty")

	// ErrInvalidBootstrap is returned when the input is not a data set.
	ErrInvalidBootstrap = errors.New("bootstrap data is invalid")
)

// JSONProvider serves a data set parsed from JSON.
type JSONProvider struct {
	dataSet models.DataSet
}

type message struct {
	MessageType string          `json:"messageType"`
	Data        json.RawMessage `json:"data"`
}

// NewJSONProvider parses either a data-sync message
// ({"messageType":"data-sync","data":{...}}) or a bare data set. A data set
// without an event type is treated as full.
func NewJSONProvider(data []byte) (*JSONProvider, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyBootstrap
	}

	var msg message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBootstrap, err)
	}

	payload := data
	if msg.MessageType != "" {
		if msg.MessageType != dataSyncMessageType {
			return nil, fmt.Errorf("%w: unexpected message type %q", ErrInvalidBootstrap, msg.MessageType)
		}
		payload = msg.Data
	}

	var ds models.DataSet
	if err := json.Unmarshal(payload, &ds); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBootstrap, err)
	}
	if ds.EventType == "" {
		ds.EventType = models.EventTypeFull
	}

	return &JSONProvider{dataSet: ds}, nil
}

// DataSet returns the parsed data set. It reports false when the input held
// no flags and no segments.
func (p *JSONProvider) DataSet() (models.DataSet, bool) {
	return p.dataSet, !p.dataSet.IsEmpty()
}
