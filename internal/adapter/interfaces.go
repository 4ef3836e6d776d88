// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used to deliver insight events to
// the FeatBit event service.
//
// The primary abstraction is [EventSender], which decouples the event
// processor from the underlying protocol. The package ships a REST
// implementation built on resty ([NewEventSender]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] to decide whether a failed
// delivery is worth retrying (see [IsRetryable]).
package adapter

import (
	"context"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/event_sender_mock.go -package=mock

// EventSender delivers batches of insight events.
type EventSender interface {
	// Send posts events as one JSON array. It returns nil on a 2xx response
	// and a wrapped sentinel error otherwise.
	Send(ctx context.Context, events []models.Event) error

	// Close releases idle connections.
	Close()
}
