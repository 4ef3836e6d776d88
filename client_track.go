// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"strings"
	"time"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

// Track records a custom event with the value 1.
func (c *Client) Track(user models.User, eventName string) error {
	return c.TrackNumeric(user, eventName, 1)
}

// TrackNumeric records a custom event carrying value. Events are delivered
// asynchronously; offline clients discard them.
func (c *Client) TrackNumeric(user models.User, eventName string, value float64) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	if !user.IsValid() {
		return ErrInvalidUser
	}
	if strings.TrimSpace(eventName) == "" {
		return ErrInvalidEventName
	}

	if !c.processor.Record(models.NewMetricEvent(user, eventName, value, time.Now())) && !c.opts.Offline() {
		c.log.Debug().Str("event", eventName).Msg("custom event was not queued")
	}
	return nil
}
