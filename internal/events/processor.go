// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package events buffers insight events and delivers them to the event
// service in batches.
package events

import (
	"time"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

// Processor accepts insight events for asynchronous delivery.
type Processor interface {
	// Record queues an event. It never blocks and reports whether the event
	// was accepted.
	Record(e models.Event) bool

	// Flush asks for the buffered events to be sent without waiting.
	Flush()

	// FlushAndWait flushes and waits up to timeout for the delivery to
	// finish. It reports whether the flush completed in time.
	FlushAndWait(timeout time.Duration) bool

	// Close flushes the remaining events and stops the processor.
	Close()
}

// Settings are the tuning values the processor reads. Every value is read
// at the moment it is used, so changes take effect without a restart.
type Settings interface {
	FlushTimeout() time.Duration
	MaxFlushWorker() int
	AutoFlushInterval() time.Duration
	MaxEventsInQueue() int
	MaxEventPerRequest() int
	MaxSendEventAttempts() int
	SendEventRetryInterval() time.Duration
	Offline() bool
}

// NullProcessor discards every event. Offline clients use it.
type NullProcessor struct{}

func (NullProcessor) Record(models.Event) bool { return false }

func (NullProcessor) Flush() {}

func (NullProcessor) FlushAndWait(time.Duration) bool { return true }

func (NullProcessor) Close() {}
