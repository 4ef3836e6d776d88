// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import "time"

const (
	// DefaultStreamingURI is the base URI of the streaming service used when
	// none is configured.
	DefaultStreamingURI = "ws://localhost:5100"

	// DefaultEventURI is the base URI of the event service used when none is
	// configured.
	DefaultEventURI = "http://localhost:5100"

	// DefaultStartWaitTime is how long NewClient blocks waiting for the first
	// data set.
	DefaultStartWaitTime = 5 * time.Second

	// MinStartWaitTime is the smallest accepted start wait time.
	MinStartWaitTime = time.Second

	// DefaultConnectTimeout bounds the WebSocket handshake.
	DefaultConnectTimeout = 3 * time.Second

	// DefaultCloseTimeout bounds the graceful WebSocket shutdown.
	DefaultCloseTimeout = 2 * time.Second

	// DefaultKeepAliveInterval is the ping period of the streaming connection.
	DefaultKeepAliveInterval = 15 * time.Second

	// DefaultFlushTimeout bounds a single event flush.
	DefaultFlushTimeout = 5 * time.Second

	// DefaultAutoFlushInterval is the period of automatic event flushes.
	DefaultAutoFlushInterval = 5 * time.Second

	// DefaultMaxEventsInQueue is the event buffer capacity.
	DefaultMaxEventsInQueue = 10_000

	// DefaultMaxEventPerRequest caps the number of events posted in one request.
	DefaultMaxEventPerRequest = 50

	// DefaultMaxSendEventAttempts is how many times a batch is posted before it
	// is dropped.
	DefaultMaxSendEventAttempts = 2

	// DefaultSendEventRetryInterval spaces the attempts of a failed batch.
	DefaultSendEventRetryInterval = 200 * time.Millisecond

	maxDefaultFlushWorkers = 4
)

// defaultReconnectRetryDelays is walked cyclically by the streaming component
// between reconnection attempts.
var defaultReconnectRetryDelays = []time.Duration{
	0,
	1 * time.Second,
	2 * time.Second,
	3 * time.Second,
	5 * time.Second,
	8 * time.Second,
	13 * time.Second,
	21 * time.Second,
	34 * time.Second,
	55 * time.Second,
}

// DefaultReconnectRetryDelays returns a copy of the built-in reconnection
// backoff schedule.
func DefaultReconnectRetryDelays() []time.Duration {
	delays := make([]time.Duration, len(defaultReconnectRetryDelays))
	copy(delays, defaultReconnectRetryDelays)
	return delays
}

// defaultMaxFlushWorker returns half of parallelism, floored at 1 and capped
// at 4.
func defaultMaxFlushWorker(parallelism int) int {
	return min(max(parallelism/2, 1), maxDefaultFlushWorkers)
}
