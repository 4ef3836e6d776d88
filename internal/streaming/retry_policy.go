// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import "time"

const fallbackRetryDelay = time.Second

// RetryPolicy walks a reconnection schedule cyclically. It is not safe for
// concurrent use; the synchronizer loop owns it.
type RetryPolicy struct {
	delays []time.Duration
	next   int
}

// NewRetryPolicy copies delays. An empty schedule falls back to one second.
func NewRetryPolicy(delays []time.Duration) *RetryPolicy {
	if len(delays) == 0 {
		delays = []time.Duration{fallbackRetryDelay}
	}
	return &RetryPolicy{delays: append([]time.Duration(nil), delays...)}
}

// Next returns the delay before the next attempt, wrapping to the first
// delay after the last.
func (p *RetryPolicy) Next() time.Duration {
	d := p.delays[p.next]
	p.next = (p.next + 1) % len(p.delays)
	return d
}

// Reset restarts the schedule after a successful connection.
func (p *RetryPolicy) Reset() {
	p.next = 0
}
