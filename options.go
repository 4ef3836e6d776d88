// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"net/url"
	"time"

	"github.com/MKhiriev/featbit-go-sdk/internal/bootstrap"
)

// Options is a validated configuration snapshot of a [Client].
//
// Options values are produced only by [OptionsBuilder.Build] (or [Default]),
// so every field is populated and valid. Read-only fields are fixed for the
// lifetime of the snapshot. The event tuning fields and Offline may be changed
// in place through their setters; client components re-read them on use.
//
// Options carries no synchronization. Reads are safe from any goroutine;
// callers that mutate a snapshot after the client has started from more than
// one goroutine must synchronize those writes themselves.
type Options struct {
	// read-only
	startWaitTime        time.Duration
	envSecret            string
	streamingURI         *url.URL
	eventURI             *url.URL
	connectTimeout       time.Duration
	closeTimeout         time.Duration
	keepAliveInterval    time.Duration
	reconnectRetryDelays []time.Duration
	loggerFactory        LoggerFactory

	// mutable
	offline                bool
	flushTimeout           time.Duration
	maxFlushWorker         int
	autoFlushInterval      time.Duration
	maxEventsInQueue       int
	maxEventPerRequest     int
	maxSendEventAttempts   int
	sendEventRetryInterval time.Duration

	// set only by the client's bootstrap path
	bootstrapProvider bootstrap.Provider
}

// Default returns a snapshot with every field at its documented default.
func Default(envSecret string) (*Options, error) {
	return NewOptionsBuilder(envSecret).Build()
}

// StartWaitTime is how long NewClient blocks awaiting the first data set.
func (o *Options) StartWaitTime() time.Duration { return o.startWaitTime }

// EnvSecret identifies the FeatBit environment.
func (o *Options) EnvSecret() string { return o.envSecret }

// StreamingURI returns the base URI of the streaming service.
func (o *Options) StreamingURI() *url.URL { return cloneURL(o.streamingURI) }

// EventURI returns the base URI of the event service.
func (o *Options) EventURI() *url.URL { return cloneURL(o.eventURI) }

// ConnectTimeout bounds the WebSocket handshake.
func (o *Options) ConnectTimeout() time.Duration { return o.connectTimeout }

// CloseTimeout bounds the graceful WebSocket shutdown.
func (o *Options) CloseTimeout() time.Duration { return o.closeTimeout }

// KeepAliveInterval is the ping period of the streaming connection.
func (o *Options) KeepAliveInterval() time.Duration { return o.keepAliveInterval }

// ReconnectRetryDelays returns the reconnection backoff schedule. The returned
// slice is a copy.
func (o *Options) ReconnectRetryDelays() []time.Duration {
	delays := make([]time.Duration, len(o.reconnectRetryDelays))
	copy(delays, o.reconnectRetryDelays)
	return delays
}

// LoggerFactory returns the sink shared by all client components.
func (o *Options) LoggerFactory() LoggerFactory { return o.loggerFactory }

// Offline reports whether the client must stay away from the network.
func (o *Options) Offline() bool { return o.offline }

// SetOffline switches offline mode.
func (o *Options) SetOffline(offline bool) { o.offline = offline }

// FlushTimeout bounds a single event flush.
func (o *Options) FlushTimeout() time.Duration { return o.flushTimeout }

// SetFlushTimeout changes the flush timeout. Non-positive values are ignored.
func (o *Options) SetFlushTimeout(d time.Duration) {
	if d > 0 {
		o.flushTimeout = d
	}
}

// MaxFlushWorker is the maximum number of concurrent event senders.
func (o *Options) MaxFlushWorker() int { return o.maxFlushWorker }

// SetMaxFlushWorker changes the sender limit. Values below 1 are ignored.
func (o *Options) SetMaxFlushWorker(n int) {
	if n >= 1 {
		o.maxFlushWorker = n
	}
}

// AutoFlushInterval is the period of automatic event flushes.
func (o *Options) AutoFlushInterval() time.Duration { return o.autoFlushInterval }

// SetAutoFlushInterval changes the auto flush period. Non-positive values are
// ignored.
func (o *Options) SetAutoFlushInterval(d time.Duration) {
	if d > 0 {
		o.autoFlushInterval = d
	}
}

// MaxEventsInQueue is the event buffer capacity.
func (o *Options) MaxEventsInQueue() int { return o.maxEventsInQueue }

// SetMaxEventsInQueue changes the buffer capacity. Values below 1 are ignored.
func (o *Options) SetMaxEventsInQueue(n int) {
	if n >= 1 {
		o.maxEventsInQueue = n
	}
}

// MaxEventPerRequest caps the number of events posted in one request.
func (o *Options) MaxEventPerRequest() int { return o.maxEventPerRequest }

// SetMaxEventPerRequest changes the batch cap. Values below 1 are ignored.
func (o *Options) SetMaxEventPerRequest(n int) {
	if n >= 1 {
		o.maxEventPerRequest = n
	}
}

// MaxSendEventAttempts is how many times a batch is posted before it is
// dropped.
func (o *Options) MaxSendEventAttempts() int { return o.maxSendEventAttempts }

// SetMaxSendEventAttempts changes the attempt limit. Values below 1 are ignored.
func (o *Options) SetMaxSendEventAttempts(n int) {
	if n >= 1 {
		o.maxSendEventAttempts = n
	}
}

// SendEventRetryInterval spaces the attempts of a failed batch.
func (o *Options) SendEventRetryInterval() time.Duration { return o.sendEventRetryInterval }

// SetSendEventRetryInterval changes the retry spacing. Negative values are
// ignored.
func (o *Options) SetSendEventRetryInterval(d time.Duration) {
	if d >= 0 {
		o.sendEventRetryInterval = d
	}
}

// shallowCopy returns an independent snapshot. Mutable fields get their own
// storage; the retry delays, logger factory and bootstrap provider are shared.
func (o *Options) shallowCopy() *Options {
	c := *o
	return &c
}

// setBootstrapProvider installs the provider used to seed the data store. A
// nil provider restores the null provider.
func (o *Options) setBootstrapProvider(p bootstrap.Provider) {
	if p == nil {
		p = bootstrap.NullProvider{}
	}
	o.bootstrapProvider = p
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return nil
	}
	c := *u
	return &c
}
