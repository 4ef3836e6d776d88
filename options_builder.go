// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"fmt"
	"runtime"
	"time"

	"github.com/MKhiriev/featbit-go-sdk/internal/bootstrap"
)

// OptionsBuilder accumulates overrides on top of the documented defaults and
// produces a validated [Options] snapshot.
//
//	opts, err := featbit.NewOptionsBuilder(secret).
//	    Streaming("wss://featbit.example.com").
//	    Event("https://featbit.example.com").
//	    StartWaitTime(10 * time.Second).
//	    Build()
//
// A builder is a plain value holder: it performs no validation until Build and
// may be reused to build several snapshots.
type OptionsBuilder struct {
	envSecret              string
	startWaitTime          time.Duration
	offline                bool
	streamingURI           string
	eventURI               string
	connectTimeout         time.Duration
	closeTimeout           time.Duration
	keepAliveInterval      time.Duration
	reconnectRetryDelays   []time.Duration
	flushTimeout           time.Duration
	maxFlushWorker         int
	autoFlushInterval      time.Duration
	maxEventsInQueue       int
	maxEventPerRequest     int
	maxSendEventAttempts   int
	sendEventRetryInterval time.Duration
	loggerFactory          LoggerFactory
}

// NewOptionsBuilder returns a builder for the environment identified by
// envSecret with every other field at its default.
func NewOptionsBuilder(envSecret string) *OptionsBuilder {
	return newOptionsBuilder(envSecret, runtime.NumCPU())
}

func newOptionsBuilder(envSecret string, parallelism int) *OptionsBuilder {
	return &OptionsBuilder{
		envSecret:              envSecret,
		startWaitTime:          DefaultStartWaitTime,
		streamingURI:           DefaultStreamingURI,
		eventURI:               DefaultEventURI,
		connectTimeout:         DefaultConnectTimeout,
		closeTimeout:           DefaultCloseTimeout,
		keepAliveInterval:      DefaultKeepAliveInterval,
		reconnectRetryDelays:   DefaultReconnectRetryDelays(),
		flushTimeout:           DefaultFlushTimeout,
		maxFlushWorker:         defaultMaxFlushWorker(parallelism),
		autoFlushInterval:      DefaultAutoFlushInterval,
		maxEventsInQueue:       DefaultMaxEventsInQueue,
		maxEventPerRequest:     DefaultMaxEventPerRequest,
		maxSendEventAttempts:   DefaultMaxSendEventAttempts,
		sendEventRetryInterval: DefaultSendEventRetryInterval,
		loggerFactory:          NopLoggerFactory{},
	}
}

// StartWaitTime sets how long NewClient blocks awaiting the first data set.
// Must be at least one second.
func (b *OptionsBuilder) StartWaitTime(d time.Duration) *OptionsBuilder {
	b.startWaitTime = d
	return b
}

// Offline makes the client evaluate from local data only.
func (b *OptionsBuilder) Offline(offline bool) *OptionsBuilder {
	b.offline = offline
	return b
}

// Streaming sets the base URI of the streaming service (ws or wss).
func (b *OptionsBuilder) Streaming(uri string) *OptionsBuilder {
	b.streamingURI = uri
	return b
}

// Event sets the base URI of the event service (http or https).
func (b *OptionsBuilder) Event(uri string) *OptionsBuilder {
	b.eventURI = uri
	return b
}

// ConnectTimeout sets the WebSocket handshake timeout.
func (b *OptionsBuilder) ConnectTimeout(d time.Duration) *OptionsBuilder {
	b.connectTimeout = d
	return b
}

// CloseTimeout sets the graceful WebSocket shutdown timeout.
func (b *OptionsBuilder) CloseTimeout(d time.Duration) *OptionsBuilder {
	b.closeTimeout = d
	return b
}

// KeepAliveInterval sets the ping period of the streaming connection.
func (b *OptionsBuilder) KeepAliveInterval(d time.Duration) *OptionsBuilder {
	b.keepAliveInterval = d
	return b
}

// ReconnectRetryDelays replaces the reconnection backoff schedule. The delays
// are used cyclically.
func (b *OptionsBuilder) ReconnectRetryDelays(delays ...time.Duration) *OptionsBuilder {
	b.reconnectRetryDelays = append([]time.Duration(nil), delays...)
	return b
}

// FlushTimeout sets the event flush timeout.
func (b *OptionsBuilder) FlushTimeout(d time.Duration) *OptionsBuilder {
	b.flushTimeout = d
	return b
}

// MaxFlushWorker sets the maximum number of concurrent event senders.
func (b *OptionsBuilder) MaxFlushWorker(n int) *OptionsBuilder {
	b.maxFlushWorker = n
	return b
}

// AutoFlushInterval sets the period of automatic event flushes.
func (b *OptionsBuilder) AutoFlushInterval(d time.Duration) *OptionsBuilder {
	b.autoFlushInterval = d
	return b
}

// MaxEventsInQueue sets the event buffer capacity.
func (b *OptionsBuilder) MaxEventsInQueue(n int) *OptionsBuilder {
	b.maxEventsInQueue = n
	return b
}

// MaxEventPerRequest sets the maximum number of events posted in one request.
func (b *OptionsBuilder) MaxEventPerRequest(n int) *OptionsBuilder {
	b.maxEventPerRequest = n
	return b
}

// MaxSendEventAttempts sets how many times a batch is posted before it is
// dropped.
func (b *OptionsBuilder) MaxSendEventAttempts(n int) *OptionsBuilder {
	b.maxSendEventAttempts = n
	return b
}

// SendEventRetryInterval sets the spacing between attempts of a failed batch.
func (b *OptionsBuilder) SendEventRetryInterval(d time.Duration) *OptionsBuilder {
	b.sendEventRetryInterval = d
	return b
}

// LoggerFactory sets the log sink shared by all client components.
func (b *OptionsBuilder) LoggerFactory(f LoggerFactory) *OptionsBuilder {
	b.loggerFactory = f
	return b
}

// Build validates the accumulated values and returns a new snapshot. On
// failure no snapshot is returned and the error joins one [ConfigurationError]
// per offending field.
func (b *OptionsBuilder) Build() (*Options, error) {
	streamingURI, eventURI, err := b.validate()
	if err != nil {
		return nil, fmt.Errorf("error building options: %w", err)
	}

	opts := &Options{
		startWaitTime:          b.startWaitTime,
		envSecret:              b.envSecret,
		streamingURI:           streamingURI,
		eventURI:               eventURI,
		connectTimeout:         b.connectTimeout,
		closeTimeout:           b.closeTimeout,
		keepAliveInterval:      b.keepAliveInterval,
		reconnectRetryDelays:   append([]time.Duration(nil), b.reconnectRetryDelays...),
		loggerFactory:          b.loggerFactory,
		offline:                b.offline,
		flushTimeout:           b.flushTimeout,
		maxFlushWorker:         b.maxFlushWorker,
		autoFlushInterval:      b.autoFlushInterval,
		maxEventsInQueue:       b.maxEventsInQueue,
		maxEventPerRequest:     b.maxEventPerRequest,
		maxSendEventAttempts:   b.maxSendEventAttempts,
		sendEventRetryInterval: b.sendEventRetryInterval,
		bootstrapProvider:      bootstrap.NullProvider{},
	}

	return opts, nil
}
