// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package streaming keeps the local store in sync with the FeatBit
// streaming service over a WebSocket.
package streaming

import (
	"errors"
	"net/url"
	"time"
)

var (
	// ErrInvalidSecret is returned when the server rejects the environment
	// secret. The synchronizer stops reconnecting after it.
	ErrInvalidSecret = errors.New("streaming: invalid environment secret")

	// ErrConnect wraps handshake failures.
	ErrConnect = errors.New("streaming: connect failed")
)

// Synchronizer feeds data sets into a store.
type Synchronizer interface {
	// Start launches synchronization. The returned channel is closed once
	// the first full data set has been applied or the synchronizer has
	// given up. Calling Start again returns the same channel.
	Start() <-chan struct{}

	// Initialized reports whether a full data set has been applied.
	Initialized() bool

	// Close stops synchronization and releases the connection.
	Close() error
}

// Settings are the configuration values the synchronizer reads. Offline is
// re-read before every reconnection.
type Settings interface {
	EnvSecret() string
	StreamingURI() *url.URL
	ConnectTimeout() time.Duration
	CloseTimeout() time.Duration
	KeepAliveInterval() time.Duration
	ReconnectRetryDelays() []time.Duration
	Offline() bool
}

// NullSynchronizer is used by offline clients. It is ready immediately and
// reports the given initialization state.
type NullSynchronizer struct {
	initialized bool
	ready       chan struct{}
}

// NewNullSynchronizer returns a synchronizer that never connects.
// initialized is typically whether bootstrap data was loaded.
func NewNullSynchronizer(initialized bool) *NullSynchronizer {
	ready := make(chan struct{})
	close(ready)
	return &NullSynchronizer{initialized: initialized, ready: ready}
}

func (n *NullSynchronizer) Start() <-chan struct{} { return n.ready }

func (n *NullSynchronizer) Initialized() bool { return n.initialized }

func (n *NullSynchronizer) Close() error { return nil }
