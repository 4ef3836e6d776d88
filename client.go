// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/featbit-go-sdk/internal/adapter"
	"github.com/MKhiriev/featbit-go-sdk/internal/bootstrap"
	"github.com/MKhiriev/featbit-go-sdk/internal/evaluator"
	"github.com/MKhiriev/featbit-go-sdk/internal/events"
	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/metrics"
	"github.com/MKhiriev/featbit-go-sdk/internal/store"
	"github.com/MKhiriev/featbit-go-sdk/internal/streaming"
	"github.com/MKhiriev/featbit-go-sdk/internal/workers"
)

// Client evaluates feature flags for users and reports insights to FeatBit.
// A Client is safe for concurrent use and should be shared by the whole
// application.
type Client struct {
	opts    *Options
	log     *logger.Logger
	metrics *metrics.Metrics

	store        store.Store
	evaluator    *evaluator.Evaluator
	synchronizer streaming.Synchronizer
	processor    events.Processor
	workers      *workers.Workers

	closed    atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewClient starts a client and blocks up to opts.StartWaitTime() for the
// first data set. A timeout is not an error: the client keeps connecting in
// the background and [Client.Initialized] reports when it is ready.
func NewClient(opts *Options) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("error creating client: %w", newConfigurationError("Options", "must not be nil"))
	}
	return newClient(opts)
}

// NewClientFromBootstrap starts an offline client seeded with data, either a
// data-sync message or a bare data set in FeatBit JSON. opts is copied; the
// caller's snapshot is left untouched.
func NewClientFromBootstrap(opts *Options, data []byte) (*Client, error) {
	if opts == nil {
		return nil, fmt.Errorf("error creating client: %w", newConfigurationError("Options", "must not be nil"))
	}

	provider, err := bootstrap.NewJSONProvider(data)
	if err != nil {
		return nil, fmt.Errorf("error creating client: %w", err)
	}

	own := opts.shallowCopy()
	own.setBootstrapProvider(provider)
	own.SetOffline(true)

	return newClient(own)
}

func newClient(opts *Options) (*Client, error) {
	factory := opts.LoggerFactory()
	c := &Client{
		opts:    opts,
		log:     logger.New(factory.CreateLogger("client")),
		metrics: metrics.New(),
		store:   store.NewMemoryStore(),
	}
	c.evaluator = evaluator.New(c.store)

	if ds, ok := opts.bootstrapProvider.DataSet(); ok {
		c.store.Apply(ds)
		c.metrics.DataUpdated(c.store.Version())
		c.log.Info().Int("flags", len(ds.FeatureFlags)).Int("segments", len(ds.Segments)).Msg("store seeded from bootstrap data")
	}

	if opts.Offline() {
		c.synchronizer = streaming.NewNullSynchronizer(c.store.Initialized())
		c.processor = events.NullProcessor{}
	} else {
		sender, err := adapter.NewEventSender(adapter.EventSenderConfig{
			EventURI:  opts.EventURI(),
			EnvSecret: opts.EnvSecret(),
		}, logger.New(factory.CreateLogger("event-sender")))
		if err != nil {
			return nil, fmt.Errorf("error creating client: %w", err)
		}
		c.processor = events.NewProcessor(opts, sender, logger.New(factory.CreateLogger("events")), c.metrics)
		c.synchronizer = streaming.NewWebSocketSynchronizer(opts, c.store, logger.New(factory.CreateLogger("streaming")), c.metrics)
	}
	c.workers = workers.New(workers.CloseFunc(c.processor.Close), c.synchronizer)

	c.waitForReady(c.synchronizer.Start(), opts.StartWaitTime())
	return c, nil
}

func (c *Client) waitForReady(ready <-chan struct{}, wait time.Duration) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ready:
	case <-timer.C:
		c.log.Warn().Dur("start_wait_time", wait).Msg("timed out waiting for the first data set")
	}

	if c.Initialized() {
		c.log.Info().Bool("offline", c.opts.Offline()).Msg("client is ready")
	} else {
		c.log.Warn().Bool("offline", c.opts.Offline()).Msg("client is not ready, evaluations will return default values")
	}
}

// Initialized reports whether the client holds a full data set.
func (c *Client) Initialized() bool {
	return c.synchronizer.Initialized()
}

// Options returns the live configuration snapshot. Its mutable fields may be
// tuned at runtime. For bootstrap clients this is the client's own copy.
func (c *Client) Options() *Options {
	return c.opts
}

// Metrics returns the client's Prometheus registry.
func (c *Client) Metrics() prometheus.Gatherer {
	return c.metrics.Gatherer()
}

// Flush asks for buffered insights to be sent without waiting.
func (c *Client) Flush() {
	c.processor.Flush()
}

// FlushAndWait flushes buffered insights and waits up to timeout for the
// delivery to complete.
func (c *Client) FlushAndWait(timeout time.Duration) bool {
	return c.processor.FlushAndWait(timeout)
}

// Close stops streaming, flushes pending insights and releases resources.
// Evaluations keep working from the last known data afterwards.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		c.closed.Store(true)
		c.closeErr = c.workers.Close()
		c.log.Info().Msg("client closed")
	})
	return c.closeErr
}
