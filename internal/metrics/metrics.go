// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics holds the Prometheus instruments of a client. Every client
// owns a private registry so several clients can live in one process.
//
// All methods are safe to call on a nil *Metrics, which records nothing.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "featbit_client"

// Drop causes reported by EventDropped.
const (
	DropQueueFull  = "queue_full"
	DropSendFailed = "send_failed"
	DropClosed     = "closed"
)

// Metrics is the set of client instruments.
type Metrics struct {
	registry *prometheus.Registry

	evaluations      *prometheus.CounterVec
	eventsRecorded   prometheus.Counter
	eventsDropped    *prometheus.CounterVec
	batchesSent      prometheus.Counter
	batchesFailed    prometheus.Counter
	streamConnects   prometheus.Counter
	streamReconnects prometheus.Counter
	dataUpdates      prometheus.Counter
	dataVersion      prometheus.Gauge
}

// New registers the client instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of flag evaluations, partitioned by reason kind.",
		}, []string{"kind"}),
		eventsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_recorded_total",
			Help:      "Total number of insight events accepted into the event buffer.",
		}),
		eventsDropped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_dropped_total",
			Help:      "Total number of insight events dropped, partitioned by cause.",
		}, []string{"cause"}),
		batchesSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_batches_sent_total",
			Help:      "Total number of event batches delivered to the event service.",
		}),
		batchesFailed: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_batches_failed_total",
			Help:      "Total number of event batches dropped after all attempts failed.",
		}),
		streamConnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_connects_total",
			Help:      "Total number of successful streaming connections.",
		}),
		streamReconnects: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stream_reconnects_total",
			Help:      "Total number of scheduled streaming reconnections.",
		}),
		dataUpdates: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "data_updates_total",
			Help:      "Total number of data sets that changed the local store.",
		}),
		dataVersion: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "data_version_timestamp_ms",
			Help:      "The timestamp (in milliseconds) of the newest item in the local store.",
		}),
	}
}

// Gatherer exposes the registry for scraping.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	if m == nil {
		return prometheus.NewRegistry()
	}
	return m.registry
}

func (m *Metrics) Evaluated(kind string) {
	if m != nil {
		m.evaluations.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) EventRecorded() {
	if m != nil {
		m.eventsRecorded.Inc()
	}
}

func (m *Metrics) EventsDropped(cause string, n int) {
	if m != nil && n > 0 {
		m.eventsDropped.WithLabelValues(cause).Add(float64(n))
	}
}

func (m *Metrics) BatchSent() {
	if m != nil {
		m.batchesSent.Inc()
	}
}

func (m *Metrics) BatchFailed() {
	if m != nil {
		m.batchesFailed.Inc()
	}
}

func (m *Metrics) StreamConnected() {
	if m != nil {
		m.streamConnects.Inc()
	}
}

func (m *Metrics) StreamReconnecting() {
	if m != nil {
		m.streamReconnects.Inc()
	}
}

// DataUpdated records a store change and the resulting store version.
func (m *Metrics) DataUpdated(version int64) {
	if m != nil {
		m.dataUpdates.Inc()
		m.dataVersion.Set(float64(version))
	}
}
