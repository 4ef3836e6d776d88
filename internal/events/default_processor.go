// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"context"
	"errors"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/errgroup"

	"github.com/MKhiriev/featbit-go-sdk/internal/adapter"
	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/metrics"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

type eventMessage struct {
	event models.Event
}

// flushMessage asks the dispatcher to flush. done, when set, is closed once
// every batch of the flush has been handled.
type flushMessage struct {
	done chan struct{}
}

type shutdownMessage struct {
	done chan struct{}
}

// defaultProcessor owns its buffer from a single dispatcher goroutine;
// Record, Flush and Close only talk to it through the inbox. At most one
// delivery runs at a time; flushes requested meanwhile are merged into the
// next one, so MaxFlushWorker bounds the senders of the whole processor.
type defaultProcessor struct {
	settings Settings
	sender   adapter.EventSender
	log      *logger.Logger
	metrics  *metrics.Metrics

	inbox  chan any
	buffer []models.Event

	ctx    context.Context
	cancel context.CancelFunc

	// flushes tracks in-flight deliveries.
	flushes sync.WaitGroup

	// delivered receives the waiters of a finished delivery.
	delivered chan []chan struct{}

	// dispatcher-owned delivery state
	inFlight bool
	pending  bool
	stopping bool
	waiters  []chan struct{}

	// dispatcherDone is closed when the dispatcher goroutine returns.
	dispatcherDone chan struct{}

	closed    atomic.Bool
	closeOnce sync.Once
	evicting  bool
}

// NewProcessor starts a processor delivering through sender. The inbox is
// sized from the queue capacity at construction time.
func NewProcessor(settings Settings, sender adapter.EventSender, log *logger.Logger, m *metrics.Metrics) Processor {
	ctx, cancel := context.WithCancel(context.Background())
	p := &defaultProcessor{
		settings:       settings,
		sender:         sender,
		log:            log,
		metrics:        m,
		inbox:          make(chan any, max(settings.MaxEventsInQueue(), 1)),
		ctx:            ctx,
		cancel:         cancel,
		delivered:      make(chan []chan struct{}, 1),
		dispatcherDone: make(chan struct{}),
	}
	go p.dispatch()
	return p
}

func (p *defaultProcessor) Record(e models.Event) bool {
	if e == nil || p.closed.Load() {
		return false
	}

	select {
	case p.inbox <- eventMessage{event: e}:
		p.metrics.EventRecorded()
		return true
	default:
		p.metrics.EventsDropped(metrics.DropQueueFull, 1)
		return false
	}
}

func (p *defaultProcessor) Flush() {
	if p.closed.Load() {
		return
	}
	select {
	case p.inbox <- flushMessage{}:
	default:
		p.log.Debug().Msg("event inbox is full, flush left to the next auto flush")
	}
}

func (p *defaultProcessor) FlushAndWait(timeout time.Duration) bool {
	if p.closed.Load() {
		return false
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	done := make(chan struct{})
	select {
	case p.inbox <- flushMessage{done: done}:
	case <-timer.C:
		return false
	}

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

func (p *defaultProcessor) Close() {
	p.closeOnce.Do(func() {
		p.closed.Store(true)

		done := make(chan struct{})
		p.inbox <- shutdownMessage{done: done}
		<-done
		<-p.dispatcherDone

		p.flushes.Wait()
		p.cancel()
		p.sender.Close()
		p.log.Info().Msg("event processor closed")
	})
}

func (p *defaultProcessor) dispatch() {
	defer close(p.dispatcherDone)

	timer := time.NewTimer(p.settings.AutoFlushInterval())
	defer timer.Stop()

	for {
		select {
		case msg := <-p.inbox:
			switch m := msg.(type) {
			case eventMessage:
				p.add(m.event)
			case flushMessage:
				p.flush(m.done)
			case shutdownMessage:
				p.stopping = true
				p.flush(m.done)
			}
		case waiters := <-p.delivered:
			p.inFlight = false
			closeAll(waiters)
			if p.pending {
				p.flush(nil)
			}
		case <-timer.C:
			p.flush(nil)
			timer.Reset(p.settings.AutoFlushInterval())
		}

		if p.stopping && !p.inFlight {
			return
		}
	}
}

// add appends e, evicting the oldest events when the buffer is full.
func (p *defaultProcessor) add(e models.Event) {
	capacity := max(p.settings.MaxEventsInQueue(), 1)
	if over := len(p.buffer) - capacity + 1; over > 0 {
		p.buffer = append(p.buffer[:0], p.buffer[over:]...)
		p.metrics.EventsDropped(metrics.DropQueueFull, over)
		if !p.evicting {
			p.evicting = true
			p.log.Warn().Int("capacity", capacity).Msg("event queue is full, dropping oldest events")
		}
	}
	p.buffer = append(p.buffer, e)
}

// flush hands the buffer to a delivery goroutine. While a delivery is in
// flight the request is only recorded and runs once that delivery is done.
func (p *defaultProcessor) flush(done chan struct{}) {
	p.evicting = false
	if done != nil {
		p.waiters = append(p.waiters, done)
	}

	if p.inFlight {
		if !p.pending {
			p.log.Debug().Msg("delivery in progress, flush deferred")
		}
		p.pending = true
		return
	}

	p.pending = false
	waiters := p.waiters
	p.waiters = nil

	if len(p.buffer) == 0 || p.settings.Offline() {
		if n := len(p.buffer); n > 0 {
			p.log.Debug().Int("events", n).Msg("client is offline, discarding events")
			p.buffer = p.buffer[:0]
		}
		closeAll(waiters)
		return
	}

	events := p.buffer
	p.buffer = nil
	p.inFlight = true

	p.flushes.Add(1)
	go func() {
		defer p.flushes.Done()
		p.deliver(events)
		p.delivered <- waiters
	}()
}

func closeAll(chans []chan struct{}) {
	for _, c := range chans {
		close(c)
	}
}

// deliver sends events in batches of at most MaxEventPerRequest with at most
// MaxFlushWorker concurrent senders, within FlushTimeout.
func (p *defaultProcessor) deliver(events []models.Event) {
	ctx, cancel := context.WithTimeout(p.ctx, p.settings.FlushTimeout())
	defer cancel()

	var g errgroup.Group
	g.SetLimit(max(p.settings.MaxFlushWorker(), 1))

	for batch := range slices.Chunk(events, max(p.settings.MaxEventPerRequest(), 1)) {
		g.Go(func() error {
			p.sendBatch(ctx, batch)
			return nil
		})
	}
	_ = g.Wait()
}

func (p *defaultProcessor) sendBatch(ctx context.Context, batch []models.Event) {
	attempts := max(p.settings.MaxSendEventAttempts(), 1)
	interval := p.settings.SendEventRetryInterval()

	backoff := retry.WithMaxRetries(uint64(attempts-1), retry.BackoffFunc(func() (time.Duration, bool) {
		return interval, false
	}))

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := p.sender.Send(ctx, batch)
		if adapter.IsRetryable(err) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err == nil {
		p.metrics.BatchSent()
		return
	}

	p.metrics.BatchFailed()
	p.metrics.EventsDropped(metrics.DropSendFailed, len(batch))

	if errors.Is(err, adapter.ErrUnauthorized) || errors.Is(err, adapter.ErrForbidden) {
		p.log.Error().Err(err).Int("events", len(batch)).Msg("event service rejected the environment secret")
		return
	}
	p.log.Warn().Err(err).Int("events", len(batch)).Int("attempts", attempts).Msg("dropping event batch")
}
