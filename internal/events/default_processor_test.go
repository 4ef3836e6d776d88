// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package events

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/featbit-go-sdk/internal/adapter"
	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/metrics"
	"github.com/MKhiriev/featbit-go-sdk/internal/mock"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testSettings struct {
	flushTimeout      atomic.Int64
	maxFlushWorker    atomic.Int64
	autoFlushInterval atomic.Int64
	maxEventsInQueue  atomic.Int64
	maxEventPerReq    atomic.Int64
	maxAttempts       atomic.Int64
	retryInterval     atomic.Int64
	offline           atomic.Bool
}

func newTestSettings() *testSettings {
	s := &testSettings{}
	s.flushTimeout.Store(int64(2 * time.Second))
	s.maxFlushWorker.Store(2)
	s.autoFlushInterval.Store(int64(time.Hour))
	s.maxEventsInQueue.Store(100)
	s.maxEventPerReq.Store(50)
	s.maxAttempts.Store(2)
	s.retryInterval.Store(0)
	return s
}

func (s *testSettings) FlushTimeout() time.Duration { return time.Duration(s.flushTimeout.Load()) }
func (s *testSettings) MaxFlushWorker() int         { return int(s.maxFlushWorker.Load()) }
func (s *testSettings) AutoFlushInterval() time.Duration {
	return time.Duration(s.autoFlushInterval.Load())
}
func (s *testSettings) MaxEventsInQueue() int     { return int(s.maxEventsInQueue.Load()) }
func (s *testSettings) MaxEventPerRequest() int   { return int(s.maxEventPerReq.Load()) }
func (s *testSettings) MaxSendEventAttempts() int { return int(s.maxAttempts.Load()) }
func (s *testSettings) SendEventRetryInterval() time.Duration {
	return time.Duration(s.retryInterval.Load())
}
func (s *testSettings) Offline() bool { return s.offline.Load() }

func newTestProcessor(t *testing.T, settings Settings) (Processor, *mock.MockEventSender) {
	t.Helper()
	ctrl := gomock.NewController(t)
	sender := mock.NewMockEventSender(ctrl)
	sender.EXPECT().Close().AnyTimes()

	m := metrics.New()
	p := NewProcessor(settings, sender, logger.Nop(), m)
	t.Cleanup(p.Close)
	return p, sender
}

func metricEvent(key string) models.Event {
	return models.NewMetricEvent(models.NewUserBuilder(key).Build(), "click", 1, time.Now())
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestProcessor_FlushSplitsIntoBatches(t *testing.T) {
	settings := newTestSettings()
	settings.maxEventPerReq.Store(2)
	p, sender := newTestProcessor(t, settings)

	var mu sync.Mutex
	var sizes []int
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, batch []models.Event) error {
		mu.Lock()
		sizes = append(sizes, len(batch))
		mu.Unlock()
		return nil
	}).Times(3)

	for i := range 5 {
		require.True(t, p.Record(metricEvent(fmt.Sprintf("u-%d", i))))
	}
	require.True(t, p.FlushAndWait(time.Second))

	mu.Lock()
	defer mu.Unlock()
	slices.Sort(sizes)
	assert.Equal(t, []int{1, 2, 2}, sizes)
}

func TestProcessor_EvictsOldestWhenFull(t *testing.T) {
	settings := newTestSettings()
	p, sender := newTestProcessor(t, settings)

	var got []string
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, batch []models.Event) error {
		for _, e := range batch {
			got = append(got, e.UserKey())
		}
		return nil
	}).Times(1)

	// the inbox was sized at construction; the buffer capacity is read live
	settings.maxEventsInQueue.Store(3)
	for i := range 5 {
		require.True(t, p.Record(metricEvent(fmt.Sprintf("u-%d", i))))
	}

	require.True(t, p.FlushAndWait(time.Second))
	assert.Equal(t, []string{"u-2", "u-3", "u-4"}, got)
}

func TestProcessor_RetriesRetryableErrors(t *testing.T) {
	p, sender := newTestProcessor(t, newTestSettings())

	gomock.InOrder(
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(adapter.ErrServerError),
		sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil),
	)

	p.Record(metricEvent("u-1"))
	require.True(t, p.FlushAndWait(time.Second))
}

func TestProcessor_DoesNotRetryRejectedSecret(t *testing.T) {
	settings := newTestSettings()
	settings.maxAttempts.Store(5)
	p, sender := newTestProcessor(t, settings)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(fmt.Errorf("%w: bad key", adapter.ErrUnauthorized)).Times(1)

	p.Record(metricEvent("u-1"))
	require.True(t, p.FlushAndWait(time.Second))
}

func TestProcessor_GivesUpAfterMaxAttempts(t *testing.T) {
	settings := newTestSettings()
	settings.maxAttempts.Store(3)
	settings.retryInterval.Store(int64(time.Millisecond))
	p, sender := newTestProcessor(t, settings)

	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(adapter.ErrServerError).Times(3)

	p.Record(metricEvent("u-1"))
	require.True(t, p.FlushAndWait(time.Second))
}

func TestProcessor_AutoFlush(t *testing.T) {
	settings := newTestSettings()
	settings.autoFlushInterval.Store(int64(20 * time.Millisecond))
	p, sender := newTestProcessor(t, settings)

	sent := make(chan struct{}, 1)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, []models.Event) error {
		sent <- struct{}{}
		return nil
	}).Times(1)

	p.Record(metricEvent("u-1"))

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("auto flush did not happen")
	}
}

func TestProcessor_RespectsLiveWorkerLimit(t *testing.T) {
	settings := newTestSettings()
	settings.maxEventPerReq.Store(1)
	settings.maxFlushWorker.Store(4)
	p, sender := newTestProcessor(t, settings)

	var inFlight, peak atomic.Int32
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(func(context.Context, []models.Event) error {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		inFlight.Add(-1)
		return nil
	}).Times(4)

	// lowered after construction; the next flush must honour it
	settings.maxFlushWorker.Store(1)
	for i := range 4 {
		p.Record(metricEvent(fmt.Sprintf("u-%d", i)))
	}
	require.True(t, p.FlushAndWait(2*time.Second))
	assert.Equal(t, int32(1), peak.Load())
}

// trackConcurrency returns a Send stub that sleeps for d, plus the peak number
// of overlapping calls and the total number of events sent.
func trackConcurrency(d time.Duration) (func(context.Context, []models.Event) error, *atomic.Int32, *atomic.Int32) {
	var inFlight, peak, sent atomic.Int32
	return func(_ context.Context, batch []models.Event) error {
		n := inFlight.Add(1)
		for {
			old := peak.Load()
			if n <= old || peak.CompareAndSwap(old, n) {
				break
			}
		}
		time.Sleep(d)
		sent.Add(int32(len(batch)))
		inFlight.Add(-1)
		return nil
	}, &peak, &sent
}

func TestProcessor_OverlappingFlushesShareWorkerLimit(t *testing.T) {
	settings := newTestSettings()
	settings.maxFlushWorker.Store(1)
	p, sender := newTestProcessor(t, settings)

	send, peak, sent := trackConcurrency(50 * time.Millisecond)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(send).AnyTimes()

	for i := range 5 {
		p.Record(metricEvent(fmt.Sprintf("u-%d", i)))
		p.Flush()
	}
	require.True(t, p.FlushAndWait(3*time.Second))

	assert.Equal(t, int32(1), peak.Load())
	assert.Equal(t, int32(5), sent.Load())
}

func TestProcessor_CloseWaitsForDeliveryInFlight(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock.NewMockEventSender(ctrl)
	send, peak, sent := trackConcurrency(50 * time.Millisecond)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).DoAndReturn(send).Times(2)
	sender.EXPECT().Close().Times(1)

	p := NewProcessor(newTestSettings(), sender, logger.Nop(), nil)
	p.Record(metricEvent("u-1"))
	p.Flush()
	p.Record(metricEvent("u-2"))
	p.Close()

	assert.Equal(t, int32(1), peak.Load())
	assert.Equal(t, int32(2), sent.Load())
}

func TestProcessor_FlushWithFullInboxIsLogged(t *testing.T) {
	var buf bytes.Buffer
	p := &defaultProcessor{
		settings: newTestSettings(),
		log:      logger.New(zerolog.New(&buf)),
		inbox:    make(chan any, 1),
	}
	p.inbox <- eventMessage{event: metricEvent("u-1")}

	p.Flush()

	assert.Contains(t, buf.String(), "flush left to the next auto flush")
	assert.Len(t, p.inbox, 1)
}

func TestProcessor_OfflineDiscards(t *testing.T) {
	settings := newTestSettings()
	p, sender := newTestProcessor(t, settings)
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	settings.offline.Store(true)
	p.Record(metricEvent("u-1"))

	assert.True(t, p.FlushAndWait(time.Second))
}

func TestProcessor_CloseFlushesAndRejects(t *testing.T) {
	ctrl := gomock.NewController(t)
	sender := mock.NewMockEventSender(ctrl)
	sender.EXPECT().Send(gomock.Any(), gomock.Len(2)).Return(nil).Times(1)
	sender.EXPECT().Close().Times(1)

	p := NewProcessor(newTestSettings(), sender, logger.Nop(), nil)
	p.Record(metricEvent("u-1"))
	p.Record(metricEvent("u-2"))

	p.Close()
	p.Close()

	assert.False(t, p.Record(metricEvent("u-3")))
	assert.False(t, p.FlushAndWait(10*time.Millisecond))
	assert.NotPanics(t, p.Flush)
}

func TestProcessor_EmptyFlushCompletes(t *testing.T) {
	p, sender := newTestProcessor(t, newTestSettings())
	sender.EXPECT().Send(gomock.Any(), gomock.Any()).Times(0)

	p.Flush()
	assert.True(t, p.FlushAndWait(time.Second))
	assert.False(t, p.Record(nil))
}

func TestNullProcessor(t *testing.T) {
	var p Processor = NullProcessor{}

	assert.False(t, p.Record(metricEvent("u-1")))
	assert.True(t, p.FlushAndWait(time.Millisecond))
	assert.NotPanics(t, func() {
		p.Flush()
		p.Close()
	})
}
