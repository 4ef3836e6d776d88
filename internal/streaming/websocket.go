// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/metrics"
	"github.com/MKhiriev/featbit-go-sdk/internal/store"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

type wsSynchronizer struct {
	settings Settings
	store    store.Store
	log      *logger.Logger
	metrics  *metrics.Metrics
	dialer   *websocket.Dialer

	ready       chan struct{}
	readyOnce   sync.Once
	initialized atomic.Bool

	// writeMu serializes frames; gorilla allows a single concurrent writer.
	writeMu sync.Mutex

	mu      sync.Mutex
	conn    *websocket.Conn
	cancel  context.CancelFunc
	started bool
	closed  bool
	wg      sync.WaitGroup
}

// NewWebSocketSynchronizer returns a synchronizer streaming into st. It is
// idle until Start is called.
func NewWebSocketSynchronizer(settings Settings, st store.Store, log *logger.Logger, m *metrics.Metrics) Synchronizer {
	return &wsSynchronizer{
		settings: settings,
		store:    st,
		log:      log,
		metrics:  m,
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: settings.ConnectTimeout(),
		},
		ready: make(chan struct{}),
	}
}

func (s *wsSynchronizer) Start() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.closed {
		return s.ready
	}
	s.started = true

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.wg.Add(1)
	go s.run(ctx)

	return s.ready
}

func (s *wsSynchronizer) Initialized() bool {
	return s.initialized.Load()
}

// Close sends a normal close frame, then waits up to the close timeout for
// the loop to exit before dropping the connection.
func (s *wsSynchronizer) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	cancel, conn := s.cancel, s.conn
	s.mu.Unlock()

	timeout := s.settings.CloseTimeout()
	if conn != nil {
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client closed")
		if err := s.write(conn, websocket.CloseMessage, msg, timeout); err != nil {
			s.log.Debug().Err(err).Msg("failed to send close frame")
		}
	}
	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
		s.log.Warn().Dur("timeout", timeout).Msg("streaming did not close in time, dropping connection")
		if conn != nil {
			_ = conn.Close()
		}
		<-done
	}

	s.log.Info().Msg("streaming closed")
	return nil
}

func (s *wsSynchronizer) run(ctx context.Context) {
	defer s.wg.Done()
	defer s.markReady()

	policy := NewRetryPolicy(s.settings.ReconnectRetryDelays())
	for {
		if s.settings.Offline() {
			s.log.Info().Msg("client is offline, streaming stopped")
			return
		}

		err := s.connectAndServe(ctx, policy)
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, ErrInvalidSecret) {
			s.log.Error().Err(err).Msg("streaming rejected, will not reconnect")
			return
		}

		delay := policy.Next()
		s.metrics.StreamReconnecting()
		s.log.Warn().Err(err).Dur("delay", delay).Msg("streaming disconnected, reconnecting")

		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return
		case <-t.C:
		}
	}
}

func (s *wsSynchronizer) connectAndServe(ctx context.Context, policy *RetryPolicy) error {
	target := streamingURL(s.settings.StreamingURI(), s.settings.EnvSecret(), time.Now())

	dialCtx, cancelDial := context.WithTimeout(ctx, s.settings.ConnectTimeout())
	conn, resp, err := s.dialer.DialContext(dialCtx, target, nil)
	cancelDial()
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		if resp != nil && (resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden) {
			return fmt.Errorf("%w: handshake status %d", ErrInvalidSecret, resp.StatusCode)
		}
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer conn.Close()

	if !s.setConn(conn) {
		return context.Canceled
	}
	defer s.setConn(nil)

	policy.Reset()
	s.metrics.StreamConnected()
	s.log.Info().Msg("streaming connected")

	req, err := newDataSyncRequest(s.store.Version())
	if err != nil {
		return fmt.Errorf("error building data-sync request: %w", err)
	}
	if err = s.write(conn, websocket.TextMessage, req, s.settings.ConnectTimeout()); err != nil {
		return fmt.Errorf("error sending data-sync request: %w", err)
	}

	connCtx, stopKeepAlive := context.WithCancel(ctx)
	defer stopKeepAlive()
	go s.keepAlive(connCtx, conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			var closeErr *websocket.CloseError
			if errors.As(err, &closeErr) && closeErr.Code == CloseInvalidSecret {
				return fmt.Errorf("%w: %s", ErrInvalidSecret, closeErr.Text)
			}
			return err
		}
		s.handleMessage(data)
	}
}

func (s *wsSynchronizer) keepAlive(ctx context.Context, conn *websocket.Conn) {
	interval := s.settings.KeepAliveInterval()
	ping, err := newPing()
	if err != nil {
		s.log.Error().Err(err).Msg("error building ping message")
		return
	}

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.write(conn, websocket.TextMessage, ping, interval); err != nil {
				s.log.Debug().Err(err).Msg("ping failed")
				return
			}
		}
	}
}

func (s *wsSynchronizer) handleMessage(data []byte) {
	var msg envelope
	if err := json.Unmarshal(data, &msg); err != nil {
		s.log.Warn().Err(err).Msg("malformed streaming message")
		return
	}

	switch msg.MessageType {
	case messageTypeDataSync:
		var ds models.DataSet
		if err := json.Unmarshal(msg.Data, &ds); err != nil {
			s.log.Warn().Err(err).Msg("malformed data-sync payload")
			return
		}
		if s.store.Apply(ds) {
			version := s.store.Version()
			s.metrics.DataUpdated(version)
			s.log.Debug().
				Str("event_type", string(ds.EventType)).
				Int("flags", len(ds.FeatureFlags)).
				Int("segments", len(ds.Segments)).
				Int64("version", version).
				Msg("data set applied")
		}
		if s.store.Initialized() {
			s.initialized.Store(true)
			s.markReady()
		}
	case messageTypePong:
	default:
		s.log.Debug().Str("message_type", msg.MessageType).Msg("ignoring streaming message")
	}
}

func (s *wsSynchronizer) write(conn *websocket.Conn, messageType int, data []byte, timeout time.Duration) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := conn.SetWriteDeadline(time.Now().Add(timeout)); err != nil {
		return err
	}
	return conn.WriteMessage(messageType, data)
}

// setConn records the live connection. It refuses a new connection once
// Close has started.
func (s *wsSynchronizer) setConn(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if conn != nil && s.closed {
		return false
	}
	s.conn = conn
	return true
}

func (s *wsSynchronizer) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}
