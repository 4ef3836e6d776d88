// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
)

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration

	// listening receives the bound address once the listener is open
	listening chan net.Addr

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, requestTimeout, shutdownTimeout time.Duration, logger *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: requestTimeout,
			WriteTimeout:      requestTimeout + time.Second,
		},
		shutdownTimeout: shutdownTimeout,
		listening:       make(chan net.Addr, 1),
		logger:          logger,
	}
}

// serve blocks until ctx is done or the listener fails.
func (h *httpServer) serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		return fmt.Errorf("HTTP server listen: %w", err)
	}
	h.listening <- ln.Addr()
	h.logger.Info().Str("address", ln.Addr().String()).Msg("HTTP server listening")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- h.server.Serve(ln)
	}()

	select {
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	h.logger.Info().Msg("HTTP server shutdown")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()
	if err = h.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}
	return nil
}
