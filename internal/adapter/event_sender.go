// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/utils"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

const trackPath = "/api/public/insight/track"

// EventSenderConfig configures [NewEventSender].
type EventSenderConfig struct {
	// EventURI is the base URI of the event service.
	EventURI *url.URL

	// EnvSecret is sent verbatim in the Authorization header.
	EnvSecret string
}

type httpEventSender struct {
	client    *utils.HTTPClient
	envSecret string
	log       *logger.Logger
}

// NewEventSender returns a resty-backed [EventSender]. Request deadlines come
// from the context passed to Send.
func NewEventSender(cfg EventSenderConfig, log *logger.Logger) (EventSender, error) {
	if cfg.EventURI == nil {
		return nil, fmt.Errorf("error creating event sender: %w", ErrBadRequest)
	}

	base := strings.TrimRight(cfg.EventURI.String(), "/")
	return &httpEventSender{
		client:    utils.NewHTTPClient(base),
		envSecret: cfg.EnvSecret,
		log:       log,
	}, nil
}

func (h *httpEventSender) Send(ctx context.Context, events []models.Event) error {
	if len(events) == 0 {
		return nil
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", h.envSecret).
		SetBody(events).
		Post(trackPath)
	if err != nil {
		return fmt.Errorf("track request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.log.Debug().Int("events", len(events)).Dur("took", resp.Time()).Msg("events delivered")
	return nil
}

func (h *httpEventSender) Close() {
	h.client.GetClient().CloseIdleConnections()
}
