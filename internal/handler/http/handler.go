// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/utils"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

// FlagClient is the part of *featbit.Client the API needs.
type FlagClient interface {
	Initialized() bool
	StringVariationDetail(key string, user models.User, defaultValue string) models.EvalDetail[string]
	AllLatestFlagsVariations(user models.User) []models.FlagState
	TrackNumeric(user models.User, eventName string, value float64) error
	Flush()
	Metrics() prometheus.Gatherer
}

type Handler struct {
	client         FlagClient
	buildInfo      models.AppBuildInfo
	requestTimeout time.Duration
	traceIDs       *utils.UUIDGenerator

	logger *logger.Logger
}

func NewHandler(client FlagClient, buildInfo models.AppBuildInfo, requestTimeout time.Duration, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		client:         client,
		buildInfo:      buildInfo,
		requestTimeout: requestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
}
