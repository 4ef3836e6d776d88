// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Command featbit-eval serves FeatBit flag evaluations over HTTP.
//
// Configuration comes from FEATBIT_ environment variables and command-line
// flags; see internal/config.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	featbit "github.com/MKhiriev/featbit-go-sdk"
	"github.com/MKhiriev/featbit-go-sdk/internal/config"
	httpHandler "github.com/MKhiriev/featbit-go-sdk/internal/handler/http"
	"github.com/MKhiriev/featbit-go-sdk/internal/logger"
	"github.com/MKhiriev/featbit-go-sdk/internal/server"
	"github.com/MKhiriev/featbit-go-sdk/internal/workers"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Println(buildInfo)

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("featbit-eval", zerolog.InfoLevel, nil).Fatal().Err(err).Msg("error getting configs")
	}

	var log *logger.Logger
	if cfg.Log.Console {
		log = logger.NewConsoleLogger("featbit-eval", cfg.LogLevel())
	} else {
		log = logger.NewLogger("featbit-eval", cfg.LogLevel(), nil)
	}

	client, err := newClient(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating featbit client")
	}
	closers := workers.New(client)

	handler := httpHandler.NewHandler(client, buildInfo, cfg.Server.RequestTimeout, log)
	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		_ = closers.Close()
		log.Fatal().Err(err).Msg("error creating server")
	}

	if err = srv.RunServer(); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
	if err = closers.Close(); err != nil {
		log.Error().Err(err).Msg("error closing featbit client")
	}
}

func newClient(cfg *config.StructuredConfig, log *logger.Logger) (*featbit.Client, error) {
	opts, err := cfg.OptionsBuilder(featbit.NewZerologLoggerFactory(log.Logger)).Build()
	if err != nil {
		return nil, err
	}

	if cfg.SDK.BootstrapFile == "" {
		return featbit.NewClient(opts)
	}

	data, err := os.ReadFile(cfg.SDK.BootstrapFile)
	if err != nil {
		return nil, fmt.Errorf("error reading bootstrap file: %w", err)
	}
	return featbit.NewClientFromBootstrap(opts, data)
}
