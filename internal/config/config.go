// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"strings"
	"time"

	featbit "github.com/MKhiriev/featbit-go-sdk"
)

// envPrefix is prepended to every environment variable name.
const envPrefix = "FEATBIT_"

// StructuredConfig is the configuration of the featbit-eval demo server.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: variable name for scalar fields, after the FEATBIT_ prefix.
type StructuredConfig struct {
	// SDK holds the settings passed to the FeatBit client.
	SDK SDK `envPrefix:"SDK_"`

	// Server holds the listen address and timeouts of the HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Log holds logging settings.
	Log Log `envPrefix:"LOG_"`
}

// SDK holds FeatBit client settings.
type SDK struct {
	// EnvSecret identifies the FeatBit environment.
	// Env: FEATBIT_SDK_ENV_SECRET
	EnvSecret string `env:"ENV_SECRET"`

	// StreamingURI is the base ws(s) URI of the streaming service.
	// Env: FEATBIT_SDK_STREAMING_URI
	StreamingURI string `env:"STREAMING_URI"`

	// EventURI is the base http(s) URI of the event service.
	// Env: FEATBIT_SDK_EVENT_URI
	EventURI string `env:"EVENT_URI"`

	// StartWaitTime bounds client start-up (e.g. "5s").
	// Env: FEATBIT_SDK_START_WAIT_TIME
	StartWaitTime time.Duration `env:"START_WAIT_TIME"`

	// Offline keeps the client away from the network.
	// Env: FEATBIT_SDK_OFFLINE
	Offline bool `env:"OFFLINE"`

	// BootstrapFile is a path to FeatBit JSON data. When set the client runs
	// offline from that data only.
	// Env: FEATBIT_SDK_BOOTSTRAP_FILE
	BootstrapFile string `env:"BOOTSTRAP_FILE"`
}

// Server holds network and timeout settings for the inbound HTTP server.
type Server struct {
	// HTTPAddress is the listen address in "host:port" format.
	// Env: FEATBIT_SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single inbound request.
	// Env: FEATBIT_SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown.
	// Env: FEATBIT_SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

// Log holds logging settings.
type Log struct {
	// Level is a zerolog level name ("debug", "info", ...).
	// Env: FEATBIT_LOG_LEVEL
	Level string `env:"LEVEL"`

	// Console switches to human-readable output on stderr.
	// Env: FEATBIT_LOG_CONSOLE
	Console bool `env:"CONSOLE"`
}

func defaults() *StructuredConfig {
	return &StructuredConfig{
		SDK: SDK{
			StreamingURI:  featbit.DefaultStreamingURI,
			EventURI:      featbit.DefaultEventURI,
			StartWaitTime: featbit.DefaultStartWaitTime,
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{Level: "info"},
	}
}

// GetStructuredConfig loads, merges, and validates the demo configuration.
// Sources in priority order (last non-zero value wins):
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withEnv().
		withFlags().
		build()
}

// bootstrapOnlySecret stands in for the environment secret when the demo
// runs from a bootstrap file without one. Such a client never goes online.
const bootstrapOnlySecret = "bootstrap-only"

// OptionsBuilder converts the SDK section into a FeatBit options builder.
func (cfg *StructuredConfig) OptionsBuilder(factory featbit.LoggerFactory) *featbit.OptionsBuilder {
	secret := cfg.SDK.EnvSecret
	if strings.TrimSpace(secret) == "" && cfg.SDK.BootstrapFile != "" {
		secret = bootstrapOnlySecret
	}

	b := featbit.NewOptionsBuilder(secret).
		Offline(cfg.SDK.Offline).
		LoggerFactory(factory)

	if cfg.SDK.StreamingURI != "" {
		b.Streaming(cfg.SDK.StreamingURI)
	}
	if cfg.SDK.EventURI != "" {
		b.Event(cfg.SDK.EventURI)
	}
	if cfg.SDK.StartWaitTime > 0 {
		b.StartWaitTime(cfg.SDK.StartWaitTime)
	}
	return b
}
