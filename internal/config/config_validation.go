// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
)

// validate checks the merged configuration. SDK URIs and timings are left to
// featbit.OptionsBuilder, which reports them precisely.
func (cfg *StructuredConfig) validate() error {
	var errs []error

	if strings.TrimSpace(cfg.SDK.EnvSecret) == "" && cfg.SDK.BootstrapFile == "" {
		errs = append(errs, ErrMissingEnvSecret)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.RequestTimeout <= 0 || cfg.Server.ShutdownTimeout <= 0 {
		errs = append(errs, ErrInvalidServerConfigs)
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Log.Level))
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level. It is valid after validation.
func (cfg *StructuredConfig) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
