// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "errors"

// Validation errors returned when the merged configuration is unusable.
var (
	// ErrMissingEnvSecret indicates that neither an environment secret nor a
	// bootstrap file was configured.
	ErrMissingEnvSecret = errors.New("env secret is required unless a bootstrap file is given")
	// ErrInvalidServerConfigs indicates a missing listen address or a
	// non-positive timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidLogLevel indicates a level name zerolog does not know.
	ErrInvalidLogLevel = errors.New("invalid log level")
)
