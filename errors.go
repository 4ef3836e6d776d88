// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfiguration is matched by every [ConfigurationError].
	ErrInvalidConfiguration = errors.New("invalid configuration")
	// ErrClientClosed is returned by operations attempted after Close.
	ErrClientClosed = errors.New("client closed")
	// ErrInvalidUser is returned when a user without a key is tracked.
	ErrInvalidUser = errors.New("user key is required")
	// ErrInvalidEventName is returned when a custom event has a blank name.
	ErrInvalidEventName = errors.New("event name is required")
)

// ConfigurationError reports a field rejected by [OptionsBuilder.Build].
type ConfigurationError struct {
	// Field is the name of the offending option, e.g. "StreamingURI".
	Field string
	// Reason describes the violated constraint.
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfiguration, e.Field, e.Reason)
}

// Is reports whether target is ErrInvalidConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

func newConfigurationError(field, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
