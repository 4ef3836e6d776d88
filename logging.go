// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import "github.com/rs/zerolog"

// LoggerFactory creates the loggers used by client components. Each component
// asks for a logger once, with its own category (e.g. "streaming", "events").
type LoggerFactory interface {
	CreateLogger(category string) zerolog.Logger
}

// NopLoggerFactory discards all log output. It is the default factory.
type NopLoggerFactory struct{}

// CreateLogger returns a disabled logger.
func (NopLoggerFactory) CreateLogger(string) zerolog.Logger {
	return zerolog.Nop()
}

// ZerologLoggerFactory derives component loggers from a base zerolog logger,
// tagging every entry with a "category" field.
type ZerologLoggerFactory struct {
	base zerolog.Logger
}

// NewZerologLoggerFactory returns a factory built on base.
func NewZerologLoggerFactory(base zerolog.Logger) *ZerologLoggerFactory {
	return &ZerologLoggerFactory{base: base}
}

// CreateLogger returns a child of the base logger for category. A nil
// factory yields a disabled logger.
func (f *ZerologLoggerFactory) CreateLogger(category string) zerolog.Logger {
	if f == nil {
		return zerolog.Nop()
	}
	return f.base.With().Str("category", category).Logger()
}
