// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the client components and the
// featbit-eval binary.
//
// Client components get a *Logger from the configured featbit.LoggerFactory
// through New. The demo server builds its root logger with NewLogger or
// NewConsoleLogger, and handlers pick the request-scoped logger up again
// with FromRequest.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger embeds zerolog.Logger, so the whole zerolog API is available on it.
type Logger struct {
	zerolog.Logger
}

// New wraps l, typically the output of a featbit.LoggerFactory.
func New(l zerolog.Logger) *Logger {
	return &Logger{l}
}

// NewLogger returns a JSON logger tagged with role. Entries carry a timestamp
// and a "func" field naming the calling function. Output goes to w, or to
// stdout when w is nil.
func NewLogger(role string, level zerolog.Level, w io.Writer) *Logger {
	if w == nil {
		w = os.Stdout
	}
	zerolog.CallerFieldName = "func"
	zerolog.CallerMarshalFunc = func(pc uintptr, _ string, _ int) string {
		return runtime.FuncForPC(pc).Name()
	}

	return &Logger{base(w, role, level).Caller().Logger()}
}

// NewConsoleLogger renders human-readable lines on stderr. featbit-eval uses
// it when -log-console is set.
func NewConsoleLogger(role string, level zerolog.Level) *Logger {
	w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
	return &Logger{base(w, role, level).Logger()}
}

func base(w io.Writer, role string, level zerolog.Level) zerolog.Context {
	return zerolog.New(w).Level(level).With().Str("role", role).Timestamp()
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithField returns a child logger that adds key=value to every entry. The
// receiver is not modified.
func (l *Logger) WithField(key, value string) *Logger {
	return &Logger{l.With().Str(key, value).Logger()}
}

// FromRequest returns the logger attached to the request context.
func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger attached to ctx with zerolog's WithContext.
// Without one it falls back to zerolog's default context logger and never
// returns nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
