// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"errors"
	"net/url"
	"slices"
	"strings"
	"time"
)

var (
	streamingSchemes = []string{"ws", "wss"}
	eventSchemes     = []string{"http", "https"}
)

// validate checks every builder value against its constraint and returns the
// parsed service URIs. All violations are reported, not only the first one.
func (b *OptionsBuilder) validate() (*url.URL, *url.URL, error) {
	var errs []error

	if strings.TrimSpace(b.envSecret) == "" {
		errs = append(errs, newConfigurationError("EnvSecret", "must not be empty"))
	}
	if b.startWaitTime < MinStartWaitTime {
		errs = append(errs, newConfigurationError("StartWaitTime", "must be at least %s, got %s", MinStartWaitTime, b.startWaitTime))
	}

	streamingURI, err := parseServiceURI("StreamingURI", b.streamingURI, streamingSchemes)
	if err != nil {
		errs = append(errs, err)
	}
	eventURI, err := parseServiceURI("EventURI", b.eventURI, eventSchemes)
	if err != nil {
		errs = append(errs, err)
	}

	errs = appendIfNotPositive(errs, "ConnectTimeout", b.connectTimeout)
	errs = appendIfNotPositive(errs, "CloseTimeout", b.closeTimeout)
	errs = appendIfNotPositive(errs, "KeepAliveInterval", b.keepAliveInterval)

	if len(b.reconnectRetryDelays) == 0 {
		errs = append(errs, newConfigurationError("ReconnectRetryDelays", "must not be empty"))
	}
	for i, d := range b.reconnectRetryDelays {
		if d < 0 {
			errs = append(errs, newConfigurationError("ReconnectRetryDelays", "delay #%d must not be negative, got %s", i, d))
		}
	}

	errs = appendIfNotPositive(errs, "FlushTimeout", b.flushTimeout)
	errs = appendIfNotPositive(errs, "AutoFlushInterval", b.autoFlushInterval)
	errs = appendIfLessThanOne(errs, "MaxFlushWorker", b.maxFlushWorker)
	errs = appendIfLessThanOne(errs, "MaxEventsInQueue", b.maxEventsInQueue)
	errs = appendIfLessThanOne(errs, "MaxEventPerRequest", b.maxEventPerRequest)
	errs = appendIfLessThanOne(errs, "MaxSendEventAttempts", b.maxSendEventAttempts)

	if b.sendEventRetryInterval < 0 {
		errs = append(errs, newConfigurationError("SendEventRetryInterval", "must not be negative, got %s", b.sendEventRetryInterval))
	}
	if b.loggerFactory == nil {
		errs = append(errs, newConfigurationError("LoggerFactory", "must not be nil"))
	}

	if len(errs) > 0 {
		return nil, nil, errors.Join(errs...)
	}
	return streamingURI, eventURI, nil
}

// parseServiceURI parses raw as an absolute URI with one of the given schemes
// and a host. A trailing slash is dropped so paths can be appended safely.
func parseServiceURI(field, raw string, schemes []string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, newConfigurationError(field, "malformed URI %q: %v", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, newConfigurationError(field, "%q is not an absolute URI with a host", raw)
	}

	scheme := strings.ToLower(u.Scheme)
	if !slices.Contains(schemes, scheme) {
		return nil, newConfigurationError(field, "scheme of %q must be one of %s", raw, strings.Join(schemes, ", "))
	}

	u.Scheme = scheme
	u.Path = strings.TrimRight(u.Path, "/")
	return u, nil
}

func appendIfNotPositive(errs []error, field string, d time.Duration) []error {
	if d <= 0 {
		return append(errs, newConfigurationError(field, "must be positive, got %s", d))
	}
	return errs
}

func appendIfLessThanOne(errs []error, field string, n int) []error {
	if n < 1 {
		return append(errs, newConfigurationError(field, "must be at least 1, got %d", n))
	}
	return errs
}
