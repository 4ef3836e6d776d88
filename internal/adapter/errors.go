// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

var (
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("client unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrNotFound         = errors.New("not found")
	ErrPayloadTooLarge  = errors.New("payload too large")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrServerError      = errors.New("event service error")
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// IsRetryable reports whether a failed delivery may succeed when repeated.
// A rejected environment secret never will.
func IsRetryable(err error) bool {
	return err != nil && !errors.Is(err, ErrUnauthorized) && !errors.Is(err, ErrForbidden)
}
