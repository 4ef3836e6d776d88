// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "errors"

// Sentinel errors returned by [Store] lookups. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrFlagNotFound is returned when no flag with the requested key is
	// stored.
	ErrFlagNotFound = errors.New("flag not found")

	// ErrSegmentNotFound is returned when no segment with the requested id is
	// stored.
	ErrSegmentNotFound = errors.New("segment not found")
)
