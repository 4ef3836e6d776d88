// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import "github.com/MKhiriev/featbit-go-sdk/models"

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// Store holds the flags and segments a client evaluates against.
//
// Implementations must be safe for concurrent use: the streaming component
// writes while evaluations read.
type Store interface {
	// Apply merges a data set. A full data set replaces the content, a patch
	// upserts items newer than the stored ones and removes archived items.
	// It reports whether anything changed.
	Apply(ds models.DataSet) bool

	// Flag returns the flag with the given key or [ErrFlagNotFound].
	Flag(key string) (models.FeatureFlag, error)

	// Segment returns the segment with the given id or [ErrSegmentNotFound].
	Segment(id string) (models.Segment, error)

	// Flags returns every stored flag ordered by key.
	Flags() []models.FeatureFlag

	// Version returns the newest updatedAt seen, in Unix milliseconds.
	Version() int64

	// Initialized reports whether a full data set has been applied.
	Initialized() bool
}
