// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// EventType tells the store how to apply a [DataSet].
type EventType string

const (
	// EventTypeFull replaces the whole store content.
	EventTypeFull EventType = "full"

	// EventTypePatch upserts the delivered items.
	EventTypePatch EventType = "patch"
)

// DataSet is the payload of a data-sync message.
type DataSet struct {
	EventType    EventType     `json:"eventType"`
	FeatureFlags []FeatureFlag `json:"featureFlags"`
	Segments     []Segment     `json:"segments"`
}

// Version returns the newest updatedAt of all items in Unix milliseconds, or
// zero for an empty data set.
func (d DataSet) Version() int64 {
	var version int64
	for _, f := range d.FeatureFlags {
		version = max(version, f.UpdatedAt.UnixMilli())
	}
	for _, s := range d.Segments {
		version = max(version, s.UpdatedAt.UnixMilli())
	}
	return version
}

// IsEmpty reports whether the data set carries no items.
func (d DataSet) IsEmpty() bool {
	return len(d.FeatureFlags) == 0 && len(d.Segments) == 0
}
