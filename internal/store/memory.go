// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

// memoryStore is the in-memory [Store] used by every client.
type memoryStore struct {
	mu          sync.RWMutex
	flags       map[string]models.FeatureFlag
	segments    map[string]models.Segment
	version     int64
	initialized bool
}

// NewMemoryStore returns an empty, uninitialized store.
func NewMemoryStore() Store {
	return &memoryStore{
		flags:    make(map[string]models.FeatureFlag),
		segments: make(map[string]models.Segment),
	}
}

func (s *memoryStore) Apply(ds models.DataSet) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ds.EventType == models.EventTypeFull {
		s.replace(ds)
		return true
	}

	changed := false
	for _, f := range ds.FeatureFlags {
		old, ok := s.flags[f.Key]
		if ok && !f.UpdatedAt.After(old.UpdatedAt) {
			continue
		}
		if f.IsArchived {
			delete(s.flags, f.Key)
		} else {
			s.flags[f.Key] = f
		}
		changed = true
	}
	for _, seg := range ds.Segments {
		old, ok := s.segments[seg.ID]
		if ok && !seg.UpdatedAt.After(old.UpdatedAt) {
			continue
		}
		if seg.IsArchived {
			delete(s.segments, seg.ID)
		} else {
			s.segments[seg.ID] = seg
		}
		changed = true
	}
	if changed {
		s.version = max(s.version, ds.Version())
	}

	return changed
}

// replace must be called with mu held.
func (s *memoryStore) replace(ds models.DataSet) {
	flags := make(map[string]models.FeatureFlag, len(ds.FeatureFlags))
	for _, f := range ds.FeatureFlags {
		if !f.IsArchived {
			flags[f.Key] = f
		}
	}
	segments := make(map[string]models.Segment, len(ds.Segments))
	for _, seg := range ds.Segments {
		if !seg.IsArchived {
			segments[seg.ID] = seg
		}
	}

	s.flags = flags
	s.segments = segments
	s.version = ds.Version()
	s.initialized = true
}

func (s *memoryStore) Flag(key string) (models.FeatureFlag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.flags[key]
	if !ok {
		return models.FeatureFlag{}, fmt.Errorf("%w: %s", ErrFlagNotFound, key)
	}
	return f, nil
}

func (s *memoryStore) Segment(id string) (models.Segment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seg, ok := s.segments[id]
	if !ok {
		return models.Segment{}, fmt.Errorf("%w: %s", ErrSegmentNotFound, id)
	}
	return seg, nil
}

func (s *memoryStore) Flags() []models.FeatureFlag {
	s.mu.RLock()
	flags := make([]models.FeatureFlag, 0, len(s.flags))
	for _, f := range s.flags {
		flags = append(flags, f)
	}
	s.mu.RUnlock()

	slices.SortFunc(flags, func(a, b models.FeatureFlag) int {
		return strings.Compare(a.Key, b.Key)
	})
	return flags
}

func (s *memoryStore) Version() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

func (s *memoryStore) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}
