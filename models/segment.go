// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Segment is a reusable group of users referenced by flag conditions.
type Segment struct {
	ID string `json:"id"`

	// Included and Excluded list user keys explicitly inside or outside the
	// segment. Exclusion wins.
	Included []string `json:"included"`
	Excluded []string `json:"excluded"`

	// Rules match users that are not listed explicitly.
	Rules []MatchRule `json:"rules"`

	IsArchived bool      `json:"isArchived"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// MatchRule matches when all of its conditions match.
type MatchRule struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Conditions []Condition `json:"conditions"`
}
