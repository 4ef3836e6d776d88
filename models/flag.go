// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// VariationType is the declared value type of a feature flag.
type VariationType string

const (
	VariationTypeBoolean VariationType = "boolean"
	VariationTypeString  VariationType = "string"
	VariationTypeNumber  VariationType = "number"
	VariationTypeJSON    VariationType = "json"
)

// FeatureFlag is a flag definition as delivered by the streaming service.
type FeatureFlag struct {
	// ID is the server-side identifier of the flag.
	ID string `json:"id"`

	// Key is the identifier used by application code.
	Key string `json:"key"`

	// Name is the human readable flag name.
	Name string `json:"name"`

	// VariationType declares how variation values are interpreted.
	VariationType VariationType `json:"variationType"`

	// Variations lists every value the flag can serve. Values are always
	// transported as strings.
	Variations []Variation `json:"variations"`

	// TargetUsers pins individual users to a variation.
	TargetUsers []TargetUser `json:"targetUsers"`

	// Rules are evaluated in order after the individual targets.
	Rules []TargetRule `json:"rules"`

	// IsEnabled is false when the flag is switched off; DisabledVariationID
	// is served in that case.
	IsEnabled           bool   `json:"isEnabled"`
	DisabledVariationID string `json:"disabledVariationId"`

	// Fallthrough applies when no target or rule matched.
	Fallthrough Fallthrough `json:"fallthrough"`

	// ExptIncludeAllTargets sends every evaluation of the flag to experiments.
	ExptIncludeAllTargets bool `json:"exptIncludeAllTargets"`

	// IsArchived marks a flag removed on the server. Archived flags are
	// deleted from the local store when a patch delivers them.
	IsArchived bool `json:"isArchived"`

	// UpdatedAt is the last modification time; it drives store versioning.
	UpdatedAt time.Time `json:"updatedAt"`
}

// Variation returns the variation with the given id.
func (f FeatureFlag) Variation(id string) (Variation, bool) {
	for _, v := range f.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return Variation{}, false
}

// Variation is one servable value of a flag.
type Variation struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// TargetUser pins a list of user keys to a variation.
type TargetUser struct {
	KeyIDs      []string `json:"keyIds"`
	VariationID string   `json:"variationId"`
}

// TargetRule serves its rollout when all of its conditions match.
type TargetRule struct {
	ID             string             `json:"id"`
	Name           string             `json:"name"`
	DispatchKey    string             `json:"dispatchKey"`
	IncludedInExpt bool               `json:"includedInExpt"`
	Conditions     []Condition        `json:"conditions"`
	Variations     []RolloutVariation `json:"variations"`
}

// Fallthrough is the rollout applied when nothing else matched.
type Fallthrough struct {
	DispatchKey    string             `json:"dispatchKey"`
	IncludedInExpt bool               `json:"includedInExpt"`
	Variations     []RolloutVariation `json:"variations"`
}

// Condition compares a user property against a value with an operator.
// For segment operators Value is a JSON array of segment ids; for the
// IsOneOf family it is a JSON array of strings.
type Condition struct {
	Property string `json:"property"`
	Op       string `json:"op"`
	Value    string `json:"value"`
}

// RolloutVariation assigns the [Rollout[0], Rollout[1]) share of users to a
// variation. ExptRollout is the share of that slice sent to experiments.
type RolloutVariation struct {
	ID          string     `json:"id"`
	Rollout     [2]float64 `json:"rollout"`
	ExptRollout float64    `json:"exptRollout"`
}

// DispatchRollout returns the width of the rollout slice.
func (r RolloutVariation) DispatchRollout() float64 {
	return r.Rollout[1] - r.Rollout[0]
}
