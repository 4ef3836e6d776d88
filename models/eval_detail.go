// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Evaluation reasons reported in [EvalDetail].
const (
	ReasonFlagOff          = "flag off"
	ReasonTargetMatch      = "target match"
	ReasonRuleMatchPrefix  = "match rule "
	ReasonFallthrough      = "fall through targets and rules"
	ReasonFlagNotFound     = "flag not found"
	ReasonClientNotReady   = "client not ready"
	ReasonWrongType        = "wrong type"
	ReasonUserNotSpecified = "user not specified"
	ReasonError            = "error in evaluation"
)

// ReasonKind classifies an evaluation outcome.
type ReasonKind string

const (
	KindOff         ReasonKind = "Off"
	KindTargetMatch ReasonKind = "TargetMatch"
	KindRuleMatch   ReasonKind = "RuleMatch"
	KindFallthrough ReasonKind = "Fallthrough"
	KindError       ReasonKind = "Error"
)

// EvalDetail is the outcome of a typed evaluation.
type EvalDetail[T any] struct {
	// Value is the served value, or the caller's default on error.
	Value T `json:"value"`

	Kind   ReasonKind `json:"kind"`
	Reason string     `json:"reason"`

	// VariationID is empty when the default value was returned.
	VariationID string `json:"variationId,omitempty"`
}

// IsError reports whether the default value was returned.
func (d EvalDetail[T]) IsError() bool { return d.Kind == KindError }

// FlagState is the latest evaluation of one flag for a user, as returned by
// the all-flags call.
type FlagState struct {
	Key           string        `json:"key"`
	VariationType VariationType `json:"variationType"`
	EvalDetail[string]
}
