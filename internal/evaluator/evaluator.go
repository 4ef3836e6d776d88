// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package evaluator decides which variation of a feature flag a user gets.
package evaluator

import (
	"errors"
	"slices"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

// ErrVariationNotFound is returned when a flag refers to a variation id it
// does not define.
var ErrVariationNotFound = errors.New("variation not found")

// SegmentSource resolves segments referenced by segment conditions.
type SegmentSource interface {
	Segment(id string) (models.Segment, error)
}

// Result is the outcome of evaluating one flag for one user.
type Result struct {
	Variation        models.Variation
	Kind             models.ReasonKind
	Reason           string
	SendToExperiment bool
}

// Evaluator evaluates flags against users. It is safe for concurrent use.
type Evaluator struct {
	segments SegmentSource
	matcher  *conditionMatcher
}

// New returns an evaluator resolving segments from src.
func New(src SegmentSource) *Evaluator {
	e := &Evaluator{segments: src}
	e.matcher = newConditionMatcher(e.segmentMatches)
	return e
}

// Evaluate runs the FeatBit evaluation order: disabled flag, individual
// targets, rules in order, fallthrough.
func (e *Evaluator) Evaluate(flag models.FeatureFlag, user models.User) (Result, error) {
	if !flag.IsEnabled {
		return e.result(flag, flag.DisabledVariationID, models.KindOff, models.ReasonFlagOff, false)
	}

	for _, target := range flag.TargetUsers {
		if slices.Contains(target.KeyIDs, user.Key()) {
			return e.result(flag, target.VariationID, models.KindTargetMatch, models.ReasonTargetMatch, flag.ExptIncludeAllTargets)
		}
	}

	for _, rule := range flag.Rules {
		if !e.matcher.all(rule.Conditions, user) {
			continue
		}
		rv, expt, ok := dispatch(flag, user, rule.DispatchKey, rule.Variations, rule.IncludedInExpt)
		if !ok {
			continue
		}
		return e.result(flag, rv.ID, models.KindRuleMatch, models.ReasonRuleMatchPrefix+rule.Name, expt)
	}

	ft := flag.Fallthrough
	if rv, expt, ok := dispatch(flag, user, ft.DispatchKey, ft.Variations, ft.IncludedInExpt); ok {
		return e.result(flag, rv.ID, models.KindFallthrough, models.ReasonFallthrough, expt)
	}

	return Result{Kind: models.KindError, Reason: models.ReasonError}, ErrVariationNotFound
}

func (e *Evaluator) result(flag models.FeatureFlag, variationID string, kind models.ReasonKind, reason string, expt bool) (Result, error) {
	v, ok := flag.Variation(variationID)
	if !ok {
		return Result{Kind: models.KindError, Reason: models.ReasonError}, ErrVariationNotFound
	}
	return Result{Variation: v, Kind: kind, Reason: reason, SendToExperiment: expt}, nil
}

// segmentMatches reports whether user belongs to the segment with the given
// id. Unknown segments never match.
func (e *Evaluator) segmentMatches(id string, user models.User) bool {
	seg, err := e.segments.Segment(id)
	if err != nil {
		return false
	}
	if slices.Contains(seg.Excluded, user.Key()) {
		return false
	}
	if slices.Contains(seg.Included, user.Key()) {
		return true
	}
	for _, rule := range seg.Rules {
		if e.matcher.all(rule.Conditions, user) {
			return true
		}
	}
	return false
}
