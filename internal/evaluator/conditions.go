// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package evaluator

import (
	"encoding/json"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/MKhiriev/featbit-go-sdk/models"
)

// Condition operators understood by the evaluator.
const (
	OpIsOneOf         = "IsOneOf"
	OpNotOneOf        = "NotOneOf"
	OpEqual           = "Equal"
	OpNotEqual        = "NotEqual"
	OpLessThan        = "LessThan"
	OpLessEqualThan   = "LessEqualThan"
	OpBiggerThan      = "BiggerThan"
	OpBiggerEqualThan = "BiggerEqualThan"
	OpContains        = "Contains"
	OpNotContain      = "NotContain"
	OpStartsWith      = "StartsWith"
	OpEndsWith        = "EndsWith"
	OpMatchRegex      = "MatchRegex"
	OpNotMatchRegex   = "NotMatchRegex"
	OpIsTrue          = "IsTrue"
	OpIsFalse         = "IsFalse"
	OpIsInSegment     = "User is in segment"
	OpNotInSegment    = "User is not in segment"
)

type conditionMatcher struct {
	inSegment func(id string, user models.User) bool

	// compiled regular expressions by pattern; nil for invalid patterns
	regexps sync.Map
}

func newConditionMatcher(inSegment func(string, models.User) bool) *conditionMatcher {
	return &conditionMatcher{inSegment: inSegment}
}

// all reports whether every condition matches. An empty list matches.
func (m *conditionMatcher) all(conditions []models.Condition, user models.User) bool {
	for _, c := range conditions {
		if !m.match(c, user) {
			return false
		}
	}
	return true
}

func (m *conditionMatcher) match(c models.Condition, user models.User) bool {
	switch c.Op {
	case OpIsInSegment:
		return slices.ContainsFunc(stringList(c.Value), func(id string) bool { return m.inSegment(id, user) })
	case OpNotInSegment:
		return !slices.ContainsFunc(stringList(c.Value), func(id string) bool { return m.inSegment(id, user) })
	}

	value, ok := user.ValueOf(c.Property)
	if !ok {
		return false
	}

	switch c.Op {
	case OpIsOneOf:
		return slices.Contains(stringList(c.Value), value)
	case OpNotOneOf:
		return !slices.Contains(stringList(c.Value), value)
	case OpEqual:
		return value == c.Value
	case OpNotEqual:
		return value != c.Value
	case OpLessThan, OpLessEqualThan, OpBiggerThan, OpBiggerEqualThan:
		return compareNumbers(c.Op, value, c.Value)
	case OpContains:
		return strings.Contains(value, c.Value)
	case OpNotContain:
		return !strings.Contains(value, c.Value)
	case OpStartsWith:
		return strings.HasPrefix(value, c.Value)
	case OpEndsWith:
		return strings.HasSuffix(value, c.Value)
	case OpMatchRegex:
		re := m.compile(c.Value)
		return re != nil && re.MatchString(value)
	case OpNotMatchRegex:
		re := m.compile(c.Value)
		return re != nil && !re.MatchString(value)
	case OpIsTrue:
		return strings.EqualFold(value, "true")
	case OpIsFalse:
		return strings.EqualFold(value, "false")
	default:
		return false
	}
}

func (m *conditionMatcher) compile(pattern string) *regexp.Regexp {
	if cached, ok := m.regexps.Load(pattern); ok {
		return cached.(*regexp.Regexp)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		re = nil
	}
	m.regexps.Store(pattern, re)
	return re
}

func compareNumbers(op, userValue, conditionValue string) bool {
	a, err := strconv.ParseFloat(strings.TrimSpace(userValue), 64)
	if err != nil {
		return false
	}
	b, err := strconv.ParseFloat(strings.TrimSpace(conditionValue), 64)
	if err != nil {
		return false
	}

	switch op {
	case OpLessThan:
		return a < b
	case OpLessEqualThan:
		return a <= b
	case OpBiggerThan:
		return a > b
	default:
		return a >= b
	}
}

// stringList decodes a JSON array of strings. Malformed input yields nil.
func stringList(raw string) []string {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil
	}
	return list
}
