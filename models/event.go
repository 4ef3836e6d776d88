// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

const (
	metricRoute   = "index/metric"
	metricType    = "CustomEvent"
	metricAppType = "go-server-side"
)

// Event is an insight sent to the event service. The concrete types are
// [EvalEvent] and [MetricEvent]; both serialize to FeatBit's track payload.
type Event interface {
	// UserKey identifies the user the event belongs to.
	UserKey() string
}

// EventUser is the user representation embedded in insight payloads.
type EventUser struct {
	KeyID                string               `json:"keyId"`
	Name                 string               `json:"name"`
	CustomizedProperties []CustomizedProperty `json:"customizedProperties"`
}

// CustomizedProperty is a custom user attribute in wire shape.
type CustomizedProperty struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

func newEventUser(u User) EventUser {
	return EventUser{KeyID: u.Key(), Name: u.Name(), CustomizedProperties: u.CustomProperties()}
}

// EvalEvent reports flag evaluations of a user.
type EvalEvent struct {
	User       EventUser          `json:"user"`
	Variations []VariationInsight `json:"variations"`
}

// VariationInsight is a single flag evaluation.
type VariationInsight struct {
	FeatureFlagKey   string    `json:"featureFlagKey"`
	SendToExperiment bool      `json:"sendToExperiment"`
	Timestamp        int64     `json:"timestamp"`
	Variation        Variation `json:"variation"`
}

// NewEvalEvent builds an evaluation insight stamped with now.
func NewEvalEvent(u User, flagKey string, v Variation, sendToExperiment bool, now time.Time) EvalEvent {
	return EvalEvent{
		User: newEventUser(u),
		Variations: []VariationInsight{{
			FeatureFlagKey:   flagKey,
			SendToExperiment: sendToExperiment,
			Timestamp:        now.UnixMilli(),
			Variation:        v,
		}},
	}
}

// UserKey implements [Event].
func (e EvalEvent) UserKey() string { return e.User.KeyID }

// MetricEvent reports custom events of a user.
type MetricEvent struct {
	User    EventUser `json:"user"`
	Metrics []Metric  `json:"metrics"`
}

// Metric is a single custom event.
type Metric struct {
	Route        string  `json:"route"`
	Type         string  `json:"type"`
	EventName    string  `json:"eventName"`
	NumericValue float64 `json:"numericValue"`
	AppType      string  `json:"appType"`
	Timestamp    int64   `json:"timestamp"`
}

// NewMetricEvent builds a custom event insight stamped with now.
func NewMetricEvent(u User, eventName string, value float64, now time.Time) MetricEvent {
	return MetricEvent{
		User: newEventUser(u),
		Metrics: []Metric{{
			Route:        metricRoute,
			Type:         metricType,
			EventName:    eventName,
			NumericValue: value,
			AppType:      metricAppType,
			Timestamp:    now.UnixMilli(),
		}},
	}
}

// UserKey implements [Event].
func (e MetricEvent) UserKey() string { return e.User.KeyID }
