// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package featbit

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/MKhiriev/featbit-go-sdk/internal/store"
	"github.com/MKhiriev/featbit-go-sdk/models"
)

// BoolVariation returns the boolean value of flag key for user, or
// defaultValue when the flag cannot be evaluated.
func (c *Client) BoolVariation(key string, user models.User, defaultValue bool) bool {
	return c.BoolVariationDetail(key, user, defaultValue).Value
}

// BoolVariationDetail is like BoolVariation and also explains the result.
func (c *Client) BoolVariationDetail(key string, user models.User, defaultValue bool) models.EvalDetail[bool] {
	return evaluateTyped(c, key, user, defaultValue, strconv.ParseBool)
}

// StringVariation returns the raw value of flag key for user.
func (c *Client) StringVariation(key string, user models.User, defaultValue string) string {
	return c.StringVariationDetail(key, user, defaultValue).Value
}

func (c *Client) StringVariationDetail(key string, user models.User, defaultValue string) models.EvalDetail[string] {
	return evaluateTyped(c, key, user, defaultValue, func(s string) (string, error) { return s, nil })
}

// IntVariation returns the integer value of flag key for user. Numbers with
// a fractional part are a type mismatch.
func (c *Client) IntVariation(key string, user models.User, defaultValue int) int {
	return c.IntVariationDetail(key, user, defaultValue).Value
}

func (c *Client) IntVariationDetail(key string, user models.User, defaultValue int) models.EvalDetail[int] {
	return evaluateTyped(c, key, user, defaultValue, parseInt)
}

// FloatVariation returns the numeric value of flag key for user.
func (c *Client) FloatVariation(key string, user models.User, defaultValue float64) float64 {
	return c.FloatVariationDetail(key, user, defaultValue).Value
}

func (c *Client) FloatVariationDetail(key string, user models.User, defaultValue float64) models.EvalDetail[float64] {
	return evaluateTyped(c, key, user, defaultValue, func(s string) (float64, error) {
		return strconv.ParseFloat(s, 64)
	})
}

// JSONVariation decodes the JSON value of flag key for user.
func (c *Client) JSONVariation(key string, user models.User, defaultValue any) any {
	return c.JSONVariationDetail(key, user, defaultValue).Value
}

func (c *Client) JSONVariationDetail(key string, user models.User, defaultValue any) models.EvalDetail[any] {
	return evaluateTyped(c, key, user, defaultValue, func(s string) (any, error) {
		var v any
		err := json.Unmarshal([]byte(s), &v)
		return v, err
	})
}

// AllLatestFlagsVariations evaluates every known flag for user. The raw
// values are returned; no insight events are recorded. It returns nil until
// the client is initialized.
func (c *Client) AllLatestFlagsVariations(user models.User) []models.FlagState {
	if !c.Initialized() || !user.IsValid() {
		return nil
	}

	flags := c.store.Flags()
	states := make([]models.FlagState, 0, len(flags))
	for _, flag := range flags {
		state := models.FlagState{Key: flag.Key, VariationType: flag.VariationType}
		res, err := c.evaluator.Evaluate(flag, user)
		if err != nil {
			state.EvalDetail = models.EvalDetail[string]{Kind: models.KindError, Reason: models.ReasonError}
		} else {
			state.EvalDetail = models.EvalDetail[string]{
				Value:       res.Variation.Value,
				Kind:        res.Kind,
				Reason:      res.Reason,
				VariationID: res.Variation.ID,
			}
		}
		states = append(states, state)
	}
	return states
}

func evaluateTyped[T any](c *Client, key string, user models.User, defaultValue T, convert func(string) (T, error)) models.EvalDetail[T] {
	fail := func(reason string) models.EvalDetail[T] {
		c.metrics.Evaluated(string(models.KindError))
		return models.EvalDetail[T]{Value: defaultValue, Kind: models.KindError, Reason: reason}
	}

	if !c.Initialized() {
		return fail(models.ReasonClientNotReady)
	}
	if !user.IsValid() {
		return fail(models.ReasonUserNotSpecified)
	}

	flag, err := c.store.Flag(key)
	if err != nil {
		if errors.Is(err, store.ErrFlagNotFound) {
			return fail(models.ReasonFlagNotFound)
		}
		return fail(models.ReasonError)
	}

	res, err := c.evaluator.Evaluate(flag, user)
	if err != nil {
		c.log.Warn().Err(err).Str("flag", key).Msg("flag evaluation failed")
		return fail(models.ReasonError)
	}

	c.processor.Record(models.NewEvalEvent(user, flag.Key, res.Variation, res.SendToExperiment, time.Now()))

	value, err := convert(res.Variation.Value)
	if err != nil {
		return fail(models.ReasonWrongType)
	}

	c.metrics.Evaluated(string(res.Kind))
	return models.EvalDetail[T]{
		Value:       value,
		Kind:        res.Kind,
		Reason:      res.Reason,
		VariationID: res.Variation.ID,
	}
}

func parseInt(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f > math.MaxInt || f < math.MinInt {
		return 0, strconv.ErrRange
	}
	return int(f), nil
}
