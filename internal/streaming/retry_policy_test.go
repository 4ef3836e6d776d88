// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package streaming

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryPolicy_Cycles(t *testing.T) {
	p := NewRetryPolicy([]time.Duration{0, time.Second, 2 * time.Second})

	got := make([]time.Duration, 0, 5)
	for range 5 {
		got = append(got, p.Next())
	}
	assert.Equal(t, []time.Duration{0, time.Second, 2 * time.Second, 0, time.Second}, got)
}

func TestRetryPolicy_Reset(t *testing.T) {
	p := NewRetryPolicy([]time.Duration{0, time.Second})
	p.Next()
	p.Next()
	p.Next()

	p.Reset()
	assert.Equal(t, time.Duration(0), p.Next())
}

func TestRetryPolicy_CopiesSchedule(t *testing.T) {
	delays := []time.Duration{time.Second}
	p := NewRetryPolicy(delays)
	delays[0] = time.Hour

	assert.Equal(t, time.Second, p.Next())
}

func TestRetryPolicy_EmptyFallsBack(t *testing.T) {
	p := NewRetryPolicy(nil)
	assert.Equal(t, time.Second, p.Next())
	assert.Equal(t, time.Second, p.Next())
}
