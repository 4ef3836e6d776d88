// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"github.com/go-resty/resty/v2"
)

// UserAgent identifies the client to FeatBit services.
const UserAgent = "fb-go-server-sdk"

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://featbit.example.com")
//	resp, err := client.R().Post("/api/public/insight/track")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client sending requests relative to baseURL with
// the FeatBit user agent.
//
// Each call returns an independent client instance with its own
// configuration, connection pool, and state. Resty's own retry mechanism is
// left disabled; callers layer their own policy on top.
func NewHTTPClient(baseURL string) *HTTPClient {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", UserAgent)
	return &HTTPClient{Client: c}
}
