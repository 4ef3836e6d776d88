// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the REST API of the featbit-eval demo server.
//
// It exposes flag evaluation, custom event tracking and client status over
// HTTP, and the client's Prometheus metrics at /metrics. Request tracing,
// access logging and response compression are handled by middleware before
// requests reach the FeatBit client.
package http
