// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package config loads the configuration of the featbit-eval demo server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. Environment variables prefixed with FEATBIT_
//  3. Command-line flags
//
// The result converts to a [featbit.OptionsBuilder] via
// [StructuredConfig.OptionsBuilder].
package config
