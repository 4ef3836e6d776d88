// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package featbit is a server-side client for the FeatBit feature flag
// service.
//
// A [Client] keeps an in-memory copy of the environment's flags and segments,
// synchronized over a WebSocket stream, and evaluates flags locally. Every
// evaluation and custom event is reported back to FeatBit in batches.
//
//	opts, err := featbit.NewOptionsBuilder(envSecret).
//	    Streaming("wss://featbit.example.com").
//	    Event("https://featbit.example.com").
//	    Build()
//	if err != nil {
//	    return err
//	}
//	client, err := featbit.NewClient(opts)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	user := models.NewUserBuilder("user-42").Name("Ada").Build()
//	if client.BoolVariation("new-checkout", user, false) {
//	    // ...
//	}
//
// Clients built with [NewClientFromBootstrap] never touch the network and
// serve the supplied data only.
package featbit
