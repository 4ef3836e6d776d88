// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers provides abstractions for managing the background
// components of a client.
// It defines the Worker interface and a Workers aggregate that allows
// stopping multiple workers in a unified way.
package workers

// Worker is the interface that must be implemented by any background worker.
// It defines a single Close method that stops the worker's execution.
//
// Implementations are expected to block until their goroutines have exited
// or a bounded timeout has passed.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Close() error {
//	    // stop background processing
//	    return nil
//	}
type Worker interface {
	Close() error
}

// CloseFunc adapts a plain stop function to [Worker].
type CloseFunc func()

// Close calls f.
func (f CloseFunc) Close() error {
	f()
	return nil
}
