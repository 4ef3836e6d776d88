// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import "errors"

type Workers struct {
	workers []Worker
}

// New groups workers in start order.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Close stops the workers in reverse start order, so consumers stop before
// the components they feed. Every worker is closed even if an earlier one
// fails; the errors are joined.
func (w *Workers) Close() error {
	var errs []error
	for i := len(w.workers) - 1; i >= 0; i-- {
		if err := w.workers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
