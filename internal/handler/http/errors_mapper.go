// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"net/http"

	featbit "github.com/MKhiriev/featbit-go-sdk"
)

var errorStatusMap = map[error]int{
	errUserRequired:             http.StatusBadRequest,
	errInvalidBody:              http.StatusBadRequest,
	featbit.ErrInvalidUser:      http.StatusBadRequest,
	featbit.ErrInvalidEventName: http.StatusBadRequest,
	featbit.ErrClientClosed:     http.StatusServiceUnavailable,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}
