// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package bootstrap supplies the initial data set a client seeds its store
// with before, or instead of, connecting to the streaming service.
package bootstrap

import "github.com/MKhiriev/featbit-go-sdk/models"

// Provider yields a data set to seed the store with.
type Provider interface {
	// DataSet returns the bootstrap data and whether there is any.
	DataSet() (models.DataSet, bool)
}

// NullProvider supplies nothing. It is the default provider of every
// configuration snapshot.
type NullProvider struct{}

// DataSet always reports no data.
func (NullProvider) DataSet() (models.DataSet, bool) {
	return models.DataSet{}, false
}
