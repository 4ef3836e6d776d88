// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

const (
	// PropertyKeyID is the built-in property name resolving to the user key.
	PropertyKeyID = "keyId"

	// PropertyName is the built-in property name resolving to the user name.
	PropertyName = "name"
)

// User is the end user a flag is evaluated for.
// Instances are immutable once built; use [NewUserBuilder] to create one.
type User struct {
	// key uniquely identifies the user inside an environment.
	key string

	// name is an optional display name sent with insight events.
	name string

	// custom holds additional targeting attributes.
	custom map[string]string
}

// Key returns the unique user key.
func (u User) Key() string { return u.key }

// Name returns the display name of the user.
func (u User) Name() string { return u.name }

// Custom returns the value of a custom property and whether it is set.
func (u User) Custom(property string) (string, bool) {
	v, ok := u.custom[property]
	return v, ok
}

// CustomProperties returns the custom properties in FeatBit's wire shape.
func (u User) CustomProperties() []CustomizedProperty {
	props := make([]CustomizedProperty, 0, len(u.custom))
	for name, value := range u.custom {
		props = append(props, CustomizedProperty{Name: name, Value: value})
	}
	return props
}

// ValueOf resolves a targeting property. "keyId" and "name" (case
// insensitive) map to the built-in fields, anything else to the custom
// properties. The second result reports whether the property has a value.
func (u User) ValueOf(property string) (string, bool) {
	switch {
	case strings.EqualFold(property, PropertyKeyID):
		return u.key, true
	case strings.EqualFold(property, PropertyName):
		return u.name, u.name != ""
	default:
		return u.Custom(property)
	}
}

// IsValid reports whether the user can be evaluated.
func (u User) IsValid() bool {
	return strings.TrimSpace(u.key) != ""
}

// UserBuilder assembles a [User].
type UserBuilder struct {
	key    string
	name   string
	custom map[string]string
}

// NewUserBuilder starts a user with the given key.
func NewUserBuilder(key string) *UserBuilder {
	return &UserBuilder{key: key, custom: map[string]string{}}
}

// Name sets the display name.
func (b *UserBuilder) Name(name string) *UserBuilder {
	b.name = name
	return b
}

// Custom adds a custom property. Blank names are ignored.
func (b *UserBuilder) Custom(property, value string) *UserBuilder {
	if strings.TrimSpace(property) != "" {
		b.custom[property] = value
	}
	return b
}

// Build returns the user. The builder may be reused afterwards.
func (b *UserBuilder) Build() User {
	custom := make(map[string]string, len(b.custom))
	for k, v := range b.custom {
		custom[k] = v
	}
	return User{key: b.key, name: b.name, custom: custom}
}
