// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package settings

// Default makes the (*dst) pointer to point to a newly allocated copy
// of def, if it is nil. A non-nil (*dst) is kept intact, so settings
// which are given in a config file take precedence over the defaults.
func Default[T any](dst **T, def T) {
	if *dst == nil {
		*dst = &def
	}
}

// Nil2Zero is like Default, using the zero value of T as the default.
// It is useful for the boolean flags which are disabled by default.
func Nil2Zero[T any](t **T) {
	var zero T
	Default(t, zero)
}
