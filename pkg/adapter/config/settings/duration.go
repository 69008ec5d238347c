// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settings provides the generic helpers for loading of the
// configuration settings, such as the Duration type which can be read
// from YAML files, the defaults filling functions for the optional
// (pointer) settings, and the range verification of the settings which
// have minimum and maximum boundary values.
package settings

import (
	"log/slog"
	"strings"
	"time"
)

// Duration is a time.Duration which may be read from a YAML file (like
// token-ttl: 12h) and is written back in a compact form.
type Duration time.Duration

// UnmarshalText reifies the encoding.TextUnmarshaler interface, so
// a YAML scalar can be decoded as a time duration. The data format
// should conform to the time.ParseDuration expected format. In case of
// errors, `d` receiver is not updated.
func (d *Duration) UnmarshalText(data []byte) error {
	dd, err := time.ParseDuration(string(data))
	if err != nil {
		return err
	}
	*d = Duration(dd)
	return nil
}

// Marshal returns a string representation of the `d` time duration,
// or nil if d is nil. Zero trailing components are dropped, so 2h is
// returned instead of 2h0m0s, while a zero duration is encoded as 0s.
func (d *Duration) Marshal() *string {
	if d == nil {
		return nil
	}
	s := time.Duration(*d).String()
	if t, ok := strings.CutSuffix(s, "m0s"); ok {
		s = t + "m"
		if t, ok = strings.CutSuffix(s, "h0m"); ok {
			s = t + "h"
		}
	}
	return &s
}

// MarshalText implements encoding.TextMarshaler interface using the
// Marshal method.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(*d.Marshal()), nil
}

// LogValue implements slog.LogValuer and returns a DurationValue if
// this Duration is not nil, otherwise, it returns a StringValue with
// the constant "nil-duration" value.
func (d *Duration) LogValue() slog.Value {
	if d == nil {
		return slog.StringValue("nil-duration")
	}
	return slog.DurationValue(time.Duration(*d))
}
