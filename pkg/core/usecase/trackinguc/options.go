// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package trackinguc

import (
	"errors"
	"fmt"
	"time"
)

// Option is a functional option for the tracking use case.
type Option func(uc *UseCase) error

// WithClock option replaces the time.Now function which is used for
// the ingestion time of pings. It is mainly useful in tests.
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		if uc.now != nil {
			return errors.New("clock is already configured")
		}
		uc.now = now
		return nil
	}
}

// WithReportLimits option configures the number of rows which are
// returned by a report query when no limit is asked (def) and the
// largest acceptable limit (maximum).
func WithReportLimits(def, maximum int) Option {
	return func(uc *UseCase) error {
		if maximum <= 0 {
			return fmt.Errorf("maximum limit (%d) is not positive", maximum)
		}
		if def <= 0 || def > maximum {
			return fmt.Errorf(
				"default limit (%d) is not in [1, %d]", def, maximum,
			)
		}
		if uc.maximumLimit != 0 {
			return errors.New("report limits are already configured")
		}
		uc.defaultLimit, uc.maximumLimit = def, maximum
		return nil
	}
}

// WithLocation option configures the time zone which is used in order
// to convert the report query calendar dates to time instants.
func WithLocation(loc *time.Location) Option {
	return func(uc *UseCase) error {
		if loc == nil {
			return errors.New("location is nil")
		}
		if uc.loc != nil {
			return errors.New("location is already configured")
		}
		uc.loc = loc
		return nil
	}
}
