// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"time"
)

// DateLayout is the layout of calendar dates in report queries.
const DateLayout = time.DateOnly

// Date is a calendar date without a time of day or time zone.
// It is converted to an instant only when a time zone is known, see
// the Start method.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD string as a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, err
	}
	return DateOf(t), nil
}

// DateOf returns the calendar date of t in its own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Start returns the first instant of the d date in the loc location.
func (d Date) Start(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// After reports whether d is a later calendar date than d2.
func (d Date) After(d2 Date) bool {
	switch {
	case d.Year != d2.Year:
		return d.Year > d2.Year
	case d.Month != d2.Month:
		return d.Month > d2.Month
	default:
		return d.Day > d2.Day
	}
}

// String formats d as YYYY-MM-DD.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// ReportQuery asks for the tracking points of one worker from the
// beginning of the From date until the end of the To date (both
// inclusive). A zero Limit asks for the default number of rows.
type ReportQuery struct {
	WorkerID string
	From, To Date
	Limit    int
}
