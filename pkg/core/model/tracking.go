// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"time"

	"github.com/google/uuid"
)

// Ping is one GPS observation as submitted by a field worker device,
// before it is validated and resolved against the sites catalog.
// The AccuracyM and Timestamp are optional and are left nil when the
// device could not provide them.
type Ping struct {
	WorkerID   string
	Coordinate Coordinate
	AccuracyM  *float64
	Timestamp  *time.Time
}

// TrackingPoint is a persisted Ping. It is created exactly once per
// accepted ping and never updated afterwards.
//
// The SiteID and SiteName fields are resolved during the ingestion.
// SiteName is a snapshot of the matched site names at that moment and
// not a live reference, so renaming or deactivating a site later does
// not change the historical reports. When no site contains the ping,
// both fields are nil.
type TrackingPoint struct {
	ID         uuid.UUID
	WorkerID   string
	Timestamp  time.Time // observation time, or ingestion time if absent
	Coordinate Coordinate
	AccuracyM  *float64
	SiteID     *int64
	SiteName   *LocalizedText
	InsertedAt time.Time
}
