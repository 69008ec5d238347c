// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import "time"

// DefaultSiteRadius is the geofence radius (in meters) which is used
// for sites which are created without an explicit radius.
const DefaultSiteRadius = 150.0

// LocalizedText holds a bilingual string. The Primary locale is Arabic
// and the Secondary locale is English. Both fields are always present,
// an untranslated value is kept as an empty string.
type LocalizedText struct {
	Primary   string `json:"ar"`
	Secondary string `json:"en"`
}

// Site models a geofenced location. Sites are managed by an external
// site management service and this project only reads them, so there
// is no mutating operation on Site in the use cases layer.
// A decommissioned site is deactivated instead of being deleted and
// inactive sites never match a tracking ping.
type Site struct {
	ID          int64         // stable identifier, assigned on creation
	Name        LocalizedText // display names
	Description LocalizedText // optional descriptions
	Center      Coordinate    // geofence center
	RadiusM     float64       // geofence radius in meters, positive
	Active      bool          // only active sites participate in matching
	CreatedAt   time.Time
}

// Contains reports whether a point at distance meters from the site
// center falls inside its geofence. The boundary is inclusive.
func (s *Site) Contains(distance float64) bool {
	return s.Active && s.RadiusM > 0 && distance <= s.RadiusM
}
