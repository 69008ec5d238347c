// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package model defines the inner most layer of the Clean Architecture
// containing the business-level models, namely sites, tracking pings
// and points, report queries, and caller grants.
// This layer may not depend on outter layers, while all other layers
// may depend on it. Adapter layer packages keep their own tagged
// structs (e.g., for GORM) and convert them to these models.
package model

import (
	"fmt"
	"log/slog"
	"math"
)

// Coordinate represents a geographical location with a latitude and
// longitude in degrees. It has no identity of its own and is always
// embedded in a Site or TrackingPoint. The gorm embedded tag of those
// adapter structs maps Lat and Lon into lat and lon columns.
type Coordinate struct {
	Lat float64 `json:"lat"` // latitude, in [-90, 90]
	Lon float64 `json:"lng"` // longitude, in [-180, 180]
}

// CoordinateError reports which component of a coordinate is out of
// its acceptable range. The Axis is either "lat" or "lng" matching the
// JSON field names, so REST adapters can report it per field.
type CoordinateError struct {
	Axis  string
	Value float64
}

// Error implements the error interface.
func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s (%v) is out of range", e.Axis, e.Value)
}

// Validate returns nil if both latitude and longitude are finite and
// within their ranges. Otherwise, a *CoordinateError is returned.
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || c.Lat < -90 || c.Lat > 90 {
		return &CoordinateError{Axis: "lat", Value: c.Lat}
	}
	if math.IsNaN(c.Lon) || c.Lon < -180 || c.Lon > 180 {
		return &CoordinateError{Axis: "lng", Value: c.Lon}
	}
	return nil
}

// LogValue implements slog.LogValuer, grouping lat and lng.
func (c Coordinate) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("lat", c.Lat),
		slog.Float64("lng", c.Lon),
	)
}
