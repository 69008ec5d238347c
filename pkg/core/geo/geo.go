// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package geo provides the geofence matching logic, consisting of
// the great-circle distance function and the nearest containing site
// resolution policy. Functions of this package are pure and CPU-only,
// so they may be called concurrently and never block.
package geo

import (
	"math"

	"github.com/momeni/sitetrack/pkg/core/model"
)

// EarthRadius is the mean Earth radius in meters which is used by the
// spherical approximation of Distance.
const EarthRadius = 6371000.0

func radians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// normalizeLon maps a longitude difference (in degrees) into the
// (-180, 180] interval, so callers may pass raw longitudes from both
// sides of the antimeridian.
func normalizeLon(d float64) float64 {
	d = math.Mod(d, 360)
	switch {
	case d > 180:
		d -= 360
	case d <= -180:
		d += 360
	}
	return d
}

// Distance returns the great-circle distance between a and b in meters
// using the haversine formula. The haversine term is clamped to [0, 1]
// because rounding errors may push it slightly out of that range for
// antipodal or nearly coincident points.
func Distance(a, b model.Coordinate) float64 {
	lat1, lat2 := radians(a.Lat), radians(b.Lat)
	dLat := lat2 - lat1
	dLon := radians(normalizeLon(b.Lon - a.Lon))
	sLat, sLon := math.Sin(dLat/2), math.Sin(dLon/2)
	h := sLat*sLat + math.Cos(lat1)*math.Cos(lat2)*sLon*sLon
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadius * math.Asin(math.Sqrt(h))
}
