// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geo_test

import (
	"math"
	"testing"

	"github.com/momeni/sitetrack/pkg/core/geo"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/stretchr/testify/assert"
)

func TestDistanceIsSymmetric(t *testing.T) {
	for _, tc := range []struct {
		name string
		a, b model.Coordinate
	}{
		{"riyadh", model.Coordinate{Lat: 24.7136, Lon: 46.6753}, model.Coordinate{Lat: 25.0, Lon: 47.0}},
		{"poles", model.Coordinate{Lat: 90, Lon: 0}, model.Coordinate{Lat: -90, Lon: 45}},
		{"antimeridian", model.Coordinate{Lat: 10, Lon: 179.9}, model.Coordinate{Lat: 10, Lon: -179.9}},
		{"equator", model.Coordinate{Lat: 0, Lon: -180}, model.Coordinate{Lat: 0, Lon: 180}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			ab, ba := geo.Distance(tc.a, tc.b), geo.Distance(tc.b, tc.a)
			assert.InDelta(t, ab, ba, 1e-6)
			assert.False(t, math.IsNaN(ab))
			assert.Zero(t, geo.Distance(tc.a, tc.a))
		})
	}
}

func TestDistanceKnownValues(t *testing.T) {
	// one degree of latitude on the mean sphere
	oneDeg := geo.EarthRadius * math.Pi / 180
	assert.InDelta(t, oneDeg, geo.Distance(
		model.Coordinate{Lat: 0, Lon: 0}, model.Coordinate{Lat: 1, Lon: 0},
	), 1e-6)
	assert.InDelta(t, math.Pi*geo.EarthRadius, geo.Distance(
		model.Coordinate{Lat: 90, Lon: 0}, model.Coordinate{Lat: -90, Lon: 0},
	), 1e-3)
	// 0.2 degrees of longitude across the antimeridian, not 359.8
	d := geo.Distance(
		model.Coordinate{Lat: 0, Lon: 179.9},
		model.Coordinate{Lat: 0, Lon: -179.9},
	)
	assert.InDelta(t, 0.2*oneDeg, d, 1e-6)
	// all longitudes meet at a pole
	assert.InDelta(t, 0, geo.Distance(
		model.Coordinate{Lat: 90, Lon: 10}, model.Coordinate{Lat: 90, Lon: -170},
	), 1e-6)
}

// north returns the coordinate which is m meters north of c.
func north(c model.Coordinate, m float64) model.Coordinate {
	return model.Coordinate{
		Lat: c.Lat + m/geo.EarthRadius*180/math.Pi,
		Lon: c.Lon,
	}
}

func site(id int64, c model.Coordinate, r float64) model.Site {
	return model.Site{ID: id, Center: c, RadiusM: r, Active: true}
}

func TestNearestBoundaryIsInclusive(t *testing.T) {
	center := model.Coordinate{Lat: 24.7136, Lon: 46.6753}
	sites := []model.Site{site(1, center, 150)}

	onEdge := north(center, 150)
	r := geo.Distance(onEdge, center)
	sites[0].RadiusM = r // exact distance, free of rounding
	m, ok := geo.Nearest(onEdge, sites)
	if assert.True(t, ok, "point on the boundary must match") {
		assert.Equal(t, int64(1), m.Site.ID)
		assert.Equal(t, r, m.Distance)
	}

	_, ok = geo.Nearest(north(center, r+0.01), sites)
	assert.False(t, ok, "point beyond the boundary must not match")
}

func TestNearestPrefersCloserCenter(t *testing.T) {
	p := model.Coordinate{Lat: 24.7136, Lon: 46.6753}
	sites := []model.Site{
		site(1, north(p, 100), 500),
		site(2, north(p, 40), 500),
		site(3, north(p, 10), 5), // does not contain p
	}
	m, ok := geo.Nearest(p, sites)
	if assert.True(t, ok) {
		assert.Equal(t, int64(2), m.Site.ID)
	}
}

func TestNearestBreaksTiesByLowestID(t *testing.T) {
	p := model.Coordinate{Lat: 24.7136, Lon: 46.6753}
	c := north(p, 50)
	for _, sites := range [][]model.Site{
		{site(7, c, 100), site(3, c, 100), site(5, c, 100)},
		{site(5, c, 100), site(7, c, 100), site(3, c, 100)},
	} {
		m, ok := geo.Nearest(p, sites)
		if assert.True(t, ok) {
			assert.Equal(t, int64(3), m.Site.ID)
		}
	}
}

func TestNearestSkipsInactiveAndEmpty(t *testing.T) {
	p := model.Coordinate{Lat: 24.7136, Lon: 46.6753}
	_, ok := geo.Nearest(p, nil)
	assert.False(t, ok)

	inactive := site(1, p, 150)
	inactive.Active = false
	zero := site(2, p, 0)
	_, ok = geo.Nearest(p, []model.Site{inactive, zero})
	assert.False(t, ok)

	_, ok = geo.Nearest(model.Coordinate{Lat: 25, Lon: 47}, []model.Site{site(1, p, 150)})
	assert.False(t, ok)
}
