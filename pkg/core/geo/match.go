// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package geo

import "github.com/momeni/sitetrack/pkg/core/model"

// Match is the result of a successful geofence lookup.
type Match struct {
	Site     *model.Site
	Distance float64 // meters from the site center
}

// Nearest returns the site whose geofence contains c and which has the
// smallest distance from c to its center. Equal distances are resolved
// in favor of the lower site ID, so the result does not depend on the
// order of sites. Inactive sites and sites with a non-positive radius
// are ignored. The second return value is false if no site contains c.
//
// The lookup is a linear scan over sites. It is meant for catalogs of
// tens to a few hundreds of sites and no spatial index is maintained.
func Nearest(c model.Coordinate, sites []model.Site) (Match, bool) {
	var best Match
	for i := range sites {
		s := &sites[i]
		if !s.Active || s.RadiusM <= 0 {
			continue
		}
		d := Distance(c, s.Center)
		if !s.Contains(d) {
			continue
		}
		if best.Site == nil || d < best.Distance ||
			(d == best.Distance && s.ID < best.Site.ID) {
			best = Match{Site: s, Distance: d}
		}
	}
	return best, best.Site != nil
}
