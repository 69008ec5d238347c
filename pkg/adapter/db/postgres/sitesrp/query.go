// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package sitesrp

import (
	"context"
	"fmt"
	"time"

	"github.com/momeni/sitetrack/pkg/adapter/db/postgres"
	"github.com/momeni/sitetrack/pkg/core/model"
)

type gSite struct {
	ID            int64 `gorm:"primaryKey"`
	NameAr        string
	NameEn        string
	DescriptionAr string
	DescriptionEn string
	Lat           float64
	Lng           float64
	RadiusM       float64
	IsActive      bool
	CreatedAt     time.Time
}

func (gs *gSite) TableName() string {
	return "sites"
}

func (gs *gSite) Model() model.Site {
	return model.Site{
		ID: gs.ID,
		Name: model.LocalizedText{
			Primary: gs.NameAr, Secondary: gs.NameEn,
		},
		Description: model.LocalizedText{
			Primary: gs.DescriptionAr, Secondary: gs.DescriptionEn,
		},
		Center:    model.Coordinate{Lat: gs.Lat, Lon: gs.Lng},
		RadiusM:   gs.RadiusM,
		Active:    gs.IsActive,
		CreatedAt: gs.CreatedAt,
	}
}

// ActiveSites reads all active sites with a positive radius, sorted
// by their IDs.
func ActiveSites[Q postgres.Queryer](ctx context.Context, q Q) ([]model.Site, error) {
	var gs []gSite
	gdb := q.GORM(ctx).Where(
		"is_active AND radius_m > 0",
	).Order("id").Find(&gs)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	sites := make([]model.Site, 0, len(gs))
	for i := range gs {
		sites = append(sites, gs[i].Model())
	}
	return sites, nil
}
