// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package trackingrp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres"
	"github.com/momeni/sitetrack/pkg/core/model"
)

type gTrackingPoint struct {
	ID         uuid.UUID `gorm:"primaryKey;type:uuid"`
	EmployeeID string
	Timestamp  time.Time `gorm:"column:timestamp"`
	Lat        float64
	Lng        float64
	Accuracy   *float64
	SiteID     *int64
	SiteNameAr *string
	SiteNameEn *string
	InsertedAt time.Time
}

func (gtp *gTrackingPoint) TableName() string {
	return "tracking_points"
}

func fromModel(tp *model.TrackingPoint) *gTrackingPoint {
	gtp := &gTrackingPoint{
		ID:         tp.ID,
		EmployeeID: tp.WorkerID,
		Timestamp:  tp.Timestamp,
		Lat:        tp.Coordinate.Lat,
		Lng:        tp.Coordinate.Lon,
		Accuracy:   tp.AccuracyM,
		SiteID:     tp.SiteID,
		InsertedAt: tp.InsertedAt,
	}
	if n := tp.SiteName; n != nil {
		ar, en := n.Primary, n.Secondary
		gtp.SiteNameAr, gtp.SiteNameEn = &ar, &en
	}
	return gtp
}

func (gtp *gTrackingPoint) Model() model.TrackingPoint {
	tp := model.TrackingPoint{
		ID:         gtp.ID,
		WorkerID:   gtp.EmployeeID,
		Timestamp:  gtp.Timestamp.UTC(),
		Coordinate: model.Coordinate{Lat: gtp.Lat, Lon: gtp.Lng},
		AccuracyM:  gtp.Accuracy,
		SiteID:     gtp.SiteID,
		InsertedAt: gtp.InsertedAt.UTC(),
	}
	if gtp.SiteID != nil {
		n := model.LocalizedText{}
		if gtp.SiteNameAr != nil {
			n.Primary = *gtp.SiteNameAr
		}
		if gtp.SiteNameEn != nil {
			n.Secondary = *gtp.SiteNameEn
		}
		tp.SiteName = &n
	}
	return tp
}

// Append inserts tp as a new row of the tracking_points table.
func Append[Q postgres.Queryer](ctx context.Context, q Q, tp *model.TrackingPoint) error {
	gdb := q.GORM(ctx).Create(fromModel(tp))
	if err := gdb.Error; err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

// Range selects at most limit rows of the workerID employee which
// their timestamps are in [from, to). It is served by the composite
// (employee_id, timestamp) index.
func Range[Q postgres.Queryer](
	ctx context.Context,
	q Q,
	workerID string,
	from, to time.Time,
	limit int,
) ([]model.TrackingPoint, error) {
	var gtps []gTrackingPoint
	gdb := q.GORM(ctx).Where(
		`employee_id = ? AND "timestamp" >= ? AND "timestamp" < ?`,
		workerID, from, to,
	).Order(`"timestamp", inserted_at, id`).Limit(limit).Find(&gtps)
	if err := gdb.Error; err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	tps := make([]model.TrackingPoint, 0, len(gtps))
	for i := range gtps {
		tps = append(tps, gtps[i].Model())
	}
	return tps, nil
}
