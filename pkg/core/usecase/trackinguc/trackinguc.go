// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package trackinguc contains the tracking UseCase which supports the
// field workers tracking use cases:
//  1. Ingesting a GPS ping, resolving its geofenced site, and appending
//     it as a tracking point,
//  2. Reporting the tracking points of a worker in a range of dates.
//
// Callers are described by a model.Grant which is passed explicitly to
// each use case, so this package does not know about tokens or roles.
package trackinguc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/geo"
	"github.com/momeni/sitetrack/pkg/core/log"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

// Default values of the optional settings.
const (
	DefaultReportLimit = 1000
	MaximumReportLimit = 10000
)

// UseCase represents the tracking use case. It holds a database
// connection pool, the sites and tracking repositories (to be guided
// with the DB pool), and the tracking use case specific settings.
// It keeps no state across calls and may be used concurrently.
type UseCase struct {
	pool       repo.Pool
	sitesrp    repo.Sites
	trackingrp repo.Tracking

	now          func() time.Time
	defaultLimit int
	maximumLimit int
	loc          *time.Location
}

// New instantiates a tracking use case.
// Required parameters are passed individually, so caller has to
// provision them and whenever they change, caller will notice and fix
// them due to a compilation error.
// Optional parameters are passed as a series of functional options
// in order to facilitate their validation and flexibility.
func New(
	p repo.Pool, s repo.Sites, t repo.Tracking, opts ...Option,
) (*UseCase, error) {
	uc := &UseCase{pool: p, sitesrp: s, trackingrp: t}
	for _, opt := range opts {
		if err := opt(uc); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	// now, deal with defaults
	if uc.now == nil {
		uc.now = time.Now
	}
	if uc.maximumLimit == 0 {
		uc.maximumLimit = MaximumReportLimit
	}
	if uc.defaultLimit == 0 {
		uc.defaultLimit = min(DefaultReportLimit, uc.maximumLimit)
	}
	if uc.loc == nil {
		uc.loc = time.UTC
	}
	return uc, nil
}

// Ingest use case validates the ping, checks that the grant permits
// submitting pings for its worker, resolves the nearest active site
// which contains the ping, and appends exactly one tracking point.
// The persisted tracking point is returned. In case of errors, no row
// is appended and a *cerr.Error is returned.
//
// A ping without a timestamp is recorded with the ingestion time.
// Accuracy is stored as reported, it does not affect the matching.
func (uc *UseCase) Ingest(
	ctx context.Context, grant model.Grant, ping model.Ping,
) (*model.TrackingPoint, error) {
	if err := validatePing(ping); err != nil {
		return nil, cerr.InvalidInput(err)
	}
	if !grant.Permits(ping.WorkerID) {
		log.Warn(
			ctx, "rejected ping of another worker",
			log.Valuer("grant", grant), log.Worker(ping.WorkerID),
		)
		return nil, cerr.Forbidden(fmt.Errorf(
			"pings of %q worker may not be submitted", ping.WorkerID,
		))
	}
	now := uc.now().UTC()
	ts := now
	if ping.Timestamp != nil {
		ts = ping.Timestamp.UTC()
	}
	tp := &model.TrackingPoint{
		ID:         uuid.New(),
		WorkerID:   ping.WorkerID,
		Timestamp:  ts,
		Coordinate: ping.Coordinate,
		AccuracyM:  ping.AccuracyM,
		InsertedAt: now,
	}
	start := time.Now()
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		sites, err := uc.sitesrp.Conn(c).ActiveSites(ctx)
		if err != nil {
			return fmt.Errorf("loading active sites: %w", err)
		}
		if m, ok := geo.Nearest(ping.Coordinate, sites); ok {
			id, name := m.Site.ID, m.Site.Name
			tp.SiteID, tp.SiteName = &id, &name
		}
		if err = uc.trackingrp.Conn(c).Append(ctx, tp); err != nil {
			return fmt.Errorf("appending tracking point: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Error(
			ctx, "ingestion failed",
			log.Worker(ping.WorkerID), log.Err("err", err),
		)
		return nil, cerr.StoreUnavailable(err)
	}
	log.Debug(
		ctx, "ping ingested",
		log.Worker(tp.WorkerID),
		log.Valuer("coordinate", tp.Coordinate),
		log.Elapsed(start),
	)
	return tp, nil
}

func validatePing(ping model.Ping) error {
	if strings.TrimSpace(ping.WorkerID) == "" {
		return errors.New("employee_id is required")
	}
	if err := ping.Coordinate.Validate(); err != nil {
		return err
	}
	if a := ping.AccuracyM; a != nil && !(*a >= 0) {
		return fmt.Errorf("accuracy (%v) must be non-negative", *a)
	}
	return nil
}

// Report use case returns the tracking points of the q.WorkerID worker
// which were observed from the beginning of the q.From date until the
// end of the q.To date (both inclusive) in the configured time zone.
// Results are sorted by their timestamps (ties are broken by their
// insertion times and IDs) and are truncated at the effective limit.
// Only grants with the Reports privilege may run this query.
func (uc *UseCase) Report(
	ctx context.Context, grant model.Grant, q model.ReportQuery,
) ([]model.TrackingPoint, error) {
	if !grant.Reports {
		return nil, cerr.NotAuthorized(errors.New(
			"reports are only available to admins and managers",
		))
	}
	if strings.TrimSpace(q.WorkerID) == "" {
		return nil, cerr.InvalidInput(errors.New("employee_id is required"))
	}
	limit := q.Limit
	if limit == 0 {
		limit = uc.defaultLimit
	}
	if limit < 1 || limit > uc.maximumLimit {
		return nil, cerr.InvalidInput(fmt.Errorf(
			"limit (%d) must be in [1, %d]", limit, uc.maximumLimit,
		))
	}
	if q.From.After(q.To) {
		return nil, cerr.InvalidRange(fmt.Errorf(
			"start_date (%s) is after end_date (%s)", q.From, q.To,
		))
	}
	from := q.From.Start(uc.loc)
	to := q.To.Start(uc.loc).AddDate(0, 0, 1)
	var tps []model.TrackingPoint
	err := uc.pool.Conn(ctx, func(ctx context.Context, c repo.Conn) (err error) {
		tps, err = uc.trackingrp.Conn(c).Range(
			ctx, q.WorkerID, from, to, limit,
		)
		return err
	})
	if err != nil {
		log.Error(
			ctx, "report query failed",
			log.Worker(q.WorkerID), log.Err("err", err),
		)
		return nil, cerr.StoreUnavailable(err)
	}
	return tps, nil
}
