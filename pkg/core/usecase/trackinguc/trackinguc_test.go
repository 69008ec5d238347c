// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package trackinguc_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/momeni/sitetrack/internal/test/memstore"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/usecase/trackinguc"
	"github.com/stretchr/testify/suite"
)

type TrackingUseCaseTestSuite struct {
	suite.Suite

	Ctx   context.Context
	Store *memstore.Store
	UC    *trackinguc.UseCase
	Now   time.Time

	admin, e1 model.Grant
}

func TestTrackingUseCaseTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingUseCaseTestSuite))
}

var hq = model.Site{
	ID:      1,
	Name:    model.LocalizedText{Primary: "المقر", Secondary: "Headquarters"},
	Center:  model.Coordinate{Lat: 24.7136, Lon: 46.6753},
	RadiusM: 150,
	Active:  true,
}

func (ts *TrackingUseCaseTestSuite) SetupTest() {
	ts.Ctx = context.Background()
	ts.Store = memstore.New(hq)
	ts.Now = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		ts.Now = ts.Now.Add(time.Second)
		return ts.Now
	}
	uc, err := trackinguc.New(
		ts.Store, ts.Store.Sites(), ts.Store.Tracking(),
		trackinguc.WithClock(clock),
	)
	ts.Require().NoError(err, "creating tracking use case")
	ts.UC = uc
	ts.admin = model.GrantFor(model.RoleAdmin, "A1")
	ts.e1 = model.GrantFor(model.RoleEmployee, "E1")
}

func (ts *TrackingUseCaseTestSuite) ping(lat, lon float64) model.Ping {
	return model.Ping{
		WorkerID:   "E1",
		Coordinate: model.Coordinate{Lat: lat, Lon: lon},
	}
}

func (ts *TrackingUseCaseTestSuite) day(y int, m time.Month, d int) model.Date {
	return model.Date{Year: y, Month: m, Day: d}
}

func (ts *TrackingUseCaseTestSuite) TestRiyadhScenario() {
	in, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(24.7136, 46.6753))
	ts.Require().NoError(err)
	ts.Require().NotNil(in.SiteID)
	ts.Equal(int64(1), *in.SiteID)
	ts.Require().NotNil(in.SiteName)
	ts.Equal("Headquarters", in.SiteName.Secondary)

	out, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(25.0, 47.0))
	ts.Require().NoError(err)
	ts.Nil(out.SiteID)
	ts.Nil(out.SiteName)

	d := model.DateOf(ts.Now)
	tps, err := ts.UC.Report(ts.Ctx, ts.admin, model.ReportQuery{
		WorkerID: "E1", From: d, To: d, Limit: 10,
	})
	ts.Require().NoError(err)
	ts.Require().Len(tps, 2)
	ts.Equal(in.ID, tps[0].ID)
	ts.Equal(out.ID, tps[1].ID)
}

func (ts *TrackingUseCaseTestSuite) TestNegativeAccuracyIsRejected() {
	p := ts.ping(24.7136, 46.6753)
	a := -1.0
	p.AccuracyM = &a
	before := ts.Store.Len()
	_, err := ts.UC.Ingest(ts.Ctx, ts.e1, p)
	ts.ErrorIs(err, cerr.ErrInvalidInput)
	ts.Equal(before, ts.Store.Len())
}

func (ts *TrackingUseCaseTestSuite) TestInvalidPings() {
	nan := math.NaN()
	cases := map[string]model.Ping{
		"lat above":   ts.ping(90.5, 0),
		"lat below":   ts.ping(-91, 0),
		"lng above":   ts.ping(0, 180.01),
		"lng below":   ts.ping(0, -181),
		"lat nan":     ts.ping(math.NaN(), 0),
		"no worker":   {Coordinate: model.Coordinate{Lat: 1, Lon: 1}},
		"nan accuracy": {
			WorkerID:   "E1",
			Coordinate: model.Coordinate{Lat: 1, Lon: 1},
			AccuracyM:  &nan,
		},
	}
	for name, p := range cases {
		_, err := ts.UC.Ingest(ts.Ctx, ts.admin, p)
		ts.ErrorIs(err, cerr.ErrInvalidInput, name)
		var ce *cerr.Error
		if ts.ErrorAs(err, &ce, name) {
			ts.Equal(400, ce.HTTPStatusCode, name)
		}
	}
	ts.Zero(ts.Store.Len())
}

func (ts *TrackingUseCaseTestSuite) TestBoundaryCoordinatesAreAccepted() {
	for _, c := range []model.Coordinate{
		{Lat: 90, Lon: 180}, {Lat: -90, Lon: -180}, {Lat: 0, Lon: 0},
	} {
		_, err := ts.UC.Ingest(ts.Ctx, ts.e1, model.Ping{
			WorkerID: "E1", Coordinate: c,
		})
		ts.NoError(err, "coordinate: %v", c)
	}
	ts.Equal(3, ts.Store.Len())
}

func (ts *TrackingUseCaseTestSuite) TestEmployeeMayNotSubmitForOthers() {
	p := ts.ping(24.7136, 46.6753)
	p.WorkerID = "E2"
	_, err := ts.UC.Ingest(ts.Ctx, ts.e1, p)
	ts.ErrorIs(err, cerr.ErrForbidden)
	ts.Zero(ts.Store.Len())

	_, err = ts.UC.Ingest(ts.Ctx, ts.admin, p)
	ts.NoError(err, "admins may submit for any worker")
	ts.Equal(1, ts.Store.Len())
}

func (ts *TrackingUseCaseTestSuite) TestTimestampDefaultsToIngestionTime() {
	tp, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(1, 1))
	ts.Require().NoError(err)
	ts.Equal(ts.Now, tp.Timestamp)
	ts.Equal(ts.Now, tp.InsertedAt)

	loc := time.FixedZone("AST", 3*60*60)
	obs := time.Date(2025, 1, 1, 23, 30, 0, 0, loc)
	p := ts.ping(1, 1)
	p.Timestamp = &obs
	tp, err = ts.UC.Ingest(ts.Ctx, ts.e1, p)
	ts.Require().NoError(err)
	ts.True(obs.Equal(tp.Timestamp))
	ts.Equal(time.UTC, tp.Timestamp.Location())
}

func (ts *TrackingUseCaseTestSuite) TestNoActiveSites() {
	ts.Store.PutSite(model.Site{
		ID: 1, Center: hq.Center, RadiusM: 150, Active: false,
	})
	tp, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(24.7136, 46.6753))
	ts.Require().NoError(err)
	ts.Nil(tp.SiteID)
	ts.Nil(tp.SiteName)
	ts.Equal(1, ts.Store.Len())
}

func (ts *TrackingUseCaseTestSuite) TestSnapshotSurvivesSiteChanges() {
	tp, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(24.7136, 46.6753))
	ts.Require().NoError(err)

	renamed := hq
	renamed.Name = model.LocalizedText{Primary: "x", Secondary: "Renamed"}
	ts.Store.PutSite(renamed)
	tps := ts.Store.Points()
	ts.Require().Len(tps, 1)
	ts.Equal("Headquarters", tps[0].SiteName.Secondary)

	renamed.Active = false
	ts.Store.PutSite(renamed)
	d := model.DateOf(tp.Timestamp)
	tps, err = ts.UC.Report(ts.Ctx, ts.admin, model.ReportQuery{
		WorkerID: "E1", From: d, To: d,
	})
	ts.Require().NoError(err)
	ts.Require().Len(tps, 1)
	ts.Require().NotNil(tps[0].SiteID)
	ts.Equal(int64(1), *tps[0].SiteID)
	ts.Equal(hq.Name, *tps[0].SiteName)

	// a new ping at the same place matches nothing now
	tp, err = ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(24.7136, 46.6753))
	ts.Require().NoError(err)
	ts.Nil(tp.SiteID)
}

func (ts *TrackingUseCaseTestSuite) TestReportInclusiveRange() {
	stamps := []time.Time{
		time.Date(2024, 12, 31, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 1, 3, 23, 59, 59, 0, time.UTC),
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 2, 12, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 4, 0, 0, 0, 0, time.UTC),
	}
	for _, s := range stamps {
		p := ts.ping(25, 47)
		p.Timestamp = &s
		_, err := ts.UC.Ingest(ts.Ctx, ts.e1, p)
		ts.Require().NoError(err)
	}
	other := ts.ping(25, 47)
	other.WorkerID = "E2"
	other.Timestamp = &stamps[3]
	_, err := ts.UC.Ingest(ts.Ctx, ts.admin, other)
	ts.Require().NoError(err)

	tps, err := ts.UC.Report(ts.Ctx, ts.admin, model.ReportQuery{
		WorkerID: "E1",
		From:     ts.day(2025, 1, 1),
		To:       ts.day(2025, 1, 3),
	})
	ts.Require().NoError(err)
	ts.Require().Len(tps, 3)
	ts.Equal(stamps[2], tps[0].Timestamp)
	ts.Equal(stamps[3], tps[1].Timestamp)
	ts.Equal(stamps[1], tps[2].Timestamp)
	for _, tp := range tps {
		ts.Equal("E1", tp.WorkerID)
	}

	tps, err = ts.UC.Report(ts.Ctx, ts.admin, model.ReportQuery{
		WorkerID: "E1",
		From:     ts.day(2025, 1, 1),
		To:       ts.day(2025, 1, 3),
		Limit:    2,
	})
	ts.Require().NoError(err)
	ts.Require().Len(tps, 2)
	ts.Equal(stamps[3], tps[1].Timestamp)
}

func (ts *TrackingUseCaseTestSuite) TestReportTimeZone() {
	loc := time.FixedZone("AST", 3*60*60)
	uc, err := trackinguc.New(
		ts.Store, ts.Store.Sites(), ts.Store.Tracking(),
		trackinguc.WithLocation(loc),
	)
	ts.Require().NoError(err)
	// 2025-01-01 22:00 UTC is 2025-01-02 01:00 in Riyadh
	obs := time.Date(2025, 1, 1, 22, 0, 0, 0, time.UTC)
	p := ts.ping(25, 47)
	p.Timestamp = &obs
	_, err = uc.Ingest(ts.Ctx, ts.e1, p)
	ts.Require().NoError(err)

	q := model.ReportQuery{
		WorkerID: "E1", From: ts.day(2025, 1, 1), To: ts.day(2025, 1, 1),
	}
	tps, err := uc.Report(ts.Ctx, ts.admin, q)
	ts.Require().NoError(err)
	ts.Empty(tps)
	q.From, q.To = ts.day(2025, 1, 2), ts.day(2025, 1, 2)
	tps, err = uc.Report(ts.Ctx, ts.admin, q)
	ts.Require().NoError(err)
	ts.Len(tps, 1)
}

func (ts *TrackingUseCaseTestSuite) TestReportErrors() {
	q := model.ReportQuery{
		WorkerID: "E1",
		From:     ts.day(2025, 1, 3),
		To:       ts.day(2025, 1, 1),
	}
	_, err := ts.UC.Report(ts.Ctx, ts.admin, q)
	ts.ErrorIs(err, cerr.ErrInvalidRange)

	q.From, q.To = q.To, q.From
	_, err = ts.UC.Report(ts.Ctx, ts.e1, q)
	ts.ErrorIs(err, cerr.ErrNotAuthorized)

	for _, limit := range []int{-1, trackinguc.MaximumReportLimit + 1} {
		q.Limit = limit
		_, err = ts.UC.Report(ts.Ctx, ts.admin, q)
		ts.ErrorIs(err, cerr.ErrInvalidInput, "limit: %d", limit)
	}
	q.Limit = trackinguc.MaximumReportLimit
	_, err = ts.UC.Report(ts.Ctx, ts.admin, q)
	ts.NoError(err)

	q.WorkerID = ""
	q.Limit = 0
	_, err = ts.UC.Report(ts.Ctx, ts.admin, q)
	ts.ErrorIs(err, cerr.ErrInvalidInput)
}

func (ts *TrackingUseCaseTestSuite) TestStoreUnavailable() {
	ts.Store.Fail = errors.New("connection refused")
	_, err := ts.UC.Ingest(ts.Ctx, ts.e1, ts.ping(1, 1))
	ts.ErrorIs(err, cerr.ErrStoreUnavailable)
	var ce *cerr.Error
	if ts.ErrorAs(err, &ce) {
		ts.Equal(503, ce.HTTPStatusCode)
	}
	d := ts.day(2025, 1, 1)
	_, err = ts.UC.Report(ts.Ctx, ts.admin, model.ReportQuery{
		WorkerID: "E1", From: d, To: d,
	})
	ts.ErrorIs(err, cerr.ErrStoreUnavailable)
	ts.Store.Fail = nil
	ts.Zero(ts.Store.Len())
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	s := memstore.New()
	for name, opt := range map[string]trackinguc.Option{
		"nil clock":        trackinguc.WithClock(nil),
		"nil location":     trackinguc.WithLocation(nil),
		"zero maximum":     trackinguc.WithReportLimits(1, 0),
		"default too high": trackinguc.WithReportLimits(11, 10),
	} {
		_, err := trackinguc.New(s, s.Sites(), s.Tracking(), opt)
		if err == nil {
			t.Errorf("%s: expected an error", name)
		}
	}
}
