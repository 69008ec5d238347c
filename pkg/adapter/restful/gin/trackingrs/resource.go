// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package trackingrs realizes the tracking resource, allowing the
// pings submission and report REST APIs to be accepted and delegated
// to the tracking use cases respectively.
package trackingrs

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/middleware"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/sitetrack/pkg/core/usecase/trackinguc"
)

type resource struct {
	tracking *trackinguc.UseCase
}

// Register instantiates a resource adapting the tracking use case
// instance with the relevant REST APIs including:
//  1. POST request to /tracking in order to submit a ping,
//  2. GET request to /tracking/report in order to list the tracking
//     points of a worker in a range of dates.
//
// The r router group must authenticate its requests beforehand (see
// the middleware.Authenticate). The ingest handlers are served after
// the given ingest middlewares (e.g., a rate limiter).
func Register(
	r gin.IRouter,
	tracking *trackinguc.UseCase,
	ingest ...gin.HandlerFunc,
) {
	rs := &resource{tracking: tracking}
	r.POST("tracking", append(ingest[:len(ingest):len(ingest)], rs.Ingest)...)
	r.GET("tracking/report", rs.Report)
}

func (rs *resource) Ingest(c *gin.Context) {
	ping := rs.DserIngestReq(c)
	if ping == nil {
		return
	}
	tp, err := rs.tracking.Ingest(c, middleware.GrantOf(c), *ping)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	c.JSON(http.StatusOK, SerTrackingPoint(tp))
}

func (rs *resource) Report(c *gin.Context) {
	q := rs.DserReportReq(c)
	if q == nil {
		return
	}
	tps, err := rs.tracking.Report(c, middleware.GrantOf(c), *q)
	if err != nil {
		serdser.SerErr(c, err)
		return
	}
	resp := make([]*TrackingPoint, 0, len(tps))
	for i := range tps {
		resp = append(resp, SerTrackingPoint(&tps[i]))
	}
	c.JSON(http.StatusOK, resp)
}
