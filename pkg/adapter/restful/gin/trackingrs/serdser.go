// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package trackingrs

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/sitetrack/pkg/core/model"
)

type ingestReq struct {
	EmployeeID string     `json:"employee_id" binding:"required,max=32"`
	Lat        *float64   `json:"lat" binding:"required,gte=-90,lte=90"`
	Lng        *float64   `json:"lng" binding:"required,gte=-180,lte=180"`
	Accuracy   *float64   `json:"accuracy" binding:"omitempty,gte=0"`
	Timestamp  *time.Time `json:"timestamp"`
}

type reportReq struct {
	EmployeeID string `form:"employee_id" binding:"required,max=32"`
	StartDate  string `form:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate    string `form:"end_date" binding:"required,datetime=2006-01-02"`
	Limit      int    `form:"limit"`
}

// TrackingPoint is the JSON representation of a model.TrackingPoint.
// Site fields are null if no site contained the ping.
type TrackingPoint struct {
	ID         uuid.UUID `json:"id"`
	EmployeeID string    `json:"employee_id"`
	Timestamp  time.Time `json:"timestamp"`
	Lat        float64   `json:"lat"`
	Lng        float64   `json:"lng"`
	Accuracy   *float64  `json:"accuracy"`
	SiteID     *int64    `json:"site_id"`
	SiteNameAr *string   `json:"site_name_ar"`
	SiteNameEn *string   `json:"site_name_en"`
	InsertedAt time.Time `json:"inserted_at"`
}

// SerTrackingPoint converts tp to its JSON representation.
func SerTrackingPoint(tp *model.TrackingPoint) *TrackingPoint {
	resp := &TrackingPoint{
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
		resp.SiteNameAr, resp.SiteNameEn = &ar, &en
	}
	return resp
}

func (rs *resource) DserIngestReq(c *gin.Context) *model.Ping {
	req := &ingestReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.Ping{
		WorkerID:   req.EmployeeID,
		Coordinate: model.Coordinate{Lat: *req.Lat, Lon: *req.Lng},
		AccuracyM:  req.Accuracy,
		Timestamp:  req.Timestamp,
	}
}

func (rs *resource) DserReportReq(c *gin.Context) *model.ReportQuery {
	req := &reportReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	var errs map[string][]string
	from, err := model.ParseDate(req.StartDate)
	serdser.Assert(&errs, err == nil, "start_date", "Expected YYYY-MM-DD.")
	to, err := model.ParseDate(req.EndDate)
	serdser.Assert(&errs, err == nil, "end_date", "Expected YYYY-MM-DD.")
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return &model.ReportQuery{
		WorkerID: req.EmployeeID,
		From:     from,
		To:       to,
		Limit:    req.Limit,
	}
}
