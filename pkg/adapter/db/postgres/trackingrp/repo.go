// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package trackingrp provides a reification of the repo.Tracking
// interface, keeping tracking points in the tracking_points table.
package trackingrp

import (
	"context"
	"time"

	"github.com/momeni/sitetrack/pkg/adapter/db/postgres"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

type Repo struct {
}

func New() *Repo {
	return &Repo{}
}

type connQueryer struct {
	*postgres.Conn
}

func (tracking *Repo) Conn(c repo.Conn) repo.TrackingConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) Append(ctx context.Context, tp *model.TrackingPoint) error {
	return Append(ctx, cq.Conn, tp)
}

func (cq connQueryer) Range(
	ctx context.Context, workerID string, from, to time.Time, limit int,
) ([]model.TrackingPoint, error) {
	return Range(ctx, cq.Conn, workerID, from, to, limit)
}

type txQueryer struct {
	*postgres.Tx
}

func (tracking *Repo) Tx(tx repo.Tx) repo.TrackingTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) Append(ctx context.Context, tp *model.TrackingPoint) error {
	return Append(ctx, tq.Tx, tp)
}

func (tq txQueryer) Range(
	ctx context.Context, workerID string, from, to time.Time, limit int,
) ([]model.TrackingPoint, error) {
	return Range(ctx, tq.Tx, workerID, from, to, limit)
}
