// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package sitesrp provides a reification of the repo.Sites interface,
// reading the sites catalog from the sites table.
package sitesrp

import (
	"context"

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

// Conn unwraps the given repo.Conn instance, expecting to find an
// instance of *postgres.Conn as created by this adapter layer.
// Otherwise, it will panic.
func (sites *Repo) Conn(c repo.Conn) repo.SitesConnQueryer {
	cc := c.(*postgres.Conn)
	return connQueryer{Conn: cc}
}

func (cq connQueryer) ActiveSites(ctx context.Context) ([]model.Site, error) {
	return ActiveSites(ctx, cq.Conn)
}

type txQueryer struct {
	*postgres.Tx
}

// Tx unwraps the given repo.Tx instance, expecting to find an instance
// of *postgres.Tx as created by this adapter layer.
// Otherwise, it will panic.
func (sites *Repo) Tx(tx repo.Tx) repo.SitesTxQueryer {
	tt := tx.(*postgres.Tx)
	return txQueryer{Tx: tt}
}

func (tq txQueryer) ActiveSites(ctx context.Context) ([]model.Site, error) {
	return ActiveSites(ctx, tq.Tx)
}
