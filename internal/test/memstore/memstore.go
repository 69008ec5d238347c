// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package memstore provides an in-memory implementation of the repo
// package interfaces for the sites catalog and the tracking points.
// It is used by the use cases unit tests, so they may run without a
// database container. A Store is safe for concurrent use.
package memstore

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

// ErrUnsupported is returned by the raw SQL methods of the connections.
var ErrUnsupported = errors.New("raw SQL is not supported by memstore")

// Store keeps sites and tracking points in memory. It implements the
// repo.Pool, repo.Sites, and repo.Tracking interfaces, so one Store
// may be passed for all of them.
type Store struct {
	mu     sync.Mutex
	sites  []model.Site
	points []model.TrackingPoint

	// Fail, if non-nil, is returned by all queries.
	Fail error
}

// New creates a Store which contains a copy of the given sites.
func New(sites ...model.Site) *Store {
	return &Store{sites: slices.Clone(sites)}
}

// PutSite inserts s or replaces the site with the same ID.
func (s *Store) PutSite(site model.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.sites {
		if s.sites[i].ID == site.ID {
			s.sites[i] = site
			return
		}
	}
	s.sites = append(s.sites, site)
}

// Points returns a copy of all appended tracking points, in their
// insertion order.
func (s *Store) Points() []model.TrackingPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.points)
}

// Len returns the number of appended tracking points.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.points)
}

// Conn implements repo.Pool, calling handler with a fake connection.
func (s *Store) Conn(ctx context.Context, handler repo.ConnHandler) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return handler(ctx, conn{})
}

type conn struct{}

func (conn) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrUnsupported
}

func (conn) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrUnsupported
}

func (c conn) Tx(ctx context.Context, handler repo.TxHandler) error {
	return handler(ctx, tx{})
}

func (conn) IsConn() {
}

type tx struct{}

func (tx) Exec(context.Context, string, ...any) (int64, error) {
	return 0, ErrUnsupported
}

func (tx) Query(context.Context, string, ...any) (repo.Rows, error) {
	return nil, ErrUnsupported
}

func (tx) IsTx() {
}

// Sites returns s as a repo.Sites implementation.
func (s *Store) Sites() repo.Sites {
	return sitesRepo{s}
}

// Tracking returns s as a repo.Tracking implementation.
func (s *Store) Tracking() repo.Tracking {
	return trackingRepo{s}
}

type sitesRepo struct{ s *Store }

func (r sitesRepo) Conn(repo.Conn) repo.SitesConnQueryer { return r }
func (r sitesRepo) Tx(repo.Tx) repo.SitesTxQueryer       { return r }

func (r sitesRepo) ActiveSites(context.Context) ([]model.Site, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var active []model.Site
	for _, site := range s.sites {
		if site.Active {
			active = append(active, site)
		}
	}
	slices.SortFunc(active, func(a, b model.Site) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return active, nil
}

type trackingRepo struct{ s *Store }

func (r trackingRepo) Conn(repo.Conn) repo.TrackingConnQueryer { return r }
func (r trackingRepo) Tx(repo.Tx) repo.TrackingTxQueryer       { return r }

func (r trackingRepo) Append(_ context.Context, tp *model.TrackingPoint) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return s.Fail
	}
	cp := *tp
	if tp.SiteName != nil {
		name := *tp.SiteName
		cp.SiteName = &name
	}
	s.points = append(s.points, cp)
	return nil
}

func (r trackingRepo) Range(
	_ context.Context, workerID string, from, to time.Time, limit int,
) ([]model.TrackingPoint, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Fail != nil {
		return nil, s.Fail
	}
	var tps []model.TrackingPoint
	for _, tp := range s.points {
		if tp.WorkerID != workerID {
			continue
		}
		if tp.Timestamp.Before(from) || !tp.Timestamp.Before(to) {
			continue
		}
		tps = append(tps, tp)
	}
	slices.SortFunc(tps, func(a, b model.TrackingPoint) int {
		if c := a.Timestamp.Compare(b.Timestamp); c != 0 {
			return c
		}
		if c := a.InsertedAt.Compare(b.InsertedAt); c != 0 {
			return c
		}
		return bytes.Compare(a.ID[:], b.ID[:])
	})
	if len(tps) > limit {
		tps = tps[:limit]
	}
	return tps, nil
}
