// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package settler provides the Settler type which creates the tables
// of the latest database schema version and fills them with the
// development or production suitable initial data.
package settler

import (
	"context"
	"fmt"

	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

// These constants indicate the major, minor, and patch components of
// the database schema which is created by this package.
const (
	Major = 1
	Minor = 0
	Patch = 0
)

// Settler implements the repo.SchemaInitializer interface.
//
// Each instance of Settler wraps and uses a single transaction of the
// destination database, but the caller is responsible to commit that
// transaction in order to finalize the initialization operation.
// Tables are created in the current search_path schema, so Settler
// must be used by a connection of the role which should own them.
type Settler struct {
	tx repo.Tx // destination database transaction
}

// New creates a new Settler instance, wrapping the given tx database
// transaction.
func New(tx repo.Tx) *Settler {
	return &Settler{
		tx: tx,
	}
}

const ddl = `
CREATE TABLE sites (
	id             BIGSERIAL PRIMARY KEY,
	name_ar        VARCHAR(255) NOT NULL DEFAULT '',
	name_en        VARCHAR(255) NOT NULL DEFAULT '',
	description_ar VARCHAR(1000) NOT NULL DEFAULT '',
	description_en VARCHAR(1000) NOT NULL DEFAULT '',
	lat            DOUBLE PRECISION NOT NULL CHECK (lat BETWEEN -90 AND 90),
	lng            DOUBLE PRECISION NOT NULL CHECK (lng BETWEEN -180 AND 180),
	radius_m       DOUBLE PRECISION NOT NULL DEFAULT 150 CHECK (radius_m > 0),
	is_active      BOOLEAN NOT NULL DEFAULT TRUE,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE tracking_points (
	id           UUID PRIMARY KEY,
	employee_id  VARCHAR(32) NOT NULL,
	"timestamp"  TIMESTAMPTZ NOT NULL,
	lat          DOUBLE PRECISION NOT NULL,
	lng          DOUBLE PRECISION NOT NULL,
	accuracy     DOUBLE PRECISION CHECK (accuracy >= 0),
	site_id      BIGINT REFERENCES sites (id),
	site_name_ar VARCHAR(255),
	site_name_en VARCHAR(255),
	inserted_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX ix_tracking_points_employee_timestamp
	ON tracking_points (employee_id, "timestamp");
`

// DevSites are the sample sites which are inserted by InitDevSchema.
var DevSites = []model.Site{
	{
		Name: model.LocalizedText{
			Primary: "المقر الرئيسي", Secondary: "Headquarters",
		},
		Center:  model.Coordinate{Lat: 24.7136, Lon: 46.6753},
		RadiusM: model.DefaultSiteRadius,
		Active:  true,
	},
	{
		Name: model.LocalizedText{
			Primary: "المستودع", Secondary: "Warehouse",
		},
		Center:  model.Coordinate{Lat: 24.7250, Lon: 46.6500},
		RadiusM: model.DefaultSiteRadius,
		Active:  true,
	},
	{
		Name: model.LocalizedText{
			Primary: "المكتب البعيد", Secondary: "Remote Office",
		},
		Center:  model.Coordinate{Lat: 24.7000, Lon: 46.6900},
		RadiusM: model.DefaultSiteRadius,
		Active:  true,
	},
}

func (s *Settler) createTables(ctx context.Context) error {
	if _, err := s.tx.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

// InitDevSchema creates tables and fills the sites table with the
// DevSites sample sites.
func (s *Settler) InitDevSchema(ctx context.Context) error {
	if err := s.createTables(ctx); err != nil {
		return err
	}
	for _, site := range DevSites {
		_, err := s.tx.Exec(ctx, `INSERT INTO sites
(name_ar, name_en, description_ar, description_en,
 lat, lng, radius_m, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			site.Name.Primary, site.Name.Secondary,
			site.Description.Primary, site.Description.Secondary,
			site.Center.Lat, site.Center.Lon, site.RadiusM, site.Active,
		)
		if err != nil {
			return fmt.Errorf("inserting %q site: %w", site.Name.Secondary, err)
		}
	}
	return nil
}

// InitProdSchema creates tables without inserting any data. Sites are
// managed by the site management service in production.
func (s *Settler) InitProdSchema(ctx context.Context) error {
	return s.createTables(ctx)
}
