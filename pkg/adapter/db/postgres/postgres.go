// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package postgres adapts the GORM framework (over the pgx driver) to
// the repo package interfaces. The Pool, Conn, and Tx types implement
// repo.Pool, repo.Conn, and repo.Tx respectively, while sub-packages
// provide the repositories which unwrap them.
package postgres

import (
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres/settler"
	"github.com/momeni/sitetrack/pkg/core/model"
)

// These constants represent the major, minor, and patch components of
// the current database schema semantic version. Since the settler
// package creates the tables, the latest version is taken from there.
const (
	Major = settler.Major // latest supported schema major version
	Minor = settler.Minor // latest schema minor version in Major series
	Patch = settler.Patch // latest schema patch version in Minor series
)

// Version is the latest supported database schema semantic version.
var Version = model.SemVer{Major, Minor, Patch}
