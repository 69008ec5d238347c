// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"

	"github.com/momeni/sitetrack/pkg/core/model"
)

type SitesConnQueryer interface {
	SitesQueryer
}

type SitesTxQueryer interface {
	SitesQueryer
}

// SitesQueryer is the read-only view of the sites catalog.
type SitesQueryer interface {
	// ActiveSites returns a snapshot of all active sites, ordered by
	// their IDs. The snapshot is read on every call and is not cached,
	// so a deactivated site is excluded from the next call right away.
	// Returned slice belongs to the caller.
	ActiveSites(ctx context.Context) ([]model.Site, error)
}

type Sites interface {
	Conn(Conn) SitesConnQueryer
	Tx(Tx) SitesTxQueryer
}
