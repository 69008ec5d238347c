// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import (
	"context"
	"time"

	"github.com/momeni/sitetrack/pkg/core/model"
)

type TrackingConnQueryer interface {
	TrackingQueryer
}

type TrackingTxQueryer interface {
	TrackingQueryer
}

// TrackingQueryer is the append-only tracking points store.
type TrackingQueryer interface {
	// Append persists tp as a new row. The tp.ID must be set by the
	// caller. Existing rows are never updated or deleted.
	Append(ctx context.Context, tp *model.TrackingPoint) error

	// Range returns at most limit tracking points of the workerID
	// worker which their observation timestamps are in the [from, to)
	// half-open interval. Rows are sorted by timestamp, then by their
	// insertion time and ID in order to have a total order.
	Range(
		ctx context.Context,
		workerID string,
		from, to time.Time,
		limit int,
	) ([]model.TrackingPoint, error)
}

type Tracking interface {
	Conn(Conn) TrackingConnQueryer
	Tx(Tx) TrackingTxQueryer
}
