// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"
	"database/sql"

	"github.com/momeni/sitetrack/pkg/core/repo"
	"gorm.io/gorm"
)

// Queryer is the type constraint of generic repository functions which
// may run on a connection or in a transaction.
type Queryer interface {
	*Conn | *Tx
	repo.Queryer
	GORM(ctx context.Context) *gorm.DB
}

// exec runs the q statements on db with the given args.
// Parameters in q should be numbered like $1, $2, etc. as they are
// supported by the PostgreSQL wire protocol natively, while GORM also
// replaces the ? placeholders. In absence of args, q may contain
// multiple semi-colon separated statements (as used for DDL).
func exec(ctx context.Context, db *gorm.DB, q string, args []any) (int64, error) {
	tt := db.WithContext(ctx).Exec(q, args...)
	if err := tt.Error; err != nil {
		return 0, err
	}
	return tt.RowsAffected, nil
}

// query runs the q statement on db. Only one ongoing statement may be
// used on each connection, so the returned rows must be closed before
// running another statement.
func query(ctx context.Context, db *gorm.DB, q string, args []any) (repo.Rows, error) {
	rows, err := db.WithContext(ctx).Raw(q, args...).Rows()
	if err != nil {
		return nil, err
	}
	return rowsAdapter{rows}, nil
}

// rowsAdapter converts the Close method of *sql.Rows to the repo.Rows
// expected signature. Its error is reported by Err afterwards.
type rowsAdapter struct {
	*sql.Rows
}

func (ra rowsAdapter) Close() {
	_ = ra.Rows.Close()
}
