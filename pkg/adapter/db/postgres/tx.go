// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package postgres

import (
	"context"

	"github.com/momeni/sitetrack/pkg/core/repo"
	"gorm.io/gorm"
)

// Tx represents a database transaction which is begun by Conn.Tx.
// It embeds the *gorm.DB, hence, may be used like GORM from within
// the repository packages, while the schema initialization code uses
// its raw Exec method.
type Tx struct {
	*gorm.DB
}

// Exec runs sql with args in the transaction and returns the number
// of affected rows.
func (tx *Tx) Exec(ctx context.Context, sql string, args ...any) (int64, error) {
	return exec(ctx, tx.DB, sql, args)
}

// Query runs sql with args in the transaction and returns its rows.
func (tx *Tx) Query(ctx context.Context, sql string, args ...any) (repo.Rows, error) {
	return query(ctx, tx.DB, sql, args)
}

func (tx *Tx) IsTx() {
}

// GORM returns the embedded *gorm.DB instance, configuring it
// to operate on the given ctx context (in a gorm.Session).
func (tx *Tx) GORM(ctx context.Context) *gorm.DB {
	return tx.DB.WithContext(ctx)
}
