// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package repo specifies the expected interfaces of the database
// repositories from the use cases point of view. Use cases borrow a
// connection from a Pool for the duration of each operation and pass
// it to the repositories (such as Sites and Tracking) which convert it
// to a queryer with the relevant domain specific methods. Repositories
// keep no connection themselves, so one repository instance may be
// shared by concurrent use case calls.
package repo

import "context"

// ConnHandler is called with a connection which is valid until the
// handler returns.
type ConnHandler func(context.Context, Conn) error

// Pool represents a database connection pool. Its Conn method acquires
// a connection, passes it to the handler, and releases it afterwards.
// The handler error is returned (possibly after wrapping).
type Pool interface {
	Conn(ctx context.Context, handler ConnHandler) error
}

// TxHandler is called with a transaction which is committed if the
// handler returns a nil error and is rolled back otherwise.
type TxHandler func(context.Context, Tx) error

// Conn represents a database connection which is not safe to be used
// concurrently. Statements which run directly on a Conn are committed
// individually, while the Tx method groups them in a transaction.
type Conn interface {
	Queryer
	Tx(ctx context.Context, handler TxHandler) error

	// IsConn method prevents a non-Conn object (such as a Tx) to
	// mistakenly implement the Conn interface.
	IsConn()
}

// Tx represents a database transaction.
// It is unsafe to be used concurrently. All statements which are in
// a single transaction observe the ACID properties. By default, a
// READ-COMMITTED transaction is expected from a PostgreSQL DBMS server.
// For details, read
// https://www.postgresql.org/docs/current/transaction-iso.html#XACT-READ-COMMITTED
type Tx interface {
	Queryer

	// IsTx method prevents a non-Tx object (such as a Conn) to
	// mistakenly implement the Tx interface.
	IsTx()
}

// Queryer runs raw SQL statements. It is used by the schema management
// and initialization code, while sites and tracking repositories expose
// their own domain specific queryers.
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...any) (count int64, err error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
}

// Rows iterates over the result of a Query. Close must be called when
// the iteration is finished and Err must be checked thereafter.
type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}
