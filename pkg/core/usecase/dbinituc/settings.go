// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package dbinituc

import (
	"context"

	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

// Pool is a repo.Pool which must be closed after its usage.
type Pool interface {
	repo.Pool
	Close() error
}

// Settings represents the database-related settings which should
// be provided by a configuration file. It allows a database connection
// pool to be established for an asked role using the ConnectionPool
// method, reports the database schema version, may be used as a
// factory for the repo.Schema and repo.SchemaInitializer, and can
// change passwords of a set of database roles while storing the new
// passwords in the relevant files.
type Settings interface {
	// ConnectionPool creates a database connection pool using the
	// connection information which are kept in this Settings
	// instance. The `r` argument specifies the role name for the
	// created connection pool.
	//
	// Password values are kept in a pgpass file and creation of a
	// connection pool depends on identification of a valid password
	// for the given role and the database host, port, and name.
	// Each non-empty and non-commented line of the passwords file
	// should conform with this format:
	//
	//	host:port:dbname:role:password
	//
	// A second temporary passwords file may hold the new passwords
	// while they are being renewed. If it was used for establishment
	// of a connection pool, it will be moved over the main passwords
	// file before returning.
	ConnectionPool(ctx context.Context, r repo.Role) (Pool, error)

	// NewSchemaRepo instantiates a fresh Schema repository.
	// Role names may be suffixed based on the settings, so the repo
	// needs to obtain the same role name suffix.
	NewSchemaRepo() repo.Schema

	// SchemaInitializer creates a repo.SchemaInitializer instance
	// which wraps the given transaction and can be used to create
	// tables and fill them with development or production suitable
	// data. Changes are persisted only if `tx` commits successfully.
	SchemaInitializer(tx repo.Tx) repo.SchemaInitializer

	// RenewPasswords generates new secure passwords for the given roles
	// and after recording them in a temporary file, will use the change
	// function in order to update the passwords of those roles in the
	// database too. The change function argument should perform the
	// update operation in a transaction which may or may not be
	// committed when RenewPasswords returns. In case of a successful
	// commitment, the temporary passwords file should be moved over
	// the main passwords file using the returned finalizer function.
	RenewPasswords(
		ctx context.Context,
		change func(
			ctx context.Context,
			roles []repo.Role,
			passwords []string,
		) error,
		roles ...repo.Role,
	) (finalizer func() error, err error)

	// SchemaVersion returns the semantic version of the database schema
	// which its connection information are kept by this Settings.
	SchemaVersion() model.SemVer
}
