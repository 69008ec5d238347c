// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

import "context"

// Schema is the database schema management repository. It is used by
// the database initialization use case with an admin role connection
// in order to prepare an empty schema and the normal role which will
// create and own the tables.
type Schema interface {
	Conn(Conn) SchemaConnQueryer
	Tx(Tx) SchemaTxQueryer
}

type SchemaConnQueryer interface {
	SchemaQueryer
}

type SchemaTxQueryer interface {
	SchemaQueryer

	// ChangePasswords updates the passwords of the given roles in the
	// current transaction. The roles and passwords slices must have the
	// same length, so they can be used in pair. Passwords are hashed
	// before being sent to the DBMS, so they may not leak in plaintext.
	ChangePasswords(
		ctx context.Context, roles []Role, passwords []string,
	) error
}

// SchemaQueryer contains the schema and roles management queries.
// The schema names are trusted values which are computed by the
// use cases layer, never by the end-users.
type SchemaQueryer interface {
	// DropIfExists drops the schema without cascading if it exists.
	// A non-empty schema causes an error.
	DropIfExists(ctx context.Context, schema string) error

	// CreateSchema creates the schema which must not exist yet.
	CreateSchema(ctx context.Context, schema string) error

	// CreateRoleIfNotExists creates a login role with no password.
	CreateRoleIfNotExists(ctx context.Context, role Role) error

	// GrantPrivileges grants ALL privileges on the schema to the role.
	GrantPrivileges(ctx context.Context, schema string, role Role) error

	// SetSearchPath makes the schema the default search_path of role.
	SetSearchPath(ctx context.Context, schema string, role Role) error
}

// SchemaInitializer creates the tables of the latest schema version
// in the current search_path and fills them with initial data.
// It wraps a transaction which must be committed by the caller.
type SchemaInitializer interface {
	// InitDevSchema creates tables and inserts a few sample sites.
	InitDevSchema(ctx context.Context) error

	// InitProdSchema creates tables without inserting any data.
	InitProdSchema(ctx context.Context) error
}
