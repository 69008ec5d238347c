// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package repo

// Role is a string specifying a database connection role. Each role
// has a set of granted privileges which indicates which operations
// may be performed after using it for connecting to a database.
// It is unrelated to the model.Role of the REST API callers.
type Role string

// These constants specify the expected database roles. The AdminRole
// must exist beforehand with super user privileges, so it can create
// the NormalRole during a database initialization. Passwords of both
// roles are kept in a pgpass file as indicated in the config file.
const (
	// AdminRole is used only for creating the schema and the normal
	// role, granting privileges, and renewing passwords.
	AdminRole Role = "admin"

	// NormalRole creates the tables and serves all ingestion and
	// report queries.
	NormalRole Role = "stweb"
)
