// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package scram exports the expected interface of a Salted Challenge
// Response Authentication Mechanism (SCRAM) password hasher. For the
// corresponding implementation, check the adapter layer.
//
// The SCRAM conversations themselves are handled by the PostgreSQL
// server and its driver. Here, only the stored form of a password is
// needed, so the database initialization may set role passwords
// without sending them in plaintext within the ALTER ROLE statements
// (where they could be logged).
package scram

// Hasher computes the stored form of a password for a fixed underlying
// hash function (e.g., SHA1 or SHA256), as detailed in RFC 5802.
// Usernames are not asked since they do not affect the stored keys.
type Hasher interface {
	// Hash derives the storedKey and serverKey values of a non-empty
	// pass (normalized by SASLprep, see RFC 4013) using PBKDF2 with
	// the given base64 encoded salt and iters iterations count.
	// An empty salt selects a random salt. The iters must be at least
	// 4096, while RFC 7677 recommends 15000 or more.
	//
	// The returned string has the following format, consisting only
	// of ASCII printable letters, as accepted by PostgreSQL in CREATE
	// or ALTER ROLE statements:
	//
	//	SCRAM-{SHA-X}${iters}:{b64-salt}${b64-storedKey}:{b64-serverKey}
	Hash(pass, salt string, iters int) (string, error)
}
