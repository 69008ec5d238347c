// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package model

import (
	"fmt"
	"log/slog"
	"slices"
)

// Role is the role of an authenticated caller.
type Role string

// Known roles. Admins and managers may submit pings for any worker and
// read reports, while employees may only submit their own pings.
const (
	RoleAdmin    Role = "admin"
	RoleManager  Role = "manager"
	RoleEmployee Role = "employee"
)

// ParseRole parses s as one of the known roles.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleAdmin, RoleManager, RoleEmployee:
		return r, nil
	default:
		return "", fmt.Errorf("unknown role: %q", s)
	}
}

// Grant describes what an authenticated caller is allowed to do.
// It is computed by the authentication adapter and passed to the use
// cases explicitly, so use cases never consult a global current-user
// state and can be tested without any authentication machinery.
type Grant struct {
	Subject string // worker identifier of the caller, if any
	Role    Role

	// Workers lists worker identifiers which the caller may submit
	// pings for. A nil slice means that the caller is unrestricted.
	Workers []string

	// Reports is true if the caller may query historical reports.
	Reports bool
}

// GrantFor returns the Grant of a caller with the given role and
// worker identifier.
func GrantFor(role Role, workerID string) Grant {
	switch role {
	case RoleAdmin, RoleManager:
		return Grant{Subject: workerID, Role: role, Reports: true}
	default:
		return Grant{
			Subject: workerID,
			Role:    role,
			Workers: []string{workerID},
		}
	}
}

// Permits reports whether pings of the workerID may be submitted by
// the grant holder.
func (g Grant) Permits(workerID string) bool {
	if g.Workers == nil {
		return true
	}
	return slices.Contains(g.Workers, workerID)
}

// LogValue implements slog.LogValuer.
func (g Grant) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("subject", g.Subject),
		slog.String("role", string(g.Role)),
	)
}
