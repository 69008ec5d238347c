// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package jwtauth_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/sitetrack/pkg/adapter/auth/jwtauth"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte(strings.Repeat("s", jwtauth.MinSecretLen))

func TestIssueAndVerify(t *testing.T) {
	a, err := jwtauth.New(secret, jwtauth.WithIssuer("stweb"))
	require.NoError(t, err)

	tok, err := a.Issue("E1", model.RoleEmployee)
	require.NoError(t, err)
	g, err := a.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "E1", g.Subject)
	assert.Equal(t, []string{"E1"}, g.Workers)
	assert.False(t, g.Reports)

	tok, err = a.Issue("M1", model.RoleManager)
	require.NoError(t, err)
	g, err = a.Verify(tok)
	require.NoError(t, err)
	assert.Nil(t, g.Workers)
	assert.True(t, g.Reports)
	assert.True(t, g.Permits("anyone"))
}

func assertUnauthenticated(t *testing.T, err error) {
	t.Helper()
	var ce *cerr.Error
	if assert.True(t, errors.As(err, &ce), "expected *cerr.Error: %v", err) {
		assert.Equal(t, http.StatusUnauthorized, ce.HTTPStatusCode)
	}
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	a, err := jwtauth.New(
		secret,
		jwtauth.WithIssuer("stweb"),
		jwtauth.WithTTL(time.Hour),
		jwtauth.WithClock(func() time.Time { return now }),
	)
	require.NoError(t, err)
	tok, err := a.Issue("E1", model.RoleAdmin)
	require.NoError(t, err)

	_, err = a.Verify("")
	assertUnauthenticated(t, err)
	_, err = a.Verify("not-a-token")
	assertUnauthenticated(t, err)
	_, err = a.Verify(tok + "x")
	assertUnauthenticated(t, err)

	other, err := jwtauth.New(
		[]byte(strings.Repeat("o", jwtauth.MinSecretLen)),
		jwtauth.WithIssuer("stweb"),
	)
	require.NoError(t, err)
	_, err = other.Verify(tok)
	assertUnauthenticated(t, err)

	later, err := jwtauth.New(
		secret,
		jwtauth.WithIssuer("stweb"),
		jwtauth.WithClock(func() time.Time { return now.Add(2 * time.Hour) }),
	)
	require.NoError(t, err)
	_, err = later.Verify(tok)
	assertUnauthenticated(t, err)

	foreign, err := jwtauth.New(secret, jwtauth.WithIssuer("else"))
	require.NoError(t, err)
	_, err = foreign.Verify(tok)
	assertUnauthenticated(t, err)
}

func TestVerifyRejectsUnknownRoleAndNone(t *testing.T) {
	a, err := jwtauth.New(secret)
	require.NoError(t, err)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtauth.Claims{
		EmployeeID:       "E1",
		Role:             "root",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = a.Verify(tok)
	assertUnauthenticated(t, err)

	tok, err = jwt.NewWithClaims(jwt.SigningMethodNone, &jwtauth.Claims{
		EmployeeID:       "E1",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = a.Verify(tok)
	assertUnauthenticated(t, err)

	tok, err = jwt.NewWithClaims(jwt.SigningMethodHS256, &jwtauth.Claims{
		EmployeeID: "E1",
		Role:       "admin",
	}).SignedString(secret)
	require.NoError(t, err)
	_, err = a.Verify(tok)
	assertUnauthenticated(t, err)
}

func TestNewRejectsShortSecret(t *testing.T) {
	_, err := jwtauth.New([]byte("short"))
	assert.Error(t, err)
	_, err = jwtauth.New(secret, jwtauth.WithTTL(0))
	assert.Error(t, err)
}
