// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package jwtauth verifies and issues HS256 signed bearer tokens.
// A verified token is mapped to a model.Grant which is passed to the
// use cases. There is no login or refresh flow here, tokens are issued
// by an identity service (or by the "stweb token issue" command) which
// shares the same secret.
package jwtauth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/model"
)

// MinSecretLen is the minimum acceptable length of the HMAC secret.
const MinSecretLen = 32

// DefaultTTL is the lifetime of issued tokens, if not configured.
const DefaultTTL = 12 * time.Hour

// Claims is the payload of the bearer tokens.
type Claims struct {
	EmployeeID string `json:"employee_id"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// Authenticator verifies and issues tokens with one shared secret.
// It is safe for concurrent use.
type Authenticator struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// Option is a functional option for the Authenticator.
type Option func(a *Authenticator) error

// WithIssuer makes the Authenticator to set the iss claim of issued
// tokens and to reject tokens of other issuers.
func WithIssuer(issuer string) Option {
	return func(a *Authenticator) error {
		if issuer == "" {
			return errors.New("issuer is empty")
		}
		a.issuer = issuer
		return nil
	}
}

// WithTTL configures the lifetime of issued tokens.
func WithTTL(ttl time.Duration) Option {
	return func(a *Authenticator) error {
		if ttl <= 0 {
			return fmt.Errorf("ttl (%v) is not positive", ttl)
		}
		a.ttl = ttl
		return nil
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) error {
		if now == nil {
			return errors.New("clock is nil")
		}
		a.now = now
		return nil
	}
}

// New instantiates an Authenticator with the given HMAC secret.
func New(secret []byte, opts ...Option) (*Authenticator, error) {
	if l := len(secret); l < MinSecretLen {
		return nil, fmt.Errorf(
			"secret has %d bytes, at least %d are required",
			l, MinSecretLen,
		)
	}
	a := &Authenticator{secret: secret, ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, fmt.Errorf("invalid option: %w", err)
		}
	}
	return a, nil
}

// Verify parses the token string, checks its signature, expiration,
// and issuer, and returns the Grant of its holder.
// All failures are reported as an authentication *cerr.Error.
func (a *Authenticator) Verify(token string) (model.Grant, error) {
	if token == "" {
		return model.Grant{}, cerr.Authentication(
			errors.New("bearer token is required"),
		)
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (any, error) { return a.secret, nil },
		opts...,
	)
	if err != nil {
		return model.Grant{}, cerr.Authentication(
			fmt.Errorf("invalid token: %w", err),
		)
	}
	if claims.EmployeeID == "" {
		return model.Grant{}, cerr.Authentication(
			errors.New("invalid token: employee_id claim is missing"),
		)
	}
	role, err := model.ParseRole(claims.Role)
	if err != nil {
		return model.Grant{}, cerr.Authentication(
			fmt.Errorf("invalid token: %w", err),
		)
	}
	return model.GrantFor(role, claims.EmployeeID), nil
}

// Issue creates a signed token for the employeeID with the role.
func (a *Authenticator) Issue(employeeID string, role model.Role) (string, error) {
	if employeeID == "" {
		return "", errors.New("employee id is empty")
	}
	if _, err := model.ParseRole(string(role)); err != nil {
		return "", err
	}
	now := a.now()
	claims := &Claims{
		EmployeeID: employeeID,
		Role:       string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    a.issuer,
			Subject:   employeeID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return s, nil
}
