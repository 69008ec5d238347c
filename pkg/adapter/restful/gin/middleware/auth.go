// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package middleware contains the gin-gonic middlewares which are
// shared by resources, namely the bearer token authentication and the
// per-caller rate limiting.
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/model"
)

const grantKey = "stweb.grant"

// Verifier verifies a bearer token and returns the Grant of its holder.
type Verifier interface {
	Verify(token string) (model.Grant, error)
}

// Authenticate returns a middleware which verifies the bearer token of
// the Authorization header using v and stores the resulting grant in
// the gin context. Requests without a valid token are aborted with the
// 401 status code. See GrantOf.
func Authenticate(v Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(h, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") {
			serdser.Abort(c, cerr.Authentication(
				errors.New("bearer token is required"),
			))
			return
		}
		g, err := v.Verify(strings.TrimSpace(token))
		if err != nil {
			serdser.Abort(c, err)
			return
		}
		c.Set(grantKey, g)
		c.Next()
	}
}

// GrantOf returns the grant which is stored by Authenticate.
// The zero Grant (which permits nothing) is returned otherwise.
func GrantOf(c *gin.Context) model.Grant {
	if v, ok := c.Get(grantKey); ok {
		if g, ok := v.(model.Grant); ok {
			return g
		}
	}
	return model.Grant{Workers: []string{}}
}
