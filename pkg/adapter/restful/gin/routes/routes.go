// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package routes contains all resource packages and facilitates
// instantiation and registration of all repo, use case, and resource
// packages based on the user provided configuration settings.
package routes

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/momeni/sitetrack/pkg/adapter/config"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres/sitesrp"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres/trackingrp"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/middleware"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/trackingrs"
	"github.com/momeni/sitetrack/pkg/core/cerr"
	"github.com/momeni/sitetrack/pkg/core/log"
	"github.com/momeni/sitetrack/pkg/core/repo"
)

// Register instantiates relevant repositories and use cases based on
// the c configuration settings. The p connections pool is passed to
// the use case instances, so they may acquire/release connections
// on demand. These connections will be passed to the repositories
// later in order to run relevant queries on them and accomplish those
// use cases. Each use case package is named like trackinguc and each
// repository package is named like trackingrp.
// Register instantiates a series of "resource" structs, from packages
// which are named like trackingrs, in order to adapt the use cases
// interfaces with the REST APIs. These resources are registered as
// request handlers using the e gin-gonic engine instance, behind the
// bearer token authentication middleware. The /health endpoint is
// served without authentication.
// Possible errors will be returned after possible wrapping.
func Register(
	ctx context.Context, e *gin.Engine, p repo.Pool, c *config.Config,
) error {
	trackingUseCase, err := c.NewTrackingUseCase(
		p, sitesrp.New(), trackingrp.New(),
	)
	if err != nil {
		return fmt.Errorf("creating tracking use case: %w", err)
	}
	auth, err := c.Auth.NewAuthenticator()
	if err != nil {
		return fmt.Errorf("creating authenticator: %w", err)
	}
	var ingest []gin.HandlerFunc
	if rl := c.RateLimit.NewRateLimiter(); rl != nil {
		ingest = append(ingest, rl.Handler())
	} else {
		log.Warn(ctx, "pings rate limiting is disabled")
	}
	e.GET("/health", Health)
	e.NoRoute(NotFound)
	r := e.Group("/", middleware.Authenticate(auth))
	trackingrs.Register(r, trackingUseCase, ingest...)
	return nil
}

// Health reports that the web server is up. It does not check the
// database, so it may be used as a liveness probe.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// NotFound reports unknown routes with a JSON detail message (instead
// of the gin-gonic default plain text body).
func NotFound(c *gin.Context) {
	serdser.SerErr(c, cerr.NotFound(fmt.Errorf(
		"no route for %s %s", c.Request.Method, c.Request.URL.Path,
	)))
}
