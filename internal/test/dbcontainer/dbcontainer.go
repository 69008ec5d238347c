// Copyright (c) 2023-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package dbcontainer is an internal helper for the test packages.
// It starts a temporary postgres:16 container, connects to it using a
// *postgres.Pool connection pool, and may create the sites and
// tracking points tables in its public schema.
// It is used by the integration-level test suites which require a
// real PostgreSQL DBMS server.
package dbcontainer

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/bitcomplete/sqltestutil"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres"
	"github.com/momeni/sitetrack/pkg/adapter/db/postgres/settler"
	"github.com/momeni/sitetrack/pkg/core/repo"
	"github.com/stretchr/testify/assert"
)

// New creates and starts up a postgres container.
// With podman, the podman.service needs to be started and the
// DOCKER_HOST environment variable needs to be initialized beforehand
// like DOCKER_HOST=unix://$XDG_RUNTIME_DIR/podman/podman.sock
// in order to be identified by this function properly.
// The ctx will be used during the container start up and shutdown,
// while the timeout will be considered only during the start up phase.
// Returned dfrs functions must be called (in order) by the caller,
// even if ok is false, in order to release the acquired resources.
func New(ctx context.Context, timeout time.Duration, t *testing.T) (
	pg *sqltestutil.PostgresContainer,
	pool *postgres.Pool,
	dfrs []func(),
	ok bool,
) {
	ctx2, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	pg, err := sqltestutil.StartPostgresContainer(ctx2, "16")
	ok = assert.NoError(t, err, "failed to set up a test database")
	if !ok {
		return
	}
	dfrs = append(dfrs, func() {
		err := pg.Shutdown(ctx)
		assert.NoError(t, err, "failed to shutdown test database")
	})
	u := pg.ConnectionString()
	for pool == nil {
		pool, err = postgres.NewPool(ctx2, u)
		if retryable(ctx2, err) {
			continue
		}
		ok = assert.NoError(t, err, "cannot connect to test database")
		if !ok {
			return
		}
	}
	dfrs = append(dfrs, func() {
		err := pool.Close()
		assert.NoError(t, err, "failed to close the connections pool")
	})
	return
}

// retryable reports whether err is expected while the container is
// starting up, so connecting to it should be tried again.
func retryable(ctx context.Context, err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.SQLState() == "57P03" {
		return true // the database system is starting up
	}
	var netErr net.Error
	return ctx.Err() == nil && errors.As(err, &netErr)
}

// Settle creates the sites and tracking points tables in one
// transaction. The sample sites are inserted too if dev is true.
func Settle(ctx context.Context, p repo.Pool, dev bool) error {
	return p.Conn(ctx, func(ctx context.Context, c repo.Conn) error {
		return c.Tx(ctx, func(ctx context.Context, tx repo.Tx) error {
			s := settler.New(tx)
			if dev {
				return s.InitDevSchema(ctx)
			}
			return s.InitProdSchema(ctx)
		})
	})
}
