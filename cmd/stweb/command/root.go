// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package command provides the root and sub-commands for the stweb
// field workers tracking service. Commands are organized using the
// cobra library. The root command starts the web server itself while
// the "db" sub-command can be used for the database initialization
// actions and the "token" sub-command issues bearer tokens for the
// operators and test clients.
//
//	./stweb [-c /path/of/config.yaml]           # start web server
//	./stweb db init-dev [-c /path/of/config.yaml]
//	./stweb db init-prod [-c /path/of/config.yaml]
//	./stweb token issue --employee-id E1 --role employee
//
// A .env file in the working directory (if any) is loaded before the
// configuration file, so STWEB_DATABASE_URL and STWEB_JWT_SECRET may
// be kept there during development.
package command

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/momeni/sitetrack/pkg/adapter/config"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin"
	"github.com/momeni/sitetrack/pkg/adapter/restful/gin/routes"
	"github.com/momeni/sitetrack/pkg/core/log"
	"github.com/momeni/sitetrack/pkg/core/repo"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "stweb",
	Short: "Geofenced tracking service for mobile field workers",
	Long: `Geofenced tracking service for mobile field workers which
accepts GPS pings, resolves the nearest active site containing each
ping, records it as an append-only tracking point (with a snapshot of
the site names), and serves the historical tracking points of a worker
in a range of calendar dates.
Sites and tracking points are kept in a PostgreSQL database which may
be prepared by the "db init-dev" or "db init-prod" sub-commands.
Callers are authenticated by HS256 bearer tokens.`,
	RunE: startWebServer,
	Args: cobra.NoArgs,
}

// loadConfig loads the cfgPath configuration file and installs the
// default logger based on its logging settings.
func loadConfig() (*config.Config, error) {
	c, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("config.Load(%q): %w", cfgPath, err)
	}
	if err = c.Logging.Setup(os.Stderr); err != nil {
		return nil, fmt.Errorf("setting up logger: %w", err)
	}
	return c, nil
}

func startWebServer(_ *cobra.Command, _ []string) error {
	ctx := context.Background()
	c, err := loadConfig()
	if err != nil {
		return err
	}
	log.Info(
		ctx, "configs are loaded",
		slog.String("path", cfgPath),
		slog.String("address", c.Gin.Address),
		slog.String("database", c.Database.Name),
		log.Valuer("token-ttl", c.Auth.TokenTTL),
	)
	p, err := c.ConnectionPool(ctx, repo.NormalRole)
	if err != nil {
		return fmt.Errorf("creating DB pool: %w", err)
	}
	defer p.Close()
	var e *gin.Engine = c.Gin.NewEngine()
	if err = routes.Register(ctx, e, p, c); err != nil {
		return fmt.Errorf("registering routes: %w", err)
	}
	if err = e.Run(c.Gin.Address); err != nil {
		return fmt.Errorf("running Gin engine: %w", err)
	}
	return nil
}

// Execute runs the rootCmd which in turn parses CLI arguments and
// flags and runs the most specific cobra command. The exit code may
// be a boolean (zero for success and non-zero for failure) or may be
// chosen based on the error condition (if it is desired to report
// several error conditions in the CLI of this program).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadDotEnv, fixConfigPath)
	rootCmd.PersistentFlags().StringVarP(
		&cfgPath, "config", "c", "", "config file path",
	)
}

// loadDotEnv loads the .env file of the working directory into the
// environment variables, without overriding the existing variables.
// A missing .env file is ignored.
func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "ignoring .env file: %v\n", err)
	}
}

// fixConfigPath ensures that cfgPath is set respectively by either the
// CLI args, the CONFIG_FILE environment variable, or its default value.
func fixConfigPath() {
	if cfgPath != "" {
		return
	}
	var found bool
	if cfgPath, found = os.LookupEnv("CONFIG_FILE"); !found {
		// the default path should usually be in the /etc directory
		cfgPath = "configs/sample-config.yaml"
	}
}
