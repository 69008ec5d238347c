// Copyright (c) 2024-2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"context"
	"fmt"

	"github.com/momeni/sitetrack/pkg/core/usecase/dbinituc"
	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management actions",
	Long: `Database management actions can be chosen by sub-commands.
For fresh installation in a development or production environment,
the init-dev or init-prod may be used respectively.`,
}

const credsRenewalMessage = `The admin role password is read from the .pgpass file in the
configured pass-dir. Both of the admin and normal role passwords are
renewed and stored in that file (going through a .pgpass.new file, so
an interrupted run may be repeated).`

const schemaMessage = `
The sitetrackN schema (N being the database schema major version) is
dropped and created again, so it must be either non-existent or empty.
Otherwise, it will not be modified and an error will be reported.`

var initDevCmd = &cobra.Command{
	Use:   "init-dev",
	Short: "Initialize database contents with development suitable data",
	Long: `Initialize database contents with development suitable data,
that is, the sites and tracking points tables and a few sample sites
around Riyadh. The database connection information are read from the
config file.
` + credsRenewalMessage + `
` + schemaMessage,
	RunE: runDBInit(func(ctx context.Context, uc *dbinituc.UseCase) error {
		return uc.InitDev(ctx)
	}),
	Args: cobra.NoArgs,
}

var initProdCmd = &cobra.Command{
	Use:   "init-prod",
	Short: "Initialize database contents with production suitable data",
	Long: `Initialize database contents with production suitable data,
that is, the sites and tracking points tables without any rows. The
database connection information are read from the config file.
` + credsRenewalMessage + `
` + schemaMessage,
	RunE: runDBInit(func(ctx context.Context, uc *dbinituc.UseCase) error {
		return uc.InitProd(ctx)
	}),
	Args: cobra.NoArgs,
}

func runDBInit(
	f func(ctx context.Context, uc *dbinituc.UseCase) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()
		c, err := loadConfig()
		if err != nil {
			return err
		}
		if err = f(ctx, c.NewDBInitUseCase()); err != nil {
			return fmt.Errorf("%s: %w", cmd.Name(), err)
		}
		return nil
	}
}

func init() {
	dbCmd.AddCommand(initDevCmd, initProdCmd)
	rootCmd.AddCommand(dbCmd)
}
