// Copyright (c) 2026 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

package command

import (
	"fmt"

	"github.com/momeni/sitetrack/pkg/core/model"
	"github.com/spf13/cobra"
)

var (
	tokenEmployeeID string
	tokenRole       string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Bearer tokens management actions",
}

var tokenIssueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Issue a bearer token for an employee",
	Long: `Issue a bearer token for an employee with the given role
(admin, manager, or employee) and print it to the standard output.
The token is signed by the auth secret of the config file and expires
after its token-ttl duration.`,
	RunE: issueToken,
	Args: cobra.NoArgs,
}

func issueToken(cmd *cobra.Command, _ []string) error {
	role, err := model.ParseRole(tokenRole)
	if err != nil {
		return err
	}
	c, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := c.Auth.NewAuthenticator()
	if err != nil {
		return fmt.Errorf("creating authenticator: %w", err)
	}
	tok, err := a.Issue(tokenEmployeeID, role)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}

func init() {
	flags := tokenIssueCmd.Flags()
	flags.StringVar(&tokenEmployeeID, "employee-id", "", "employee identifier")
	flags.StringVar(
		&tokenRole, "role", string(model.RoleEmployee),
		"role of the employee",
	)
	_ = tokenIssueCmd.MarkFlagRequired("employee-id")
	tokenCmd.AddCommand(tokenIssueCmd)
	rootCmd.AddCommand(tokenCmd)
}
