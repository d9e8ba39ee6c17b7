package main

import (
	"fmt"

	"github.com/dangerclosesec/jobdesk/internal/auth"
	"github.com/dangerclosesec/jobdesk/internal/config"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token [employer-id]",
	Short: "Issue an access token for an employer",
	Long:  `Sign a bearer token for the given employer with the configured JWT secret and expiry.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		employerID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid employer id %q: %w", args[0], err)
		}
		email, err := cmd.Flags().GetString("email")
		if err != nil {
			return err
		}

		cfg := config.Load()
		token, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod).Generate(employerID.String(), email)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}
