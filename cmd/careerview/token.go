package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/careerview/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token",
	Long:  "Sign an HS256 token with auth.admin_secret for the DELETE and clear-all-data endpoints.",
	RunE:  runToken,
}

var tokenSubject string

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "Subject recorded in the token")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if !cfg.Auth.Enabled() {
		return fmt.Errorf("auth.admin_secret is not set (CAREERVIEW_AUTH_ADMIN_SECRET)")
	}
	token, err := server.NewJWTService(cfg.Auth).GenerateToken(tokenSubject)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
