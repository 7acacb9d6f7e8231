package main

import (
	"errors"
	"fmt"
	"time"

	"focus_forge/internal/auth"
	"focus_forge/internal/config"

	"github.com/spf13/cobra"
)

// tokenCmd issues a bearer token for local development. Production tokens
// come from the auth provider.
func tokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a development bearer token",
		Long: `Issue a bearer token signed with AUTH_JWT_SECRET.

Examples:
  focus_forge token --user=alice
  curl -H "Authorization: Bearer $(focus_forge token --user=alice)" localhost:8080/api/now
`,
		RunE: runToken,
	}

	cmd.Flags().String("user", "", "User ID to put in the token subject (required)")
	_ = cmd.MarkFlagRequired("user")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")

	return cmd
}

func runToken(cmd *cobra.Command, args []string) error {
	userID, _ := cmd.Flags().GetString("user")
	ttl, _ := cmd.Flags().GetDuration("ttl")

	cfg, err := config.New()
	if err != nil {
		return err
	}
	if cfg.JWTSecret == "" {
		return errors.New("AUTH_JWT_SECRET is not set")
	}
	if ttl <= 0 {
		return errors.New("--ttl must be positive")
	}

	token, err := auth.NewVerifier(cfg.JWTSecret).Issue(userID, ttl)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
