package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

type tokenOptions struct {
	userID string
	email  string
	secret string
	ttl    time.Duration
}

func newTokenCmd() *cobra.Command {
	opts := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the timesheet API",
		Long: `Issue an HS256 access token signed with the API secret. Users are
authenticated upstream; this is for operators and local development.`,
		Example: "  JWT_SECRET_KEY=... worktime token --user-id 3f2a... --email ana@example.com",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runToken(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.userID, "user-id", "", "user ID for the user_id claim")
	cmd.Flags().StringVar(&opts.email, "email", "", "optional email claim")
	cmd.Flags().StringVar(&opts.secret, "secret", os.Getenv("JWT_SECRET_KEY"), "signing secret, defaults to JWT_SECRET_KEY")
	cmd.Flags().DurationVar(&opts.ttl, "ttl", time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("user-id")
	return cmd
}

func runToken(cmd *cobra.Command, opts *tokenOptions) error {
	if opts.secret == "" {
		return errors.New("a signing secret is required, set --secret or JWT_SECRET_KEY")
	}
	if opts.ttl <= 0 {
		return fmt.Errorf("invalid ttl %s", opts.ttl)
	}

	token, expiresAt, err := jwt.NewJWTService(opts.secret, opts.ttl, 0).GenerateAccessToken(opts.userID, opts.email)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	fmt.Fprintf(cmd.ErrOrStderr(), "expires %s\n", time.Unix(expiresAt, 0).UTC().Format(time.RFC3339))
	return nil
}
