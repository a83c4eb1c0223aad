package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"daybook/internal/config"
	"daybook/internal/domain"
	"daybook/internal/service"
)

var (
	promoteUsername string
	promoteRevoke   bool
)

// promoteCmd grants or revokes the admin role directly in the store. No HTTP
// route can create the first administrator.
var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant or revoke the admin role for a user",
	Example: `  daybook promote --username alice
  daybook promote --username alice --revoke`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		store, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close(context.Background())

		user, err := setRole(ctx, service.NewUserService(store.Users(), store.Profiles()), promoteUsername, promoteRevoke)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", user.Username, user.Role)
		return nil
	},
}

func setRole(ctx context.Context, users service.UserService, username string, revoke bool) (*domain.User, error) {
	role := domain.RoleAdmin
	if revoke {
		role = domain.RoleStandard
	}
	user, err := users.SetRole(ctx, username, role)
	if err != nil {
		return nil, fmt.Errorf("set role for %q: %w", username, err)
	}
	return user, nil
}

func init() {
	promoteCmd.Flags().StringVar(&promoteUsername, "username", "", "username to update")
	promoteCmd.Flags().BoolVar(&promoteRevoke, "revoke", false, "revoke admin instead of granting it")
	_ = promoteCmd.MarkFlagRequired("username")
}
