package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var LogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the current session",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		if !app.IsAuthenticated() {
			fmt.Println("Not logged in.")
			return nil
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := app.Logout(ctx); err != nil {
			return fmt.Errorf("logout failed: %w", err)
		}

		color.Green("Logged out")
		return nil
	},
}
