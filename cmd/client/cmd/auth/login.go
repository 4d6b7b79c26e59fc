package auth

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var LoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in to the CredVault server",
	Long: `Authenticates against the server and stores the bearer token locally
for subsequent commands.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		u, err := app.Login(ctx, email, string(password))
		if err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}

		color.Green("Logged in as %s <%s>", u.Name, u.Email)
		return nil
	},
}
