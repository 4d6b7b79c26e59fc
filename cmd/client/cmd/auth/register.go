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

var RegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account on the CredVault server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		fmt.Print("Name: ")
		var name string
		_, _ = fmt.Scanln(&name)

		fmt.Print("Email: ")
		var email string
		_, _ = fmt.Scanln(&email)

		fmt.Print("Password: ")
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		fmt.Print("Repeat password: ")
		confirm, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()

		if string(password) != string(confirm) {
			return fmt.Errorf("passwords do not match")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		u, err := app.Register(ctx, name, email, string(password))
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("Account created for %s <%s>", u.Name, u.Email)
		return nil
	},
}
