package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
)

// AuthCmd is the parent command for session management.
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your session",
	Long:  `Register, log in and log out of the CredVault server.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
