package clients

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
)

// ClientsCmd is the parent command for client operations.
var ClientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Browse clients",
	Long:  `List the clients credentials are grouped under.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
