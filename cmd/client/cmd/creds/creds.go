package creds

import (
	"fmt"

	"github.com/spf13/cobra"

	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
)

// CredsCmd is the parent command for credential operations.
var CredsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Browse credentials",
	Long:  `List and inspect the credentials you are allowed to view.`,
}

func appFromContext(cmd *cobra.Command) (*client.App, error) {
	app, ok := cmd.Context().Value(types.ClientAppKey).(*client.App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
