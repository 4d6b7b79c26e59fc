package creds

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/domain/credential"
)

var (
	listClientID string
	listFormat   string
)

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List credentials",
	Long:  `Lists the credentials you may view, optionally scoped to one client.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		creds, fromCache, err := app.ListCredentials(cmd.Context(), listClientID)
		if err != nil {
			return fmt.Errorf("failed to list credentials: %w", err)
		}
		if fromCache {
			color.Yellow("Server unreachable, showing cached data")
		}

		if listFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(creds)
		}
		return printCredentialsTable(creds)
	},
}

func printCredentialsTable(creds []credential.Credential) error {
	if len(creds) == 0 {
		fmt.Println("No credentials found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tType\tEnvironment\tAccess\tUpdated\t\n")

	for _, c := range creds {
		access := "everyone"
		if !c.IsLegacy {
			access = fmt.Sprintf("restricted (%d)", c.ViewerCount)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			c.ID, c.Name, c.ServiceType, c.Environment, access,
			c.LastUpdated.Format("2006-01-02"))
	}

	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(creds))
	return nil
}

func init() {
	ListCmd.Flags().StringVarP(&listClientID, "client", "c", "", "limit to one client id")
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
