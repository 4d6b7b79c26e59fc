package clients

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clientdom "credvault/internal/domain/client"
)

var listFormat string

var ListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		clients, fromCache, err := app.ListClients(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list clients: %w", err)
		}
		if fromCache {
			color.Yellow("Server unreachable, showing cached data")
		}

		if listFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(clients)
		}
		return printClientsTable(clients)
	},
}

func printClientsTable(clients []clientdom.Client) error {
	if len(clients) == 0 {
		fmt.Println("No clients found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\tName\tCredentials\tLast accessed\t\n")

	for _, c := range clients {
		lastAccessed := "never"
		if c.LastAccessed != nil {
			lastAccessed = c.LastAccessed.Format("2006-01-02 15:04")
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t\n", c.ID, c.Name, c.CredentialCount, lastAccessed)
	}

	w.Flush()
	fmt.Printf("\nTotal: %d\n", len(clients))
	return nil
}

func init() {
	ListCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "output format (table, json)")
}
