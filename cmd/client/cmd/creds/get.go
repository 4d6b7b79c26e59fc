package creds

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"credvault/internal/domain/credential"
)

var (
	getShowSecret bool
	getFormat     string
)

var GetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show one credential",
	Long: `Shows a credential's details. The secret is hidden unless --show is
passed; environment-variable bundles are printed as KEY=value lines.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := appFromContext(cmd)
		if err != nil {
			return err
		}

		c, err := app.GetCredential(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to get credential: %w", err)
		}

		if getFormat == "json" {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			return encoder.Encode(c)
		}

		bold := color.New(color.Bold)
		bold.Println(c.Name)
		fmt.Printf("Type:        %s\n", c.ServiceType)
		fmt.Printf("Environment: %s\n", c.Environment)
		if c.URL != "" {
			fmt.Printf("URL:         %s\n", c.URL)
		}
		if c.OwnerName != "" {
			fmt.Printf("Owner:       %s\n", c.OwnerName)
		}
		if c.IsLegacy {
			fmt.Printf("Access:      everyone\n")
		} else {
			fmt.Printf("Access:      restricted (%d viewers)\n", c.ViewerCount)
		}

		if c.ServiceType == credential.TypeEnv {
			fmt.Printf("Variables:   %s\n", c.Username)
			if !getShowSecret {
				fmt.Println("Values hidden (use --show)")
				return nil
			}
			vars, err := app.GetCredentialEnv(cmd.Context(), c.ID)
			if err != nil {
				return fmt.Errorf("failed to get bundle variables: %w", err)
			}
			fmt.Println()
			for _, v := range vars {
				fmt.Printf("%s=%s\n", v.Key, v.Value)
			}
			return nil
		}

		fmt.Printf("Username:    %s\n", c.Username)
		if getShowSecret {
			fmt.Printf("Password:    %s\n", c.Password)
		} else {
			fmt.Printf("Password:    ******** (use --show)\n")
		}
		return nil
	},
}

func init() {
	GetCmd.Flags().BoolVar(&getShowSecret, "show", false, "print the secret in clear text")
	GetCmd.Flags().StringVarP(&getFormat, "format", "f", "text", "output format (text, json)")
}
