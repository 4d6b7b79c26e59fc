package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	authcmd "credvault/cmd/client/cmd/auth"
	clientscmd "credvault/cmd/client/cmd/clients"
	credscmd "credvault/cmd/client/cmd/creds"
	"credvault/cmd/client/cmd/types"
	"credvault/internal/app/client"
	"credvault/internal/app/client/config"
	"credvault/internal/utils/logger"
)

var (
	cfg       *config.Config
	log       *slog.Logger
	app       *client.App
	serverURL string
)

var rootCmd = &cobra.Command{
	Use:   "credvault",
	Short: "CredVault - team credential manager",
	Long: `CredVault is the command line companion for the CredVault server.

It lets you browse clients and their credentials, inspect environment
variable bundles and manage your session from the terminal. Listings are
cached locally so they remain available when the server is down.`,
	PersistentPreRunE: setupApp,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	viper.AutomaticEnv()
	cfg = config.MustLoad()

	if serverURL != "" {
		cfg.ServerAddress = serverURL
	}

	log = logger.New(cfg.Env)

	var err error
	app, err = client.New(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	cmd.SetContext(context.WithValue(cmd.Context(), types.ClientAppKey, app))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "CredVault server address")

	rootCmd.AddCommand(authcmd.AuthCmd)
	authcmd.AuthCmd.AddCommand(authcmd.RegisterCmd)
	authcmd.AuthCmd.AddCommand(authcmd.LoginCmd)
	authcmd.AuthCmd.AddCommand(authcmd.LogoutCmd)

	rootCmd.AddCommand(clientscmd.ClientsCmd)
	clientscmd.ClientsCmd.AddCommand(clientscmd.ListCmd)

	rootCmd.AddCommand(credscmd.CredsCmd)
	credscmd.CredsCmd.AddCommand(credscmd.ListCmd)
	credscmd.CredsCmd.AddCommand(credscmd.GetCmd)
}
