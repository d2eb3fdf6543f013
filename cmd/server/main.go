// Package main implements the entry point for the blogsmith API server,
// which generates blog titles, drafts and final articles with several
// language model providers and archives them to Notion.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Running the binary without a
// subcommand starts the server.
func newRootCmd() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:          "server",
		Short:        "Multi-provider blog writing API",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newGenerateCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadAppConfig()
			if err != nil {
				return err
			}
			l, err := setupAppLogger(cfg)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), cfg, l)
			if err != nil {
				l.Error("failed to initialize application", "error", err)
				return err
			}
			return app.Run(cmd.Context())
		},
	}
}
