package main

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/rolewithai/internal/app"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the ledger schedulers",
	Long:  "Starts the HTTP API, the ledger sweeper and, when configured, the ledger importer and report pruner. Configuration is read from RWAI_* environment variables.",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return app.New().Run()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
