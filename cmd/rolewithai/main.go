// Package main is the rolewithai server and offline scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/rolewithai/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           version.Name,
	Short:         "Truth Score service for job postings",
	Long:          "rolewithai scores job postings for ghosting risk, keeps application ledgers automated and collects community ghosting reports.",
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %s: %v\n", version.Name, err)
		os.Exit(1)
	}
}
