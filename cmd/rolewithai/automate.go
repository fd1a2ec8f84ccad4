package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/rolewithai/internal/domain"
	"github.com/MrSnakeDoc/rolewithai/internal/sources/ledgerfile"
)

var automateCmd = &cobra.Command{
	Use:   "automate",
	Short: "Automate a ledger file and print the updated entries",
	Long:  "Reads a YAML ledger file, applies ghosting, archiving, priority and note rules to every entry as of --now, and prints the result. The file is not modified.",
	Args:  cobra.NoArgs,
	RunE:  runAutomate,
}

var (
	automateFile   string
	automateOwner  string
	automateFormat string
	automateNow    string
)

func init() {
	automateCmd.Flags().StringVarP(&automateFile, "file", "f", "", "Path to ledger YAML file (required)")
	automateCmd.Flags().StringVar(&automateOwner, "owner", ledgerfile.DefaultUser, "Owner of ledgers that name no user")
	automateCmd.Flags().StringVarP(&automateFormat, "output", "o", "json", "Output format: json or yaml")
	automateCmd.Flags().StringVar(&automateNow, "now", "", "Evaluate as of this date (YYYY-MM-DD), defaults to today")

	if err := automateCmd.MarkFlagRequired("file"); err != nil {
		panic(fmt.Sprintf("failed to mark file flag as required: %v", err))
	}

	rootCmd.AddCommand(automateCmd)
}

func runAutomate(cmd *cobra.Command, _ []string) error {
	now := time.Now()
	if automateNow != "" {
		t, err := time.Parse(time.DateOnly, automateNow)
		if err != nil {
			return fmt.Errorf("invalid --now %q: %w", automateNow, err)
		}
		now = t
	}

	f, err := ledgerfile.NewLoader(automateFile).Load()
	if err != nil {
		return err
	}

	ledgers, skipped, err := ledgerfile.MapLedgers(f, automateOwner)
	if err != nil {
		return err
	}
	for _, s := range skipped {
		fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s[%d]: %s\n", s.User, s.Index, s.Reason)
	}

	for user, entries := range ledgers {
		ledgers[user] = domain.AutomateAll(entries, nil, now)
	}

	var out []byte
	switch automateFormat {
	case "json":
		out, err = json.MarshalIndent(ledgers, "", "  ")
	case "yaml":
		out, err = yaml.Marshal(ledgers)
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", automateFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal ledgers: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
