package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/rolewithai/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score known signals offline and print the result as JSON",
	Long: `Scores a posting without any upstream lookup.

The weighted strategy reads --age, --rate and --ghost (0-100); unset values use
their defaults and --posted fills in a missing --age. The categorical strategy
reads --recruiter, --repost, --sentiment and --posted.`,
	Args: cobra.NoArgs,
	RunE: runScore,
}

var (
	scoreStrategy  string
	scoreRecruiter string
	scoreRepost    string
	scoreSentiment string
	scorePosted    string
	scoreAge       float64
	scoreRate      float64
	scoreGhost     float64
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreStrategy, "strategy", "s", "weighted", "Scoring strategy: weighted or categorical")
	scoreCmd.Flags().StringVar(&scoreRecruiter, "recruiter", "", "Recruiter activity: High, Moderate, None")
	scoreCmd.Flags().StringVar(&scoreRepost, "repost", "", "Repost frequency: None, Low, High")
	scoreCmd.Flags().StringVar(&scoreSentiment, "sentiment", "", "Community sentiment: Positive, Neutral, Negative")
	scoreCmd.Flags().StringVar(&scorePosted, "posted", "", "Posting date (YYYY-MM-DD)")
	scoreCmd.Flags().Float64Var(&scoreAge, "age", 0, "Age factor, 0-100")
	scoreCmd.Flags().Float64Var(&scoreRate, "rate", 0, "Response rate, 0-100")
	scoreCmd.Flags().Float64Var(&scoreGhost, "ghost", 0, "Ghost signal, 0-100")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	in := scoring.SignalInput{
		Strategy:           scoreStrategy,
		RecruiterActivity:  scoreRecruiter,
		RepostFrequency:    scoreRepost,
		CommunitySentiment: scoreSentiment,
		PostedDate:         scorePosted,
	}
	// Unset numeric flags must stay nil so the formula applies its defaults.
	flags := cmd.Flags()
	if flags.Changed("age") {
		in.AgeFactor = &scoreAge
	}
	if flags.Changed("rate") {
		in.ResponseRate = &scoreRate
	}
	if flags.Changed("ghost") {
		in.GhostSignal = &scoreGhost
	}

	res, err := scoring.ScoreSignals(in, scoreStrategy, time.Now())
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
