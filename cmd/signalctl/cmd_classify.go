package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// classifyCmd classifies every match of a snapshot for one user
var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify every match of a snapshot",
	Long: `Classify every match of a snapshot: grade, risk, NO BET, chaos, stake,
badges and markets. Leagues are emitted in the configured display order.

Examples:
  signalctl classify --file snapshot.json
  signalctl classify --file - --profile AGGRESSIVE --bankroll 250 --format table`,
	RunE: runClassify,
}

// Command-line flags for classify
var (
	classifyFile     string
	classifyProfile  string
	classifyBankroll float64
	classifyNow      string
	classifyFormat   string
)

func init() {
	rootCmd.AddCommand(classifyCmd)

	classifyCmd.Flags().StringVar(&classifyFile, "file", "", "Snapshot JSON file (- for stdin)")
	classifyCmd.Flags().StringVar(&classifyProfile, "profile", "", "Risk profile (PRUDENT|BALANCED|AGGRESSIVE), configured default when empty")
	classifyCmd.Flags().Float64Var(&classifyBankroll, "bankroll", -1, "Bankroll in units, configured default when negative")
	classifyCmd.Flags().StringVar(&classifyNow, "now", "", "Reference time for day badges (RFC3339), current time when empty")
	classifyCmd.Flags().StringVar(&classifyFormat, "format", "json", "Output format: json, table")

	classifyCmd.MarkFlagRequired("file")
}

func runClassify(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr())

	engine, user, err := loadEngine(logger)
	if err != nil {
		return err
	}

	if classifyProfile != "" {
		p, ok := models.ParseProfile(classifyProfile)
		if !ok {
			return fmt.Errorf("unknown profile %q", classifyProfile)
		}
		user.Profile = p
	}
	if classifyBankroll >= 0 {
		user.Bankroll = classifyBankroll
	}
	user.Now = time.Now()
	if classifyNow != "" {
		user.Now, err = time.Parse(time.RFC3339, classifyNow)
		if err != nil {
			return fmt.Errorf("invalid --now: %w", err)
		}
	}

	snap, err := readSnapshot(classifyFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	results := engine.ClassifySnapshot(snap, user)
	logger.Debug().Int("matches", len(results)).Str("profile", string(user.Profile)).Msg("classified snapshot")

	switch classifyFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), results)
	case "table":
		return writeClassificationTable(cmd.OutOrStdout(), results)
	default:
		return fmt.Errorf("unknown format %q", classifyFormat)
	}
}

func writeClassificationTable(out io.Writer, results []*models.Classification) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEAGUE\tMATCH\tGRADE\tRISK\tCHAOS\tSTAKE\tBEST\tNOTE")
	for _, c := range results {
		note := ""
		if c.NoBet {
			note = "NO BET: " + c.NoBetReason
		} else if !c.AllowedByProfile {
			note = "filtered by profile"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.1f%% (%d)\t%s\t%s\n",
			c.Championship,
			c.MatchID,
			c.Grade,
			c.Risk,
			c.ChaosSeverity,
			c.Stake.Percent,
			c.Stake.Units,
			c.BestMarket,
			note,
		)
	}
	return w.Flush()
}
