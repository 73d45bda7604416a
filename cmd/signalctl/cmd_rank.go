package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cypherlabdev/match-signal-service/internal/models"
)

// rankCmd builds the per-league pick shortlist of a snapshot
var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank the picks of every league in a snapshot",
	Long: `Rank the picks of every league in a snapshot with the PLAY or RECOVER
strategy. Finished matches are skipped.

Examples:
  signalctl rank --file snapshot.json --strategy play
  signalctl rank --file snapshot.json --strategy recover --format table`,
	RunE: runRank,
}

// Command-line flags for rank
var (
	rankFile     string
	rankStrategy string
	rankFormat   string
)

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringVar(&rankFile, "file", "", "Snapshot JSON file (- for stdin)")
	rankCmd.Flags().StringVar(&rankStrategy, "strategy", "play", "Ranking strategy (play|recover)")
	rankCmd.Flags().StringVar(&rankFormat, "format", "json", "Output format: json, table")

	rankCmd.MarkFlagRequired("file")
}

func runRank(cmd *cobra.Command, args []string) error {
	strategy, ok := models.ParseStrategy(rankStrategy)
	if !ok {
		return fmt.Errorf("unknown strategy %q", rankStrategy)
	}

	logger := newLogger(cmd.ErrOrStderr())
	engine, _, err := loadEngine(logger)
	if err != nil {
		return err
	}

	snap, err := readSnapshot(rankFile, cmd.InOrStdin())
	if err != nil {
		return err
	}

	rankings := engine.RankSnapshot(snap, strategy)

	switch rankFormat {
	case "json":
		return writeJSON(cmd.OutOrStdout(), rankings)
	case "table":
		return writeRankingTable(cmd.OutOrStdout(), rankings)
	default:
		return fmt.Errorf("unknown format %q", rankFormat)
	}
}

func writeRankingTable(out io.Writer, rankings []models.LeagueRanking) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LEAGUE\tKIND\tMATCH\tPROB\tCONF\tCHAOS\tSCORE")
	for _, lr := range rankings {
		if len(lr.Rows) == 0 {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\t-\t-\n", lr.League)
			continue
		}
		for _, row := range lr.Rows {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.0f%%\t%.0f%%\t%.0f\t%.4f\n",
				lr.League,
				row.Kind,
				row.Match.MatchID,
				row.BestProbability*100,
				row.Confidence*100,
				row.ChaosIndex,
				row.Score,
			)
		}
	}
	return w.Flush()
}
