package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cypherlabdev/match-signal-service/internal/config"
	"github.com/cypherlabdev/match-signal-service/internal/models"
	"github.com/cypherlabdev/match-signal-service/pkg/signals"
)

// Global flags
var (
	ctlConfigPath string
	ctlTenantPath string
	ctlVerbose    bool
)

// rootCmd is the base command for the signalctl CLI
var rootCmd = &cobra.Command{
	Use:   "signalctl",
	Short: "Offline classification and ranking of prediction snapshots",
	Long: `signalctl runs the match signal engine against a snapshot file without
Kafka or Redis. It uses the same configuration as the service.

Examples:
  signalctl classify --file snapshot.json --profile PRUDENT --bankroll 500
  signalctl rank --file snapshot.json --strategy recover --format table`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ctlConfigPath, "config", "", "Service configuration file (defaults and MATCH_SIGNAL_* env when empty)")
	rootCmd.PersistentFlags().StringVar(&ctlTenantPath, "tenant", "", "Tenant YAML file replacing the configured tenant rules")
	rootCmd.PersistentFlags().BoolVar(&ctlVerbose, "verbose", false, "Log engine decisions to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newLogger(w io.Writer) zerolog.Logger {
	level := zerolog.WarnLevel
	if ctlVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(level).With().Timestamp().Logger()
}

// loadEngine builds an engine and the default user from the configuration flags
func loadEngine(logger zerolog.Logger) (*signals.Engine, models.UserContext, error) {
	cfg, err := config.LoadConfig(ctlConfigPath)
	if err != nil {
		return nil, models.UserContext{}, err
	}

	if ctlTenantPath != "" {
		tenant, err := config.LoadTenantFile(ctlTenantPath)
		if err != nil {
			return nil, models.UserContext{}, err
		}
		cfg.Tenant = tenant
	}

	params, err := cfg.ToEngineParams()
	if err != nil {
		return nil, models.UserContext{}, err
	}
	defaults, err := cfg.Engine.DefaultUser()
	if err != nil {
		return nil, models.UserContext{}, err
	}

	return signals.NewEngine(params, logger), defaults, nil
}

// readSnapshot loads a snapshot from a JSON file, or stdin when path is "-"
func readSnapshot(path string, stdin io.Reader) (*models.Snapshot, error) {
	var r io.Reader = stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer f.Close()
		r = f
	}

	var snap models.Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if len(snap.Leagues) == 0 {
		return nil, fmt.Errorf("snapshot has no leagues")
	}
	return &snap, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
