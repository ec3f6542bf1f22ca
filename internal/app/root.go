package app

import (
	"github.com/spf13/cobra"

	"github.com/rl1809/updatechecker/internal/config"
)

var (
	overrides config.Config
	cfg       config.Config

	// RootCmd is the root command for updatechecker
	RootCmd = &cobra.Command{
		Use:   "updatechecker",
		Short: "Track software releases and notify subscribers of new versions",
		Long: `updatechecker polls the latest version of every software listed in the
registry, records each newly observed version, and publishes a notification
for every change seen on the mutation feed.

Settings come from UPDATECHECKER_* environment variables (optionally loaded
from a .env file); the flags below override them.`,
		Example: `  # Run the API servers, the scheduler and the notifier
  updatechecker serve

  # Run a single refresh cycle against a SQLite store
  updatechecker refresh --store sqlite --sqlite-path ./catalog.db

  # Ask a running server for the versions it knows of
  updatechecker query versions go`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: loadConfig,
	}
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.StringVar(&overrides.Store, "store", "", "record store: memory, sqlite, mysql or dynamodb")
	flags.StringVar(&overrides.SQLitePath, "sqlite-path", "", "SQLite database file")
	flags.StringVar(&overrides.RegistryFile, "registry", "", "software registry YAML file")
	flags.StringVar(&overrides.Topic, "topic", "", "notification topic: redis, sns or log")
	flags.StringVar(&overrides.MutationStream, "stream", "", "Redis stream carrying record mutations (\"none\" disables the feed)")
	flags.StringVar(&overrides.HTTPAddr, "http-addr", "", "HTTP listen address")
	flags.StringVar(&overrides.GRPCAddr, "grpc-addr", "", "gRPC listen address")

	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	cfg = loaded.Merge(overrides)
	return cfg.Validate()
}
