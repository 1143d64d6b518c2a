package commands

import (
	"github.com/spf13/cobra"
)

var (
	flagEnvFile string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "tokenpulse",
	Short: "Daily snapshot analytics for tradable assets",
	Long: `tokenpulse ingests daily market snapshots, analyzes per-asset trend,
momentum and sustainability over a rolling window, ranks assets by a
composite score and serves the results over HTTP or as reports.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagEnvFile, "env-file", "", "path to a .env file to load before reading configuration")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}
