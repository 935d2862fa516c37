package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

// rootCmd is the base command for the allocrun CLI
var rootCmd = &cobra.Command{
	Use:   "allocrun",
	Short: "allocrun walk-forward allocation engine",
	Long: `allocrun computes trading allocations (fractional portfolio exposure) from
price and research-signal time series. It ships a registry of simple
vectorized rules plus the walk-forward level_relationship regression rule.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(logLevel, logFormat)
	},
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("allocrun - walk-forward allocation engine")
		fmt.Println("Use 'allocrun rules' to list the registered allocation rules")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (trace|debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "console", "Log format (console|json)")
}

func setupLogging(level, format string) error {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(parsed)

	if format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
