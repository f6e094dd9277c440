// Package main is the gillespie CLI: run, display and serve a
// reaction network declared in TOML (SPEC_FULL §4.9).
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/deep6ix/gillespie/internal/telemetry"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "gillespie",
	Short: "A Gillespie stochastic simulation algorithm engine.",
	Long: `gillespie loads a reaction network from a declarative TOML file
and runs, displays, or serves it over the SSA direct method.`,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable development-mode logging")
	rootCmd.AddCommand(runCmd, displayCmd, serveCmd)
}

func newLogger() *zap.Logger {
	logger, err := telemetry.NewLogger(verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gillespie: failed to build logger:", err)
		return zap.NewNop()
	}
	return logger
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "gillespie:", err)
		os.Exit(1)
	}
}
