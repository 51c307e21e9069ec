// Package cli provides the Cobra command tree and dependency wiring
// for the SCHISM CLI. This file defines the root command and the
// entry point used by cmd/schism.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "schism",
	Short: "SCHISM: a mocked web application toolkit",
	Long: `SCHISM serves a configurable mock JSON API for frontend development
while the real backend is still being built.

It bundles the supporting tooling a team needs around that server:
environment setup, a configuration wizard, fake data generation,
API documentation and an interactive failure-simulation panel.`,
	Version: version.GetVersion(),
	// Cobra prints failed-command errors to stderr; main only sets
	// the exit status.
	SilenceUsage: true,
}

// Execute initializes dependencies and runs the root command.
func Execute() error {
	InitDependencies()
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("schism %s\n", version.GetVersion()))

	rootCmd.PersistentFlags().String("root", "", "Project root directory (default: current directory)")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}

// getIntFlag retrieves an int flag value from the command.
func getIntFlag(cmd *cobra.Command, name string) int {
	val, err := cmd.Flags().GetInt(name)
	if err != nil {
		return 0
	}
	return val
}
