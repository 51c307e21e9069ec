package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/bootstrap"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Prepare the Python environment for the GUI tooling",
	Long: `Prepare the local environment: locate a Python runtime, create the
virtual environment, install requirements.txt into it and generate the
run_gui launcher script.

Re-running setup against an existing environment is safe; the
environment is reused and the launcher is rewritten.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	b := bootstrap.New(root, bootstrap.NewRunner())

	spinner := deps.Progress.Spinner("Creating environment and installing dependencies")
	launcher, err := b.Setup(cmd.Context())
	spinner.Stop()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, deps.Theme.Success("Environment ready"))
	fmt.Fprintf(out, "  launcher: %s\n", launcher)
	return nil
}
