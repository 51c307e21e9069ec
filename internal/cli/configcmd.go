package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/cli/wizard"
	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/defs"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the project configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config.json through the interactive wizard",
	Long: `Walk through middleware settings and route definitions interactively
and write the result to config.json in the project root.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate config.json",
	Args:  cobra.NoArgs,
	RunE:  runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	w := wizard.New(deps.Theme, deps.Headless, deps.Registry, cmd.OutOrStdout())
	project, err := w.Run()
	if err != nil {
		return err
	}

	if err := config.SaveProject(root, project); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success("Config saved to "+defs.ProjectConfigJSON))
	return nil
}

func runConfigValidate(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	project, err := config.LoadProject(root, deps.Registry)
	if err != nil {
		var verrs *config.ValidationErrors
		if errors.As(err, &verrs) {
			out := cmd.OutOrStdout()
			for i := range verrs.Errors {
				fmt.Fprintln(out, deps.Theme.Error("✗ ")+verrs.Errors[i].Error())
			}
		}
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success(fmt.Sprintf(
		"Config valid: %d routes, %d middleware", len(project.Routes), len(project.Middleware))))
	return nil
}
