package cli

import (
	_ "embed"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed onboarding.md
var onboardingDoc string

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Show the team onboarding guide",
	Args:  cobra.NoArgs,
	RunE:  runOnboard,
}

func init() {
	rootCmd.AddCommand(onboardCmd)

	onboardCmd.Flags().Bool("raw", false, "Print the guide as plain markdown")
}

func runOnboard(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)

	if getBoolFlag(cmd, "raw") || deps.Theme.NoColor || deps.Headless.IsHeadless() {
		fmt.Fprint(cmd.OutOrStdout(), onboardingDoc)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return err
	}
	out, err := renderer.Render(onboardingDoc)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
