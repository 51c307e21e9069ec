package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/defs"
	"github.com/schism-dev/schism/internal/docgen"
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Generate and preview the API documentation",
}

var docsGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate output.md from template.md and config.json",
	Long: `Append generated middleware, dataset and endpoint sections to the
hand-written template.md and write the result to output.md.`,
	Args: cobra.NoArgs,
	RunE: runDocsGenerate,
}

var docsPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render output.md in the terminal",
	Args:  cobra.NoArgs,
	RunE:  runDocsPreview,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.AddCommand(docsGenerateCmd)
	docsCmd.AddCommand(docsPreviewCmd)
}

func runDocsGenerate(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	project, err := config.LoadProject(root, deps.Registry)
	if err != nil {
		return err
	}

	path, err := docgen.Generate(root, project)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success("Documentation written to "+path))
	return nil
}

func runDocsPreview(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	return docgen.Preview(cmd.OutOrStdout(), filepath.Join(root, defs.DocOutputMD))
}
