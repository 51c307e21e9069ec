package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/cli/wizard"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/defs"
	"github.com/schism-dev/schism/internal/generator"
)

var dataCmd = &cobra.Command{
	Use:   "data",
	Short: "Generate and manage fake datasets",
}

var dataGenerateCmd = &cobra.Command{
	Use:   "generate <dataset>",
	Short: "Generate a dataset from its schema",
	Long: `Generate fake entries for a dataset from its <dataset>-config.json
schema and write them to <dataset>.json.

Plain datasets get --count entries. A schema with linked_to generates
between --min and --max entries per parent entry instead, each carrying
the parent's id as a foreign key.`,
	Args: cobra.ExactArgs(1),
	RunE: runDataGenerate,
}

var dataSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Create a dataset schema through the interactive wizard",
	Args:  cobra.NoArgs,
	RunE:  runDataSchema,
}

func init() {
	rootCmd.AddCommand(dataCmd)
	dataCmd.AddCommand(dataGenerateCmd)
	dataCmd.AddCommand(dataSchemaCmd)

	dataGenerateCmd.Flags().Int("count", 25, "Number of entries to generate")
	dataGenerateCmd.Flags().Int("min", 1, "Minimum entries per parent (linked datasets)")
	dataGenerateCmd.Flags().Int("max", 3, "Maximum entries per parent (linked datasets)")
}

// ErrNoSchema indicates the named dataset has no schema file.
var ErrNoSchema = errors.New("data: no schema found for dataset")

func runDataGenerate(cmd *cobra.Command, args []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	name := args[0]

	schema, err := dataset.LoadSchema(root, name)
	if err != nil {
		return err
	}
	if schema == nil {
		return fmt.Errorf("%w: %s%s", ErrNoSchema, name, defs.SchemaSuffix)
	}
	generator.EnsureID(schema)

	gen := generator.New(root)
	var entries []dataset.Entry
	if schema.LinkedTo != "" {
		entries, err = generateLinked(gen, root, schema, cmd)
	} else {
		entries, err = generateCounted(gen, schema, getIntFlag(cmd, "count"))
	}
	if err != nil {
		return err
	}

	if err := dataset.Save(root, name, entries); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success(fmt.Sprintf(
		"Generated %d entries into %s%s", len(entries), name, defs.DatasetSuffix)))
	return nil
}

// generateCounted generates count entries with a progress bar.
func generateCounted(gen *generator.Generator, schema *dataset.Schema, count int) ([]dataset.Entry, error) {
	bar := deps.Progress.Bar("generating entries", count)
	defer bar.Done()

	entries := make([]dataset.Entry, 0, count)
	for i := 0; i < count; i++ {
		entry, err := gen.Entry(schema)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
		bar.Increment(1)
	}
	return entries, nil
}

// generateLinked generates a child dataset bound to its parent's
// entries, loaded from the parent's dataset file.
func generateLinked(gen *generator.Generator, root string, schema *dataset.Schema, cmd *cobra.Command) ([]dataset.Entry, error) {
	store := dataset.NewStore(root)
	if err := store.Load(schema.LinkedTo); err != nil {
		return nil, fmt.Errorf("linked dataset %q: %w", schema.LinkedTo, err)
	}
	parents, err := store.Entries(schema.LinkedTo)
	if err != nil {
		return nil, err
	}
	return gen.Linked(schema, parents, getIntFlag(cmd, "min"), getIntFlag(cmd, "max"))
}

func runDataSchema(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	w := wizard.New(deps.Theme, deps.Headless, deps.Registry, cmd.OutOrStdout())
	result, err := w.RunSchema(root)
	if err != nil {
		return err
	}

	if err := dataset.SaveSchema(root, result.Name, result.Schema); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success(
		"Schema saved to "+result.Name+defs.SchemaSuffix))
	return nil
}
