package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/bootstrap"
	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/defs"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the project setup",
	Long: `Check the project setup: the Python runtime, the virtual environment,
the launcher, the project configuration and the datasets it references.

Failed checks are reported individually; the command exits non-zero
when any required piece is missing or invalid.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// ErrChecksFailed indicates at least one doctor check failed.
var ErrChecksFailed = errors.New("doctor: checks failed")

// check is one diagnostic with its outcome.
type check struct {
	name   string
	ok     bool
	detail string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}

	checks := runChecks(cmd.Context(), root)
	printChecks(cmd.OutOrStdout(), checks)

	for _, c := range checks {
		if !c.ok {
			return ErrChecksFailed
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), deps.Theme.Success("All checks passed"))
	return nil
}

// runChecks evaluates every diagnostic against the project root.
func runChecks(ctx context.Context, root string) []check {
	var checks []check
	b := bootstrap.New(root, bootstrap.NewRunner())

	if python, err := b.FindRuntime(); err != nil {
		checks = append(checks, check{"python runtime", false, err.Error()})
	} else {
		detail := python
		if version, err := b.RuntimeVersion(ctx); err == nil {
			detail = version + " (" + python + ")"
		}
		checks = append(checks, check{"python runtime", true, detail})
	}

	checks = append(checks,
		check{"virtual environment", b.EnvExists(), filepath.Join(root, defs.EnvDir)},
		check{"dependency manifest", b.ManifestExists(), filepath.Join(root, defs.RequirementsTxt)},
		check{"gui launcher", b.LauncherExists(), filepath.Join(root, bootstrap.LauncherName(runtime.GOOS))},
	)

	checks = append(checks, configChecks(root)...)
	return checks
}

// configChecks validates config.json and the datasets it references.
func configChecks(root string) []check {
	project, err := config.LoadProject(root, deps.Registry)
	if err != nil {
		return []check{{"project config", false, err.Error()}}
	}

	checks := []check{{"project config", true,
		fmt.Sprintf("%d routes, %d middleware", len(project.Routes), len(project.Middleware))}}

	store := dataset.NewStore(root)
	for _, name := range project.DataSets() {
		if err := store.Load(name); err != nil {
			checks = append(checks, check{"dataset " + name, false, err.Error()})
		} else {
			entries, _ := store.Entries(name)
			checks = append(checks, check{"dataset " + name, true,
				fmt.Sprintf("%d entries", len(entries))})
		}
	}
	return checks
}

func printChecks(w io.Writer, checks []check) {
	for _, c := range checks {
		mark := deps.Theme.Success("✓")
		if !c.ok {
			mark = deps.Theme.Error("✗")
		}
		fmt.Fprintf(w, "%s %-22s %s\n", mark, c.name, deps.Theme.Muted(c.detail))
	}
}
