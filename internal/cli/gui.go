package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/cli/wizard"
	"github.com/schism-dev/schism/internal/mockserver"
	"github.com/schism-dev/schism/internal/tui"
)

var guiCmd = &cobra.Command{
	Use:   "gui",
	Short: "Run the mock server with the interactive control panel",
	Long: `Run the mock server and the control panel together. The panel lists
every route and middleware with its failure state; arming an item makes
its next request fail once. It also resets datasets to their on-disk
state and tails the request log.`,
	Args: cobra.NoArgs,
	RunE: runGUI,
}

func init() {
	rootCmd.AddCommand(guiCmd)
}

func runGUI(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	if deps.Headless.IsHeadless() {
		return wizard.ErrHeadless
	}

	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	settings, err := deps.ensureSettings(root)
	if err != nil {
		return err
	}
	if settings.Panel.NoColor {
		deps.Theme.NoColor = true
	}
	project, err := deps.loadProject(root)
	if err != nil {
		return err
	}
	store, err := deps.loadStore(root, project)
	if err != nil {
		return err
	}

	// Server logs go to the panel's log pane instead of stderr, which
	// the panel's alternate screen would garble anyway.
	logs := tui.NewLogBuffer()
	serverLog := slog.New(tui.NewBufferHandler(logs, settings.Log.SlogLevel()))

	flags := mockserver.NewFlagSet()
	server := mockserver.New(project, store, deps.Registry, flags, serverLog)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(ctx, settings.Server)
	}()
	go func() {
		if err := mockserver.WatchDatasets(ctx, store, serverLog); err != nil {
			serverLog.Warn("dataset watcher stopped", "error", err)
		}
	}()

	model := tui.NewModel(deps.Theme, project, flags, store, logs, settings.Panel.RefreshInterval)
	if err := tui.Run(model); err != nil {
		return err
	}

	// Panel closed: stop the server and surface any startup failure.
	cancel()
	return <-serverErr
}
