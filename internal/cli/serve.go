package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/mockserver"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the mock API server",
	Long: `Run the mock API server from config.json in the project root.

Listen address, TLS and logging come from schism.yaml; missing settings
fall back to 127.0.0.1:8000 with plain text logs. Dataset files are
watched and reloaded on change. Ctrl-C shuts down gracefully.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Bool("no-watch", false, "Disable dataset hot-reload")
}

func runServe(cmd *cobra.Command, _ []string) error {
	applyUIFlags(cmd)
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	settings, err := deps.ensureSettings(root)
	if err != nil {
		return err
	}
	project, err := deps.loadProject(root)
	if err != nil {
		return err
	}
	store, err := deps.loadStore(root, project)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server := mockserver.New(project, store, deps.Registry, mockserver.NewFlagSet(), deps.Logger)

	if !getBoolFlag(cmd, "no-watch") {
		go func() {
			if err := mockserver.WatchDatasets(ctx, store, deps.Logger); err != nil {
				deps.Logger.Warn("dataset watcher stopped", "error", err)
			}
		}()
	}

	deps.Logger.Info("mock server starting",
		"addr", settings.Server.Addr(),
		"routes", len(project.Routes),
		"tls", settings.Server.TLS())
	return server.Run(ctx, settings.Server)
}
