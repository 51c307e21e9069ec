package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/schism-dev/schism/internal/config"
	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/middleware"
	"github.com/schism-dev/schism/internal/ui"
)

// Dependencies holds the services CLI commands share. This is the
// composition root: concrete types are instantiated here and commands
// reach them through the package-level deps variable.
type Dependencies struct {
	Theme    *ui.Theme
	Headless *ui.HeadlessManager
	Progress *ui.Progress
	Registry *middleware.Registry
	Logger   *slog.Logger

	settings *config.Settings
}

// deps is the global dependencies instance, initialized by Execute.
var deps *Dependencies

// InitDependencies creates and wires the CLI dependencies. Project
// state (settings, config, datasets) loads lazily per command, since
// most commands run before a project exists.
func InitDependencies() {
	theme := ui.DefaultTheme()
	hm := ui.NewHeadlessManager()

	deps = &Dependencies{
		Theme:    theme,
		Headless: hm,
		Progress: ui.NewProgress(theme, hm),
		Registry: middleware.DefaultRegistry(),
		Logger:   slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
}

// projectRoot resolves the project root from the --root flag, falling
// back to the current directory.
func projectRoot(cmd *cobra.Command) (string, error) {
	if root := getStringFlag(cmd, "root"); root != "" {
		return root, nil
	}
	return os.Getwd()
}

// applyUIFlags folds the global presentation flags into the theme.
func applyUIFlags(cmd *cobra.Command) {
	if getBoolFlag(cmd, "no-color") {
		deps.Theme.NoColor = true
	}
}

// ensureSettings loads schism.yaml once per process. A missing file
// yields the defaults.
func (d *Dependencies) ensureSettings(root string) (*config.Settings, error) {
	if d.settings != nil {
		return d.settings, nil
	}
	settings, err := config.LoadSettings(root)
	if err != nil {
		return nil, err
	}
	if settings.Log.Format == "json" {
		d.Logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: settings.Log.SlogLevel(),
		}))
	} else {
		d.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: settings.Log.SlogLevel(),
		}))
	}
	d.settings = settings
	return settings, nil
}

// loadProject loads and validates config.json against the registry.
func (d *Dependencies) loadProject(root string) (*config.Project, error) {
	return config.LoadProject(root, d.Registry)
}

// loadStore loads every dataset the project references.
func (d *Dependencies) loadStore(root string, project *config.Project) (*dataset.Store, error) {
	store := dataset.NewStore(root)
	if err := store.Load(project.DataSets()...); err != nil {
		return nil, err
	}
	return store, nil
}
