package mockserver

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/schism-dev/schism/internal/dataset"
	"github.com/schism-dev/schism/internal/defs"
)

// WatchDatasets reloads datasets from disk when their files change,
// so regenerated data shows up without restarting the server. It blocks
// until ctx is cancelled.
func WatchDatasets(ctx context.Context, store *dataset.Store, log *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(store.Dir()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			name, ok := datasetName(event.Name)
			if !ok || !store.Has(name) {
				continue
			}
			if err := store.Reload(name); err != nil {
				log.Warn("dataset reload failed", "dataset", name, "error", err)
				continue
			}
			log.Info("dataset reloaded", "dataset", name)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("dataset watcher error", "error", err)
		}
	}
}

// datasetName maps a changed file path to a dataset name. Schema files
// (-config.json) and non-JSON files are ignored.
func datasetName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, defs.DatasetSuffix) {
		return "", false
	}
	if strings.HasSuffix(base, defs.SchemaSuffix) {
		return "", false
	}
	return strings.TrimSuffix(base, defs.DatasetSuffix), true
}
