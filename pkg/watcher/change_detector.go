package watcher

import (
	"context"
	"time"

	"github.com/ritzau/folia-viewer/pkg/logging"
)

// ShouldReload reports whether a debounced change warrants reloading the
// graph. A file that was only removed is left alone until it reappears.
func ShouldReload(event ChangeEvent) bool {
	return event.Type == ChangeTypeWrite && len(event.Paths) > 0
}

// WatchFile watches path and calls reload after every debounced write until
// ctx ends. Reload errors are logged and watching continues.
func WatchFile(ctx context.Context, path string, quietPeriod, maxWait time.Duration, reload func(ctx context.Context) error) error {
	fw, err := NewFileWatcher(path)
	if err != nil {
		return err
	}
	if err := fw.Start(ctx); err != nil {
		return err
	}

	debouncer := NewDebouncer(fw.Events(), quietPeriod, maxWait)
	debouncer.Start(ctx)

	for event := range debouncer.Output() {
		if !ShouldReload(event) {
			logging.Warn("graph file removed, keeping current graph", "path", fw.Path())
			continue
		}
		logging.Info("graph file changed, reloading", "path", fw.Path(), "events", len(event.Paths))
		if err := reload(ctx); err != nil {
			logging.Error("reload failed", "error", err)
		}
	}
	return ctx.Err()
}
