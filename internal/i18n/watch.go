package i18n

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the bundle whenever a catalog file in dir changes. It is
// meant for bundles loaded from the OS filesystem with dir as root, and
// returns once the watcher is running. The watcher stops when ctx is done.
func (b *Bundle) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file system watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	go b.watchFiles(ctx, watcher)
	slog.Debug("Started locale catalog watcher", "directory", dir)
	return nil
}

func (b *Bundle) watchFiles(ctx context.Context, watcher *fsnotify.Watcher) {
	defer func() {
		watcher.Close()
		slog.Info("Locale catalog watcher stopped")
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			b.handleFileEvent(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Error("Locale catalog watcher error", "error", err)
		}
	}
}

func (b *Bundle) handleFileEvent(event fsnotify.Event) {
	if !isCatalog(event.Name) {
		return
	}
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	slog.Info("Locale catalog changed, reloading", "event", event.Op.String(), "path", event.Name)
	if err := b.Reload(); err != nil {
		slog.Error("Failed to reload locale catalogs, keeping previous version", "error", err)
	}
}
