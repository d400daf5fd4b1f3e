package datasource

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/couchcryptid/wildfire-dashboard/internal/observability"
)

// Invalidator drops cached documents under a path prefix.
type Invalidator interface {
	Invalidate(prefix string) int
}

// Watcher invalidates cached documents when files under the snapshot
// directory change. fsnotify watches are not recursive, so every directory
// is added on start and new directories as they appear.
type Watcher struct {
	root    string
	fsw     *fsnotify.Watcher
	cache   Invalidator
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewWatcher creates a watcher over every directory under root.
func NewWatcher(root string, cache Invalidator, logger *slog.Logger, metrics *observability.Metrics) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	w := &Watcher{root: root, fsw: fsw, cache: cache, logger: logger, metrics: metrics}
	if err := w.addTree(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// Run handles file events until ctx is cancelled, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	w.metrics.WatcherEnabled.Set(1)
	defer w.metrics.WatcherEnabled.Set(0)
	defer w.fsw.Close()

	w.logger.Info("snapshot watcher started", "dir", w.root)
	for {
		select {
		case <-ctx.Done():
			w.logger.Info("snapshot watcher stopped")
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("snapshot watcher error", "error", err)
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch new directory", "dir", event.Name, "error", err)
			}
		}
	}

	rel, err := filepath.Rel(w.root, event.Name)
	if err != nil || !filepath.IsLocal(rel) {
		return
	}
	prefix := filepath.ToSlash(rel)
	if n := w.cache.Invalidate(prefix); n > 0 {
		w.logger.Debug("invalidated cached documents", "path", prefix, "count", n)
	}
}
