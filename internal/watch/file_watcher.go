package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher calls OnChange after a watched file stops changing for the
// debounce period.
type FileWatcher struct {
	path         string
	watcher      *fsnotify.Watcher
	debounceTime time.Duration
	onChange     func(ctx context.Context)
}

// NewFileWatcher creates a watcher for path. onChange runs on the watcher's
// goroutine, so calls never overlap.
func NewFileWatcher(path string, debounce time.Duration, onChange func(ctx context.Context)) (*FileWatcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watched path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	return &FileWatcher{
		path:         absPath,
		watcher:      watcher,
		debounceTime: debounce,
		onChange:     onChange,
	}, nil
}

// Run watches until ctx is cancelled. The parent directory is watched rather
// than the file so editors that replace the file on save are still seen.
func (fw *FileWatcher) Run(ctx context.Context) error {
	defer func() {
		if err := fw.watcher.Close(); err != nil {
			slog.Error("Error closing file watcher", "error", err)
		}
	}()

	dir := filepath.Dir(fw.path)
	if err := fw.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}
	slog.Info("Watching file", "file", fw.path, "debounce", fw.debounceTime)

	name := filepath.Base(fw.path)
	// nil until a change arrives
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				slog.Debug("Change detected", "file", event.Name, "op", event.Op.String())
				pending = time.After(fw.debounceTime)
			case event.Has(fsnotify.Remove):
				slog.Warn("Watched file removed", "file", event.Name)
			}

		case <-pending:
			pending = nil
			fw.onChange(ctx)

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("File watcher error", "error", err)
		}
	}
}
