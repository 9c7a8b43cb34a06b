package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/sizhu-cli/internal/core/ports/driven"
	"github.com/custodia-labs/sizhu-cli/internal/logger"
)

// PromptWatcher reloads a PromptStore whenever a prompt file changes.
type PromptWatcher struct {
	store    driven.PromptStore
	dir      string
	onReload func(path string)
}

// NewPromptWatcher creates a watcher for dir.
// onReload, if non-nil, is called after each reload.
func NewPromptWatcher(store driven.PromptStore, dir string, onReload func(path string)) *PromptWatcher {
	return &PromptWatcher{
		store:    store,
		dir:      dir,
		onReload: onReload,
	}
}

// Run watches until ctx is cancelled. It returns nil on cancellation.
func (w *PromptWatcher) Run(ctx context.Context) error {
	if err := os.MkdirAll(w.dir, 0700); err != nil {
		return fmt.Errorf("create prompt directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	logger.Debug("Watching prompts in %s", w.dir)

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Prompt watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Prompt watcher: %v", err)
		}
	}
}

func (w *PromptWatcher) handle(event fsnotify.Event) {
	if filepath.Ext(event.Name) != promptExt {
		return
	}
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	w.store.Reload()
	logger.Info("Reloaded prompts after %s of %s", event.Op, filepath.Base(event.Name))
	if w.onReload != nil {
		w.onReload(event.Name)
	}
}
