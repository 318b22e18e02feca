package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/internal/processor"
)

type implWatcher struct {
	inputDir string
	handler  BatchHandler
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	// settle is how long a new file is left alone before it is read.
	settle time.Duration
}

// Start processes batch files already waiting in the inbox, then monitors
// it for new ones until ctx is done.
func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started. Monitoring: %s", w.inputDir)

	if err := w.drain(ctx); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			w.logger.Info(ctx, "File watcher stopped")
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}

			// Only process CREATE events
			if event.Op&fsnotify.Create != fsnotify.Create {
				continue
			}
			if !isBatchFile(event.Name) {
				w.logger.Debug(ctx, "Ignoring non-batch file: %s", event.Name)
				continue
			}

			w.logger.Info(ctx, "New batch file detected: %s", event.Name)

			// Small delay to ensure file is fully written
			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ctx.Err()
			}
			w.handle(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// Stop closes the file watcher
func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

// drain handles files that were in the inbox before the watcher started.
func (w *implWatcher) drain(ctx context.Context) error {
	entries, err := os.ReadDir(w.inputDir)
	if err != nil {
		return fmt.Errorf("read inbox: %w", err)
	}

	var pending []string
	for _, e := range entries {
		if e.Type().IsRegular() && isBatchFile(e.Name()) {
			pending = append(pending, filepath.Join(w.inputDir, e.Name()))
		}
	}
	sort.Strings(pending)

	for _, path := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		w.handle(ctx, path)
	}
	return nil
}

func (w *implWatcher) handle(ctx context.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		w.logger.Debug(ctx, "Batch file vanished before processing: %s", path)
		return
	}
	if err := w.handler(ctx, path); err != nil {
		w.logger.Error(ctx, "Failed to process %s: %v", path, err)
	}
}

// isBatchFile reports whether path is a JSON batch file, excluding result
// files written back by the processor.
func isBatchFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") || processor.IsResultsFile(name) {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".json")
}
