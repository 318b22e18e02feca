package watcher

import (
	"fmt"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/tsekula/n8n-python/internal/logger"
)

const defaultSettleDelay = 500 * time.Millisecond

// New creates a Watcher that hands every batch file dropped into inputDir
// to handler, one at a time. The directory is created if missing.
func New(inputDir string, handler BatchHandler, log logger.Logger) (Watcher, error) {
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return nil, fmt.Errorf("create inbox: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := watcher.Add(inputDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		inputDir: inputDir,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		settle:   defaultSettleDelay,
	}, nil
}
