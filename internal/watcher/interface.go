package watcher

import "context"

// Watcher feeds batch files from an inbox directory to a BatchHandler.
// Start blocks until ctx is done; files are handled one at a time.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// BatchHandler processes one batch file. Its error is logged and the
// watcher moves on to the next file.
type BatchHandler func(ctx context.Context, batchPath string) error
