package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/processor"
	"github.com/tsekula/n8n-python/internal/watcher"
)

var watchTransform string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Process batch files dropped into the inbox",
	Long: `Watches paths.inbox for JSON batch files. Each file is run with the
chosen transform, its results are written to paths.output and the batch
file is moved to paths.archived. Files are handled one at a time.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchTransform, "transform", "t", "", "audio, extract or replace (default watch.transform)")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	name := a.cfg.Watch.Transform
	if watchTransform != "" {
		name = watchTransform
	}
	kind, err := processor.ParseKind(name)
	if err != nil {
		return err
	}

	proc := a.processor()
	w, err := watcher.New(a.cfg.Paths.Inbox, func(ctx context.Context, path string) error {
		_, err := proc.ProcessFile(ctx, kind, path)
		return err
	}, a.log)
	if err != nil {
		return err
	}
	defer w.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.log.Info(ctx, "Transform: %s", kind)
	a.log.Info(ctx, "Inbox: %s", a.cfg.Paths.Inbox)
	a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
	a.log.Info(ctx, "Archived: %s", a.cfg.Paths.Archived)
	a.log.Info(ctx, "Press Ctrl+C to stop")

	if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	a.log.Info(context.Background(), "Pipeline watcher stopped")
	return nil
}
