package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/audio"
	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/encoder"
	"github.com/tsekula/n8n-python/internal/extractor"
	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/internal/processor"
	"github.com/tsekula/n8n-python/internal/replacer"
	"github.com/tsekula/n8n-python/pkg/executor"
)

var version = "dev"

var (
	configPath string
	logLevel   string
)

// Seams replaced in tests.
var (
	newExecutor = executor.New
	newLocator  = encoder.New
)

var rootCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Batch transforms for silent audio and slide decks",
	Long: `pipeline runs the item transforms used by workflow automation:
silent audio synthesis with ffmpeg, slide deck text extraction and slide
deck text replacement. Each transform can be run once from the command
line, over a JSON batch file, or on every batch dropped into an inbox.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "config file (YAML, or TOML by extension)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// app holds what every command needs once flags are parsed.
type app struct {
	cfg *config.Config
	log logger.Logger
}

func newApp() (*app, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	log, err := logger.NewWithOptions(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		File:       cfg.Logging.File,
		MaxSize:    cfg.Logging.MaxSize,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAge:     cfg.Logging.MaxAge,
		Compress:   cfg.Logging.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return &app{cfg: cfg, log: log}, nil
}

func (a *app) close() {
	_ = a.log.Sync()
}

func (a *app) synthesizer() audio.Synthesizer {
	return audio.New(newExecutor(), a.log, a.cfg.EncoderTimeout())
}

func (a *app) processor() processor.Processor {
	return processor.New(a.cfg, processor.Dependencies{
		Locator:     newLocator(a.cfg.Encoder),
		Synthesizer: a.synthesizer(),
		Extractor:   extractor.New(a.cfg.Extract, a.log),
		Replacer:    replacer.New(a.cfg.Replace, a.log),
	}, a.log)
}
