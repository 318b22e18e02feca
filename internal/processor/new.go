package processor

import (
	"github.com/tsekula/n8n-python/internal/audio"
	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/encoder"
	"github.com/tsekula/n8n-python/internal/extractor"
	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/internal/replacer"
)

// Dependencies are the engines behind the transforms.
type Dependencies struct {
	Locator     encoder.Locator
	Synthesizer audio.Synthesizer
	Extractor   extractor.Extractor
	Replacer    replacer.Replacer
}

type implProcessor struct {
	cfg    *config.Config
	deps   Dependencies
	logger logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Dependencies, log logger.Logger) Processor {
	return &implProcessor{
		cfg:    cfg,
		deps:   deps,
		logger: log,
	}
}
