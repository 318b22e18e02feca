package extractor

import (
	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/logger"
)

const defaultSuffix = "_content.json"

type implExtractor struct {
	suffix     string
	docxReport bool
	logger     logger.Logger
}

// New creates an Extractor writing <base><suffix> for every deck.
func New(cfg config.ExtractConfig, log logger.Logger) Extractor {
	suffix := cfg.Suffix
	if suffix == "" {
		suffix = defaultSuffix
	}
	return &implExtractor{
		suffix:     suffix,
		docxReport: cfg.DocxReport,
		logger:     log,
	}
}
