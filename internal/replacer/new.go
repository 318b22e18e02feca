package replacer

import (
	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/logger"
)

const defaultPrefix = "modified_"

type implReplacer struct {
	prefix string
	logger logger.Logger
}

// New creates a Replacer that saves to <dir>/<prefix><name>.
func New(cfg config.ReplaceConfig, log logger.Logger) Replacer {
	prefix := cfg.OutputPrefix
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &implReplacer{
		prefix: prefix,
		logger: log,
	}
}
