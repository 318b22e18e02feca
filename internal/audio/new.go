package audio

import (
	"time"

	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/pkg/executor"
)

// DefaultTimeout bounds a single encoder run when none is configured.
const DefaultTimeout = 5 * time.Minute

type implSynthesizer struct {
	executor executor.Executor
	logger   logger.Logger
	timeout  time.Duration
}

// New creates a Synthesizer that runs the encoder through exec, giving
// each invocation at most timeout to finish.
func New(exec executor.Executor, log logger.Logger, timeout time.Duration) Synthesizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &implSynthesizer{
		executor: exec,
		logger:   log,
		timeout:  timeout,
	}
}
