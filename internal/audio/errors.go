package audio

import (
	"fmt"

	"github.com/tsekula/n8n-python/internal/models"
)

// RuntimeError reports an encoder run that did not produce the requested file.
// It matches models.ErrEncoderRuntime with errors.Is.
type RuntimeError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RuntimeError) Error() string {
	msg := "ffmpeg failed"
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	} else {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += "\nstderr: " + e.Stderr
	}
	return msg
}

func (e *RuntimeError) Unwrap() []error {
	if e.Err == nil {
		return []error{models.ErrEncoderRuntime}
	}
	return []error{models.ErrEncoderRuntime, e.Err}
}
