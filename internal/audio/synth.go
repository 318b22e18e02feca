package audio

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
)

var errNoOutput = errors.New("encoder exited successfully but wrote no file")

// Synthesize renders silence for req with the encoder at encoderPath.
func (s *implSynthesizer) Synthesize(ctx context.Context, req Request, encoderPath string) (string, error) {
	if encoderPath == "" {
		return "", models.ErrEncoderNotFound
	}
	if err := req.Validate(); err != nil {
		return "", err
	}

	if !Supported(req.Format) {
		s.logger.Warn(ctx, "Unknown audio format %q, encoding as %s", req.Format, DefaultFormat)
		req.Format = DefaultFormat
	}
	req.Format = normalizeFormat(req.Format)
	req.OutputPath = OutputName(req.OutputPath, req.Format)

	if err := os.MkdirAll(filepath.Dir(req.OutputPath), 0755); err != nil {
		return "", fmt.Errorf("%w: create output directory: %w", models.ErrIO, err)
	}

	cmd := BuildCommand(encoderPath, req)

	s.logger.Info(ctx, "Generating %gs of silence (%d Hz, %s, %s): %s",
		req.Duration, req.SampleRate, ChannelLayout(req.Channels), Codec(req.Format), req.OutputPath)
	s.logger.Debug(ctx, "FFmpeg command: %s %s", cmd.Name, strings.Join(cmd.Args, " "))

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.executor.Run(runCtx, cmd)
	if err != nil {
		return "", &RuntimeError{ExitCode: res.ExitCode, Stderr: res.Stderr, Err: err}
	}
	if !res.Success() {
		return "", &RuntimeError{ExitCode: res.ExitCode, Stderr: res.Stderr}
	}

	if info, err := os.Stat(req.OutputPath); err != nil || info.IsDir() {
		return "", &RuntimeError{Stderr: res.Stderr, Err: errNoOutput}
	}

	s.logger.Info(ctx, "Silent audio written: %s", req.OutputPath)
	return req.OutputPath, nil
}
