package audio

import "context"

// Synthesizer generates silent audio files with an external encoder.
type Synthesizer interface {
	// Synthesize writes req.Duration seconds of silence to req.OutputPath
	// (extension normalized to req.Format) and returns the written path.
	Synthesize(ctx context.Context, req Request, encoderPath string) (string, error)
}
