package audio

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
	"github.com/tsekula/n8n-python/pkg/executor"
)

// Request describes one silent audio file.
type Request struct {
	Duration   float64 // seconds
	SampleRate int     // Hz
	Bitrate    string  // ffmpeg rate such as "192k"; a bare number means kbps
	Channels   int     // 1 or 2
	Format     string
	OutputPath string
}

// Validate checks the request invariants.
func (r Request) Validate() error {
	if r.Duration <= 0 || math.IsNaN(r.Duration) || math.IsInf(r.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %v", models.ErrInvalidRequest, r.Duration)
	}
	if r.SampleRate <= 0 {
		return fmt.Errorf("%w: sample rate must be positive, got %d", models.ErrInvalidRequest, r.SampleRate)
	}
	if r.Channels != 1 && r.Channels != 2 {
		return fmt.Errorf("%w: channels must be 1 or 2, got %d", models.ErrInvalidRequest, r.Channels)
	}
	if strings.TrimSpace(r.OutputPath) == "" {
		return fmt.Errorf("%w: output path is required", models.ErrInvalidRequest)
	}
	return nil
}

// NormalizeBitrate turns a bare number into kbps ("128" -> "128k") and leaves
// anything with a unit alone.
func NormalizeBitrate(bitrate string) string {
	bitrate = strings.TrimSpace(bitrate)
	if bitrate == "" {
		return ""
	}
	if _, err := strconv.Atoi(bitrate); err == nil {
		return bitrate + "k"
	}
	return bitrate
}

// BuildCommand returns the ffmpeg invocation that renders r from the null
// audio source. r is expected to be validated and normalized.
func BuildCommand(encoderPath string, r Request) executor.Command {
	source := fmt.Sprintf("anullsrc=r=%d:cl=%s", r.SampleRate, ChannelLayout(r.Channels))

	// -y: overwrite the destination
	// -f lavfi -t D -i anullsrc: D seconds from the null source
	// -ar/-ac: output sample rate and channel count
	// -c:a/-b:a: codec for the format, encoding rate
	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-f", "lavfi",
		"-t", strconv.FormatFloat(r.Duration, 'f', -1, 64),
		"-i", source,
		"-ar", strconv.Itoa(r.SampleRate),
		"-ac", strconv.Itoa(r.Channels),
		"-c:a", Codec(r.Format),
	}
	if bitrate := NormalizeBitrate(r.Bitrate); bitrate != "" {
		args = append(args, "-b:a", bitrate)
	}
	args = append(args, r.OutputPath)

	return executor.Command{Name: encoderPath, Args: args}
}
