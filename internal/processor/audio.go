package processor

import (
	"context"
	"path/filepath"

	"github.com/tsekula/n8n-python/internal/audio"
	"github.com/tsekula/n8n-python/internal/models"
)

// synthesize renders the silent audio file an item asks for. The encoder is
// resolved first so a missing ffmpeg never reaches the executor.
func (p *implProcessor) synthesize(ctx context.Context, it *models.Item) error {
	encoderPath, ok := p.deps.Locator.Locate()
	if !ok {
		return models.ErrEncoderNotFound
	}

	req, err := p.audioRequest(it)
	if err != nil {
		return err
	}

	out, err := p.deps.Synthesizer.Synthesize(ctx, req, encoderPath)
	if err != nil {
		return err
	}

	it.AudioOutputStatus = models.StatusSuccess
	it.AudioOutputFile = out
	return nil
}

// audioRequest reads the audio_* fields, falling back to config defaults.
func (p *implProcessor) audioRequest(it *models.Item) (audio.Request, error) {
	def := p.cfg.Audio
	var (
		req audio.Request
		err error
	)

	if req.Duration, err = it.Float("audio_duration", def.Duration); err != nil {
		return req, err
	}
	if req.SampleRate, err = it.Int("audio_sampling_rate", def.SampleRate); err != nil {
		return req, err
	}
	if req.Bitrate, err = it.String("audio_bitrate", def.Bitrate); err != nil {
		return req, err
	}
	if req.Channels, err = it.Int("audio_channels", def.Channels); err != nil {
		return req, err
	}
	if req.Format, err = it.String("audio_file_format", def.Format); err != nil {
		return req, err
	}
	dir, err := it.String("audio_files_path", def.OutputDir)
	if err != nil {
		return req, err
	}
	name, err := it.String("audio_file_name", def.FileName)
	if err != nil {
		return req, err
	}

	// The synthesizer appends the extension for the format.
	req.Bitrate = audio.NormalizeBitrate(req.Bitrate)
	req.OutputPath = filepath.Join(dir, name)
	return req, nil
}

func failAudio(it *models.Item, err error) {
	it.AudioOutputStatus = models.StatusError
	it.AudioOutputError = err.Error()
}
