package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tsekula/n8n-python/internal/audio"
	"github.com/tsekula/n8n-python/internal/models"
)

var (
	silenceOutput     string
	silenceFFmpeg     string
	silenceSampleRate int
	silenceBitrate    int
	silenceChannels   int
	silenceFormat     string
	silenceOutputDir  string
)

var silenceCmd = &cobra.Command{
	Use:   "silence <duration>",
	Short: "Generate a silent audio file",
	Long: `Renders <duration> seconds of silence with ffmpeg.
ffmpeg is taken from --ffmpeg, then PATH, then the directories shipped
next to this binary.`,
	Args: cobra.ExactArgs(1),
	RunE: runSilence,
}

func init() {
	silenceCmd.Flags().StringVarP(&silenceOutput, "output", "o", "empty_audio.mp3", "output file")
	silenceCmd.Flags().StringVar(&silenceFFmpeg, "ffmpeg", "", "path to the ffmpeg executable")
	silenceCmd.Flags().IntVar(&silenceSampleRate, "sample-rate", 44100, "sample rate in Hz")
	silenceCmd.Flags().IntVar(&silenceBitrate, "bitrate", 128, "bitrate in kbps")
	silenceCmd.Flags().IntVar(&silenceChannels, "channels", 2, "1 for mono, 2 for stereo")
	silenceCmd.Flags().StringVar(&silenceFormat, "format", audio.DefaultFormat, "mp3, wav, ogg, aac, flac or m4a")
	silenceCmd.Flags().StringVar(&silenceOutputDir, "output-dir", "", "directory for a relative --output")
	rootCmd.AddCommand(silenceCmd)
}

func runSilence(cmd *cobra.Command, args []string) error {
	duration, err := strconv.Atoi(args[0])
	if err != nil || duration <= 0 {
		return fmt.Errorf("%w: duration must be a positive whole number of seconds, got %q", models.ErrInvalidRequest, args[0])
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	encCfg := a.cfg.Encoder
	if silenceFFmpeg != "" {
		encCfg.Path = silenceFFmpeg
	}
	encoderPath, ok := newLocator(encCfg).Locate()
	if !ok {
		return models.ErrEncoderNotFound
	}

	output := silenceOutput
	if silenceOutputDir != "" && !filepath.IsAbs(output) {
		output = filepath.Join(silenceOutputDir, output)
	}

	written, err := a.synthesizer().Synthesize(cmd.Context(), audio.Request{
		Duration:   float64(duration),
		SampleRate: silenceSampleRate,
		Bitrate:    strconv.Itoa(silenceBitrate),
		Channels:   silenceChannels,
		Format:     silenceFormat,
		OutputPath: output,
	}, encoderPath)
	if err != nil {
		return err
	}

	size := "unknown size"
	if info, err := os.Stat(written); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	cmd.Printf("Created %s (%ds of silence, %s)\n", written, duration, size)
	return nil
}
