package config

import (
	"fmt"
	"time"
)

type Config struct {
	Encoder EncoderConfig `yaml:"encoder" toml:"encoder"`
	Audio   AudioConfig   `yaml:"audio" toml:"audio"`
	Extract ExtractConfig `yaml:"extract" toml:"extract"`
	Replace ReplaceConfig `yaml:"replace" toml:"replace"`
	Paths   PathsConfig   `yaml:"paths" toml:"paths"`
	Watch   WatchConfig   `yaml:"watch" toml:"watch"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
}

// EncoderConfig controls how the ffmpeg binary is found and run.
type EncoderConfig struct {
	Path        string   `yaml:"path" toml:"path"`
	Binary      string   `yaml:"binary" toml:"binary"`
	BundledDirs []string `yaml:"bundled_dirs" toml:"bundled_dirs"`
	Timeout     string   `yaml:"timeout" toml:"timeout"`
}

// AudioConfig holds the defaults applied to audio work items.
type AudioConfig struct {
	Duration   float64 `yaml:"duration" toml:"duration"`
	SampleRate int     `yaml:"sample_rate" toml:"sample_rate"`
	Bitrate    string  `yaml:"bitrate" toml:"bitrate"`
	Channels   int     `yaml:"channels" toml:"channels"`
	Format     string  `yaml:"format" toml:"format"`
	OutputDir  string  `yaml:"output_dir" toml:"output_dir"`
	FileName   string  `yaml:"file_name" toml:"file_name"`
}

type ExtractConfig struct {
	Suffix     string `yaml:"suffix" toml:"suffix"`
	DocxReport bool   `yaml:"docx_report" toml:"docx_report"`
}

type ReplaceConfig struct {
	SearchText   string `yaml:"search_text" toml:"search_text"`
	ReplaceText  string `yaml:"replace_text" toml:"replace_text"`
	OutputPrefix string `yaml:"output_prefix" toml:"output_prefix"`
}

type PathsConfig struct {
	Inbox    string `yaml:"inbox" toml:"inbox"`
	Output   string `yaml:"output" toml:"output"`
	Archived string `yaml:"archived" toml:"archived"`
}

type WatchConfig struct {
	Transform string `yaml:"transform" toml:"transform"`
}

type LoggingConfig struct {
	Level      string `yaml:"level" toml:"level"`
	Format     string `yaml:"format" toml:"format"`
	Output     string `yaml:"output" toml:"output"` // stderr or stdout
	File       string `yaml:"file" toml:"file"`
	MaxSize    int    `yaml:"max_size" toml:"max_size"`
	MaxBackups int    `yaml:"max_backups" toml:"max_backups"`
	MaxAge     int    `yaml:"max_age" toml:"max_age"`
	Compress   bool   `yaml:"compress" toml:"compress"`
}

// Validate checks the values that cannot be defaulted and fills in the rest.
func (c *Config) Validate() error {
	if c.Audio.Duration < 0 {
		return fmt.Errorf("audio.duration must be positive")
	}
	if c.Audio.SampleRate < 0 {
		return fmt.Errorf("audio.sample_rate must be positive")
	}
	if c.Audio.Channels != 0 && c.Audio.Channels != 1 && c.Audio.Channels != 2 {
		return fmt.Errorf("audio.channels must be 1 or 2")
	}
	if c.Encoder.Timeout != "" {
		if _, err := time.ParseDuration(c.Encoder.Timeout); err != nil {
			return fmt.Errorf("encoder.timeout: %w", err)
		}
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	switch c.Logging.Output {
	case "", "stderr", "stdout":
	default:
		return fmt.Errorf("logging.output must be stderr or stdout")
	}

	if c.Encoder.Binary == "" {
		c.Encoder.Binary = "ffmpeg"
	}
	if c.Encoder.Timeout == "" {
		c.Encoder.Timeout = "5m"
	}
	if c.Audio.Duration == 0 {
		c.Audio.Duration = 10
	}
	if c.Audio.SampleRate == 0 {
		c.Audio.SampleRate = 44100
	}
	if c.Audio.Bitrate == "" {
		c.Audio.Bitrate = "192k"
	}
	if c.Audio.Channels == 0 {
		c.Audio.Channels = 2
	}
	if c.Audio.Format == "" {
		c.Audio.Format = "mp3"
	}
	if c.Audio.OutputDir == "" {
		c.Audio.OutputDir = "."
	}
	if c.Audio.FileName == "" {
		c.Audio.FileName = "empty_audio"
	}
	if c.Extract.Suffix == "" {
		c.Extract.Suffix = "_content.json"
	}
	if c.Replace.SearchText == "" {
		c.Replace.SearchText = "OLD TEXT"
	}
	if c.Replace.ReplaceText == "" {
		c.Replace.ReplaceText = "NEW TEXT"
	}
	if c.Replace.OutputPrefix == "" {
		c.Replace.OutputPrefix = "modified_"
	}
	if c.Paths.Inbox == "" {
		c.Paths.Inbox = "data/inbox"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Watch.Transform == "" {
		c.Watch.Transform = "extract"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
	if c.Logging.MaxSize == 0 {
		c.Logging.MaxSize = 100
	}
	if c.Logging.MaxBackups == 0 {
		c.Logging.MaxBackups = 3
	}
	if c.Logging.MaxAge == 0 {
		c.Logging.MaxAge = 7
	}

	return nil
}

// EncoderTimeout returns the parsed encoder timeout. Validate must have run.
func (c *Config) EncoderTimeout() time.Duration {
	d, err := time.ParseDuration(c.Encoder.Timeout)
	if err != nil || d <= 0 {
		return 5 * time.Minute
	}
	return d
}

// Default returns a validated configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.Validate()
	return cfg
}
