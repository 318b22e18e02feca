package logger

import "context"

// Logger is the leveled, printf-style logger used across the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	Sync() error
}

// Options configures the zap backend.
type Options struct {
	Level  string
	Format string // console or json
	Output string // stderr (default) or stdout

	// File, when set, receives a copy of every entry with size based rotation.
	File       string
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}
