package logger

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestLoggerLevels(t *testing.T) {
	ctx := context.Background()
	log := New("info")

	// These should not panic
	log.Debug(ctx, "debug message")
	log.Info(ctx, "info message")
	log.Warn(ctx, "warn message")
	log.Error(ctx, "error message")

	// Test with formatting
	log.Info(ctx, "formatted message: %s %d", "test", 123)
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"invalid level falls back to info", "invalid", "debug", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestNewWithOptions_File(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "logs", "pipeline.log")

	log, err := NewWithOptions(Options{Level: "info", Format: "json", File: path, MaxSize: 1})
	if err != nil {
		t.Fatalf("NewWithOptions() error = %v", err)
	}

	log.Info(ctx, "written to %s", "file")
	if err := log.Sync(); err != nil {
		t.Errorf("Sync() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Error(context.Background(), "dropped %d", 1)
	if log.(*implLogger).shouldLog("error") {
		t.Error("nop logger should not log errors")
	}
}

// redirect swaps *f for a pipe until the returned func is called, which
// restores it and returns everything written.
func redirect(t *testing.T, f **os.File) func() string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	orig := *f
	*f = w
	return func() string {
		*f = orig
		w.Close()
		data, _ := io.ReadAll(r)
		r.Close()
		return string(data)
	}
}

func TestNewWithOptions_Output(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantStdout bool
	}{
		{"default is stderr", "", false},
		{"stderr", "stderr", false},
		{"stdout", "stdout", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stopOut := redirect(t, &os.Stdout)
			stopErr := redirect(t, &os.Stderr)

			log, err := NewWithOptions(Options{Level: "info", Output: tt.output})
			if err != nil {
				stopOut()
				stopErr()
				t.Fatalf("NewWithOptions() error = %v", err)
			}
			log.Error(context.Background(), "item %d failed", 3)
			_ = log.Sync()

			stdout, stderr := stopOut(), stopErr()
			inStdout := strings.Contains(stdout, "item 3 failed")
			inStderr := strings.Contains(stderr, "item 3 failed")
			if inStdout != tt.wantStdout || inStderr == tt.wantStdout {
				t.Errorf("stdout = %q, stderr = %q, want entry on stdout = %v", stdout, stderr, tt.wantStdout)
			}
		})
	}
}
