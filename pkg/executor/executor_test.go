package executor

import (
	"context"
	"os/exec"
	"testing"
	"time"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestRun(t *testing.T) {
	requireShell(t)

	tests := []struct {
		name       string
		script     string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{"success", "echo hello", 0, "hello\n", ""},
		{"non-zero exit", "echo oops 1>&2; exit 3", 3, "", "oops"},
		{"stderr with success", "echo warn 1>&2", 0, "", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := New().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", tt.script}})
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if res.ExitCode != tt.wantCode {
				t.Errorf("ExitCode = %v, want %v", res.ExitCode, tt.wantCode)
			}
			if res.Success() != (tt.wantCode == 0) {
				t.Errorf("Success() = %v", res.Success())
			}
			if res.Stdout != tt.wantStdout {
				t.Errorf("Stdout = %q, want %q", res.Stdout, tt.wantStdout)
			}
			if res.Stderr != tt.wantStderr {
				t.Errorf("Stderr = %q, want %q", res.Stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunInDir(t *testing.T) {
	requireShell(t)

	dir := t.TempDir()
	res, err := New().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "pwd"}, Dir: dir})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Stdout == "" {
		t.Error("expected working directory on stdout")
	}
}

func TestRunLaunchFailure(t *testing.T) {
	res, err := New().Run(context.Background(), Command{Name: "definitely-not-a-real-binary-xyz"})
	if err == nil {
		t.Fatal("Run() should fail for a missing binary")
	}
	if res.ExitCode != -1 {
		t.Errorf("ExitCode = %v, want -1", res.ExitCode)
	}
}

func TestRunTimeout(t *testing.T) {
	requireShell(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := New().Run(ctx, Command{Name: "sh", Args: []string{"-c", "exec sleep 5"}})
	if err == nil {
		t.Fatal("Run() should fail when the context deadline passes")
	}
}
