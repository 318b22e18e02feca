package executor

import "context"

// Command describes one external process invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

// Result is what a finished process left behind.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Success reports whether the process exited with status zero.
func (r Result) Success() bool {
	return r.ExitCode == 0
}

// Executor defines the interface for executing external commands.
// A process that starts and exits non-zero is reported through Result, not
// as an error. Errors are reserved for processes that could not be started
// or were stopped because ctx ended.
type Executor interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}
