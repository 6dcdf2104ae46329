package convert

import (
	"bytes"
	"context"
	"os/exec"
	"time"
)

// waitDelay bounds how long Run waits for stdout/stderr to drain after the
// process has been killed by context cancellation.
const waitDelay = 5 * time.Second

// ExecResult holds the outcome of a single converter invocation.
type ExecResult struct {
	Stdout []byte
	Stderr string
	Err    error
}

// Runner executes one command. args[0] is the program.
type Runner interface {
	Run(ctx context.Context, args []string) ExecResult
}

// ExecRunner runs commands as child processes.
type ExecRunner struct{}

// Run starts args[0] with the remaining arguments and blocks until it
// exits or ctx is done. Stdout and stderr are captured into separate
// buffers.
func (ExecRunner) Run(ctx context.Context, args []string) ExecResult {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return ExecResult{
		Stdout: stdout.Bytes(),
		Stderr: stderr.String(),
		Err:    err,
	}
}

// RunnerFunc adapts a plain function to the Runner interface.
type RunnerFunc func(ctx context.Context, args []string) ExecResult

// Run calls f(ctx, args).
func (f RunnerFunc) Run(ctx context.Context, args []string) ExecResult {
	return f(ctx, args)
}
