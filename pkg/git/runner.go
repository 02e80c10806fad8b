package git

import (
	"context"
	"io"
	"os/exec"
)

// CommandRunner abstracts external command execution for testability.
type CommandRunner interface {
	// Run executes name with args and returns its error, if any. Output
	// written by the command is discarded.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes name with args and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealCommandRunner executes commands via os/exec.
type RealCommandRunner struct{}

// Run executes the command using exec.CommandContext with stdout and stderr
// discarded.
func (r *RealCommandRunner) Run(ctx context.Context, name string, args ...string) error {
	// #nosec G204 - the binary comes from configuration, arguments are fixed
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run()
}

// Output executes the command and returns stdout. Stderr is discarded.
func (r *RealCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - the binary comes from configuration, arguments are fixed
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = io.Discard
	return cmd.Output()
}
