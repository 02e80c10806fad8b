package git

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"
)

// DefaultCommand is the git binary used when none is configured.
const DefaultCommand = "git"

// DefaultTimeout bounds a single status query.
const DefaultTimeout = 5 * time.Second

// StatusQuerier asks git itself whether a path is inside a working tree.
//
// It is the only place hop spawns git. The child's exit status is consumed
// here and turned into a boolean, so it never leaks into the caller's error
// values or the process exit code.
type StatusQuerier struct {
	Command string
	Timeout time.Duration
	runner  CommandRunner
	logger  *slog.Logger
}

// NewStatusQuerier creates a StatusQuerier that runs the real git binary.
func NewStatusQuerier(command string, timeout time.Duration, logger *slog.Logger) *StatusQuerier {
	return NewStatusQuerierWithRunner(command, timeout, logger, &RealCommandRunner{})
}

// NewStatusQuerierWithRunner creates a StatusQuerier with a custom CommandRunner (for testing)
func NewStatusQuerierWithRunner(command string, timeout time.Duration, logger *slog.Logger, runner CommandRunner) *StatusQuerier {
	if command == "" {
		command = DefaultCommand
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StatusQuerier{
		Command: command,
		Timeout: timeout,
		runner:  runner,
		logger:  logger,
	}
}

// IsInsideWorkTree runs `git -C <path> rev-parse --is-inside-work-tree`.
// A zero exit status means true; any failure, including a missing binary or
// a timeout, means false.
func (q *StatusQuerier) IsInsideWorkTree(path string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), q.Timeout)
	defer cancel()

	start := time.Now()
	err := q.runner.Run(ctx, q.Command, "-C", path, "rev-parse", "--is-inside-work-tree")
	q.logger.Debug("git status query",
		"path", path,
		"inside", err == nil,
		"duration", time.Since(start),
	)
	return err == nil
}

// TopLevel runs `git -C <path> rev-parse --show-toplevel` and returns the
// root of the working tree containing path. Unlike the .git directory test
// this also finds the root of a linked worktree or submodule, where .git is
// a file.
func (q *StatusQuerier) TopLevel(path string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), q.Timeout)
	defer cancel()

	out, err := q.runner.Output(ctx, q.Command, "-C", path, "rev-parse", "--show-toplevel")
	if err != nil {
		q.logger.Debug("git toplevel query failed", "path", path, "error", err)
		return "", false
	}

	root := strings.TrimSpace(string(out))
	if root == "" {
		return "", false
	}
	return filepath.FromSlash(root), true
}
