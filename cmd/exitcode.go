package cmd

import (
	"github.com/cockroachdb/errors"

	hoperrors "thoreinstein.com/hop/pkg/errors"
)

// ExitCode is the process exit status hop reports.
type ExitCode int

const (
	// ExitSuccess is a normal exit.
	ExitSuccess ExitCode = 0
	// ExitGeneral covers every error without a dedicated code.
	ExitGeneral ExitCode = 1
	// ExitConfigError means the configuration could not be loaded or is invalid.
	ExitConfigError ExitCode = 2
	// ExitNotInRepository means 'hop where' found no repository.
	ExitNotInRepository ExitCode = 3
)

// ErrNotInRepository is returned by 'hop where' when the path is not inside
// a repository.
var ErrNotInRepository = errors.New("not inside a git repository")

// MapExitCode returns the exit code for err.
func MapExitCode(err error) ExitCode {
	if err == nil {
		return ExitSuccess
	}
	switch {
	case errors.Is(err, ErrNotInRepository):
		return ExitNotInRepository
	case hoperrors.IsConfigError(err):
		return ExitConfigError
	default:
		return ExitGeneral
	}
}
