package discovery

import (
	"path/filepath"

	"thoreinstein.com/hop/pkg/git"
)

// StatusQuerier is the capability behind ModeAuthoritative.
type StatusQuerier interface {
	IsInsideWorkTree(path string) bool
	TopLevel(path string) (string, bool)
}

// Classifier decides whether a directory is a repository root.
type Classifier struct {
	querier StatusQuerier
}

// NewClassifier creates a Classifier. A nil querier makes every
// authoritative check report false.
func NewClassifier(querier StatusQuerier) *Classifier {
	return &Classifier{querier: querier}
}

// IsRepository classifies path using mode. Paths that cannot be resolved
// are reported as not being repositories.
func (c *Classifier) IsRepository(path string, mode Mode) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}

	switch mode {
	case ModeFastLeafOnly:
		return git.HasGitDir(abs)
	case ModeFastWithAncestorWalk:
		_, found := EnclosingRoot(abs)
		return found
	case ModeAuthoritative:
		if c.querier == nil {
			return false
		}
		return c.querier.IsInsideWorkTree(abs)
	default:
		return false
	}
}

// Root reports the repository root path belongs to under mode. Fast mode
// only accepts path itself; the ancestor walk returns the directory it
// stopped at; authoritative mode asks git for the working tree root.
func (c *Classifier) Root(path string, mode Mode) (string, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	switch mode {
	case ModeFastLeafOnly:
		if git.HasGitDir(abs) {
			return abs, true
		}
		return "", false
	case ModeFastWithAncestorWalk:
		return EnclosingRoot(abs)
	case ModeAuthoritative:
		if c.querier == nil {
			return "", false
		}
		return c.querier.TopLevel(abs)
	default:
		return "", false
	}
}

// EnclosingRoot walks up from path looking for the nearest directory that
// carries a .git directory, path itself included.
// Returns the root and true if found, or empty string and false once the
// filesystem root has been checked.
func EnclosingRoot(path string) (string, bool) {
	dir, err := filepath.Abs(path)
	if err != nil {
		return "", false
	}

	for {
		if git.HasGitDir(dir) {
			return dir, true
		}

		parent := filepath.Dir(dir)
		// Reached filesystem root
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
