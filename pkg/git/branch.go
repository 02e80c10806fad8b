package git

import (
	"github.com/cockroachdb/errors"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// HeadInfo describes what HEAD points at in a repository.
type HeadInfo struct {
	Branch   string // Short branch name, empty when detached
	Hash     string // Abbreviated commit hash when detached
	Detached bool
}

// String renders the head the way a prompt would show it.
func (h HeadInfo) String() string {
	if h.Detached {
		return "(detached " + h.Hash + ")"
	}
	return h.Branch
}

// ReadHead opens the repository containing path and reports its HEAD.
// Repositories without commits still report the branch HEAD is born on.
func ReadHead(path string) (HeadInfo, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return HeadInfo{}, errors.Wrapf(err, "failed to open repository %s", path)
	}

	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return HeadInfo{}, errors.Wrap(err, "failed to read HEAD")
	}

	if ref.Type() == plumbing.SymbolicReference {
		return HeadInfo{Branch: ref.Target().Short()}, nil
	}

	hash := ref.Hash().String()
	if len(hash) > 7 {
		hash = hash[:7]
	}
	return HeadInfo{Hash: hash, Detached: true}, nil
}
