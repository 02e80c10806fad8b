package git

import (
	"os"
	"path/filepath"
)

// DirName is the metadata directory that marks the root of a working tree.
const DirName = ".git"

// HasGitDir reports whether path directly contains a .git directory.
//
// A .git file (worktrees, submodules with gitdir pointers) is not accepted;
// callers that need those layouts must use the authoritative check instead.
// A path that does not exist simply reports false.
func HasGitDir(path string) bool {
	info, err := os.Stat(filepath.Join(path, DirName))
	if err != nil {
		return false
	}
	return info.IsDir()
}
