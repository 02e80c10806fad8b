package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWhereCommand_Ancestor(t *testing.T) {
	root := repoTree(t)
	configPath := testEnv(t, root)
	nested := filepath.Join(root, "b", "x", "internal", "pkg")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	out, err := executeCommand(t, "--config", configPath, "where", nested)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "b", "x"), strings.TrimSpace(out))
}

func TestWhereCommand_CurrentDirectory(t *testing.T) {
	root := repoTree(t)
	configPath := testEnv(t, root)
	t.Chdir(filepath.Join(root, "a"))

	out, err := executeCommand(t, "--config", configPath, "where")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a"), strings.TrimSpace(out))
}

func TestWhereCommand_FastMode(t *testing.T) {
	root := repoTree(t)
	configPath := testEnv(t, root)
	nested := filepath.Join(root, "a", "docs")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	out, err := executeCommand(t, "--config", configPath, "where", "--mode", "fast", filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "a"), strings.TrimSpace(out))

	_, err = executeCommand(t, "--config", configPath, "where", "--mode", "fast", nested)
	require.ErrorIs(t, err, ErrNotInRepository)
	assert.Equal(t, ExitNotInRepository, MapExitCode(err))
}

func TestWhereCommand_NotInRepository(t *testing.T) {
	root := repoTree(t)
	configPath := testEnv(t, root)

	_, err := executeCommand(t, "--config", configPath, "where", filepath.Join(root, "c"))
	require.ErrorIs(t, err, ErrNotInRepository)
	assert.Equal(t, ExitNotInRepository, MapExitCode(err))
}

func TestWhereCommand_InvalidInput(t *testing.T) {
	root := repoTree(t)
	configPath := testEnv(t, root)

	_, err := executeCommand(t, "--config", configPath, "where", "--mode", "psychic", root)
	assert.ErrorContains(t, err, "invalid classification mode")

	_, err = executeCommand(t, "--config", configPath, "where", filepath.Join(root, "nope"))
	assert.ErrorContains(t, err, "is not a directory")
}

func TestWhereCommand_Branch(t *testing.T) {
	root := t.TempDir()
	repo := filepath.Join(root, "svc")
	_, err := gogit.PlainInitWithOptions(repo, &gogit.PlainInitOptions{
		InitOptions: gogit.InitOptions{DefaultBranch: plumbing.NewBranchReferenceName("feature/login")},
	})
	require.NoError(t, err)
	configPath := testEnv(t, root)

	out, err := executeCommand(t, "--config", configPath, "where", "--branch", repo)
	require.NoError(t, err)
	assert.Equal(t, "feature/login", strings.TrimSpace(out))
}

func TestWhereCommand_AuthoritativeLinkedWorktree(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}

	root := t.TempDir()
	primary := filepath.Join(root, "primary")
	linked := filepath.Join(root, "linked")

	runGit := func(args ...string) {
		t.Helper()
		c := exec.Command("git", args...)
		c.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=hop", "GIT_AUTHOR_EMAIL=hop@example.com",
			"GIT_COMMITTER_NAME=hop", "GIT_COMMITTER_EMAIL=hop@example.com",
		)
		out, err := c.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	runGit("init", "--quiet", primary)
	runGit("-C", primary, "commit", "--quiet", "--allow-empty", "-m", "init")
	runGit("-C", primary, "worktree", "add", "--quiet", "-b", "side", linked)

	nested := filepath.Join(linked, "internal")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	configPath := testEnv(t, root)

	out, err := executeCommand(t, "--config", configPath, "where", "--mode", "authoritative", nested)
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(linked)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// The ancestor walk only knows .git directories, and linked/.git is a file.
	_, err = executeCommand(t, "--config", configPath, "where", "--mode", "ancestor", nested)
	require.ErrorIs(t, err, ErrNotInRepository)
}
