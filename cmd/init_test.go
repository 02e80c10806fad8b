package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitCommand(t *testing.T) {
	configPath := testEnv(t, t.TempDir())

	for _, sh := range []string{"bash", "zsh", "fish"} {
		t.Run(sh, func(t *testing.T) {
			out, err := executeCommand(t, "--config", configPath, "init", sh)
			require.NoError(t, err)
			assert.Contains(t, out, "hop shell integration ("+sh+")")
			assert.Contains(t, out, "rcd")
			assert.Contains(t, out, "hop complete --shell "+sh)
		})
	}
}

func TestInitCommand_FunctionName(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("[shell]\nfunction = \"j\"\n"), 0o644))
	testEnv(t, dir)

	out, err := executeCommand(t, "--config", configPath, "init", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "j() {")

	out, err = executeCommand(t, "--config", configPath, "init", "bash", "--function", "go2")
	require.NoError(t, err)
	assert.Contains(t, out, "go2() {")
}

func TestInitCommand_DetectsShell(t *testing.T) {
	configPath := testEnv(t, t.TempDir())
	t.Setenv("SHELL", "/usr/bin/fish")

	out, err := executeCommand(t, "--config", configPath, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "(fish)")
}

func TestInitCommand_Unsupported(t *testing.T) {
	configPath := testEnv(t, t.TempDir())

	_, err := executeCommand(t, "--config", configPath, "init", "tcsh")
	assert.ErrorContains(t, err, "unsupported shell")
}

func TestInitCommand_Install(t *testing.T) {
	configPath := testEnv(t, t.TempDir())
	home := os.Getenv("HOME")

	out, err := executeCommand(t, "--config", configPath, "init", "zsh", "--install")
	require.NoError(t, err)
	assert.Contains(t, out, "Added hop to")

	content, err := os.ReadFile(filepath.Join(home, ".zshrc"))
	require.NoError(t, err)
	assert.Contains(t, string(content), `eval "$(hop init zsh)"`)

	out, err = executeCommand(t, "--config", configPath, "init", "zsh", "--install")
	require.NoError(t, err)
	assert.Contains(t, out, "already set up")
}
