package navigate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "proj"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "group", "svc"), 0o755))

	cwd := t.TempDir()
	t.Chdir(cwd)
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, "local"), 0o755))

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		want  string
	}{
		{"empty token is root", "", root},
		{"absolute token as-is", "/abs/x", "/abs/x"},
		{"absolute token ignores root", filepath.Join(root, "proj"), filepath.Join(root, "proj")},
		{"existing under root", "proj", filepath.Join(root, "proj")},
		{"nested under root", "group/svc", filepath.Join(root, "group", "svc")},
		{"falls back to working directory", "local", filepath.Join(cwd, "local")},
		{"missing anywhere still resolves", "nowhere", filepath.Join(cwd, "nowhere")},
		{"parent relative to cwd", "..", filepath.Dir(cwd)},
		{"home expansion", "~/projects", filepath.Join(home, "projects")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(Request{Root: root, Token: tt.token})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RootWinsOverWorkingDirectory(t *testing.T) {
	root := t.TempDir()
	cwd := t.TempDir()
	t.Chdir(cwd)

	// Same name exists in both places.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "shared"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(cwd, "shared"), 0o755))

	assert.Equal(t, filepath.Join(root, "shared"), Resolve(Request{Root: root, Token: "shared"}))
}

func TestResolve_FileUnderRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), nil, 0o644))

	// Existence is all that matters; changing into it is the caller's problem.
	assert.Equal(t, filepath.Join(root, "notes.txt"), Resolve(Request{Root: root, Token: "notes.txt"}))
}

func TestResolve_DollarIsLiteral(t *testing.T) {
	root := t.TempDir()
	t.Setenv("HOME_LIKE", "/elsewhere")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "$HOME_LIKE"), 0o755))

	assert.Equal(t, filepath.Join(root, "$HOME_LIKE"), Resolve(Request{Root: root, Token: "$HOME_LIKE"}))
}
