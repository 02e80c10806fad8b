package discovery

import (
	"os"
	"path/filepath"
	"testing"
)

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
}

func mustCreateFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
}

// mustRepo creates path with a .git directory inside it.
func mustRepo(t *testing.T, path string) string {
	t.Helper()
	mustMkdir(t, filepath.Join(path, ".git"))
	return path
}

type fakeQuerier struct {
	inside   map[string]bool
	toplevel map[string]string
	calls    []string
}

func (f *fakeQuerier) IsInsideWorkTree(path string) bool {
	f.calls = append(f.calls, path)
	return f.inside[path]
}

func (f *fakeQuerier) TopLevel(path string) (string, bool) {
	f.calls = append(f.calls, path)
	root, ok := f.toplevel[path]
	return root, ok
}
