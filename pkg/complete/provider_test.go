package complete

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thoreinstein.com/hop/pkg/config"
	"thoreinstein.com/hop/pkg/discovery"
)

func mustRepo(t *testing.T, path string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Join(path, ".git"), 0o755); err != nil {
		t.Fatalf("failed to create repo %s: %v", path, err)
	}
	return path
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	if err := os.Chtimes(path, at, at); err != nil {
		t.Fatalf("failed to set times on %s: %v", path, err)
	}
}

func newTestProvider(cfg config.CompleteConfig) *Provider {
	scanner := discovery.NewScanner(discovery.NewClassifier(nil), nil, 1, nil)
	return NewProvider(scanner, cfg, nil)
}

func texts(suggestions []Suggestion) []string {
	out := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		out = append(out, s.Text)
	}
	return out
}

func TestSuggest_Scenario(t *testing.T) {
	root := filepath.Join(t.TempDir(), "repos")
	mustRepo(t, filepath.Join(root, "a"))
	bx := mustRepo(t, filepath.Join(root, "b", "x"))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "c"), 0o755))

	got := newTestProvider(config.CompleteConfig{}).Suggest(root, 2, "b")

	require.Len(t, got, 1)
	assert.Equal(t, Suggestion{Text: "b/x", Label: "x", Tooltip: bx}, got[0])
}

func TestSuggest_NameScope(t *testing.T) {
	root := t.TempDir()
	mustRepo(t, filepath.Join(root, "app"))
	mustRepo(t, filepath.Join(root, "libs", "apply"))
	mustRepo(t, filepath.Join(root, "apps", "tool"))

	byPath := newTestProvider(config.CompleteConfig{Match: MatchPath}).Suggest(root, 2, "ap")
	assert.ElementsMatch(t, []string{"app", "libs/apply", "apps/tool"}, texts(byPath))

	byName := newTestProvider(config.CompleteConfig{Match: MatchName}).Suggest(root, 2, "ap")
	assert.ElementsMatch(t, []string{"app", "libs/apply"}, texts(byName))
}

func TestSuggest_OrderedByModTime(t *testing.T) {
	root := t.TempDir()
	old := mustRepo(t, filepath.Join(root, "old"))
	recent := mustRepo(t, filepath.Join(root, "recent"))
	tieB := mustRepo(t, filepath.Join(root, "tie-b"))
	tieA := mustRepo(t, filepath.Join(root, "tie-a"))

	base := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	touch(t, old, base)
	touch(t, recent, base.Add(2*time.Hour))
	touch(t, tieA, base.Add(time.Hour))
	touch(t, tieB, base.Add(time.Hour))

	got := newTestProvider(config.CompleteConfig{}).Suggest(root, 0, "")

	assert.Equal(t, []string{"recent", "tie-a", "tie-b", "old"}, texts(got))
}

func TestSuggest_CasePolicy(t *testing.T) {
	root := t.TempDir()
	mustRepo(t, filepath.Join(root, "MyService"))

	insensitive := newTestProvider(config.CompleteConfig{CaseSensitive: false}).Suggest(root, 0, "myserv")
	assert.Equal(t, []string{"MyService"}, texts(insensitive))

	sensitive := newTestProvider(config.CompleteConfig{CaseSensitive: true}).Suggest(root, 0, "myserv")
	assert.Empty(t, sensitive)

	exact := newTestProvider(config.CompleteConfig{CaseSensitive: true}).Suggest(root, 0, "MyServ")
	assert.Equal(t, []string{"MyService"}, texts(exact))
}

func TestSuggest_QuotesUnsafeText(t *testing.T) {
	root := t.TempDir()
	spaced := mustRepo(t, filepath.Join(root, "my project"))

	got := newTestProvider(config.CompleteConfig{}).Suggest(root, 0, "proj")

	require.Len(t, got, 1)
	assert.Equal(t, "'my project'", got[0].Text)
	assert.Equal(t, "my project", got[0].Path)
	assert.Equal(t, "my project", got[0].Label)
	assert.Equal(t, spaced, got[0].Tooltip)
}

func TestSuggest_Limit(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"one", "two", "three"} {
		mustRepo(t, filepath.Join(root, name))
	}

	got := newTestProvider(config.CompleteConfig{Limit: 2}).Suggest(root, 0, "")
	assert.Len(t, got, 2)
}

func TestSuggest_EmptyResults(t *testing.T) {
	root := t.TempDir()
	mustRepo(t, filepath.Join(root, "alpha"))

	provider := newTestProvider(config.CompleteConfig{})

	t.Run("no match", func(t *testing.T) {
		got := provider.Suggest(root, 2, "zzz")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("empty root", func(t *testing.T) {
		got := provider.Suggest(t.TempDir(), 2, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("missing root", func(t *testing.T) {
		got := provider.Suggest(filepath.Join(root, "missing"), 2, "")
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSuggest_EmptyTokenMatchesAll(t *testing.T) {
	root := t.TempDir()
	mustRepo(t, filepath.Join(root, "a"))
	mustRepo(t, filepath.Join(root, "b"))

	got := newTestProvider(config.CompleteConfig{}).Suggest(root, 0, "")
	assert.ElementsMatch(t, []string{"a", "b"}, texts(got))
}

func TestSuggest_PathIsSlashSeparated(t *testing.T) {
	root := t.TempDir()
	mustRepo(t, filepath.Join(root, "b", "x"))

	got := newTestProvider(config.CompleteConfig{}).Suggest(root, 1, "x")

	require.Len(t, got, 1)
	assert.Equal(t, "b/x", got[0].Path)
	assert.Equal(t, "b/x", got[0].Text)
}
