package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hoperrors "thoreinstein.com/hop/pkg/errors"
)

func TestPreParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantCfg     string
		wantVerbose int
	}{
		{"none", []string{"hop", "resolve", "x"}, "", 0},
		{"config long", []string{"hop", "--config", "/tmp/c.toml", "list"}, "/tmp/c.toml", 0},
		{"config equals", []string{"hop", "--config=/tmp/c.toml"}, "/tmp/c.toml", 0},
		{"config short", []string{"hop", "-C", "/tmp/c.toml"}, "/tmp/c.toml", 0},
		{"config short attached", []string{"hop", "-C/tmp/c.toml"}, "/tmp/c.toml", 0},
		{"config short equals", []string{"hop", "-C=/tmp/c.toml"}, "/tmp/c.toml", 0},
		{"verbose", []string{"hop", "-v", "list"}, "", 1},
		{"verbose stacked", []string{"hop", "-vv", "list"}, "", 2},
		{"verbose repeated", []string{"hop", "-v", "--verbose", "-v"}, "", 3},
		{"stops at subcommand", []string{"hop", "list", "-v"}, "", 0},
		{"stops at marker", []string{"hop", "--", "-v"}, "", 0},
		{"unrelated flag", []string{"hop", "--version"}, "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, verbose := PreParseGlobalFlags(tt.args)
			assert.Equal(t, tt.wantCfg, cfg)
			assert.Equal(t, tt.wantVerbose, verbose)
		})
	}
}

func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("GO_TEST", "true")
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	viper.Reset()
	Reset()
	t.Cleanup(func() {
		viper.Reset()
		Reset()
	})
	return home
}

func TestInitConfig_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := InitConfig("", 0)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "src"), cfg.Discovery.Root)
	assert.Equal(t, 2, cfg.Discovery.Depth)
}

func TestInitConfig_CustomFileAndEnv(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `[discovery]
root = "/srv/code"
depth = 4

[complete]
match = "name"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("HOP_DISCOVERY_DEPTH", "1")

	cfg, err := InitConfig(path, 0)
	require.NoError(t, err)

	assert.Equal(t, "/srv/code", cfg.Discovery.Root)
	assert.Equal(t, 1, cfg.Discovery.Depth, "environment overrides file")
	assert.Equal(t, "name", cfg.Complete.Match)
}

func TestInitConfig_MissingExplicitFile(t *testing.T) {
	isolate(t)

	_, err := InitConfig(filepath.Join(t.TempDir(), "nope.toml"), 0)
	require.Error(t, err)
	assert.True(t, hoperrors.IsConfigError(err))
}

func TestInitConfig_MalformedFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[discovery\nroot = \n"), 0o644))

	_, err := InitConfig(path, 0)
	require.Error(t, err)
	assert.True(t, hoperrors.IsConfigError(err))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestInitConfig_InvalidValues(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[discovery]\ndepth = -2\n"), 0o644))

	_, err := InitConfig(path, 0)
	require.Error(t, err)
	assert.True(t, hoperrors.IsConfigError(err))
}

func TestInitConfig_RepoLocalConfig(t *testing.T) {
	isolate(t)
	repo := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0o755))
	sub := filepath.Join(repo, "internal")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(repo, LocalConfigName), []byte("[discovery]\ndepth = 7\n"), 0o644))
	t.Chdir(sub)

	cfg, err := InitConfig("", 0)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Discovery.Depth)
}
