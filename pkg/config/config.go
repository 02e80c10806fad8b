package config

import (
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	hoperrors "thoreinstein.com/hop/pkg/errors"
	"thoreinstein.com/hop/pkg/logging"
)

// Config represents the application configuration.
// Nothing discovered at runtime is stored here; every command rescans.
type Config struct {
	Discovery DiscoveryConfig `mapstructure:"discovery" toml:"discovery"`
	Complete  CompleteConfig  `mapstructure:"complete" toml:"complete"`
	Git       GitConfig       `mapstructure:"git" toml:"git"`
	Where     WhereConfig     `mapstructure:"where" toml:"where"`
	Shell     ShellConfig     `mapstructure:"shell" toml:"shell"`
	Log       LogConfig       `mapstructure:"log" toml:"log"`
}

// DiscoveryConfig holds repository discovery configuration
type DiscoveryConfig struct {
	Root    string   `mapstructure:"root" toml:"root"`       // Directory whose subtree is scanned
	Depth   int      `mapstructure:"depth" toml:"depth"`     // Extra levels entered below root's children
	Exclude []string `mapstructure:"exclude" toml:"exclude"` // Directory names never entered
	Workers int      `mapstructure:"workers" toml:"workers"` // Concurrent top-level subtree scans
}

// CompleteConfig holds completion matching configuration
type CompleteConfig struct {
	CaseSensitive bool   `mapstructure:"case_sensitive" toml:"case_sensitive"`
	Match         string `mapstructure:"match" toml:"match"` // "path" or "name"
	Limit         int    `mapstructure:"limit" toml:"limit"` // 0 means unlimited
}

// GitConfig holds settings for the authoritative git check
type GitConfig struct {
	Command string        `mapstructure:"command" toml:"command"`
	Timeout time.Duration `mapstructure:"timeout" toml:"timeout"`
}

// WhereConfig holds configuration for `hop where`
type WhereConfig struct {
	Mode string `mapstructure:"mode" toml:"mode"` // "fast", "ancestor" or "authoritative"
}

// ShellConfig holds shell integration configuration
type ShellConfig struct {
	Function string `mapstructure:"function" toml:"function"` // Name of the generated cd wrapper
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level" toml:"level"` // debug, info, warn, error
}

// ValidMatchScopes lists the supported completion match scopes.
var ValidMatchScopes = []string{"path", "name"}

// ValidModes lists the supported classification mode names.
var ValidModes = []string{"fast", "ancestor", "authoritative"}

var shellIdentifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// Load loads the configuration from file and environment variables
func Load() (*Config, error) {
	config := &Config{}

	// Set defaults
	setDefaults()

	// Unmarshal the config
	if err := viper.Unmarshal(config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}

	// Expand paths
	if err := expandPaths(config); err != nil {
		return nil, errors.Wrap(err, "failed to expand paths")
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return config, nil
}

// Default returns the configuration hop uses when nothing is configured.
func Default() *Config {
	homeDir := homeDirOrDot()
	return &Config{
		Discovery: DiscoveryConfig{
			Root:    filepath.Join(homeDir, "src"),
			Depth:   2,
			Exclude: []string{},
			Workers: 1,
		},
		Complete: CompleteConfig{
			CaseSensitive: false,
			Match:         "path",
			Limit:         0,
		},
		Git: GitConfig{
			Command: "git",
			Timeout: 5 * time.Second,
		},
		Where: WhereConfig{Mode: "ancestor"},
		Shell: ShellConfig{Function: "rcd"},
		Log:   LogConfig{Level: "warn"},
	}
}

// Validate validates the configuration and returns any validation errors.
func (c *Config) Validate() error {
	if c.Discovery.Depth < 0 {
		return hoperrors.NewConfigError("discovery.depth", "must not be negative")
	}
	if c.Discovery.Workers < 1 {
		return hoperrors.NewConfigError("discovery.workers", "must be at least 1")
	}
	if !contains(ValidMatchScopes, c.Complete.Match) {
		return hoperrors.NewConfigError("complete.match", "must be one of: path, name")
	}
	if c.Complete.Limit < 0 {
		return hoperrors.NewConfigError("complete.limit", "must not be negative")
	}
	if !contains(ValidModes, c.Where.Mode) {
		return hoperrors.NewConfigError("where.mode", "must be one of: fast, ancestor, authoritative")
	}
	if !shellIdentifier.MatchString(c.Shell.Function) {
		return hoperrors.NewConfigError("shell.function", "must be a valid shell function name")
	}
	if _, err := logging.LevelFromString(c.Log.Level); err != nil {
		return hoperrors.NewConfigError("log.level", "must be one of: debug, info, warn, error")
	}
	return nil
}

// setDefaults sets default configuration values
func setDefaults() {
	d := Default()

	// Discovery defaults
	viper.SetDefault("discovery.root", d.Discovery.Root)
	viper.SetDefault("discovery.depth", d.Discovery.Depth)
	viper.SetDefault("discovery.exclude", d.Discovery.Exclude)
	viper.SetDefault("discovery.workers", d.Discovery.Workers)

	// Completion defaults
	viper.SetDefault("complete.case_sensitive", d.Complete.CaseSensitive)
	viper.SetDefault("complete.match", d.Complete.Match)
	viper.SetDefault("complete.limit", d.Complete.Limit)

	// Git defaults
	viper.SetDefault("git.command", d.Git.Command)
	viper.SetDefault("git.timeout", d.Git.Timeout)

	viper.SetDefault("where.mode", d.Where.Mode)
	viper.SetDefault("shell.function", d.Shell.Function)
	viper.SetDefault("log.level", d.Log.Level)
}

// expandPaths expands ~ and environment variables in paths
func expandPaths(config *Config) error {
	var err error

	config.Discovery.Root, err = ExpandPath(config.Discovery.Root)
	if err != nil {
		return err
	}

	return nil
}

// ExpandPath expands $VARS anywhere in the path and then a leading ~.
func ExpandPath(path string) (string, error) {
	return ExpandHome(os.ExpandEnv(path))
}

// ExpandHome expands a leading ~ or ~/ to the home directory. Other paths,
// including ~user forms, are returned unchanged.
func ExpandHome(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}
	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, path[1:]), nil
}

func homeDirOrDot() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fall back to current directory if home dir can't be determined
		return "."
	}
	return homeDir
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
