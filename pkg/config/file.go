package config

import (
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"

	hoperrors "thoreinstein.com/hop/pkg/errors"
)

// DefaultPath returns the user config file location, ~/.config/hop/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, ".config", "hop", "config.toml"), nil
}

// Marshal renders cfg as a TOML document that Load can read back.
// Durations are written in their string form ("5s").
func Marshal(cfg *Config) ([]byte, error) {
	doc := map[string]any{
		"discovery": map[string]any{
			"root":    cfg.Discovery.Root,
			"depth":   cfg.Discovery.Depth,
			"exclude": cfg.Discovery.Exclude,
			"workers": cfg.Discovery.Workers,
		},
		"complete": map[string]any{
			"case_sensitive": cfg.Complete.CaseSensitive,
			"match":          cfg.Complete.Match,
			"limit":          cfg.Complete.Limit,
		},
		"git": map[string]any{
			"command": cfg.Git.Command,
			"timeout": cfg.Git.Timeout.String(),
		},
		"where": map[string]any{"mode": cfg.Where.Mode},
		"shell": map[string]any{"function": cfg.Shell.Function},
		"log":   map[string]any{"level": cfg.Log.Level},
	}

	data, err := toml.Marshal(doc)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode config")
	}
	return data, nil
}

// WriteFile writes cfg to path, creating parent directories. An existing
// file is only replaced when force is set.
func WriteFile(path string, cfg *Config, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return hoperrors.NewConfigError("", "config file already exists at "+path+" (use --force to overwrite)")
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}
