package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"

	"thoreinstein.com/hop/pkg/config"
	"thoreinstein.com/hop/pkg/discovery"
	hoperrors "thoreinstein.com/hop/pkg/errors"
)

// LocalConfigName is the repository-local configuration file.
const LocalConfigName = ".hop.toml"

var (
	lastLoadedConfig  string
	lastLoadedVerbose int
	loadedConfig      *config.Config
)

// PreParseGlobalFlags manually scans os.Args for --config and --verbose flags
// before the main Cobra execution. This is a bootstrap step for configuration.
// It stops scanning as soon as it hits a non-flag argument or the "--" marker.
// Each -v (or --verbose) raises the returned verbosity by one; -vv counts twice.
func PreParseGlobalFlags(args []string) (string, int) {
	var cfgFile string
	var verbose int

	for i := 1; i < len(args); i++ {
		arg := args[i]

		// Stop parsing at the standard end-of-options marker
		if arg == "--" {
			break
		}

		// Stop parsing at the first non-flag argument (the subcommand)
		if !strings.HasPrefix(arg, "-") {
			break
		}

		switch {
		case arg == "--config" || arg == "-C":
			if i+1 < len(args) {
				cfgFile = args[i+1]
				i++
			}
		case strings.HasPrefix(arg, "--config="):
			cfgFile = strings.TrimPrefix(arg, "--config=")
		case strings.HasPrefix(arg, "-C="):
			cfgFile = strings.TrimPrefix(arg, "-C=")
		case strings.HasPrefix(arg, "-C") && len(arg) > 2:
			cfgFile = arg[2:]
		case arg == "--verbose":
			verbose++
		case strings.HasPrefix(arg, "-v") && strings.Trim(arg[1:], "v") == "":
			verbose += len(arg) - 1
		}
	}

	return cfgFile, verbose
}

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string, verbose int) (*config.Config, error) {
	// Skip if already loaded with same parameters (unless in test)
	if os.Getenv("GO_TEST") != "true" && loadedConfig != nil && cfgFile == lastLoadedConfig && verbose == lastLoadedVerbose {
		return loadedConfig, nil
	}

	// Reset Viper state to avoid carrying over stale settings from previous loads.
	viper.Reset()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get home directory")
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "hop"))
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("HOP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// An explicitly named file must exist and parse.
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, hoperrors.NewConfigErrorWithCause("", "failed to read config file "+viper.ConfigFileUsed(), err)
		}
	} else if verbose > 0 {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}

	// Load repository-local config (.hop.toml) if present
	LoadRepoLocalConfig(verbose)

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	// Update state
	lastLoadedConfig = cfgFile
	lastLoadedVerbose = verbose
	loadedConfig = cfg

	return cfg, nil
}

// LoadRepoLocalConfig merges .hop.toml from the enclosing repository root
// and from the current directory when that differs.
func LoadRepoLocalConfig(verbose int) {
	var localConfigPaths []string

	cwd, _ := os.Getwd()
	if repoRoot, ok := discovery.EnclosingRoot(cwd); ok {
		localConfigPaths = append(localConfigPaths, filepath.Join(repoRoot, LocalConfigName))
		if cwd != repoRoot {
			localConfigPaths = append(localConfigPaths, LocalConfigName)
		}
	} else {
		localConfigPaths = append(localConfigPaths, LocalConfigName)
	}

	for _, configPath := range localConfigPaths {
		if _, err := os.Stat(configPath); err != nil {
			continue
		}

		localViper := viper.New()
		localViper.SetConfigFile(configPath)
		localViper.SetConfigType("toml")

		if err := localViper.ReadInConfig(); err != nil {
			if verbose > 0 {
				fmt.Fprintf(os.Stderr, "Warning: could not read local config %s: %v\n", configPath, err)
			}
			continue
		}

		if verbose > 0 {
			fmt.Fprintf(os.Stderr, "Using repository config: %s\n", configPath)
		}

		if err := viper.MergeConfigMap(localViper.AllSettings()); err != nil {
			if verbose > 0 {
				fmt.Fprintf(os.Stderr, "Warning: could not merge local config: %v\n", err)
			}
		}
	}
}

// Reset clears the cached configuration state.
func Reset() {
	lastLoadedConfig = ""
	lastLoadedVerbose = 0
	loadedConfig = nil
}
