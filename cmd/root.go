package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"thoreinstein.com/hop/pkg/bootstrap"
	"thoreinstein.com/hop/pkg/complete"
	"thoreinstein.com/hop/pkg/config"
	"thoreinstein.com/hop/pkg/discovery"
	hoperrors "thoreinstein.com/hop/pkg/errors"
	"thoreinstein.com/hop/pkg/logging"
	"thoreinstein.com/hop/pkg/ui"
)

var cfgFile string
var verbose int
var rootOverride string
var depthOverride int
var appConfig *config.Config
var configErr error

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hop",
	Short: "Hop - jump between git repositories",
	Long: `Hop discovers git repositories under a root directory, completes their
names as you type, and resolves a short token to the directory your shell
should change to.

Run 'hop init zsh' (or bash, fish) to get the shell function that does the
actual directory change.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Pre-parse global flags so configuration errors can be logged at the
	// requested verbosity before cobra runs.
	cfgFile, verbose = bootstrap.PreParseGlobalFlags(os.Args)
	initConfig()

	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, ui.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "Error:", hoperrors.FormatUserError(err))
		}
		os.Exit(int(MapExitCode(err)))
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "C", "", "config file (default is $HOME/.config/hop/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "verbose output (repeat for debug)")
	rootCmd.PersistentFlags().StringVar(&rootOverride, "root", "", "directory to search for repositories (overrides discovery.root)")
	rootCmd.PersistentFlags().IntVar(&depthOverride, "depth", 0, "levels to search below the root's children (overrides discovery.depth)")
}

// initConfig reads in config file and ENV variables if set.
// A failure is kept so commands that can run without configuration,
// such as 'hop config init', still work.
func initConfig() {
	appConfig, configErr = bootstrap.InitConfig(cfgFile, verbose)
}

// loadConfig returns the effective configuration with command-line
// overrides applied.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	if appConfig == nil {
		return nil, errors.New("configuration not loaded")
	}

	cfg := *appConfig
	if flag := cmd.Flags().Lookup("root"); flag != nil && flag.Changed {
		root, err := config.ExpandPath(rootOverride)
		if err != nil {
			return nil, errors.Wrap(err, "failed to expand --root")
		}
		cfg.Discovery.Root = root
	}
	if flag := cmd.Flags().Lookup("depth"); flag != nil && flag.Changed {
		cfg.Discovery.Depth = depthOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// newLogger builds the stderr logger for cfg and the -v count.
func newLogger(cfg *config.Config) *slog.Logger {
	base := slog.LevelWarn
	if cfg != nil {
		if level, err := logging.LevelFromString(cfg.Log.Level); err == nil {
			base = level
		}
	}
	return logging.New(os.Stderr, logging.LevelFromVerbosity(base, verbose))
}

// newProvider wires a completion provider over a fresh engine.
func newProvider(cfg *config.Config, logger *slog.Logger) (*discovery.Engine, *complete.Provider) {
	engine := discovery.NewEngine(cfg, logger)
	return engine, complete.NewProvider(engine.Scanner, cfg.Complete, logger)
}

// resetConfig clears the cached configuration.
// This is primarily used in tests to ensure each test starts with a fresh config.
func resetConfig() {
	appConfig = nil
	configErr = nil
	bootstrap.Reset()
	viper.Reset()
}
