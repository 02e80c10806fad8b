package discovery

import (
	"io"
	"log/slog"

	"thoreinstein.com/hop/pkg/config"
	"thoreinstein.com/hop/pkg/git"
)

// Engine wires configuration into a classifier and scanner.
// It keeps no results between calls: repositories can appear and disappear
// between two invocations, so every request scans afresh.
type Engine struct {
	Config     *config.Config
	Classifier *Classifier
	Scanner    *Scanner
	logger     *slog.Logger
}

// NewEngine creates a new discovery engine
func NewEngine(cfg *config.Config, logger *slog.Logger) *Engine {
	return NewEngineWithQuerier(cfg, logger, git.NewStatusQuerier(cfg.Git.Command, cfg.Git.Timeout, logger))
}

// NewEngineWithQuerier creates an engine with a custom authoritative
// status capability (for testing).
func NewEngineWithQuerier(cfg *config.Config, logger *slog.Logger, querier StatusQuerier) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	classifier := NewClassifier(querier)
	return &Engine{
		Config:     cfg,
		Classifier: classifier,
		Scanner:    NewScanner(classifier, cfg.Discovery.Exclude, cfg.Discovery.Workers, logger),
		logger:     logger,
	}
}

// Request returns the scan request described by the configuration.
func (e *Engine) Request() ScanRequest {
	return ScanRequest{
		Root:  e.Config.Discovery.Root,
		Depth: e.Config.Discovery.Depth,
	}
}

// Repositories scans the configured root with the fast leaf-only check.
func (e *Engine) Repositories() ([]Candidate, error) {
	result, err := e.Scanner.Scan(e.Request(), ModeFastLeafOnly)
	if err != nil {
		return nil, err
	}
	return result.Candidates, nil
}
