// Package complete turns discovered repositories into completion suggestions.
package complete

import (
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"thoreinstein.com/hop/pkg/config"
	"thoreinstein.com/hop/pkg/discovery"
)

// Match scopes.
const (
	MatchPath = "path" // root-relative path
	MatchName = "name" // final path segment
)

// Suggestion is one completion entry.
//
// Text is ready to be inserted into a command line verbatim. Hosts that do
// their own escaping (cobra, fish) want Path instead.
type Suggestion struct {
	Text    string // Root-relative path, shell-quoted when needed
	Path    string // Root-relative path, slash separated, unquoted
	Label   string // Base name shown in menus
	Tooltip string // Absolute path
}

// Provider produces suggestions from a fresh fast scan on every call.
//
// The default match scope is the root-relative path, so "b" offers b/x
// because its parent directory matches. MatchName restricts matching to the
// repository's own directory name; "b" then misses b/x, but a token can no
// longer match on a grouping directory shared by many repositories.
type Provider struct {
	Scanner       *discovery.Scanner
	CaseSensitive bool
	Match         string
	Limit         int
	logger        *slog.Logger
}

// NewProvider creates a Provider using the completion settings in cfg.
func NewProvider(scanner *discovery.Scanner, cfg config.CompleteConfig, logger *slog.Logger) *Provider {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	match := cfg.Match
	if match == "" {
		match = MatchPath
	}
	return &Provider{
		Scanner:       scanner,
		CaseSensitive: cfg.CaseSensitive,
		Match:         match,
		Limit:         cfg.Limit,
		logger:        logger,
	}
}

// Suggest lists repositories under root within depth whose match field
// contains token, most recently modified first. A root that cannot be
// scanned yields no suggestions.
func (p *Provider) Suggest(root string, depth int, token string) []Suggestion {
	absRoot, err := discovery.NormalizeRoot(root)
	if err != nil {
		p.logger.Debug("completion scan skipped", "root", root, "error", err)
		return []Suggestion{}
	}

	result, err := p.Scanner.Scan(discovery.ScanRequest{Root: absRoot, Depth: depth}, discovery.ModeFastLeafOnly)
	if err != nil {
		p.logger.Debug("completion scan failed", "root", absRoot, "error", err)
		return []Suggestion{}
	}

	type match struct {
		candidate discovery.Candidate
		rel       string
	}

	needle := p.fold(token)
	var matches []match
	for _, c := range result.Candidates {
		rel, err := filepath.Rel(absRoot, c.Path)
		if err != nil {
			continue
		}
		field := rel
		if p.Match == MatchName {
			field = c.Name
		}
		if strings.Contains(p.fold(field), needle) {
			matches = append(matches, match{candidate: c, rel: rel})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i].candidate, matches[j].candidate
		if !a.ModTime.Equal(b.ModTime) {
			return a.ModTime.After(b.ModTime)
		}
		return a.Path < b.Path
	})

	if p.Limit > 0 && len(matches) > p.Limit {
		matches = matches[:p.Limit]
	}

	suggestions := make([]Suggestion, 0, len(matches))
	for _, m := range matches {
		rel := filepath.ToSlash(m.rel)
		suggestions = append(suggestions, Suggestion{
			Text:    shellescape.Quote(rel),
			Path:    rel,
			Label:   m.candidate.Name,
			Tooltip: m.candidate.Path,
		})
	}

	p.logger.Debug("completion suggestions",
		"token", token,
		"scanned", result.Scanned,
		"returned", len(suggestions),
	)

	return suggestions
}

func (p *Provider) fold(s string) string {
	if p.CaseSensitive {
		return s
	}
	return strings.ToLower(s)
}
