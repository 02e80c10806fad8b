package discovery

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	hoperrors "thoreinstein.com/hop/pkg/errors"
)

// ErrAuthoritativeScan is returned when a bulk scan is asked to spawn git
// for every directory.
var ErrAuthoritativeScan = hoperrors.New("authoritative classification is not available for bulk scans")

// Scanner scans directories for git repositories
type Scanner struct {
	Classifier *Classifier
	Exclusions map[string]bool
	Workers    int
	logger     *slog.Logger
}

// NewScanner creates a new scanner. Names in exclude are neither classified
// nor entered. Workers above 1 scan top-level subtrees concurrently.
func NewScanner(classifier *Classifier, exclude []string, workers int, logger *slog.Logger) *Scanner {
	exclusions := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		exclusions[name] = true
	}
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Scanner{
		Classifier: classifier,
		Exclusions: exclusions,
		Workers:    workers,
		logger:     logger,
	}
}

// Scan performs the scan and returns the result.
//
// Every immediate subdirectory of the root is classified. A repository is
// recorded and never entered; any other directory is entered while depth
// budget remains. Unreadable directories contribute nothing. The only error
// is a root that cannot be used.
func (s *Scanner) Scan(req ScanRequest, mode Mode) (*Result, error) {
	if mode == ModeAuthoritative {
		return nil, ErrAuthoritativeScan
	}
	if req.Depth < 0 {
		return nil, hoperrors.Newf("invalid scan depth %d: must not be negative", req.Depth)
	}

	root, err := NormalizeRoot(req.Root)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	var scanned atomic.Int64

	children := s.childDirs(root)
	found := make([][]Candidate, len(children))

	if s.Workers > 1 && len(children) > 1 {
		g := new(errgroup.Group)
		g.SetLimit(s.Workers)
		for i, child := range children {
			g.Go(func() error {
				found[i] = s.visit(child, req.Depth, mode, &scanned)
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, child := range children {
			found[i] = s.visit(child, req.Depth, mode, &scanned)
		}
	}

	var candidates []Candidate
	for _, batch := range found {
		candidates = append(candidates, batch...)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Path < candidates[j].Path
	})

	result := &Result{
		Candidates: candidates,
		Scanned:    int(scanned.Load()),
		Duration:   time.Since(start),
	}

	s.logger.Debug("scan complete",
		"root", root,
		"depth", req.Depth,
		"mode", mode.String(),
		"scanned", result.Scanned,
		"found", len(result.Candidates),
		"duration", result.Duration,
	)

	return result, nil
}

// visit classifies dir and, when it is not a repository, descends into its
// subdirectories with one less level of budget.
func (s *Scanner) visit(dir string, depth int, mode Mode, scanned *atomic.Int64) []Candidate {
	scanned.Add(1)

	if s.Classifier.IsRepository(dir, mode) {
		candidate := Candidate{
			Name: filepath.Base(dir),
			Path: dir,
		}
		if info, err := os.Stat(dir); err == nil {
			candidate.ModTime = info.ModTime()
		}
		return []Candidate{candidate}
	}

	if depth == 0 {
		return nil
	}

	var out []Candidate
	for _, child := range s.childDirs(dir) {
		out = append(out, s.visit(child, depth-1, mode, scanned)...)
	}
	return out
}

// childDirs lists the subdirectories of dir, following symlinks to
// directories. Read errors yield whatever entries were returned.
func (s *Scanner) childDirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		s.logger.Debug("skipping unreadable directory", "path", dir, "error", err)
	}

	var dirs []string
	for _, entry := range entries {
		if s.Exclusions[entry.Name()] {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		switch {
		case entry.IsDir():
			dirs = append(dirs, path)
		case entry.Type()&os.ModeSymlink != 0:
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				dirs = append(dirs, path)
			}
		}
	}
	return dirs
}

// NormalizeRoot makes root absolute and clean and checks that it is an
// existing directory.
func NormalizeRoot(root string) (string, error) {
	if root == "" {
		return "", hoperrors.NewRootError(root, "no root directory configured")
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", hoperrors.NewRootErrorWithCause(root, "cannot make path absolute", err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", hoperrors.NewRootErrorWithCause(abs, "does not exist or is not accessible", err)
	}
	if !info.IsDir() {
		return "", hoperrors.NewRootError(abs, "not a directory")
	}

	return abs, nil
}
