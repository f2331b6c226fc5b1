package domain

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/pulp/docstub/internal/adapter"
	m "github.com/pulp/docstub/internal/model"
)

// DiscoverArgs describes one discovery pass over a test-suite tree.
type DiscoverArgs struct {
	Root      m.Path
	SourceExt string
	Exclude   []string // regexes matched against slash-separated module paths
}

// Scanner discovers test modules beneath a root directory and derives their
// module names. Results are sorted by name; callers must not rely on the
// underlying traversal order.
type Scanner interface {
	Discover(ctx context.Context, args DiscoverArgs) ([]m.Module, error)
}

type scanner struct {
	adapter.SourceFSAdapter
}

// NewScanner creates a Scanner backed by the provided filesystem adapter.
func NewScanner(fsAdapter adapter.SourceFSAdapter) Scanner {
	return &scanner{SourceFSAdapter: fsAdapter}
}

// Discover walks the root, keeps files carrying the source extension, and
// maps each to a Module. A missing or unreadable root is fatal; an empty
// tree yields zero modules.
func (s *scanner) Discover(ctx context.Context, args DiscoverArgs) ([]m.Module, error) {
	root := m.Path(filepath.Clean(string(args.Root)))

	info, err := s.FileInfo(root)
	if err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}

	excludes, err := compileExcludes(args.Exclude)
	if err != nil {
		return nil, err
	}

	// Module names carry the root directory's own name as their first
	// segment, so relative paths are taken from the root's parent.
	base := m.Path(filepath.Dir(string(root)))

	var modules []m.Module

	err = s.Walk(root, true, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", path, err)
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if info.IsDir() || !strings.HasSuffix(path, args.SourceExt) {
			return nil
		}

		rel, err := s.RelPath(base, m.Path(path))
		if err != nil {
			return err
		}

		if matchesAny(excludes, filepath.ToSlash(string(rel))) {
			slog.Debug("excluded module path", "path", rel)
			return nil
		}

		name, err := ModuleName(rel, args.SourceExt)
		if err != nil {
			return err
		}

		hash, err := s.HashFile(m.Path(path))
		if err != nil {
			return fmt.Errorf("hash %s: %w", path, err)
		}

		modules = append(modules, m.Module{
			Name:   name,
			Source: rel,
			Hash:   hash,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Name < modules[j].Name
	})

	slog.Debug("discovered modules", "root", root, "count", len(modules))

	return modules, nil
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", pattern, err)
		}

		compiled = append(compiled, re)
	}

	return compiled, nil
}

func matchesAny(excludes []*regexp.Regexp, rel string) bool {
	for _, re := range excludes {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}
