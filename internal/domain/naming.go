// Package domain contains the core stub generation workflow and logic.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	m "github.com/pulp/docstub/internal/model"
)

const (
	// DefaultSourceExt is the source-file extension of the test modules.
	DefaultSourceExt = ".py"

	// PackageInitBase is the basename that marks a directory as a package.
	// A path ending in it addresses the directory's own module, not a
	// child module named after the initializer file.
	PackageInitBase = "__init__"

	// NameDelimiter joins path segments into a flat module name.
	NameDelimiter = "."
)

// markupSpecials are characters with meaning in reST titles and directives.
// Module names containing them are passed through verbatim; the workflow
// logs a warning so drifting names do not silently corrupt the docs build.
const markupSpecials = "`*:|\\"

// ModuleName derives the dotted module name for a source file path relative
// to the scan invocation directory. The derivation is deterministic and
// injective for well-formed inputs: strip the source extension, collapse a
// trailing package-initializer segment, then replace path separators with
// the name delimiter.
func ModuleName(rel m.Path, sourceExt string) (m.Name, error) {
	slashed := filepath.ToSlash(filepath.Clean(string(rel)))
	if slashed == "" || slashed == "." || strings.HasPrefix(slashed, "/") {
		return "", fmt.Errorf("module path %q is not a relative file path", rel)
	}

	if !strings.HasSuffix(slashed, sourceExt) || slashed == sourceExt {
		return "", fmt.Errorf("module path %q does not carry extension %q", rel, sourceExt)
	}

	trimmed := strings.TrimSuffix(slashed, sourceExt)

	segments := strings.Split(trimmed, "/")
	if segments[len(segments)-1] == PackageInitBase {
		segments = segments[:len(segments)-1]
	}

	if len(segments) == 0 {
		return "", fmt.Errorf("package initializer %q has no enclosing package directory", rel)
	}

	for _, segment := range segments {
		if segment == "" || segment == ".." {
			return "", fmt.Errorf("module path %q contains an empty or parent segment", rel)
		}
	}

	return m.Name(strings.Join(segments, NameDelimiter)), nil
}

// SourcePath reconstructs the relative source path a module name was derived
// from by reversing the delimiter substitution. The package-initializer
// collapse is not reversible; names that came from initializer files map to
// the sibling module path instead.
func SourcePath(name m.Name, sourceExt string) m.Path {
	slashed := strings.ReplaceAll(string(name), NameDelimiter, "/")

	return m.Path(filepath.FromSlash(slashed + sourceExt))
}

// HasMarkupSpecials reports whether a module name contains characters that
// require escaping in the target documentation markup.
func HasMarkupSpecials(name m.Name) bool {
	return strings.ContainsAny(string(name), markupSpecials)
}
