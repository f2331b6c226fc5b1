// Package controller provides output adapters for displaying stub generation
// results.
package controller

import (
	"context"
	"os"

	"golang.org/x/term"

	m "github.com/pulp/docstub/internal/model"
)

// UI defines the interface for displaying discovery and generation results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayModules shows the discovered modules and their source paths.
	DisplayModules(ctx context.Context, modules []m.Module) error
	// DisplayGenerationStarted announces how many stubs will be written.
	DisplayGenerationStarted(ctx context.Context, total int)
	// DisplayStubWritten reports one stub written to the output directory.
	DisplayStubWritten(ctx context.Context, stub m.Stub)
	// DisplayGenerationSummary reports the completed generation run.
	DisplayGenerationSummary(ctx context.Context, written int, output m.Path)
	// DisplayDrift shows one out-of-date stub, including its diff if any.
	DisplayDrift(ctx context.Context, drift m.Drift)
	// DisplayCheckSummary reports the outcome of a check run.
	DisplayCheckSummary(ctx context.Context, checked int, drifted int)
}

// IsTTY reports whether the file is attached to a terminal, which gates the
// interactive module listing.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
