package domain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pmezard/go-difflib/difflib"
	"golang.org/x/sync/errgroup"

	"github.com/pulp/docstub/internal/adapter"
	"github.com/pulp/docstub/internal/controller"
	m "github.com/pulp/docstub/internal/model"
)

// ErrStubsOutOfDate reports that the output directory does not match what a
// generation run would produce. Check wraps it so callers can exit non-zero
// without treating drift as an infrastructure failure.
var ErrStubsOutOfDate = errors.New("generated stubs are out of date")

// GenerateArgs contains the arguments for a stub generation run.
type GenerateArgs struct {
	DiscoverArgs
	Output m.Path
	DocExt string
}

// ListArgs contains the arguments for listing discovered modules.
type ListArgs struct {
	DiscoverArgs
}

// CheckArgs contains the arguments for verifying stubs against the tree.
type CheckArgs struct {
	GenerateArgs
	Workers int
}

// Workflow ties discovery, rendering, and storage together behind the CLI
// commands.
type Workflow interface {
	Generate(ctx context.Context, args GenerateArgs) error
	List(ctx context.Context, args ListArgs) error
	Check(ctx context.Context, args CheckArgs) error
}

type workflow struct {
	Scanner
	adapter.StubStore
	controller.UI
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(scanner Scanner, store adapter.StubStore, ui controller.UI) Workflow {
	return &workflow{
		Scanner:   scanner,
		StubStore: store,
		UI:        ui,
	}
}

// Generate renders one stub per discovered module into the output directory,
// overwriting unconditionally, then records the run in the manifest. The
// first failed write aborts the whole run.
func (w *workflow) Generate(ctx context.Context, args GenerateArgs) error {
	modules, err := w.Discover(ctx, args.DiscoverArgs)
	if err != nil {
		slog.Error("module discovery failed", "root", args.Root, "error", err)
		return fmt.Errorf("discover modules: %w", err)
	}

	w.DisplayGenerationStarted(ctx, len(modules))

	manifest := m.Manifest{Version: m.ManifestVersion}

	for _, module := range modules {
		if err := ctx.Err(); err != nil {
			return err
		}

		if HasMarkupSpecials(module.Name) {
			slog.Warn("module name contains markup-special characters, written verbatim", "name", module.Name)
		}

		stub := RenderStub(module, args.DocExt)

		if err := w.WriteStub(args.Output, stub); err != nil {
			slog.Error("stub write failed", "file", stub.FileName, "error", err)
			return fmt.Errorf("write stubs: %w", err)
		}

		w.DisplayStubWritten(ctx, stub)

		manifest.Modules = append(manifest.Modules, m.ManifestEntry{
			Name:   module.Name,
			Source: module.Source,
			Hash:   module.Hash,
		})
	}

	if err := w.SaveManifest(args.Output, manifest); err != nil {
		slog.Error("manifest write failed", "output", args.Output, "error", err)
		return fmt.Errorf("save manifest: %w", err)
	}

	w.DisplayGenerationSummary(ctx, len(modules), args.Output)

	return nil
}

// List displays the discovered modules without touching the output directory.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	modules, err := w.Discover(ctx, args.DiscoverArgs)
	if err != nil {
		slog.Error("module discovery failed", "root", args.Root, "error", err)
		return fmt.Errorf("discover modules: %w", err)
	}

	return w.DisplayModules(ctx, modules)
}

// Check re-renders every stub in memory and compares it against the output
// directory. Stubs on disk that no longer correspond to a module are
// reported as stale. Any drift makes Check return ErrStubsOutOfDate.
func (w *workflow) Check(ctx context.Context, args CheckArgs) error {
	modules, err := w.Discover(ctx, args.DiscoverArgs)
	if err != nil {
		slog.Error("module discovery failed", "root", args.Root, "error", err)
		return fmt.Errorf("discover modules: %w", err)
	}

	expected := make(map[string]m.Stub, len(modules))
	for _, module := range modules {
		stub := RenderStub(module, args.DocExt)
		expected[stub.FileName] = stub
	}

	drifts, err := w.collectDrifts(ctx, args, expected)
	if err != nil {
		return fmt.Errorf("check stubs: %w", err)
	}

	staleDrifts, err := w.collectStale(args, expected)
	if err != nil {
		return fmt.Errorf("check stubs: %w", err)
	}

	drifts = append(drifts, staleDrifts...)

	sort.Slice(drifts, func(i, j int) bool {
		return drifts[i].File < drifts[j].File
	})

	for _, drift := range drifts {
		w.DisplayDrift(ctx, drift)
	}

	w.DisplayCheckSummary(ctx, len(modules), len(drifts))

	if len(drifts) > 0 {
		return fmt.Errorf("%w: %d file(s)", ErrStubsOutOfDate, len(drifts))
	}

	return nil
}

// collectDrifts diffs expected stubs against the on-disk ones. Reads run
// concurrently; generation itself stays sequential.
func (w *workflow) collectDrifts(ctx context.Context, args CheckArgs, expected map[string]m.Stub) ([]m.Drift, error) {
	var (
		drifts      []m.Drift
		driftsMutex sync.Mutex
	)

	group, groupCtx := errgroup.WithContext(ctx)
	if args.Workers > 0 {
		group.SetLimit(args.Workers)
	}

	for fileName, stub := range expected {
		group.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}

			drift, ok, err := w.diffStub(args.Output, fileName, stub)
			if err != nil {
				return err
			}

			if ok {
				driftsMutex.Lock()
				drifts = append(drifts, drift)
				driftsMutex.Unlock()
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return drifts, nil
}

func (w *workflow) diffStub(output m.Path, fileName string, stub m.Stub) (m.Drift, bool, error) {
	onDisk, err := w.ReadStub(output, fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return m.Drift{File: fileName, Kind: m.DriftMissing}, true, nil
		}

		return m.Drift{}, false, fmt.Errorf("read stub %s: %w", fileName, err)
	}

	if onDisk == stub.Content {
		return m.Drift{}, false, nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(onDisk),
		B:        difflib.SplitLines(stub.Content),
		FromFile: filepath.Join(string(output), fileName),
		ToFile:   "regenerated/" + fileName,
		Context:  3,
	})
	if err != nil {
		return m.Drift{}, false, fmt.Errorf("diff stub %s: %w", fileName, err)
	}

	return m.Drift{File: fileName, Kind: m.DriftModified, Diff: diff}, true, nil
}

// collectStale flags stub files with no corresponding module. The manifest,
// when present, names the source the stub was originally generated from.
func (w *workflow) collectStale(args CheckArgs, expected map[string]m.Stub) ([]m.Drift, error) {
	onDisk, err := w.ListStubFiles(args.Output, args.DocExt)
	if err != nil {
		return nil, err
	}

	manifest, err := w.LoadManifest(args.Output)
	if err != nil {
		return nil, err
	}

	origins := make(map[string]m.Path, len(manifest.Modules))
	for _, entry := range manifest.Modules {
		origins[string(entry.Name)+args.DocExt] = entry.Source
	}

	var drifts []m.Drift

	for _, fileName := range onDisk {
		if _, ok := expected[fileName]; ok {
			continue
		}

		drift := m.Drift{File: fileName, Kind: m.DriftStale}
		if source, ok := origins[fileName]; ok {
			drift.Diff = fmt.Sprintf("previously generated from %s\n", source)
		}

		drifts = append(drifts, drift)
	}

	return drifts, nil
}
