package domain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulp/docstub/internal/adapter"
	m "github.com/pulp/docstub/internal/model"
)

// recordingUI captures UI calls so workflow behavior can be asserted without
// a terminal.
type recordingUI struct {
	modules   []m.Module
	written   []string
	drifts    []m.Drift
	summaries []string
}

func (r *recordingUI) DisplayModules(_ context.Context, modules []m.Module) error {
	r.modules = modules
	return nil
}

func (r *recordingUI) DisplayGenerationStarted(_ context.Context, _ int) {}

func (r *recordingUI) DisplayStubWritten(_ context.Context, stub m.Stub) {
	r.written = append(r.written, stub.FileName)
}

func (r *recordingUI) DisplayGenerationSummary(_ context.Context, written int, output m.Path) {
	r.summaries = append(r.summaries, "generated")
}

func (r *recordingUI) DisplayDrift(_ context.Context, drift m.Drift) {
	r.drifts = append(r.drifts, drift)
}

func (r *recordingUI) DisplayCheckSummary(_ context.Context, _ int, _ int) {
	r.summaries = append(r.summaries, "checked")
}

type workflowFixture struct {
	workflow Workflow
	ui       *recordingUI
	root     string
	output   string
}

func newWorkflowFixture(t *testing.T) *workflowFixture {
	t.Helper()

	base := t.TempDir()
	ui := &recordingUI{}
	fsAdapter := adapter.NewLocalSourceFSAdapter()

	return &workflowFixture{
		workflow: NewWorkflow(NewScanner(fsAdapter), adapter.NewLocalStubStore(), ui),
		ui:       ui,
		root:     filepath.Join(base, "tests"),
		output:   filepath.Join(base, "docs", "api"),
	}
}

func (f *workflowFixture) generateArgs() GenerateArgs {
	return GenerateArgs{
		DiscoverArgs: DiscoverArgs{
			Root:      m.Path(f.root),
			SourceExt: DefaultSourceExt,
		},
		Output: m.Path(f.output),
		DocExt: DefaultDocExt,
	}
}

func (f *workflowFixture) checkArgs() CheckArgs {
	return CheckArgs{GenerateArgs: f.generateArgs(), Workers: 2}
}

func TestWorkflow_Generate(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "__init__.py"))
	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))

	err := f.workflow.Generate(context.Background(), f.generateArgs())
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(f.output, "tests.test_foo.rst"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "tests.test_foo\n==============\n"))
	assert.Contains(t, string(content), ".. automodule:: tests.test_foo\n")

	_, err = os.Stat(filepath.Join(f.output, "tests.rst"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(f.output, adapter.ManifestFileName))
	require.NoError(t, err)

	assert.Equal(t, []string{"tests.rst", "tests.test_foo.rst"}, f.ui.written)
}

func TestWorkflow_Generate_OverwritesExistingStubs(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))

	target := filepath.Join(f.output, "tests.test_foo.rst")
	require.NoError(t, os.MkdirAll(f.output, 0o750))
	require.NoError(t, os.WriteFile(target, []byte("hand edited\n"), 0o644))

	require.NoError(t, f.workflow.Generate(context.Background(), f.generateArgs()))

	content, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "hand edited")
}

func TestWorkflow_Generate_EmptyTree(t *testing.T) {
	f := newWorkflowFixture(t)
	require.NoError(t, os.MkdirAll(f.root, 0o750))

	err := f.workflow.Generate(context.Background(), f.generateArgs())
	require.NoError(t, err)

	assert.Empty(t, f.ui.written)
}

func TestWorkflow_Generate_MissingRoot(t *testing.T) {
	f := newWorkflowFixture(t)

	err := f.workflow.Generate(context.Background(), f.generateArgs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "discover modules")
}

func TestWorkflow_Generate_UnwritableOutput(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))

	// Occupy the output path with a regular file so the directory cannot be
	// created; permission-based setups do not hold when tests run as root.
	require.NoError(t, os.MkdirAll(filepath.Dir(f.output), 0o750))
	require.NoError(t, os.WriteFile(f.output, []byte("in the way\n"), 0o644))

	err := f.workflow.Generate(context.Background(), f.generateArgs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write stubs")
}

func TestWorkflow_List(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))
	writeSourceFile(t, filepath.Join(f.root, "test_bar.py"))

	err := f.workflow.List(context.Background(), ListArgs{DiscoverArgs: f.generateArgs().DiscoverArgs})
	require.NoError(t, err)

	require.Len(t, f.ui.modules, 2)
	assert.Equal(t, m.Name("tests.test_bar"), f.ui.modules[0].Name)
	assert.Equal(t, m.Name("tests.test_foo"), f.ui.modules[1].Name)
}

func TestWorkflow_Check_CleanAfterGenerate(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "__init__.py"))
	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))

	require.NoError(t, f.workflow.Generate(context.Background(), f.generateArgs()))

	err := f.workflow.Check(context.Background(), f.checkArgs())
	require.NoError(t, err)
	assert.Empty(t, f.ui.drifts)
}

func TestWorkflow_Check_ModifiedStub(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))
	require.NoError(t, f.workflow.Generate(context.Background(), f.generateArgs()))

	target := filepath.Join(f.output, "tests.test_foo.rst")
	require.NoError(t, os.WriteFile(target, []byte("tampered\n"), 0o644))

	err := f.workflow.Check(context.Background(), f.checkArgs())
	require.ErrorIs(t, err, ErrStubsOutOfDate)

	require.Len(t, f.ui.drifts, 1)
	assert.Equal(t, m.DriftModified, f.ui.drifts[0].Kind)
	assert.Equal(t, "tests.test_foo.rst", f.ui.drifts[0].File)
	assert.Contains(t, f.ui.drifts[0].Diff, "-tampered")
	assert.Contains(t, f.ui.drifts[0].Diff, "+tests.test_foo")
}

func TestWorkflow_Check_MissingStub(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))
	require.NoError(t, f.workflow.Generate(context.Background(), f.generateArgs()))

	require.NoError(t, os.Remove(filepath.Join(f.output, "tests.test_foo.rst")))

	err := f.workflow.Check(context.Background(), f.checkArgs())
	require.ErrorIs(t, err, ErrStubsOutOfDate)

	require.Len(t, f.ui.drifts, 1)
	assert.Equal(t, m.DriftMissing, f.ui.drifts[0].Kind)
}

func TestWorkflow_Check_StaleStub(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))
	writeSourceFile(t, filepath.Join(f.root, "test_gone.py"))
	require.NoError(t, f.workflow.Generate(context.Background(), f.generateArgs()))

	// The module disappears from the tree; its stub remains on disk.
	require.NoError(t, os.Remove(filepath.Join(f.root, "test_gone.py")))

	err := f.workflow.Check(context.Background(), f.checkArgs())
	require.ErrorIs(t, err, ErrStubsOutOfDate)

	require.Len(t, f.ui.drifts, 1)
	assert.Equal(t, m.DriftStale, f.ui.drifts[0].Kind)
	assert.Equal(t, "tests.test_gone.rst", f.ui.drifts[0].File)
	assert.Contains(t, f.ui.drifts[0].Diff, filepath.Join("tests", "test_gone.py"))
}

func TestWorkflow_Check_MissingOutputDirectory(t *testing.T) {
	f := newWorkflowFixture(t)

	writeSourceFile(t, filepath.Join(f.root, "test_foo.py"))

	err := f.workflow.Check(context.Background(), f.checkArgs())
	require.ErrorIs(t, err, ErrStubsOutOfDate)

	require.Len(t, f.ui.drifts, 1)
	assert.Equal(t, m.DriftMissing, f.ui.drifts[0].Kind)
}
