package controller

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/pulp/docstub/internal/model"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	driftStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	fileStyle    = lipgloss.NewStyle().Faint(true)
)

// SimpleUI implements UI using the cobra command's writer. When stdout is a
// terminal and the module listing does not fit on screen, DisplayModules
// hands off to the interactive pager.
type SimpleUI struct {
	cmd *cobra.Command
	tty bool
}

// NewUI creates the UI used by the CLI commands.
func NewUI(cmd *cobra.Command, tty bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, tty: tty}
}

// DisplayModules shows the discovered modules and their source paths.
func (s *SimpleUI) DisplayModules(ctx context.Context, modules []m.Module) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tableStr := renderModuleTable(modules)

	if s.tty && needsPager(tableStr) {
		return runModulePager(s.cmd.OutOrStdout(), tableStr)
	}

	s.printf("\n%s", tableStr)

	return nil
}

func renderModuleTable(modules []m.Module) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Module", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})

	for _, module := range modules {
		table.Append([]string{string(module.Name), string(module.Source)})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Modules %d", len(modules)), ""})

	table.Render()

	return tableBuffer.String()
}

// DisplayGenerationStarted announces how many stubs will be written.
func (s *SimpleUI) DisplayGenerationStarted(ctx context.Context, total int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Generating %d stub(s)\n", total)
}

// DisplayStubWritten reports one stub written to the output directory.
func (s *SimpleUI) DisplayStubWritten(ctx context.Context, stub m.Stub) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("  %s\n", fileStyle.Render(stub.FileName))
}

// DisplayGenerationSummary reports the completed generation run.
func (s *SimpleUI) DisplayGenerationSummary(ctx context.Context, written int, output m.Path) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s\n", successStyle.Render(fmt.Sprintf("Wrote %d stub(s) to %s", written, output)))
}

// DisplayDrift shows one out-of-date stub, including its diff if any.
func (s *SimpleUI) DisplayDrift(ctx context.Context, drift m.Drift) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("%s %s\n", driftStyle.Render(string(drift.Kind)+":"), drift.File)

	if drift.Diff != "" {
		s.printf("%s\n", drift.Diff)
	}
}

// DisplayCheckSummary reports the outcome of a check run.
func (s *SimpleUI) DisplayCheckSummary(ctx context.Context, checked int, drifted int) {
	if err := ctx.Err(); err != nil {
		return
	}

	if drifted == 0 {
		s.printf("%s\n", successStyle.Render(fmt.Sprintf("%d stub(s) up to date", checked)))
		return
	}

	s.printf("%s\n", driftStyle.Render(fmt.Sprintf("%d of %d stub file(s) out of date", drifted, checked)))
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
