package controller

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

const pagerHelpLine = "↑/↓: scroll • q: quit"

// needsPager reports whether content is taller than the current terminal.
func needsPager(content string) bool {
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return false
	}

	return strings.Count(content, "\n") >= height-1
}

// runModulePager shows content in a scrollable alt-screen viewport.
func runModulePager(output io.Writer, content string) error {
	program := tea.NewProgram(newPagerModel(content), tea.WithOutput(output), tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// pagerModel is the Bubble Tea model for the scrollable module listing.
type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
}

func newPagerModel(content string) pagerModel {
	return pagerModel{content: content}
}

func (p pagerModel) Init() tea.Cmd {
	return nil
}

func (p pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Reserve one line for the help footer.
		if !p.ready {
			p.viewport = viewport.New(msg.Width, msg.Height-1)
			p.viewport.SetContent(p.content)
			p.ready = true
		} else {
			p.viewport.Width = msg.Width
			p.viewport.Height = msg.Height - 1
		}

		return p, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	}

	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)

	return p, cmd
}

func (p pagerModel) View() string {
	if !p.ready {
		return "loading..."
	}

	return p.viewport.View() + "\n" + pagerHelpLine
}
