package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// =============================================================================
// Styles
// =============================================================================

var (
	listSelectedStyle = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Model
// =============================================================================

// menuItem is one action the menu offers.
type menuItem struct {
	title   string
	desc    string
	command string
}

// menuModel drives the action menu.
type menuModel struct {
	items    []menuItem
	cursor   int
	selected int
}

// newMenuModel creates the menu with the main actions.
func newMenuModel() menuModel {
	return menuModel{
		selected: -1,
		items: []menuItem{
			{"Merge images", "composite images onto one canvas", "filemerge merge images <file>... -o merged_images.png"},
			{"Merge text files", "concatenate text files with separators", "filemerge merge text <file>... -o merged_files.txt"},
			{"Merge a directory", "scan a folder and merge what it holds", "filemerge merge dir <directory>"},
			{"File info", "show size, category, and dimensions", "filemerge info <file>..."},
			{"Collect files", "gather files into a timestamped folder", "filemerge collect <file>... -d <dest>"},
			{"Back up files", "create timestamped sibling copies", "filemerge backup <file>..."},
			{"Settings", "show the persisted merge defaults", "filemerge settings list"},
			{"History", "review past merges", "filemerge history"},
			{"HTTP server", "serve the merge engine over HTTP", "filemerge serve --addr :8080"},
		},
	}
}

// Init implements tea.Model.
func (m menuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m menuModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + StyleTitle.Render("filemerge") + " " + listDimStyle.Render("· what do you want to do?") + "\n\n")

	for i, item := range m.items {
		title := fmt.Sprintf("%-18s", item.title)
		if i == m.cursor {
			b.WriteString("  " + listSelectedStyle.Render("› "+title) + listDimStyle.Render(item.desc) + "\n")
		} else {
			b.WriteString("    " + listNormalStyle.Render(title) + listDimStyle.Render(item.desc) + "\n")
		}
	}

	b.WriteString("\n  " + listDimStyle.Render("↑/↓ move · enter select · q quit") + "\n")
	return b.String()
}

// =============================================================================
// Command
// =============================================================================

// menuCommand creates the menu command.
func (c *CLI) menuCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive action menu",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu(cmd.Context())
		},
	}
}

// runMenu shows the action menu and prints the command line for the
// chosen action.
func (c *CLI) runMenu(ctx context.Context) error {
	p := tea.NewProgram(newMenuModel(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return ctx.Err()
		}
		return fmt.Errorf("run menu: %w", err)
	}

	m, ok := final.(menuModel)
	if !ok || m.selected < 0 {
		return nil
	}

	item := m.items[m.selected]
	printNextStep(item.title, item.command)
	return nil
}
