// Package tui holds the scrollable results pager used by commands that
// print ticket listings.
package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).Padding(0, 1)
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "241", Dark: "246"})
)

type Model struct {
	title    string
	body     string
	viewport viewport.Model
	ready    bool
	status   string
}

func NewModel(title, body string) *Model {
	return &Model{title: title, body: body}
}

// Run displays the body in a full-screen pager until the user quits.
func Run(title, body string) error {
	if _, err := tea.NewProgram(NewModel(title, body), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running results viewer: %w", err)
	}

	return nil
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "c":
			if err := clipboard.WriteAll(m.body); err != nil {
				slog.Error("copying results to clipboard", "error", err)
				m.status = "couldn't copy results to clipboard"
				break
			}
			slog.Debug("copied results to clipboard")
			m.status = "copied to clipboard"
		}

	case tea.WindowSizeMsg:
		headerHeight := lipgloss.Height(m.headerView())
		footerHeight := lipgloss.Height(m.footerView())

		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-headerHeight-footerHeight)
			m.viewport.SetContent(m.body)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - headerHeight - footerHeight
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}

	return strings.Join([]string{m.headerView(), m.viewport.View(), m.footerView()}, "\n")
}

func (m *Model) headerView() string {
	return titleStyle.Render(m.title)
}

func (m *Model) footerView() string {
	help := "↑/↓ scroll • c copy • q quit"
	if m.status != "" {
		help = m.status + " • " + help
	}

	return helpStyle.Render(help)
}
