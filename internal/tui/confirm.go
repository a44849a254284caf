package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devflow-sh/devflow/internal/i18n"
)

// ConfirmOption represents a yes/no option
type ConfirmOption struct {
	Value bool
	Label string
}

// ConfirmModel is the bubbletea model for a yes/no prompt with an
// optional code preview (used before touching a user's shell profile)
type ConfirmModel struct {
	title     string
	preview   string
	options   []ConfirmOption
	cursor    int
	selected  bool
	quitting  bool
	confirmed bool
}

var confirmPreviewStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("42")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

// NewConfirmModel creates a new confirmation model
func NewConfirmModel(title, preview string) ConfirmModel {
	options := []ConfirmOption{
		{Value: true, Label: i18n.T("confirm.yes", nil)},
		{Value: false, Label: i18n.T("confirm.no", nil)},
	}

	return ConfirmModel{
		title:    title,
		preview:  preview,
		options:  options,
		cursor:   0, // Default to yes
		selected: true,
	}
}

func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k", "down", "j", "tab":
			m.cursor = (m.cursor + 1) % len(m.options)
			m.selected = m.options[m.cursor].Value

		case "y", "Y":
			m.selected = true
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "n", "N":
			m.selected = false
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit

		case "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ConfirmModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(scopeTitleStyle.Render(m.title))
	b.WriteString("\n")

	if m.preview != "" {
		b.WriteString(confirmPreviewStyle.Render(m.preview))
		b.WriteString("\n\n")
	}

	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(scopeSelectedStyle.Render("> " + opt.Label))
		} else {
			b.WriteString(scopeOptionStyle.Render("  " + opt.Label))
		}
		b.WriteString("\n")
	}

	b.WriteString(scopeHelpStyle.Render("y/n: choose | Enter: confirm | Esc: cancel"))

	return scopeBoxStyle.Render(b.String())
}

// RunConfirm shows a yes/no prompt with an optional preview block.
// Returns false on cancel.
func RunConfirm(title, preview string) (bool, error) {
	model := NewConfirmModel(title, preview)
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m := finalModel.(ConfirmModel)
	if !m.confirmed {
		return false, nil
	}
	return m.selected, nil
}
