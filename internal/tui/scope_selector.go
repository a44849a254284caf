package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/devflow-sh/devflow/internal/config"
	"github.com/devflow-sh/devflow/internal/i18n"
)

// ScopeOption represents an installation scope option
type ScopeOption struct {
	Scope       config.Scope
	Label       string
	Description string
}

// ScopeSelectorModel is the bubbletea model for scope selection
type ScopeSelectorModel struct {
	options   []ScopeOption
	cursor    int
	selected  config.Scope
	quitting  bool
	confirmed bool
}

// Scope selector styles
var (
	scopeTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	scopeOptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	scopeSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(true).
				Padding(0, 1)

	scopeDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			MarginLeft(4)

	scopeBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	scopeHelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)

// NewScopeSelectorModel creates a new scope selector model
func NewScopeSelectorModel() ScopeSelectorModel {
	options := []ScopeOption{
		{
			Scope:       config.ScopeUser,
			Label:       i18n.T("scope.user.label", nil),
			Description: i18n.T("scope.user.desc", nil),
		},
		{
			Scope:       config.ScopeLocal,
			Label:       i18n.T("scope.local.label", nil),
			Description: i18n.T("scope.local.desc", nil),
		},
	}

	return ScopeSelectorModel{
		options:  options,
		cursor:   0, // Default to user scope
		selected: config.ScopeUser,
	}
}

func (m ScopeSelectorModel) Init() tea.Cmd {
	return nil
}

func (m ScopeSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "q":
			m.quitting = true
			return m, tea.Quit

		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.selected = m.options[m.cursor].Scope
			}

		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
				m.selected = m.options[m.cursor].Scope
			}

		case "enter":
			m.confirmed = true
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m ScopeSelectorModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(scopeTitleStyle.Render(i18n.T("scope.title", nil)))
	b.WriteString("\n")

	for i, opt := range m.options {
		if i == m.cursor {
			b.WriteString(scopeSelectedStyle.Render("> " + opt.Label))
		} else {
			b.WriteString(scopeOptionStyle.Render("  " + opt.Label))
		}
		b.WriteString("\n")
		b.WriteString(scopeDescStyle.Render(opt.Description))
		b.WriteString("\n")
	}

	b.WriteString(scopeHelpStyle.Render("↑/↓: move | Enter: select | Esc: cancel"))

	return scopeBoxStyle.Render(b.String())
}

// RunScopeSelector launches the scope selection prompt. The second
// return value is false when the user cancelled.
func RunScopeSelector() (config.Scope, bool, error) {
	model := NewScopeSelectorModel()
	p := tea.NewProgram(model)

	finalModel, err := p.Run()
	if err != nil {
		return config.ScopeUser, false, err
	}

	m := finalModel.(ScopeSelectorModel)
	if !m.confirmed {
		return config.ScopeUser, false, nil
	}
	return m.selected, true, nil
}
