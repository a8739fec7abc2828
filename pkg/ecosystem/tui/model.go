// Package tui provides an interactive terminal browser over the issues a
// document verification produced.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nexusmap/diregram/pkg/explain"
	"github.com/nexusmap/diregram/pkg/verify"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
	selectStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cleanStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("40"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Detail key.Binding
	Reload key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Detail: key.NewBinding(key.WithKeys("enter", " ")),
	Reload: key.NewBinding(key.WithKeys("r")),
	Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Model is the Bubble Tea model for diregram-tui.
type Model struct {
	path       string
	issues     []verify.Issue
	selected   int
	showDetail bool
	detail     viewport.Model
	width      int
	height     int
	err        error
}

// NewModel creates an issue browser for the given document path.
func NewModel(path string) Model {
	m := Model{
		path:   path,
		detail: viewport.New(80, 16),
	}
	m.reload()
	return m
}

// reload re-verifies the document from disk.
func (m *Model) reload() {
	raw, err := os.ReadFile(m.path)
	if err != nil {
		m.err = err
		m.issues = nil
		return
	}
	m.err = nil
	m.issues = verify.Text(string(raw)).Issues
	if m.selected >= len(m.issues) {
		m.selected = 0
	}
	m.syncDetail()
}

// syncDetail fills the detail viewport with the documentation for the
// selected issue's code.
func (m *Model) syncDetail() {
	if m.selected >= len(m.issues) {
		m.detail.SetContent("")
		return
	}
	code := m.issues[m.selected].Code
	doc, err := explain.Render(code)
	if err != nil {
		doc = dimStyle.Render("no documentation for " + code)
	}
	m.detail.SetContent(doc)
	m.detail.GotoTop()
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			if m.showDetail {
				m.detail.HalfViewUp()
			} else if m.selected > 0 {
				m.selected--
				m.syncDetail()
			}
		case key.Matches(msg, keys.Down):
			if m.showDetail {
				m.detail.HalfViewDown()
			} else if m.selected < len(m.issues)-1 {
				m.selected++
				m.syncDetail()
			}
		case key.Matches(msg, keys.Detail):
			m.showDetail = !m.showDetail
		case key.Matches(msg, keys.Reload):
			m.reload()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = msg.Width - 4
		m.detail.Height = msg.Height - 8
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("  diregram-tui: %s", m.path)))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s", m.err)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  r: reload  q: quit"))
		return b.String()
	}

	if len(m.issues) == 0 {
		b.WriteString(cleanStyle.Render("  ✓ no issues"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("  r: reload  q: quit"))
		return b.String()
	}

	if m.showDetail {
		iss := m.issues[m.selected]
		b.WriteString(severityStyle(iss.Severity).Render(fmt.Sprintf("  %s %s", strings.ToUpper(string(iss.Severity)), iss.Code)))
		b.WriteString("\n  " + iss.Message + "\n\n")
		b.WriteString(m.detail.View())
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  enter: back  ↑/↓: scroll  q: quit"))
		return b.String()
	}

	for i, iss := range m.issues {
		line := fmt.Sprintf("%s %s: %s",
			severityStyle(iss.Severity).Render(fmt.Sprintf("%-7s", strings.ToUpper(string(iss.Severity)))),
			iss.Code, iss.Message)
		if i == m.selected {
			b.WriteString(selectStyle.Render("▸ ") + line)
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	errors, warnings := 0, 0
	for _, iss := range m.issues {
		if iss.Severity == verify.SeverityError {
			errors++
		} else {
			warnings++
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  errors=%d warnings=%d", errors, warnings)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  ↑/↓: navigate  enter: explain  r: reload  q: quit"))

	return b.String()
}

func severityStyle(sev verify.Severity) lipgloss.Style {
	if sev == verify.SeverityError {
		return errorStyle
	}
	return warningStyle
}
