package summary

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chronos/internal/ui/theme"
)

// Model shows the rendered report in a scrollable viewport.
type Model struct {
	viewport viewport.Model
	text     string
	visible  bool
	width    int
	height   int
}

func New() Model {
	return Model{viewport: viewport.New(0, 0)}
}

func (m Model) Visible() bool { return m.visible }

func (m Model) Text() string { return m.text }

// Show replaces the report and scrolls back to the top.
func (m *Model) Show(text string) {
	m.text = text
	m.visible = true
	m.viewport.SetContent(text)
	m.viewport.GotoTop()
}

func (m *Model) Hide() { m.visible = false }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width - 4
	m.viewport.Height = height - 4
	if m.viewport.Height < 1 {
		m.viewport.Height = 1
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if !m.visible {
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.visible {
		return ""
	}
	header := theme.Title.Render("觀課摘要") + theme.Muted.Render("  c:複製  t:存txt  w:存md  ↑/↓:捲動  esc:關閉")
	return theme.PaneActive.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View()))
}
