package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chronos/internal/ui/theme"
)

// PromptSubmitMsg is emitted when the user confirms the input. Name tells
// the palette and the note prompt apart.
type PromptSubmitMsg struct {
	Name  string
	Input string
}

// PromptCancelMsg is emitted when the user presses esc.
type PromptCancelMsg struct{ Name string }

const maxHints = 6

var (
	promptStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle = lipgloss.NewStyle().Foreground(theme.Subtext0)
)

// Prompt is a single-line input overlay backed by bubbles/textinput. It
// serves as the command palette and the note editor.
type Prompt struct {
	name    string
	title   string
	input   textinput.Model
	hints   []string
	visible bool
	width   int
}

// NewPrompt creates a hidden prompt. hints are completions shown under the
// input, filtered by prefix.
func NewPrompt(name, title, placeholder string, limit int, hints []string) Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	return Prompt{name: name, title: title, input: ti, hints: append([]string(nil), hints...)}
}

func (p Prompt) Visible() bool { return p.visible }

// Open shows the prompt with a cleared input and returns the focus command.
func (p *Prompt) Open() tea.Cmd {
	p.visible = true
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Prompt) SetWidth(w int) { p.width = w }

func (p Prompt) Update(msg tea.Msg) (Prompt, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.close()
			name := p.name
			return p, func() tea.Msg { return PromptCancelMsg{Name: name} }
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			p.close()
			name := p.name
			return p, func() tea.Msg { return PromptSubmitMsg{Name: name, Input: val} }
		case "tab":
			if hint, ok := p.completion(); ok {
				p.input.SetValue(hint)
				p.input.CursorEnd()
			}
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *Prompt) close() {
	p.visible = false
	p.input.Blur()
}

func (p Prompt) matching() []string {
	prefix := strings.ToLower(p.input.Value())
	var out []string
	for _, h := range p.hints {
		if prefix == "" || strings.HasPrefix(h, prefix) {
			out = append(out, h)
			if len(out) == maxHints {
				break
			}
		}
	}
	return out
}

// completion returns the command word of the first matching hint.
func (p Prompt) completion() (string, bool) {
	m := p.matching()
	if len(m) == 0 || p.input.Value() == "" {
		return "", false
	}
	word := strings.Fields(m[0])[0]
	return word + " ", true
}

func (p Prompt) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(p.title) + "\n")
	sb.WriteString("> " + p.input.View() + "\n")
	if hints := p.matching(); len(hints) > 0 {
		sb.WriteString("\n")
		for _, h := range hints {
			sb.WriteString(hintStyle.Render("  "+h) + "\n")
		}
	}
	w := p.width
	if w < 20 {
		w = 64
	}
	return promptStyle.Width(w - 2).Render(sb.String())
}
