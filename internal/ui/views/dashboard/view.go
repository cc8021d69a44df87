package dashboard

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	obsdto "chronos/internal/modules/observation/dto"
	"chronos/internal/platform/timefmt"
	"chronos/internal/ui/theme"
)

const recentLogLines = 8

// Model renders the live observation dashboard. It holds no session state
// of its own beyond the last view it was given.
type Model struct {
	view       obsdto.ViewOutput
	stateKeys  []string
	actionKeys []string
	held       map[string]bool
	width      int
	height     int
}

// New takes the key labels shown next to each state and action, in catalog
// order.
func New(stateKeys, actionKeys []string) Model {
	return Model{stateKeys: stateKeys, actionKeys: actionKeys, held: map[string]bool{}}
}

func (m *Model) SetView(view obsdto.ViewOutput) { m.view = view }

func (m Model) CurrentView() obsdto.ViewOutput { return m.view }

// SetHeld marks action ids whose key is currently held down.
func (m *Model) SetHeld(held map[string]bool) { m.held = held }

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) View() string {
	header := m.renderHeader()
	colW := m.width/2 - 2
	if colW < 24 {
		colW = 24
	}
	left := lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(colW).Render(m.renderStates()),
		theme.Pane.Width(colW).Render(m.renderActions()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		theme.Pane.Width(colW).Render(m.renderEngagement()),
		theme.Pane.Width(colW).Render(m.renderLog()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, header, lipgloss.JoinHorizontal(lipgloss.Top, left, right))
}

func (m Model) renderHeader() string {
	v := m.view
	var phase string
	switch {
	case v.Active:
		phase = theme.On.Render("● 觀課中")
	case v.Phase == "ended":
		phase = theme.Hot.Render("■ 已結束")
	default:
		phase = theme.Muted.Render("○ 未開始")
	}
	clock := theme.Title.Render(timefmt.Short(v.ElapsedSeconds))
	return fmt.Sprintf("%s  %s  %s %s\n", phase, clock, theme.Muted.Render("科目:"), v.Subject)
}

func (m Model) renderStates() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("教學模式") + "\n")
	for i, st := range m.view.States {
		marker := theme.Muted.Render("○")
		name := st.Name
		if st.IsActive {
			marker = theme.On.Render("●")
			name = theme.On.Render(name)
		}
		fmt.Fprintf(&sb, "%s %s %s  %s\n", theme.Key.Render(keyLabel(m.stateKeys, i)), marker, name, theme.Muted.Render(timefmt.Short(st.ElapsedSeconds)))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderActions() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("教學行為") + "\n")
	for i, a := range m.view.Actions {
		name := a.Name
		timer := theme.Muted.Render(timefmt.Short(a.ElapsedSeconds))
		switch {
		case a.IsTiming:
			name = theme.Hot.Render(name)
			timer = theme.Hot.Render("⏱ " + timefmt.Short(a.ElapsedSeconds))
		case m.held[a.ID]:
			name = theme.Key.Render(name)
		}
		fmt.Fprintf(&sb, "%s %s  ×%d  %s\n", theme.Key.Render(keyLabel(m.actionKeys, i)), name, a.Count, timer)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m Model) renderEngagement() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("學生專注度") + theme.Muted.Render("  h/m/l") + "\n")
	if len(m.view.Engagements) == 0 {
		sb.WriteString(theme.Muted.Render("尚無紀錄"))
		return sb.String()
	}
	counts := map[string]int{}
	for _, e := range m.view.Engagements {
		counts[e.Level]++
	}
	for _, level := range []struct{ id, label string }{{"high", "高"}, {"medium", "中"}, {"low", "低"}} {
		badge := lipgloss.NewStyle().Foreground(theme.EngagementColor(level.id)).Render(level.label)
		fmt.Fprintf(&sb, "%s %d  ", badge, counts[level.id])
	}
	latest := m.view.Engagements[0]
	fmt.Fprintf(&sb, "\n%s", theme.Muted.Render("最近: "+latest.Label+" @ "+latest.Timestamp.Format(timefmt.TimeLayout)))
	return sb.String()
}

func (m Model) renderLog() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("事件紀錄") + "\n")
	if len(m.view.Log) == 0 {
		sb.WriteString(theme.Muted.Render("按空白鍵開始觀課"))
		return sb.String()
	}
	for i, entry := range m.view.Log {
		if i == recentLogLines {
			break
		}
		fmt.Fprintf(&sb, "%s %s\n", theme.Muted.Render(entry.Timestamp.Format(timefmt.TimeLayout)), entry.Message)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func keyLabel(keys []string, i int) string {
	if i < len(keys) {
		return "[" + keys[i] + "]"
	}
	return "   "
}
