package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	obsdto "chronos/internal/modules/observation/dto"
	reportdto "chronos/internal/modules/report/dto"
	"chronos/internal/ui/components"
	"chronos/internal/ui/gesture"
	"chronos/internal/ui/theme"
	dashboardview "chronos/internal/ui/views/dashboard"
	summaryview "chronos/internal/ui/views/summary"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type observationPort interface {
	Start(ctx context.Context) (obsdto.StartOutput, error)
	Stop(ctx context.Context) (bool, error)
	SetSubject(ctx context.Context, subject string) error
	ToggleState(ctx context.Context, stateID string) (bool, error)
	RegisterAction(ctx context.Context, actionID string, timed bool) (bool, error)
	LogEngagement(ctx context.Context, level string) (bool, error)
	AddNote(ctx context.Context, text string) (bool, error)
	View(ctx context.Context) (obsdto.ViewOutput, error)
}

type reportPort interface {
	Summary(ctx context.Context) (reportdto.SummaryOutput, error)
	Copy(ctx context.Context) (reportdto.SummaryOutput, error)
	Download(ctx context.Context, format string) (reportdto.DownloadOutput, error)
}

// ─── options ─────────────────────────────────────────────────────────────────

type Options struct {
	AppName           string
	DefaultSubject    string
	Subjects          []string
	LongPress         time.Duration
	InactivityTimeout time.Duration
	RefreshInterval   time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

const (
	promptPalette = "palette"
	promptNote    = "note"

	gesturePollInterval = 50 * time.Millisecond
	// Terminals report no key release, so a hold is seen as autorepeat.
	// Repeats arrive every 30-50ms; a wider gap is a new press.
	autorepeatInterval = 100 * time.Millisecond
	// A key counts as released once no repeat arrived for this long past
	// the long-press threshold.
	autorepeatSlack = 150 * time.Millisecond
)

// actionKeyPool avoids every global binding so the lowercase key taps and
// the uppercase key forces a timed toggle.
var actionKeyPool = []string{"a", "s", "d", "f", "g", "z", "x", "c", "v", "b"}

var paletteHints = []string{
	"session:start",
	"session:stop",
	"subject:set <name>",
	"note:add <text>",
	"engagement <high|medium|low>",
	"report:summary",
	"report:copy",
	"report:txt",
	"report:md",
}

// ─── async messages ──────────────────────────────────────────────────────────

type refreshMsg struct{ at time.Time }

type gestureMsg struct{ at time.Time }

type summaryMsg struct {
	out reportdto.SummaryOutput
	err error
}

type copiedMsg struct{ err error }

type savedMsg struct {
	out reportdto.DownloadOutput
	err error
}

// ─── key bindings ────────────────────────────────────────────────────────────

type keyMap struct {
	StartStop  key.Binding
	States     key.Binding
	Actions    key.Binding
	Timed      key.Binding
	Engagement key.Binding
	Note       key.Binding
	Subject    key.Binding
	Palette    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		StartStop:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/stop")),
		States:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "toggle mode")),
		Actions:    key.NewBinding(key.WithKeys(actionKeyPool...), key.WithHelp("a-b", "tap, hold to time")),
		Timed:      key.NewBinding(key.WithKeys("A", "S", "D", "F", "G", "Z", "X", "C", "V", "B"), key.WithHelp("A-B", "toggle timer")),
		Engagement: key.NewBinding(key.WithKeys("h", "m", "l"), key.WithHelp("h/m/l", "engagement")),
		Note:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "note")),
		Subject:    key.NewBinding(key.WithKeys("[", "]"), key.WithHelp("[/]", "subject")),
		Palette:    key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.StartStop, k.Note, k.Palette, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.StartStop, k.States, k.Actions, k.Timed},
		{k.Engagement, k.Note, k.Subject},
		{k.Palette, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model of the observation dashboard. Engine
// commands are in-memory and run inline; report exports run as commands.
type Model struct {
	observation observationPort
	report      reportPort
	opts        Options

	dashboard dashboardview.Model
	summary   summaryview.Model
	palette   components.Prompt
	note      components.Prompt
	keys      keyMap
	help      help.Model
	showHelp  bool

	stateIDs   []string
	actionIDs  []string
	actionKeys map[string]string
	detector   *gesture.Detector
	lastRepeat map[string]time.Time
	polling    bool

	subjectIdx int
	lastInput  time.Time
	idle       bool
	flash      bool
	status     string
	width      int
	height     int
}

func NewModel(observation observationPort, report reportPort, opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = time.Second
	}
	if opts.LongPress <= 0 {
		opts.LongPress = gesture.DefaultThreshold
	}
	if opts.AppName == "" {
		opts.AppName = "Chronos"
	}
	m := Model{
		observation: observation,
		report:      report,
		opts:        opts,
		summary:     summaryview.New(),
		palette:     components.NewPrompt(promptPalette, "Command Palette", "type a command…", 256, paletteHints),
		note:        components.NewPrompt(promptNote, "質性紀錄", "輸入觀察內容…", 500, nil),
		keys:        defaultKeys(),
		help:        newHelp(),
		actionKeys:  map[string]string{},
		detector:    gesture.NewDetector(opts.LongPress),
		lastRepeat:  map[string]time.Time{},
		subjectIdx:  -1,
		lastInput:   opts.Now(),
		status:      "ready",
	}
	view, err := observation.View(context.Background())
	if err != nil {
		m.status = "load session: " + err.Error()
	}
	var stateKeys, actionKeys []string
	for i, st := range view.States {
		m.stateIDs = append(m.stateIDs, st.ID)
		if i < 9 {
			stateKeys = append(stateKeys, fmt.Sprintf("%d", i+1))
		}
	}
	for i, a := range view.Actions {
		m.actionIDs = append(m.actionIDs, a.ID)
		if i < len(actionKeyPool) {
			m.actionKeys[actionKeyPool[i]] = a.ID
			actionKeys = append(actionKeys, actionKeyPool[i])
		}
	}
	m.dashboard = dashboardview.New(stateKeys, actionKeys)
	m.dashboard.SetView(view)
	return m
}

func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// ─── update ──────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Prompts intercept all input while open.
	if m.palette.Visible() || m.note.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			m.touch()
			var cmd tea.Cmd
			if m.palette.Visible() {
				m.palette, cmd = m.palette.Update(msg)
			} else {
				m.note, cmd = m.note.Update(msg)
			}
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.note.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.dashboard.SetSize(m.width, m.height-3)
		m.summary.SetSize(m.width, m.height-3)
		return m, nil

	case refreshMsg:
		m.refresh()
		m.checkIdle(msg.at)
		return m, m.refreshCmd()

	case gestureMsg:
		return m.resolveReleases(msg.at)

	case summaryMsg:
		if msg.err != nil {
			m.status = "summary: " + msg.err.Error()
			return m, nil
		}
		m.summary.Show(msg.out.Text)
		m.status = "summary ready: " + msg.out.TotalDuration

	case copiedMsg:
		if msg.err != nil {
			m.status = "copy failed: " + msg.err.Error()
		} else {
			m.status = "報告已複製到剪貼簿"
		}

	case savedMsg:
		if msg.err != nil {
			m.status = "save failed: " + msg.err.Error()
		} else {
			m.status = "saved " + msg.out.Path
		}

	case components.PromptSubmitMsg:
		if msg.Name == promptNote {
			m.addNote(msg.Input)
			return m, nil
		}
		return m.executePalette(msg.Input)

	case components.PromptCancelMsg:
		m.status = "ready"

	case tea.KeyMsg:
		m.touch()
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.summary.Visible() {
			return m.updateSummary(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case k == "ctrl+c" || k == "q":
		return m, tea.Quit
	case k == " ":
		return m.toggleSession()
	case k == "?":
		m.showHelp = true
	case k == ":":
		return m, m.palette.Open()
	case k == "n":
		if !m.dashboard.CurrentView().Active {
			m.status = "start a session before adding notes"
			return m, nil
		}
		return m, m.note.Open()
	case k == "h" || k == "m" || k == "l":
		m.logEngagement(map[string]string{"h": "high", "m": "medium", "l": "low"}[k])
	case k == "[" || k == "]":
		step := 1
		if k == "[" {
			step = -1
		}
		m.cycleSubject(step)
	case len(k) == 1 && k >= "1" && k <= "9":
		m.toggleState(int(k[0] - '1'))
	default:
		if id, ok := m.actionKeys[k]; ok {
			return m.pressAction(id)
		}
		if id, ok := m.actionKeys[strings.ToLower(k)]; ok {
			m.registerAction(id, true)
		}
	}
	return m, nil
}

func (m Model) updateSummary(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.summary.Hide()
		m.status = "ready"
		return m, nil
	case "ctrl+c", "q":
		return m, tea.Quit
	case "c":
		return m, m.copyCmd()
	case "t":
		return m, m.saveCmd("txt")
	case "w":
		return m, m.saveCmd("md")
	}
	var cmd tea.Cmd
	m.summary, cmd = m.summary.Update(msg)
	return m, cmd
}

// ─── engine commands ─────────────────────────────────────────────────────────

func (m Model) toggleSession() (tea.Model, tea.Cmd) {
	ctx := context.Background()
	if m.dashboard.CurrentView().Active {
		m.detector.Cancel()
		m.lastRepeat = map[string]time.Time{}
		if _, err := m.observation.Stop(ctx); err != nil {
			m.status = "stop: " + err.Error()
			return m, nil
		}
		m.refresh()
		m.status = "session stopped"
		return m, m.summaryCmd()
	}
	out, err := m.observation.Start(ctx)
	if err != nil {
		m.status = "start: " + err.Error()
		return m, nil
	}
	m.summary.Hide()
	m.idle = false
	m.refresh()
	m.status = "session started: " + out.Subject
	return m, nil
}

func (m *Model) toggleState(idx int) {
	if idx < 0 || idx >= len(m.stateIDs) {
		return
	}
	if _, err := m.observation.ToggleState(context.Background(), m.stateIDs[idx]); err != nil {
		m.status = "toggle: " + err.Error()
		return
	}
	m.refresh()
}

func (m *Model) registerAction(id string, timed bool) {
	if _, err := m.observation.RegisterAction(context.Background(), id, timed); err != nil {
		m.status = "action: " + err.Error()
		return
	}
	m.refresh()
}

func (m *Model) logEngagement(level string) {
	ok, err := m.observation.LogEngagement(context.Background(), level)
	switch {
	case err != nil:
		m.status = "engagement: " + err.Error()
	case !ok:
		m.status = "start a session before rating engagement"
	default:
		m.refresh()
	}
}

func (m *Model) addNote(text string) {
	if text == "" {
		m.status = "empty note discarded"
		return
	}
	ok, err := m.observation.AddNote(context.Background(), text)
	switch {
	case err != nil:
		m.status = "note: " + err.Error()
	case !ok:
		m.status = "note ignored: no active session"
	default:
		m.status = "note added"
		m.refresh()
	}
}

func (m *Model) cycleSubject(step int) {
	if len(m.opts.Subjects) == 0 {
		return
	}
	n := len(m.opts.Subjects)
	m.subjectIdx = ((m.subjectIdx+step)%n + n) % n
	m.setSubject(m.opts.Subjects[m.subjectIdx])
}

func (m *Model) setSubject(subject string) {
	if err := m.observation.SetSubject(context.Background(), subject); err != nil {
		m.status = "subject: " + err.Error()
		return
	}
	m.status = "subject: " + subject
	m.refresh()
}

// ─── gestures ────────────────────────────────────────────────────────────────

// pressAction starts a gesture on a fresh key event. An event of the same key
// within autorepeatInterval of the previous one is autorepeat of a held key;
// a later one ends the pending gesture at its last event and starts another.
func (m Model) pressAction(id string) (tea.Model, tea.Cmd) {
	now := m.opts.Now()
	prev, seen := m.lastRepeat[id]
	m.lastRepeat[id] = now
	if seen && now.Sub(prev) <= autorepeatInterval {
		for _, res := range m.detector.Poll(now) {
			m.registerAction(res.ID, res.Long)
		}
		return m, nil
	}
	if seen {
		if res, ok := m.detector.Release(id, prev); ok {
			m.registerAction(res.ID, res.Long)
		}
	}
	m.detector.Press(id, now)
	m.syncHeld()
	if m.polling {
		return m, nil
	}
	m.polling = true
	return m, m.gestureCmd()
}

func (m Model) resolveReleases(now time.Time) (tea.Model, tea.Cmd) {
	gap := m.detector.Threshold() + autorepeatSlack
	for id, last := range m.lastRepeat {
		if now.Sub(last) < gap {
			continue
		}
		delete(m.lastRepeat, id)
		if res, ok := m.detector.Release(id, last); ok {
			m.registerAction(res.ID, res.Long)
		}
	}
	m.syncHeld()
	if len(m.lastRepeat) == 0 {
		m.polling = false
		return m, nil
	}
	return m, m.gestureCmd()
}

func (m *Model) syncHeld() {
	held := map[string]bool{}
	for id := range m.lastRepeat {
		held[id] = m.detector.Held(id)
	}
	m.dashboard.SetHeld(held)
}

// ─── palette execution ───────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	active := m.dashboard.CurrentView().Active

	switch parts[0] {
	case "session:start":
		if active {
			m.status = "session already running"
			return m, nil
		}
		return m.toggleSession()
	case "session:stop":
		if !active {
			m.status = "no active session"
			return m, nil
		}
		return m.toggleSession()
	case "subject:set":
		if rest == "" {
			m.status = "usage: subject:set <name>"
			return m, nil
		}
		m.subjectIdx = indexOf(m.opts.Subjects, rest)
		m.setSubject(rest)
	case "note:add":
		m.addNote(rest)
	case "engagement":
		if len(parts) < 2 {
			m.status = "usage: engagement <high|medium|low>"
			return m, nil
		}
		m.logEngagement(parts[1])
	case "report:summary":
		return m, m.summaryCmd()
	case "report:copy":
		return m, m.copyCmd()
	case "report:txt":
		return m, m.saveCmd("txt")
	case "report:md":
		return m, m.saveCmd("md")
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	title := m.renderTitleBar()
	status := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(title) - lipgloss.Height(status)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.note.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.note.View())
	case m.summary.Visible():
		content = m.summary.View()
	default:
		content = m.dashboard.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, content, status)
}

func (m Model) renderTitleBar() string {
	bar := theme.Hot.Render(m.opts.AppName) + theme.Muted.Render("  課堂觀察紀錄")
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.idle {
		reminder := " 長時間未操作，記得記錄觀察 "
		if m.flash {
			reminder = theme.Alert.Render(reminder)
		} else {
			reminder = theme.Hot.Render(reminder)
		}
		left = reminder + "  " + left
	}
	right := theme.Muted.Render("?:help  space:start/stop  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) refresh() {
	view, err := m.observation.View(context.Background())
	if err != nil {
		m.status = "refresh: " + err.Error()
		return
	}
	m.dashboard.SetView(view)
}

func (m *Model) touch() {
	m.lastInput = m.opts.Now()
	m.idle = false
}

func (m *Model) checkIdle(now time.Time) {
	if m.opts.InactivityTimeout <= 0 || !m.dashboard.CurrentView().Active {
		m.idle = false
		return
	}
	m.idle = now.Sub(m.lastInput) >= m.opts.InactivityTimeout
	m.flash = m.idle && !m.flash
}

func indexOf(list []string, s string) int {
	for i, v := range list {
		if v == s {
			return i
		}
	}
	return -1
}

// ─── async commands ──────────────────────────────────────────────────────────

func (m Model) refreshCmd() tea.Cmd {
	return tea.Tick(m.opts.RefreshInterval, func(t time.Time) tea.Msg { return refreshMsg{at: t} })
}

func (m Model) gestureCmd() tea.Cmd {
	now := m.opts.Now
	return tea.Tick(gesturePollInterval, func(time.Time) tea.Msg { return gestureMsg{at: now()} })
}

func (m Model) summaryCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.report.Summary(context.Background())
		return summaryMsg{out: out, err: err}
	}
}

func (m Model) copyCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := m.report.Copy(context.Background())
		return copiedMsg{err: err}
	}
}

func (m Model) saveCmd(format string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.report.Download(context.Background(), format)
		return savedMsg{out: out, err: err}
	}
}

func newHelp() help.Model {
	h := help.New()
	h.ShowAll = true
	return h
}
