package app

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	obsdto "chronos/internal/modules/observation/dto"
	reportdto "chronos/internal/modules/report/dto"
	"chronos/internal/ui/components"
)

type actionCall struct {
	id    string
	timed bool
}

type fakeObservation struct {
	view     obsdto.ViewOutput
	actions  []actionCall
	toggled  []string
	levels   []string
	notes    []string
	subjects []string
}

func newFakeObservation() *fakeObservation {
	return &fakeObservation{view: obsdto.ViewOutput{
		Phase:   "not_started",
		Subject: "未選擇科目",
		States:  []obsdto.StateOutput{{ID: "lecture", Name: "講述教學"}, {ID: "group", Name: "小組討論"}},
		Actions: []obsdto.ActionOutput{{ID: "praise", Name: "正向鼓勵"}, {ID: "patrol", Name: "巡視走動"}},
	}}
}

func (f *fakeObservation) Start(context.Context) (obsdto.StartOutput, error) {
	f.view.Active, f.view.Started, f.view.Phase = true, true, "active"
	return obsdto.StartOutput{Run: 1, Subject: f.view.Subject}, nil
}

func (f *fakeObservation) Stop(context.Context) (bool, error) {
	f.view.Active, f.view.Phase = false, "ended"
	return true, nil
}

func (f *fakeObservation) SetSubject(_ context.Context, subject string) error {
	f.subjects = append(f.subjects, subject)
	f.view.Subject = subject
	return nil
}

func (f *fakeObservation) ToggleState(_ context.Context, id string) (bool, error) {
	f.toggled = append(f.toggled, id)
	return true, nil
}

func (f *fakeObservation) RegisterAction(_ context.Context, id string, timed bool) (bool, error) {
	f.actions = append(f.actions, actionCall{id: id, timed: timed})
	return true, nil
}

func (f *fakeObservation) LogEngagement(_ context.Context, level string) (bool, error) {
	if !f.view.Active {
		return false, nil
	}
	f.levels = append(f.levels, level)
	return true, nil
}

func (f *fakeObservation) AddNote(_ context.Context, text string) (bool, error) {
	f.notes = append(f.notes, text)
	return f.view.Active, nil
}

func (f *fakeObservation) View(context.Context) (obsdto.ViewOutput, error) {
	return f.view, nil
}

type fakeReport struct {
	copies    int
	downloads []string
}

func (f *fakeReport) Summary(context.Context) (reportdto.SummaryOutput, error) {
	return reportdto.SummaryOutput{Text: "Chronos 觀課報告\n", TotalDuration: "00:00:08"}, nil
}

func (f *fakeReport) Copy(context.Context) (reportdto.SummaryOutput, error) {
	f.copies++
	return reportdto.SummaryOutput{}, nil
}

func (f *fakeReport) Download(_ context.Context, format string) (reportdto.DownloadOutput, error) {
	f.downloads = append(f.downloads, format)
	return reportdto.DownloadOutput{Format: format, Path: "/tmp/report." + format}, nil
}

type fakeNow struct{ t time.Time }

func (f *fakeNow) now() time.Time { return f.t }

func newTestModel() (Model, *fakeObservation, *fakeReport, *fakeNow) {
	obs := newFakeObservation()
	rep := &fakeReport{}
	clk := &fakeNow{t: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)}
	m := NewModel(obs, rep, Options{
		Subjects:          []string{"國文", "英文", "數學"},
		LongPress:         500 * time.Millisecond,
		InactivityTimeout: 5 * time.Minute,
		Now:               clk.now,
	})
	return m, obs, rep, clk
}

func press(m Model, k string) (Model, tea.Cmd) {
	var msg tea.KeyMsg
	if k == " " {
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	} else {
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestStartStopOpensSummary(t *testing.T) {
	t.Parallel()
	m, obs, rep, _ := newTestModel()
	m, _ = press(m, " ")
	if !obs.view.Active || !m.dashboard.CurrentView().Active {
		t.Fatalf("space should start the session")
	}
	m, cmd := press(m, " ")
	if obs.view.Active || cmd == nil {
		t.Fatalf("space should stop the session and request a summary")
	}
	m, _ = send(m, cmd())
	if !m.summary.Visible() || m.summary.Text() != "Chronos 觀課報告\n" {
		t.Fatalf("summary overlay should show the report")
	}

	m, cmd = press(m, "t")
	m, _ = send(m, cmd())
	m, cmd = press(m, "w")
	m, _ = send(m, cmd())
	m, cmd = press(m, "c")
	m, _ = send(m, cmd())
	if len(rep.downloads) != 2 || rep.downloads[0] != "txt" || rep.downloads[1] != "md" || rep.copies != 1 {
		t.Fatalf("unexpected report calls: %+v", rep)
	}
	if len(obs.actions) != 0 {
		t.Fatalf("overlay keys must not reach the action bindings: %+v", obs.actions)
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.summary.Visible() {
		t.Fatalf("esc should close the summary")
	}
}

func TestKeysRouteToEngine(t *testing.T) {
	t.Parallel()
	m, obs, _, _ := newTestModel()
	m, _ = press(m, " ")
	m, _ = press(m, "2")
	m, _ = press(m, "9")
	m, _ = press(m, "S")
	m, _ = press(m, "h")
	m, _ = press(m, "l")
	_, _ = press(m, "]")
	if len(obs.toggled) != 1 || obs.toggled[0] != "group" {
		t.Fatalf("expected group toggle only, got %v", obs.toggled)
	}
	if len(obs.actions) != 1 || obs.actions[0] != (actionCall{id: "patrol", timed: true}) {
		t.Fatalf("uppercase key should force a timed toggle, got %+v", obs.actions)
	}
	if strings.Join(obs.levels, ",") != "high,low" {
		t.Fatalf("unexpected engagement levels: %v", obs.levels)
	}
	if len(obs.subjects) != 1 || obs.subjects[0] != "國文" {
		t.Fatalf("expected first subject, got %v", obs.subjects)
	}
}

func TestTapResolvesAfterReleaseGap(t *testing.T) {
	t.Parallel()
	m, obs, _, clk := newTestModel()
	m, _ = press(m, " ")
	m, cmd := press(m, "a")
	if cmd == nil || len(obs.actions) != 0 {
		t.Fatalf("press should start polling without registering")
	}
	clk.t = clk.t.Add(100 * time.Millisecond)
	m, cmd = send(m, gestureMsg{at: clk.t})
	if cmd == nil || len(obs.actions) != 0 {
		t.Fatalf("gesture should still be pending")
	}
	clk.t = clk.t.Add(time.Second)
	_, cmd = send(m, gestureMsg{at: clk.t})
	if cmd != nil {
		t.Fatalf("polling should stop once every key is released")
	}
	if len(obs.actions) != 1 || obs.actions[0] != (actionCall{id: "praise", timed: false}) {
		t.Fatalf("expected one tap, got %+v", obs.actions)
	}
}

func TestHeldKeyFiresLongPressOnce(t *testing.T) {
	t.Parallel()
	m, obs, _, clk := newTestModel()
	m, _ = press(m, " ")
	m, _ = press(m, "s")
	for i := 0; i < 20; i++ {
		clk.t = clk.t.Add(40 * time.Millisecond)
		m, _ = press(m, "s")
	}
	clk.t = clk.t.Add(2 * time.Second)
	_, _ = send(m, gestureMsg{at: clk.t})
	if len(obs.actions) != 1 || obs.actions[0] != (actionCall{id: "patrol", timed: true}) {
		t.Fatalf("expected a single long press, got %+v", obs.actions)
	}
}

func TestSeparateTapsCountSeparately(t *testing.T) {
	t.Parallel()
	m, obs, _, clk := newTestModel()
	m, _ = press(m, " ")
	for i := 0; i < 3; i++ {
		if i > 0 {
			clk.t = clk.t.Add(300 * time.Millisecond)
		}
		m, _ = press(m, "a")
	}
	clk.t = clk.t.Add(2 * time.Second)
	_, _ = send(m, gestureMsg{at: clk.t})
	want := actionCall{id: "praise", timed: false}
	if len(obs.actions) != 3 {
		t.Fatalf("expected three taps, got %+v", obs.actions)
	}
	for i, call := range obs.actions {
		if call != want {
			t.Fatalf("call %d should be a tap, got %+v", i, call)
		}
	}
}

func TestTapThenHoldResolvesBoth(t *testing.T) {
	t.Parallel()
	m, obs, _, clk := newTestModel()
	m, _ = press(m, " ")
	m, _ = press(m, "s")
	clk.t = clk.t.Add(300 * time.Millisecond)
	m, _ = press(m, "s")
	for i := 0; i < 15; i++ {
		clk.t = clk.t.Add(40 * time.Millisecond)
		m, _ = press(m, "s")
	}
	clk.t = clk.t.Add(2 * time.Second)
	_, _ = send(m, gestureMsg{at: clk.t})
	want := []actionCall{{id: "patrol", timed: false}, {id: "patrol", timed: true}}
	if len(obs.actions) != 2 || obs.actions[0] != want[0] || obs.actions[1] != want[1] {
		t.Fatalf("expected tap then long press, got %+v", obs.actions)
	}
}

func TestNotePromptAndPalette(t *testing.T) {
	t.Parallel()
	m, obs, rep, _ := newTestModel()
	m, _ = press(m, "n")
	if m.note.Visible() {
		t.Fatalf("note prompt needs an active session")
	}
	m, _ = press(m, " ")
	m, _ = press(m, "n")
	if !m.note.Visible() {
		t.Fatalf("n should open the note prompt")
	}
	m, _ = send(m, components.PromptSubmitMsg{Name: promptNote, Input: "students distracted"})
	if len(obs.notes) != 1 || obs.notes[0] != "students distracted" {
		t.Fatalf("note not recorded: %v", obs.notes)
	}

	m, _ = send(m, components.PromptSubmitMsg{Name: promptPalette, Input: "subject:set 數學"})
	if m.subjectIdx != 2 || obs.view.Subject != "數學" {
		t.Fatalf("palette should set subject, idx=%d subject=%s", m.subjectIdx, obs.view.Subject)
	}
	m, cmd := send(m, components.PromptSubmitMsg{Name: promptPalette, Input: "report:md"})
	_, _ = send(m, cmd())
	if len(rep.downloads) != 1 || rep.downloads[0] != "md" {
		t.Fatalf("palette should export markdown: %v", rep.downloads)
	}
	m, _ = send(m, components.PromptSubmitMsg{Name: promptPalette, Input: "bogus"})
	if !strings.Contains(m.status, "unknown command") {
		t.Fatalf("unexpected status: %s", m.status)
	}
}

func TestInactivityReminderFlashes(t *testing.T) {
	t.Parallel()
	m, _, _, clk := newTestModel()
	m, _ = press(m, " ")
	m, _ = send(m, refreshMsg{at: clk.t.Add(4 * time.Minute)})
	if m.idle {
		t.Fatalf("reminder must wait for the timeout")
	}
	m, _ = send(m, refreshMsg{at: clk.t.Add(5 * time.Minute)})
	if !m.idle || !m.flash {
		t.Fatalf("reminder should be on after the timeout")
	}
	m, _ = send(m, refreshMsg{at: clk.t.Add(5*time.Minute + time.Second)})
	if !m.idle || m.flash {
		t.Fatalf("reminder should blink")
	}
	m, _ = press(m, "h")
	if m.idle {
		t.Fatalf("any key should clear the reminder")
	}
}
