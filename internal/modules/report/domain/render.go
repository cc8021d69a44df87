package domain

import (
	"fmt"
	"strings"
	"time"

	"chronos/internal/platform/timefmt"
)

// NoDataText replaces the report when no session was ever started.
const NoDataText = "無數據可匯出。"

const (
	doubleRule = "========================================"
	singleRule = "----------------------------------------"
)

// Renderer produces the plain-text observation report. Output depends only
// on the snapshot and the renderer's fields.
type Renderer struct {
	AppName  string
	Location *time.Location
}

func (r Renderer) Render(s Snapshot) string {
	if !s.HasData() {
		return NoDataText
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s 觀課報告\n", r.AppName)
	b.WriteString(doubleRule + "\n")
	fmt.Fprintf(&b, "科目: %s\n", s.Subject)
	fmt.Fprintf(&b, "開始時間: %s\n", r.dateTime(s.StartTime))
	fmt.Fprintf(&b, "結束時間: %s\n", r.dateTime(s.EndTime))
	fmt.Fprintf(&b, "總時長: %s\n\n", s.TotalDuration)

	section(&b, "教學模式統計")
	for _, st := range s.States {
		if st.ElapsedSeconds > 0 {
			fmt.Fprintf(&b, "%s: %s\n", st.Name, timefmt.Clock(st.ElapsedSeconds))
		}
	}
	b.WriteString("\n")

	section(&b, "教學行為統計")
	for _, a := range s.Actions {
		if a.Count > 0 || a.ElapsedSeconds > 0 {
			fmt.Fprintf(&b, "%s: 計次 %d 次, 計時 %s\n", a.Name, a.Count, timefmt.Clock(a.ElapsedSeconds))
		}
	}
	b.WriteString("\n")

	section(&b, "質性紀錄")
	for i := len(s.Notes) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "[%s] %s\n", r.clock(s.Notes[i].Timestamp), s.Notes[i].Text)
	}
	b.WriteString("\n")

	section(&b, "完整事件紀錄流")
	for i := len(s.FullLog) - 1; i >= 0; i-- {
		fmt.Fprintf(&b, "[%s] %s\n", r.clock(s.FullLog[i].Timestamp), s.FullLog[i].Message)
	}
	return b.String()
}

// FileName is the download name of the text report, dated in the
// renderer's location.
func (r Renderer) FileName(prefix string, at time.Time) string {
	return fmt.Sprintf("%s_%s.txt", prefix, timefmt.In(at, r.Location).Format(timefmt.FileDateLayout))
}

func (r Renderer) dateTime(t time.Time) string {
	return timefmt.In(t, r.Location).Format(timefmt.DateTimeLayout)
}

func (r Renderer) clock(t time.Time) string {
	return timefmt.In(t, r.Location).Format(timefmt.TimeLayout)
}

func section(b *strings.Builder, title string) {
	b.WriteString(title + "\n")
	b.WriteString(singleRule + "\n")
}

// Markdown returns the frontmatter metadata and body of the vault-note
// export. The body is the text report inside a fenced block.
func (r Renderer) Markdown(id string, s Snapshot) (map[string]any, string) {
	meta := map[string]any{
		"id":               id,
		"app":              r.AppName,
		"subject":          s.Subject,
		"started_at":       timefmt.In(s.StartTime, r.Location).Format(time.RFC3339),
		"ended_at":         timefmt.In(s.EndTime, r.Location).Format(time.RFC3339),
		"duration_seconds": s.ElapsedSeconds,
		"notes":            len(s.Notes),
		"engagements":      len(s.Engagements),
	}
	body := fmt.Sprintf("# %s 觀課報告 (%s)\n\n```text\n%s\n```\n", r.AppName, s.Subject, strings.TrimRight(r.Render(s), "\n"))
	return meta, body
}
