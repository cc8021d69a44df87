package domain

import (
	"strings"
	"testing"
	"time"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func sampleSnapshot() Snapshot {
	return Snapshot{
		Subject:        "數學",
		StartTime:      t0,
		EndTime:        t0.Add(10 * time.Minute),
		ElapsedSeconds: 600,
		TotalDuration:  "00:10:00",
		States: []StateLine{
			{Name: "講述教學", ElapsedSeconds: 300},
			{Name: "小組討論", ElapsedSeconds: 0},
		},
		Actions: []ActionLine{
			{Name: "正向鼓勵", Count: 2},
			{Name: "糾正規範"},
			{Name: "巡視走動", ElapsedSeconds: 65},
		},
		Notes: []NoteLine{
			{Timestamp: t0.Add(3 * time.Minute), Text: "second"},
			{Timestamp: t0.Add(time.Minute), Text: "first"},
		},
		FullLog: []LogLine{
			{Timestamp: t0.Add(10 * time.Minute), Message: "觀課結束"},
			{Timestamp: t0, Message: "觀課開始 (科目: 數學)"},
		},
	}
}

func TestRenderFullReport(t *testing.T) {
	t.Parallel()
	r := Renderer{AppName: "Chronos", Location: time.UTC}
	want := strings.Join([]string{
		"Chronos 觀課報告",
		"========================================",
		"科目: 數學",
		"開始時間: 2026/03/02 09:00:00",
		"結束時間: 2026/03/02 09:10:00",
		"總時長: 00:10:00",
		"",
		"教學模式統計",
		"----------------------------------------",
		"講述教學: 00:05:00",
		"",
		"教學行為統計",
		"----------------------------------------",
		"正向鼓勵: 計次 2 次, 計時 00:00:00",
		"巡視走動: 計次 0 次, 計時 00:01:05",
		"",
		"質性紀錄",
		"----------------------------------------",
		"[09:01:00] first",
		"[09:03:00] second",
		"",
		"完整事件紀錄流",
		"----------------------------------------",
		"[09:00:00] 觀課開始 (科目: 數學)",
		"[09:10:00] 觀課結束",
		"",
	}, "\n")
	if got := r.Render(sampleSnapshot()); got != want {
		t.Fatalf("unexpected report:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()
	r := Renderer{AppName: "Chronos", Location: time.UTC}
	s := sampleSnapshot()
	if r.Render(s) != r.Render(s) {
		t.Fatalf("render must be byte-identical for the same snapshot")
	}
}

func TestRenderWithoutDataAndZeroOmission(t *testing.T) {
	t.Parallel()
	r := Renderer{AppName: "Chronos", Location: time.UTC}
	if got := r.Render(Snapshot{}); got != NoDataText {
		t.Fatalf("expected no-data text, got %q", got)
	}
	out := r.Render(sampleSnapshot())
	if strings.Contains(out, "小組討論") || strings.Contains(out, "糾正規範") {
		t.Fatalf("zero entries must be omitted:\n%s", out)
	}
}

func TestRenderUsesConfiguredLocation(t *testing.T) {
	t.Parallel()
	taipei := time.FixedZone("UTC+8", 8*3600)
	r := Renderer{AppName: "Chronos", Location: taipei}
	if out := r.Render(sampleSnapshot()); !strings.Contains(out, "開始時間: 2026/03/02 17:00:00") {
		t.Fatalf("expected local start time:\n%s", out)
	}
	late := time.Date(2026, 3, 2, 20, 0, 0, 0, time.UTC)
	if got := r.FileName("Chronos報告", late); got != "Chronos報告_2026-03-03.txt" {
		t.Fatalf("unexpected file name: %s", got)
	}
}

func TestMarkdownWrapsReport(t *testing.T) {
	t.Parallel()
	r := Renderer{AppName: "Chronos", Location: time.UTC}
	meta, body := r.Markdown("abc", sampleSnapshot())
	if meta["id"] != "abc" || meta["subject"] != "數學" || meta["duration_seconds"] != 600 {
		t.Fatalf("unexpected meta: %+v", meta)
	}
	if !strings.HasPrefix(body, "# Chronos 觀課報告 (數學)\n\n```text\n") || !strings.Contains(body, "總時長: 00:10:00") {
		t.Fatalf("unexpected body:\n%s", body)
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()
	if f, ok := ParseFormat(""); !ok || f != FormatText {
		t.Fatalf("empty format should default to txt")
	}
	if f, ok := ParseFormat("md"); !ok || f != FormatMarkdown {
		t.Fatalf("expected markdown format")
	}
	if _, ok := ParseFormat("pdf"); ok {
		t.Fatalf("pdf is not supported")
	}
}
