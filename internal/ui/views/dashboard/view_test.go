package dashboard

import (
	"strings"
	"testing"
	"time"

	obsdto "chronos/internal/modules/observation/dto"
)

func TestViewShowsCatalogKeysAndTimers(t *testing.T) {
	t.Parallel()
	m := New([]string{"1", "2"}, []string{"a"})
	m.SetSize(100, 30)
	m.SetView(obsdto.ViewOutput{
		Phase:          "active",
		Active:         true,
		Subject:        "數學",
		ElapsedSeconds: 125,
		States:         []obsdto.StateOutput{{ID: "lecture", Name: "講述教學", IsActive: true, ElapsedSeconds: 65}, {ID: "group", Name: "小組討論"}},
		Actions:        []obsdto.ActionOutput{{ID: "patrol", Name: "巡視走動", Count: 2, IsTiming: true, ElapsedSeconds: 7}},
		Engagements:    []obsdto.EngagementOutput{{Timestamp: time.Date(2026, 3, 2, 9, 1, 0, 0, time.UTC), Level: "high", Label: "高"}},
		Log:            []obsdto.LogEntryOutput{{Timestamp: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), Message: "觀課開始 (科目: 數學)"}},
	})
	out := m.View()
	for _, want := range []string{"02:05", "數學", "[1]", "講述教學", "01:05", "[a]", "×2", "00:07", "觀課開始 (科目: 數學)", "最近: 高"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in dashboard:\n%s", want, out)
		}
	}
}

func TestViewBeforeStart(t *testing.T) {
	t.Parallel()
	m := New(nil, nil)
	out := m.View()
	if !strings.Contains(out, "未開始") || !strings.Contains(out, "按空白鍵開始觀課") || !strings.Contains(out, "尚無紀錄") {
		t.Fatalf("unexpected empty dashboard:\n%s", out)
	}
}
