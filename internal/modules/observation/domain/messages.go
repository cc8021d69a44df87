package domain

import "fmt"

func sessionStartedMessage(subject string) string {
	return fmt.Sprintf("觀課開始 (科目: %s)", subject)
}

const sessionStoppedMessage = "觀課結束"

func stateToggledMessage(name string, wasActive bool) string {
	if wasActive {
		return fmt.Sprintf("教學模式: %s 停用", name)
	}
	return fmt.Sprintf("教學模式: %s 啟用", name)
}

func actionTimingMessage(name string, wasTiming bool) string {
	if wasTiming {
		return fmt.Sprintf("教學行為: %s 停止計時", name)
	}
	return fmt.Sprintf("教學行為: %s 開始計時", name)
}

func actionTallyMessage(name string) string {
	return fmt.Sprintf("教學行為: %s (計次)", name)
}

func engagementMessage(level EngagementLevel) string {
	return fmt.Sprintf("學生專注度: %s", level.Label())
}

func noteMessage(text string) string {
	return fmt.Sprintf("質性紀錄: \"%s\"", text)
}
