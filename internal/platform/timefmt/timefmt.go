package timefmt

import (
	"fmt"
	"time"
)

// Layouts used by reports. They are fixed so report text does not depend on
// the host locale.
const (
	DateTimeLayout = "2006/01/02 15:04:05"
	TimeLayout     = "15:04:05"
	FileDateLayout = "2006-01-02"
)

// Clock renders seconds as HH:MM:SS. Hours widen past two digits only
// beyond 99 hours.
func Clock(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Short renders seconds as MM:SS for the live dashboard.
func Short(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// In converts t to loc; a nil loc means time.Local.
func In(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc)
}
