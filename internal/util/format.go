package util

import (
	"fmt"
	"time"
)

// FormatClock renders a session clock as m:ss, switching to h:mm:ss once an
// hour has passed. Negative durations show as 0:00.
func FormatClock(d time.Duration) string {
	d = max(d, 0).Truncate(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
