package format

import (
	"fmt"
	"time"
)

// dateLayout matches the en-US short date form, e.g. 3/14/2026.
const dateLayout = "1/2/2006"

// Timestamp describes t relative to now: "Just now" under a minute, "Nm ago"
// under an hour, "Nh ago" under a day, otherwise the calendar date in now's
// location. Times in the future count as "Just now".
func Timestamp(t, now time.Time) string {
	mins := now.Sub(t).Milliseconds() / 60000
	if now.Before(t) {
		mins = -1
	}

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return fmt.Sprintf("%dm ago", mins)
	case mins < 1440:
		return fmt.Sprintf("%dh ago", mins/60)
	}
	return t.In(now.Location()).Format(dateLayout)
}

// RelativeTime is Timestamp against the current wall clock. The result is
// computed once; it does not tick.
func RelativeTime(t time.Time) string {
	return Timestamp(t, time.Now())
}
