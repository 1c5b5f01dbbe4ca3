package printer

import (
	"fmt"
	"time"
)

// TimeAgo returns a relative age for order listings. Orders move at a human
// pace, over days and weeks rather than seconds, so anything under a minute
// is "just now" and long-idle orders show weeks or months instead of an
// ever-growing day count.
func TimeAgo(t time.Time) string {
	diff := time.Now().UTC().Sub(t.UTC())

	if diff < 0 {
		return "in the future"
	}

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return agoUnit(int(diff.Minutes()), "minute")
	case diff < 24*time.Hour:
		return agoUnit(int(diff.Hours()), "hour")
	case diff < 7*24*time.Hour:
		return agoUnit(int(diff.Hours()/24), "day")
	case diff < 30*24*time.Hour:
		return agoUnit(int(diff.Hours()/(24*7)), "week")
	default:
		return agoUnit(int(diff.Hours()/(24*30)), "month")
	}
}

func agoUnit(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// FormatTimestamp renders an absolute timestamp in the same day-first layout
// the note log records status changes with, so timeline entries and decoded
// notes read the same.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04") + " UTC"
}
