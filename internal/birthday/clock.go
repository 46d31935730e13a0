package birthday

import (
	"fmt"
	"strings"
	"time"
)

// GreetingHour is the local wall-clock hour at which greetings go out.
const GreetingHour = 9

// Window is how far ahead of the target instant a tick already counts as
// due. It matches the sweep period: the tick that crosses the target always
// classifies due at least once.
const Window = time.Minute

// Classification is the outcome of the delivery-window decision.
type Classification int

const (
	NotYetDue Classification = iota
	DueNow
)

func (c Classification) String() string {
	if c == DueNow {
		return "due_now"
	}
	return "not_yet_due"
}

// NextOccurrence returns this year's occurrence of 09:00 local time on the
// stored birthday's month/day, and the signed duration from now until it.
// The year is taken from now in UTC; the birthday's own year is ignored.
// Feb 29 normalizes to Mar 1 in non-leap years per time.Date.
func NextOccurrence(bday time.Time, loc *time.Location, now time.Time) (time.Time, time.Duration) {
	target := time.Date(now.UTC().Year(), bday.Month(), bday.Day(), GreetingHour, 0, 0, 0, loc)
	return target, target.Sub(now)
}

// Classify decides whether a computed delta falls in the dispatch window.
// resolved=false means the timezone could not be determined; that fails
// open to DueNow rather than silently skipping the user.
func Classify(delta time.Duration, resolved bool) Classification {
	if !resolved {
		return DueNow
	}
	if delta < Window {
		return DueNow
	}
	return NotYetDue
}

// FormatTimeLeft renders a duration as a coarse human string for sweep
// logs, e.g. "2 days, 3 hours, 5 minutes".
func FormatTimeLeft(d time.Duration) string {
	if d < time.Second {
		return "less than a second"
	}

	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	for _, p := range []struct {
		n    int
		unit string
	}{{days, "day"}, {hours, "hour"}, {minutes, "minute"}, {seconds, "second"}} {
		if p.n == 0 {
			continue
		}
		label := fmt.Sprintf("%d %s", p.n, p.unit)
		if p.n > 1 {
			label += "s"
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, ", ")
}
