package core

import (
	"fmt"
	"time"
)

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowAll   Window = "all"
)

// Window is a named reporting range resolved against a caller-supplied clock.
type Window string

// Interval is a half-open [Start, End) range. A zero Start or End
// leaves that side unbounded; the zero Interval contains everything.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls inside the interval.
func (iv Interval) Contains(t time.Time) bool {
	if !iv.Start.IsZero() && t.Before(iv.Start) {
		return false
	}
	if !iv.End.IsZero() && !t.Before(iv.End) {
		return false
	}
	return true
}

// ResolvePeriod maps a window token to a concrete [start, now) interval.
//
//	week  -> start = now minus 7 days
//	month -> start = first day of the current calendar month, 00:00
//	all   -> no lower bound
func ResolvePeriod(w Window, now time.Time) (Interval, error) {
	switch w {
	case WindowWeek:
		return Interval{Start: now.AddDate(0, 0, -7), End: now}, nil
	case WindowMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Interval{Start: start, End: now}, nil
	case WindowAll:
		return Interval{End: now}, nil
	default:
		return Interval{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, string(w))
	}
}
