package core

import "time"

// upstreamTimeFormat is the timestamp layout the transactions API expects
// for its filter parameters.
const upstreamTimeFormat = "2006-01-02T15:04:05Z"

// MonthWindow is the half-open interval [Start, End) covering one calendar
// month in UTC. Computed once per request and never mutated.
type MonthWindow struct {
	Start time.Time
	End   time.Time
}

// CurrentMonthWindow returns the window for now's calendar month: Start is
// the first instant of the month at 00:00:00 UTC, End the first instant of
// the following month. time.Date normalizes month 13, so December rolls the
// year forward.
func CurrentMonthWindow(now time.Time) MonthWindow {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC)
	return MonthWindow{Start: start, End: end}
}

// SinceParam renders Start in the upstream filter format.
func (w MonthWindow) SinceParam() string {
	return w.Start.Format(upstreamTimeFormat)
}

// UntilParam renders End in the upstream filter format.
func (w MonthWindow) UntilParam() string {
	return w.End.Format(upstreamTimeFormat)
}

// Key returns a stable identifier for the window, used as a cache key part.
func (w MonthWindow) Key() string {
	return w.SinceParam() + "/" + w.UntilParam()
}
