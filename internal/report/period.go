package report

import (
	"strconv"
	"time"
)

// PeriodType selects the report granularity.
type PeriodType string

const (
	Daily   PeriodType = "daily"
	Weekly  PeriodType = "weekly"
	Monthly PeriodType = "monthly"
	Annual  PeriodType = "annual"
	Custom  PeriodType = "custom"
)

// ParsePeriodType maps a user-supplied string to a PeriodType. Anything
// unrecognized falls back to a daily view rather than failing.
func ParsePeriodType(s string) PeriodType {
	switch PeriodType(s) {
	case Daily, Weekly, Monthly, Annual, Custom:
		return PeriodType(s)
	default:
		return Daily
	}
}

// Range is a wall-clock reporting window, inclusive on both ends. Start is
// normalized to 00:00:00.000 and End to 23:59:59.999 local time.
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the range, bounds included.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ComputeRange resolves a period type and reference date into a concrete
// window. Weeks start on Monday; month ends roll through day zero of the
// following month so variable month lengths come out right.
func ComputeRange(pt PeriodType, ref time.Time) Range {
	y, m, d := ref.Date()
	loc := ref.Location()

	var start, end time.Time
	switch pt {
	case Weekly:
		sinceMonday := (int(ref.Weekday()) + 6) % 7
		start = time.Date(y, m, d-sinceMonday, 0, 0, 0, 0, loc)
		end = start.AddDate(0, 0, 6)
	case Monthly:
		start = time.Date(y, m, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, m+1, 0, 0, 0, 0, 0, loc)
	case Annual:
		start = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
		end = time.Date(y, time.December, 31, 0, 0, 0, 0, loc)
	default:
		// daily, and anything a Query could not resolve further
		start = time.Date(y, m, d, 0, 0, 0, 0, loc)
		end = start
	}
	return Range{Start: startOfDay(start), End: endOfDay(end)}
}

// PreviousRange returns the window of identical duration ending one
// millisecond before r begins. Duration is taken from r itself, so a
// 31-day month compares against the preceding 31 days whether or not they
// line up with a calendar month. That asymmetry is intentional.
func PreviousRange(r Range) Range {
	span := r.End.Sub(r.Start) + time.Millisecond
	prevEnd := r.Start.Add(-time.Millisecond)
	prevStart := prevEnd.Add(-span + time.Millisecond)
	return Range{Start: prevStart, End: prevEnd}
}

// TrailingWeek is the default window when a custom range cannot be
// resolved: the 7 days ending today.
func TrailingWeek(now time.Time) Range {
	end := endOfDay(now)
	start := startOfDay(now.AddDate(0, 0, -6))
	return Range{Start: start, End: end}
}

// Query carries the raw period selector inputs as they arrive from the
// client. Every field is optional and defensively parsed; Resolve never
// fails.
type Query struct {
	Period string `form:"period"`
	Date   string `form:"date"`  // YYYY-MM-DD, for daily and weekly
	Month  string `form:"month"` // YYYY-MM, for monthly
	Year   string `form:"year"`  // YYYY, for annual
	Start  string `form:"start"` // YYYY-MM-DD, custom only
	End    string `form:"end"`   // YYYY-MM-DD, custom only
}

// Resolve turns the query into a concrete window relative to now.
// Missing or malformed dates substitute today; a custom range with missing
// or inverted bounds substitutes the trailing 7-day window.
func (q Query) Resolve(now time.Time) (PeriodType, Range) {
	pt := ParsePeriodType(q.Period)

	if pt == Custom {
		start, okS := parseDay(q.Start, now.Location())
		end, okE := parseDay(q.End, now.Location())
		if !okS || !okE || start.After(end) {
			return pt, TrailingWeek(now)
		}
		return pt, Range{Start: startOfDay(start), End: endOfDay(end)}
	}

	ref := now
	switch pt {
	case Daily, Weekly:
		if t, ok := parseDay(q.Date, now.Location()); ok {
			ref = t
		}
	case Monthly:
		if t, err := time.ParseInLocation("2006-01", q.Month, now.Location()); err == nil {
			ref = t
		}
	case Annual:
		if y, err := strconv.Atoi(q.Year); err == nil && y > 0 {
			ref = time.Date(y, time.January, 1, 0, 0, 0, 0, now.Location())
		}
	}
	return pt, ComputeRange(pt, ref)
}

func parseDay(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation("2006-01-02", s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
