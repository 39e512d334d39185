package domain

import (
	"strings"
	"time"
)

// DateLayout is the calendar date format used for delivery and collection.
const DateLayout = "2006-01-02"

// RangeSeparator joins the two ends of a flexible date range.
const RangeSeparator = "|"

// DateSpec is either empty, a single date, or a range "start|end".
type DateSpec string

// SingleDate builds a DateSpec for one calendar day.
func SingleDate(t time.Time) DateSpec {
	return DateSpec(t.Format(DateLayout))
}

// DateRange builds a DateSpec spanning start..end.
func DateRange(start, end time.Time) DateSpec {
	return DateSpec(start.Format(DateLayout) + RangeSeparator + end.Format(DateLayout))
}

// IsZero reports whether no date has been chosen.
func (d DateSpec) IsZero() bool { return strings.TrimSpace(string(d)) == "" }

// IsRange reports whether d encodes two dates.
func (d DateSpec) IsRange() bool { return strings.Contains(string(d), RangeSeparator) }

// Bounds returns the first and last day covered by the spec. For a single
// date both are the same day. ok is false when d is empty or
// malformed.
func (d DateSpec) Bounds() (start, end time.Time, ok bool) {
	raw := strings.TrimSpace(string(d))
	if raw == "" {
		return time.Time{}, time.Time{}, false
	}
	parts := strings.SplitN(raw, RangeSeparator, 2)
	start, err := time.Parse(DateLayout, strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, false
	}
	end = start
	if len(parts) == 2 {
		end, err = time.Parse(DateLayout, strings.TrimSpace(parts[1]))
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
	}
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// ParseDateSpec validates raw input, accepting "YYYY-MM-DD" or
// "YYYY-MM-DD|YYYY-MM-DD" (a space-separated "to" is also accepted).
func ParseDateSpec(raw string) (DateSpec, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", true
	}
	raw = strings.Replace(raw, " to ", RangeSeparator, 1)
	spec := DateSpec(strings.ReplaceAll(raw, " ", ""))
	start, end, ok := spec.Bounds()
	if !ok {
		return "", false
	}
	if spec.IsRange() {
		return DateRange(start, end), true
	}
	return SingleDate(start), true
}
