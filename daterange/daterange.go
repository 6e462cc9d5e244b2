// Package daterange parses ISO dates and filters reviews against an
// inclusive [start, end] window.
package daterange

import (
	"fmt"
	"time"

	"reviewscout/models"
)

// ISO is the only accepted input layout for CLI dates and record dates.
const ISO = "2006-01-02"

// Parse converts a strict YYYY-MM-DD string into a date at midnight UTC.
// Impossible calendar dates (month 13, Feb 30) are rejected, as are
// timestamps and non-ISO orderings.
func Parse(s string) (time.Time, error) {
	t, err := time.Parse(ISO, s)
	if err != nil {
		return time.Time{}, models.NewScrapeError(models.ErrCodeInvalidInput,
			fmt.Sprintf("date %q is not in YYYY-MM-DD format", s), err)
	}
	return t, nil
}

// Range is an inclusive date window.
type Range struct {
	Start time.Time
	End   time.Time
}

// New parses both bounds and validates their ordering.
func New(start, end string) (Range, error) {
	s, err := Parse(start)
	if err != nil {
		return Range{}, err
	}
	e, err := Parse(end)
	if err != nil {
		return Range{}, err
	}
	if s.After(e) {
		return Range{}, models.NewScrapeError(models.ErrCodeInvalidInput,
			fmt.Sprintf("start date %s is after end date %s", start, end), nil)
	}
	return Range{Start: s, End: e}, nil
}

// Contains reports whether t falls inside the window, both bounds inclusive.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsISO parses s and tests it against the window. A date that does
// not parse is never in range.
func (r Range) ContainsISO(s string) bool {
	t, err := Parse(s)
	if err != nil {
		return false
	}
	return r.Contains(t)
}

// Days returns the number of calendar days in the window, counting both
// bounds. A single-day window returns 1.
func (r Range) Days() int {
	return int(r.End.Sub(r.Start)/(24*time.Hour)) + 1
}
