package api

import (
	"time"
)

// DateLayout is the only accepted format for calendar-date query parameters.
const DateLayout = "2006-01-02"

// DateRange is a half-open instant window [From, Until) covering whole
// local calendar days. Until is midnight after the last requested day, so
// a timestamp at 23:59:59 on that day is inside the window.
type DateRange struct {
	From  time.Time
	Until time.Time
}

// ParseDateRange parses two YYYY-MM-DD dates in loc. from must not be after to.
func ParseDateRange(from, to string, loc *time.Location) (DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}

	start, err := time.ParseInLocation(DateLayout, from, loc)
	if err != nil {
		return DateRange{}, NewError(ErrValidation, "from must be a date in YYYY-MM-DD format")
	}
	end, err := time.ParseInLocation(DateLayout, to, loc)
	if err != nil {
		return DateRange{}, NewError(ErrValidation, "to must be a date in YYYY-MM-DD format")
	}
	if start.After(end) {
		return DateRange{}, NewError(ErrValidation, "from must not be after to")
	}

	return DateRange{
		From:  start,
		Until: end.AddDate(0, 0, 1),
	}, nil
}

// Contains reports whether t falls inside the window.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.From) && t.Before(r.Until)
}

// Day returns the window covering the single local day containing t.
func Day(t time.Time) DateRange {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return DateRange{From: start, Until: start.AddDate(0, 0, 1)}
}
