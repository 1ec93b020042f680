package schedule

import (
	"sort"
	"strings"
	"time"

	"rocketfist/internal/api"
	"rocketfist/internal/class"
)

const (
	DefaultCapacity = 20
	GrapplingCap    = 30
)

// CapacityFor returns the template's own capacity when set, otherwise the
// discipline default.
func CapacityFor(c *class.Class) int {
	if c.DefaultCapacity != nil && *c.DefaultCapacity > 0 {
		return *c.DefaultCapacity
	}
	if strings.EqualFold(strings.TrimSpace(c.Discipline), "bjj") {
		return GrapplingCap
	}
	return DefaultCapacity
}

// Expand produces one slot per pattern entry and week offset. Each entry is
// placed on the first matching weekday at or after the anchor's local date,
// then shifted by whole weeks. Wall-clock times are kept across DST changes.
func Expand(c *class.Class, patterns []class.Pattern, weeks []int, anchor time.Time, loc *time.Location) ([]Slot, error) {
	if c.DefaultDurationMinutes <= 0 {
		return nil, api.Errorf(api.ErrValidation, "class %q has no positive duration", c.Name)
	}
	if loc == nil {
		loc = time.UTC
	}

	local := anchor.In(loc)
	year, month, day := local.Date()
	weekday := int(local.Weekday())
	capacity := CapacityFor(c)
	duration := c.Duration()

	seen := make(map[int64]struct{}, len(patterns)*len(weeks))
	slots := make([]Slot, 0, len(patterns)*len(weeks))
	for _, p := range patterns {
		in := class.PatternInput{DayOfWeek: p.DayOfWeek, Hour: p.Hour, Minute: p.Minute}
		if err := in.Validate(); err != nil {
			return nil, err
		}

		daysUntil := p.DayOfWeek - weekday
		if daysUntil < 0 {
			daysUntil += 7
		}

		for _, week := range weeks {
			start := time.Date(year, month, day+daysUntil+7*week, p.Hour, p.Minute, 0, 0, loc)
			key := start.UnixNano()
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			slots = append(slots, Slot{
				StartTime:   start,
				EndTime:     start.Add(duration),
				MaxCapacity: capacity,
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime.Before(slots[j].StartTime)
	})
	return slots, nil
}

// WeekRange returns the offsets from..to inclusive.
func WeekRange(from, to int) []int {
	if to < from {
		return nil
	}
	weeks := make([]int, 0, to-from+1)
	for w := from; w <= to; w++ {
		weeks = append(weeks, w)
	}
	return weeks
}
