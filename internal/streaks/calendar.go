// Package streaks turns dated calorie events into per-day totals and computes
// current and best consecutive-day adherence streaks against a daily goal.
//
// Days are civil dates in one fixed location (the proleptic Gregorian calendar
// of package time). A day starts at local midnight of that location, so an
// event at 23:59 and one at 00:01 the next morning land on different days even
// across a DST change.
package streaks

import (
	"fmt"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar date with the time of day stripped.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDay parses a YYYY-MM-DD date.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return Day{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// Time returns local midnight of d in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Next returns the following calendar day.
func (d Day) Next() Day {
	return dayOf(time.Date(d.Year, d.Month, d.Day+1, 0, 0, 0, 0, time.UTC))
}

// Before reports whether d is earlier than o.
func (d Day) Before(o Day) bool {
	if d.Year != o.Year {
		return d.Year < o.Year
	}
	if d.Month != o.Month {
		return d.Month < o.Month
	}
	return d.Day < o.Day
}

// After reports whether d is later than o.
func (d Day) After(o Day) bool { return o.Before(d) }

// IsZero reports whether d is the zero Day.
func (d Day) IsZero() bool { return d == Day{} }

func (d Day) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func dayOf(t time.Time) Day {
	y, m, dd := t.Date()
	return Day{Year: y, Month: m, Day: dd}
}

// Calendar maps instants to days in a fixed location.
type Calendar struct {
	loc *time.Location
}

// LocalCalendar returns the calendar of the process-local time zone.
func LocalCalendar() Calendar {
	return Calendar{loc: time.Local}
}

// CalendarIn returns a calendar fixed to loc. A nil loc means time.Local.
func CalendarIn(loc *time.Location) Calendar {
	if loc == nil {
		loc = time.Local
	}
	return Calendar{loc: loc}
}

// Location returns the calendar's location.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}

// DayOf returns the calendar day containing t.
func (c Calendar) DayOf(t time.Time) Day {
	return dayOf(t.In(c.Location()))
}

// StartOfDay returns local midnight of the day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	return c.DayOf(t).Time(c.Location())
}
