package dates

import (
	"time"

	"cloudeng.io/datetime"
	"github.com/tartampluch/go-calendar/internal/config"
)

// TimeAdapter implements Adapter for time.Time.
//
// The zero value is usable: weeks start on Sunday, "today" comes from the
// system clock in the local time zone and month names are English.
type TimeAdapter struct {
	WeekStart time.Weekday
	Location  *time.Location // Location used by Today; nil means time.Local.
	Clock     Clock
	Names     Names
}

var _ Adapter[time.Time] = TimeAdapter{}

func (a TimeAdapter) Year(d time.Time) int  { return d.Year() }
func (a TimeAdapter) Month(d time.Time) int { return int(d.Month()) - 1 }
func (a TimeAdapter) Day(d time.Time) int   { return d.Day() }

// Week returns the ISO week when weeks start on Monday. Otherwise week 1 is
// the week containing January 1st.
func (a TimeAdapter) Week(d time.Time) int {
	if a.WeekStart == time.Monday {
		_, w := d.ISOWeek()
		return w
	}
	start := a.StartOf(d, UnitWeek)
	end := start.AddDate(0, 0, config.DaysPerWeek-1)
	if end.Year() > start.Year() {
		return 1
	}
	jan1 := time.Date(end.Year(), time.January, 1, 0, 0, 0, 0, d.Location())
	first := a.StartOf(jan1, UnitWeek)
	return (civilDays(start)-civilDays(first))/config.DaysPerWeek + 1
}

func (a TimeAdapter) MonthShortName(month int, locale string) string {
	month = floorMod(month, config.MonthsPerYear)
	if a.Names != nil {
		if name := a.Names.MonthShortName(month, locale); name != "" {
			return name
		}
	}
	return time.Month(month + 1).String()[:3]
}

func (a TimeAdapter) MonthShortNames(locale string) []string {
	names := make([]string, config.MonthsPerYear)
	for i := range names {
		names[i] = a.MonthShortName(i, locale)
	}
	return names
}

func (a TimeAdapter) StartOf(d time.Time, u Unit) time.Time {
	y, m, day := d.Date()
	loc := d.Location()
	switch u {
	case UnitWeek:
		offset := floorMod(int(d.Weekday())-int(a.WeekStart), config.DaysPerWeek)
		return time.Date(y, m, day-offset, 0, 0, 0, 0, loc)
	case UnitMonth:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case UnitQuarter:
		return time.Date(y, m-(m-1)%config.MonthsPerQtr, 1, 0, 0, 0, 0, loc)
	case UnitHalfYear:
		return time.Date(y, m-(m-1)%config.MonthsPerHalf, 1, 0, 0, 0, 0, loc)
	case UnitYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, day, 0, 0, 0, 0, loc)
	}
}

// EndOf returns the last instant of the unit containing d.
func (a TimeAdapter) EndOf(d time.Time, u Unit) time.Time {
	return a.Add(a.StartOf(d, u), 1, u).Add(-time.Nanosecond)
}

// Add shifts d by amount units. Month based units keep the day of month,
// clamped to the length of the target month.
func (a TimeAdapter) Add(d time.Time, amount int, u Unit) time.Time {
	switch u {
	case UnitWeek:
		return d.AddDate(0, 0, amount*config.DaysPerWeek)
	case UnitMonth:
		return addMonths(d, amount)
	case UnitQuarter:
		return addMonths(d, amount*config.MonthsPerQtr)
	case UnitHalfYear:
		return addMonths(d, amount*config.MonthsPerHalf)
	case UnitYear:
		return addMonths(d, amount*config.MonthsPerYear)
	default:
		return d.AddDate(0, 0, amount)
	}
}

// IsSame and IsBefore compare the calendar dates of x and y, each read in
// its own zone, so a local today matches the UTC cell of the same date.
func (a TimeAdapter) IsSame(x, y time.Time, u Unit) bool {
	return civilDays(a.StartOf(x, u)) == civilDays(a.StartOf(y, u))
}

func (a TimeAdapter) IsBefore(x, y time.Time, u Unit) bool {
	return civilDays(a.StartOf(x, u)) < civilDays(a.StartOf(y, u))
}

// IsBetween compares at granularity u. Reversed bounds are swapped.
func (a TimeAdapter) IsBetween(d, start, end time.Time, u Unit, incl Inclusivity) bool {
	if a.IsBefore(end, start, u) {
		start, end = end, start
	}
	withStart, withEnd := incl.bounds()
	afterStart := a.IsBefore(start, d, u) || (withStart && a.IsSame(d, start, u))
	beforeEnd := a.IsBefore(d, end, u) || (withEnd && a.IsSame(d, end, u))
	return afterStart && beforeEnd
}

func (a TimeAdapter) IsValid(d time.Time) bool {
	return !d.IsZero()
}

func (a TimeAdapter) Today() time.Time {
	var clock Clock = RealClock{}
	if a.Clock != nil {
		clock = a.Clock
	}
	loc := a.Location
	if loc == nil {
		loc = time.Local
	}
	return a.StartOf(clock.Now().In(loc), UnitDay)
}

func addMonths(d time.Time, months int) time.Time {
	y, m, day := d.Date()
	total := int(m) - 1 + months
	year := y + FloorDiv(total, config.MonthsPerYear)
	month := floorMod(total, config.MonthsPerYear) + 1
	if last := datetime.DaysInMonth(year, datetime.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, d.Hour(), d.Minute(), d.Second(), d.Nanosecond(), d.Location())
}

// civilDays returns the number of days between the Unix epoch and the
// calendar date of t, ignoring its time of day and zone offset.
func civilDays(t time.Time) int {
	y, m, d := t.Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
