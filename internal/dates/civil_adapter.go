package dates

import (
	"time"

	"cloudeng.io/datetime"
)

// CivilAdapter implements Adapter for datetime.CalendarDate, a day precision
// date without time of day or zone. Arithmetic is delegated to Base.
type CivilAdapter struct {
	Base TimeAdapter
}

var _ Adapter[datetime.CalendarDate] = CivilAdapter{}

func civilToTime(d datetime.CalendarDate) time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

func civilFromTime(t time.Time) datetime.CalendarDate {
	y, m, d := t.Date()
	return datetime.CalendarDate{Year: y, Month: datetime.Month(m), Day: d}
}

func (a CivilAdapter) Year(d datetime.CalendarDate) int  { return d.Year }
func (a CivilAdapter) Month(d datetime.CalendarDate) int { return int(d.Month) - 1 }
func (a CivilAdapter) Day(d datetime.CalendarDate) int   { return d.Day }

func (a CivilAdapter) Week(d datetime.CalendarDate) int {
	return a.Base.Week(civilToTime(d))
}

func (a CivilAdapter) MonthShortName(month int, locale string) string {
	return a.Base.MonthShortName(month, locale)
}

func (a CivilAdapter) MonthShortNames(locale string) []string {
	return a.Base.MonthShortNames(locale)
}

func (a CivilAdapter) StartOf(d datetime.CalendarDate, u Unit) datetime.CalendarDate {
	return civilFromTime(a.Base.StartOf(civilToTime(d), u))
}

func (a CivilAdapter) EndOf(d datetime.CalendarDate, u Unit) datetime.CalendarDate {
	return civilFromTime(a.Base.EndOf(civilToTime(d), u))
}

func (a CivilAdapter) Add(d datetime.CalendarDate, amount int, u Unit) datetime.CalendarDate {
	return civilFromTime(a.Base.Add(civilToTime(d), amount, u))
}

func (a CivilAdapter) IsSame(x, y datetime.CalendarDate, u Unit) bool {
	return a.Base.IsSame(civilToTime(x), civilToTime(y), u)
}

func (a CivilAdapter) IsBefore(x, y datetime.CalendarDate, u Unit) bool {
	return a.Base.IsBefore(civilToTime(x), civilToTime(y), u)
}

func (a CivilAdapter) IsBetween(d, start, end datetime.CalendarDate, u Unit, incl Inclusivity) bool {
	return a.Base.IsBetween(civilToTime(d), civilToTime(start), civilToTime(end), u, incl)
}

// IsValid rejects out of range months and days, including the zero value.
func (a CivilAdapter) IsValid(d datetime.CalendarDate) bool {
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= datetime.DaysInMonth(d.Year, d.Month)
}

func (a CivilAdapter) Today() datetime.CalendarDate {
	return civilFromTime(a.Base.Today())
}
