// Package dates defines the date-arithmetic contract used by the calendar
// engine and ships adapters for concrete date representations.
//
// The engine never manipulates a date value directly: every comparison,
// truncation and increment goes through an Adapter. Supporting a new date
// library therefore means implementing Adapter once for its type.
package dates

// Unit is the granularity at which dates are truncated, shifted and compared.
type Unit int

const (
	UnitDay Unit = iota
	UnitWeek
	UnitMonth
	UnitQuarter
	UnitHalfYear
	UnitYear
)

var unitNames = [...]string{"day", "week", "month", "quarter", "half-year", "year"}

func (u Unit) String() string {
	if u < UnitDay || u > UnitYear {
		return "unknown"
	}
	return unitNames[u]
}

// Inclusivity controls whether the bounds of IsBetween are part of the range.
// The first character applies to the start bound, the second to the end bound.
type Inclusivity string

const (
	Exclusive      Inclusivity = "()"
	Inclusive      Inclusivity = "[]"
	InclusiveStart Inclusivity = "[)"
	InclusiveEnd   Inclusivity = "(]"
)

// bounds reports whether the start and end bounds are inclusive.
// Malformed values are treated as Exclusive.
func (i Inclusivity) bounds() (start, end bool) {
	if len(i) != 2 {
		return false, false
	}
	return i[0] == '[', i[1] == ']'
}

// Adapter is the capability set the engine needs from a date library.
// D is the library's date handle; the engine treats it as opaque.
//
// Implementations must be total: every method returns a usable result for
// any value accepted by IsValid.
type Adapter[D any] interface {
	Year(d D) int
	// Month returns the 0-based month (January = 0).
	Month(d D) int
	Day(d D) int
	// Week returns the week-of-year number of d.
	Week(d D) int

	// MonthShortName returns the abbreviated name of the 0-based month.
	MonthShortName(month int, locale string) string
	MonthShortNames(locale string) []string

	StartOf(d D, u Unit) D
	EndOf(d D, u Unit) D
	Add(d D, amount int, u Unit) D

	IsSame(a, b D, u Unit) bool
	IsBefore(a, b D, u Unit) bool
	IsBetween(d, start, end D, u Unit, incl Inclusivity) bool

	// IsValid reports whether d can be interpreted by the adapter.
	IsValid(d D) bool
	// Today returns the start of the current day.
	Today() D
}

// Names supplies locale-keyed month names to adapters.
// An empty result lets the adapter fall back to English abbreviations.
type Names interface {
	MonthShortName(month int, locale string) string
}

// FloorDiv divides rounding towards negative infinity, so that negative
// months and years wrap like any other value.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - FloorDiv(a, b)*b
}
