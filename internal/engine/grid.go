package engine

import (
	"fmt"
	"strconv"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// maxWeekRows bounds the day grid; no month spans more than six week rows.
const maxWeekRows = 6

// GridOptions carries the per-render inputs of BuildGrid.
type GridOptions[D any] struct {
	Disabled Predicate[D]
	InRange  Predicate[D]
	// Selected values mark the cells containing them as active.
	// Values the adapter cannot interpret are skipped.
	Selected []D
	// YearWindow is the width of the year grid; see BucketYear.
	YearWindow int
	Locale     string
	// Today, when set, marks the cell containing it.
	Today *D
}

// BuildGrid returns the cells of the period displayed for ref in mode:
//
//	day       every day of the weeks covering ref's month
//	week      one cell per week row of that day grid
//	month     the 12 months of ref's year
//	quarter   the 4 quarters of ref's year
//	half-year the 2 halves of ref's year
//	year      every year of the window containing ref
//
// An invalid ref is replaced by today and an unknown mode by ModeDay.
// BuildGrid has no side effects and may be called concurrently.
func BuildGrid[D any](mode Mode, ref D, a dates.Adapter[D], opts GridOptions[D]) []UnitCell[D] {
	if !a.IsValid(ref) {
		ref = a.Today()
	}
	switch mode {
	case ModeWeek:
		return weekGrid(ref, a, opts)
	case ModeMonth:
		return yearPartGrid(ref, a, opts, dates.UnitMonth, config.MonthsPerYear)
	case ModeQuarter:
		return yearPartGrid(ref, a, opts, dates.UnitQuarter, config.QuartersPerYear)
	case ModeHalfYear:
		return yearPartGrid(ref, a, opts, dates.UnitHalfYear, config.HalvesPerYear)
	case ModeYear:
		return yearGrid(ref, a, opts)
	default:
		return dayGrid(ref, a, opts)
	}
}

// weekStarts returns the first day of every week row covering ref's month.
func weekStarts[D any](ref D, a dates.Adapter[D]) []D {
	last := a.EndOf(ref, dates.UnitMonth)
	w := a.StartOf(a.StartOf(ref, dates.UnitMonth), dates.UnitWeek)
	rows := make([]D, 0, maxWeekRows)
	for len(rows) < maxWeekRows && !a.IsBefore(last, w, dates.UnitDay) {
		rows = append(rows, w)
		w = a.Add(w, 1, dates.UnitWeek)
	}
	return rows
}

func dayGrid[D any](ref D, a dates.Adapter[D], opts GridOptions[D]) []UnitCell[D] {
	rows := weekStarts(ref, a)
	cells := make([]UnitCell[D], 0, len(rows)*config.DaysPerWeek)
	for _, w := range rows {
		for i := 0; i < config.DaysPerWeek; i++ {
			d := a.Add(w, i, dates.UnitDay)
			label := strconv.Itoa(a.Day(d))
			cells = append(cells, newCell(a, d, dates.UnitDay, label, a.IsSame(d, ref, dates.UnitMonth), opts))
		}
	}
	return cells
}

func weekGrid[D any](ref D, a dates.Adapter[D], opts GridOptions[D]) []UnitCell[D] {
	rows := weekStarts(ref, a)
	cells := make([]UnitCell[D], 0, len(rows))
	for _, w := range rows {
		label := fmt.Sprintf(config.LabelWeekFmt, a.Week(w))
		cells = append(cells, newCell(a, w, dates.UnitWeek, label, true, opts))
	}
	return cells
}

func yearPartGrid[D any](ref D, a dates.Adapter[D], opts GridOptions[D], unit dates.Unit, count int) []UnitCell[D] {
	start := a.StartOf(ref, dates.UnitYear)
	cells := make([]UnitCell[D], 0, count)
	for i := 0; i < count; i++ {
		d := a.Add(start, i, unit)
		var label string
		switch unit {
		case dates.UnitMonth:
			label = a.MonthShortName(a.Month(d), opts.Locale)
		case dates.UnitQuarter:
			label = fmt.Sprintf(config.LabelQuarterFmt, i+1)
		default:
			label = fmt.Sprintf(config.LabelHalfYearFmt, i+1)
		}
		cells = append(cells, newCell(a, d, unit, label, true, opts))
	}
	return cells
}

func yearGrid[D any](ref D, a dates.Adapter[D], opts GridOptions[D]) []UnitCell[D] {
	w := BucketYear(a.Year(ref), opts.YearWindow)
	first := a.Add(a.StartOf(ref, dates.UnitYear), w.Start-a.Year(ref), dates.UnitYear)
	cells := make([]UnitCell[D], 0, w.Width())
	for i := 0; i < w.Width(); i++ {
		d := a.Add(first, i, dates.UnitYear)
		cells = append(cells, newCell(a, d, dates.UnitYear, strconv.Itoa(a.Year(d)), true, opts))
	}
	return cells
}

func newCell[D any](a dates.Adapter[D], d D, u dates.Unit, label string, inView bool, opts GridOptions[D]) UnitCell[D] {
	return UnitCell[D]{
		Value:    d,
		Label:    label,
		Disabled: opts.Disabled != nil && opts.Disabled(d, u),
		InRange:  opts.InRange != nil && opts.InRange(d, u),
		Active:   containsSame(a, opts.Selected, d, u),
		InView:   inView,
		Today:    opts.Today != nil && a.IsValid(*opts.Today) && a.IsSame(*opts.Today, d, u),
	}
}

func containsSame[D any](a dates.Adapter[D], values []D, d D, u dates.Unit) bool {
	for _, v := range values {
		if a.IsValid(v) && a.IsSame(v, d, u) {
			return true
		}
	}
	return false
}
