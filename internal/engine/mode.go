// Package engine computes calendar grids and drives calendar navigation.
//
// It is independent of any rendering toolkit and of any date library: all date
// arithmetic goes through a dates.Adapter. Grids are pure functions of their
// inputs; Navigator and RangeCoordinator hold the per-surface state.
package engine

import (
	"fmt"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// Mode is the granularity a calendar surface displays and selects.
type Mode string

const (
	ModeDay      Mode = "day"
	ModeWeek     Mode = "week"
	ModeMonth    Mode = "month"
	ModeQuarter  Mode = "quarter"
	ModeHalfYear Mode = "half-year"
	ModeYear     Mode = "year"
)

// ParseMode converts a mode name such as "half-year" into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(s)
	if !m.Valid() {
		return "", fmt.Errorf("%s: %q", config.ErrUnknownMode, s)
	}
	return m, nil
}

func (m Mode) Valid() bool {
	switch m {
	case ModeDay, ModeWeek, ModeMonth, ModeQuarter, ModeHalfYear, ModeYear:
		return true
	}
	return false
}

// Unit returns the comparison granularity of cells in this mode.
func (m Mode) Unit() dates.Unit {
	switch m {
	case ModeWeek:
		return dates.UnitWeek
	case ModeMonth:
		return dates.UnitMonth
	case ModeQuarter:
		return dates.UnitQuarter
	case ModeHalfYear:
		return dates.UnitHalfYear
	case ModeYear:
		return dates.UnitYear
	default:
		return dates.UnitDay
	}
}

// Path returns the modes a picker for m moves through, coarsest first.
// A week picker for instance drills year -> month -> week.
func (m Mode) Path() []Mode {
	switch m {
	case ModeWeek:
		return []Mode{ModeYear, ModeMonth, ModeWeek}
	case ModeMonth:
		return []Mode{ModeYear, ModeMonth}
	case ModeQuarter:
		return []Mode{ModeYear, ModeQuarter}
	case ModeHalfYear:
		return []Mode{ModeYear, ModeHalfYear}
	case ModeYear:
		return []Mode{ModeYear}
	default:
		return []Mode{ModeYear, ModeMonth, ModeDay}
	}
}

// onPath reports whether mode is reachable by a picker targeting m.
func (m Mode) onPath(mode Mode) bool {
	for _, p := range m.Path() {
		if p == mode {
			return true
		}
	}
	return false
}

// finer returns the mode following current on the path to m. It returns m
// itself when current is m or is not on the path.
func (m Mode) finer(current Mode) Mode {
	path := m.Path()
	for i := 0; i < len(path)-1; i++ {
		if path[i] == current {
			return path[i+1]
		}
	}
	return m
}

// step moves ref by n displayed periods, or by n coarser periods when double
// is set. Year mode pages whole windows.
func step[D any](a dates.Adapter[D], mode Mode, ref D, n int, double bool, window int) D {
	switch mode {
	case ModeDay, ModeWeek:
		if double {
			return a.Add(ref, n, dates.UnitYear)
		}
		return a.Add(ref, n, dates.UnitMonth)
	case ModeYear:
		if double {
			return a.Add(ref, n*window*config.DoubleStepWindows, dates.UnitYear)
		}
		return a.Add(ref, n*window, dates.UnitYear)
	default:
		if double {
			return a.Add(ref, n*window, dates.UnitYear)
		}
		return a.Add(ref, n, dates.UnitYear)
	}
}

// period returns the first and last instant of the period displayed for ref.
func period[D any](a dates.Adapter[D], mode Mode, ref D, window int) (D, D) {
	switch mode {
	case ModeDay, ModeWeek:
		return a.StartOf(ref, dates.UnitMonth), a.EndOf(ref, dates.UnitMonth)
	case ModeYear:
		w := BucketYear(a.Year(ref), window)
		start := a.Add(a.StartOf(ref, dates.UnitYear), w.Start-a.Year(ref), dates.UnitYear)
		return start, a.EndOf(a.Add(start, w.Width()-1, dates.UnitYear), dates.UnitYear)
	default:
		return a.StartOf(ref, dates.UnitYear), a.EndOf(ref, dates.UnitYear)
	}
}
