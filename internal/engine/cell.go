package engine

import (
	"github.com/tartampluch/go-calendar/internal/dates"
)

// UnitCell is one selectable cell of a calendar grid.
type UnitCell[D any] struct {
	// Value is the start of the unit the cell stands for.
	Value D
	Label string

	Disabled bool
	// InRange is set when the cell matches the highlighted range, whatever
	// its Disabled or Active state.
	InRange bool
	// Active is set when a selected value falls inside the cell's unit.
	Active bool
	// InView is false for the leading and trailing days borrowed from the
	// neighbouring months in day mode.
	InView bool
	Today  bool
}

// Predicate decides a property of a cell. It receives the cell value and the
// granularity of the grid so that coarse cells can match on any day they
// contain.
type Predicate[D any] func(d D, u dates.Unit) bool

// Before matches cells whose unit ends before the unit of limit starts.
func Before[D any](a dates.Adapter[D], limit D) Predicate[D] {
	return func(d D, u dates.Unit) bool {
		return a.IsBefore(d, limit, u)
	}
}

// After matches cells whose unit starts after the unit of limit.
func After[D any](a dates.Adapter[D], limit D) Predicate[D] {
	return func(d D, u dates.Unit) bool {
		return a.IsBefore(limit, d, u)
	}
}

// Between matches cells within [from, to] at the grid granularity.
func Between[D any](a dates.Adapter[D], from, to D) Predicate[D] {
	return func(d D, u dates.Unit) bool {
		return a.IsBetween(d, from, to, u, dates.Inclusive)
	}
}

// AnyOf matches when any non-nil predicate matches. It returns nil when
// given no usable predicate.
func AnyOf[D any](preds ...Predicate[D]) Predicate[D] {
	var usable []Predicate[D]
	for _, p := range preds {
		if p != nil {
			usable = append(usable, p)
		}
	}
	switch len(usable) {
	case 0:
		return nil
	case 1:
		return usable[0]
	}
	return func(d D, u dates.Unit) bool {
		for _, p := range usable {
			if p(d, u) {
				return true
			}
		}
		return false
	}
}
