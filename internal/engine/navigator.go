package engine

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// Outcome tells the caller what a user action did.
type Outcome int

const (
	// OutcomeIgnored means nothing changed.
	OutcomeIgnored Outcome = iota
	// OutcomeNavigated means the displayed period or mode changed; the value did not.
	OutcomeNavigated
	// OutcomeSelected means the value changed and the change callback fired.
	OutcomeSelected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNavigated:
		return "navigated"
	case OutcomeSelected:
		return "selected"
	default:
		return "ignored"
	}
}

// NavigationState is the observable state of a calendar surface.
type NavigationState[D any] struct {
	Mode Mode
	// ReferenceDate anchors the displayed period. It is not a selection.
	ReferenceDate D
}

// HeaderControl is a header label; activating it switches the surface to Mode.
type HeaderControl struct {
	Label string
	Mode  Mode
}

// NavigatorOptions configures a Navigator. Only the adapter is mandatory.
type NavigatorOptions[D any] struct {
	// Target is the granularity of the value; it defaults to ModeDay.
	Target Mode
	// Reference is the initial reference date. When invalid, Value and
	// then today are used instead.
	Reference D
	Value     *D
	Min, Max  *D
	Disabled  Predicate[D]
	InRange   Predicate[D]
	// YearWindow is the number of years shown in year mode.
	YearWindow int
	Locale     string
	// OnChange receives every selection made in the target mode.
	OnChange func(D)
}

// Navigator is the state machine of a single calendar surface.
// It is owned by one surface and is not safe for concurrent use.
type Navigator[D any] struct {
	a        dates.Adapter[D]
	target   Mode
	state    NavigationState[D]
	value    *D
	min, max *D
	disabled Predicate[D]
	inRange  Predicate[D]
	window   int
	locale   string
	onChange func(D)
	log      *slog.Logger

	// Set by RangeCoordinator to render both ends of a range.
	marks      []D
	marksSet   bool
	rangeMarks Predicate[D]
}

// NewNavigator returns a Navigator showing opts.Target.
func NewNavigator[D any](a dates.Adapter[D], opts NavigatorOptions[D]) *Navigator[D] {
	n := &Navigator[D]{
		a:        a,
		target:   opts.Target,
		disabled: opts.Disabled,
		inRange:  opts.InRange,
		window:   opts.YearWindow,
		locale:   opts.Locale,
		onChange: opts.OnChange,
		log:      slog.With(config.LogKeyComponent, config.CompEngine),
	}
	if !n.target.Valid() {
		n.target = ModeDay
	}
	if n.window <= 0 {
		n.window = config.DefaultYearWindow
	}
	n.min = n.validOrNil(opts.Min)
	n.max = n.validOrNil(opts.Max)
	if n.min != nil && n.max != nil && a.IsBefore(*n.max, *n.min, dates.UnitDay) {
		n.min, n.max = n.max, n.min
	}
	n.value = n.validOrNil(opts.Value)

	ref := opts.Reference
	if !a.IsValid(ref) {
		if n.value != nil {
			ref = *n.value
		} else {
			ref = a.Today()
		}
		n.log.Debug(config.MsgInvalidRef, config.LogKeyMode, n.target)
	}
	n.state = NavigationState[D]{Mode: n.target, ReferenceDate: n.clamp(n.target, ref)}
	return n
}

func (n *Navigator[D]) validOrNil(d *D) *D {
	if d == nil || !n.a.IsValid(*d) {
		return nil
	}
	v := *d
	return &v
}

func (n *Navigator[D]) State() NavigationState[D] { return n.state }
func (n *Navigator[D]) Target() Mode              { return n.target }
func (n *Navigator[D]) Locale() string            { return n.locale }

// Value returns the selected value, if any.
func (n *Navigator[D]) Value() (D, bool) {
	if n.value == nil {
		var zero D
		return zero, false
	}
	return *n.value, true
}

// Window returns the year window containing the reference date.
func (n *Navigator[D]) Window() YearWindow {
	return BucketYear(n.a.Year(n.state.ReferenceDate), n.window)
}

func (n *Navigator[D]) Next() Outcome       { return n.move(1, false) }
func (n *Navigator[D]) Prev() Outcome       { return n.move(-1, false) }
func (n *Navigator[D]) DoubleNext() Outcome { return n.move(1, true) }
func (n *Navigator[D]) DoublePrev() Outcome { return n.move(-1, true) }

func (n *Navigator[D]) CanNext() bool       { return n.canMove(1, false) }
func (n *Navigator[D]) CanPrev() bool       { return n.canMove(-1, false) }
func (n *Navigator[D]) CanDoubleNext() bool { return n.canMove(1, true) }
func (n *Navigator[D]) CanDoublePrev() bool { return n.canMove(-1, true) }

func (n *Navigator[D]) stepped(steps int, double bool) D {
	ref := step(n.a, n.state.Mode, n.state.ReferenceDate, steps, double, n.window)
	return n.clamp(n.state.Mode, ref)
}

func (n *Navigator[D]) canMove(steps int, double bool) bool {
	cur, _ := period(n.a, n.state.Mode, n.state.ReferenceDate, n.window)
	next, _ := period(n.a, n.state.Mode, n.stepped(steps, double), n.window)
	return !n.a.IsSame(cur, next, dates.UnitDay)
}

func (n *Navigator[D]) move(steps int, double bool) Outcome {
	if !n.canMove(steps, double) {
		return OutcomeIgnored
	}
	n.state.ReferenceDate = n.stepped(steps, double)
	return OutcomeNavigated
}

// clamp keeps the period displayed for ref overlapping [min, max].
func (n *Navigator[D]) clamp(mode Mode, ref D) D {
	start, end := period(n.a, mode, ref, n.window)
	if n.min != nil && n.a.IsBefore(end, *n.min, dates.UnitDay) {
		return *n.min
	}
	if n.max != nil && n.a.IsBefore(*n.max, start, dates.UnitDay) {
		return *n.max
	}
	return ref
}

// SetMode switches the displayed granularity, e.g. when a header label is
// activated. Only modes on the target's path are accepted. The value is
// never changed and OnChange is never called.
func (n *Navigator[D]) SetMode(m Mode) Outcome {
	if !n.target.onPath(m) {
		n.log.Debug(config.MsgModeIgnored,
			config.LogKeyMode, m,
			config.LogKeyTarget, n.target,
			config.LogKeyReason, config.ReasonIllegalMode)
		return OutcomeIgnored
	}
	if m == n.state.Mode {
		return OutcomeIgnored
	}
	n.state.Mode = m
	return OutcomeNavigated
}

// Select handles activation of the cell whose value is d.
//
// In the target mode d becomes the value and OnChange fires once; the
// displayed period only follows d when d lies outside it. In a
// coarser mode the surface drills down one step towards the target and
// shows d's period; the value is untouched. Invalid, disabled or out of
// bounds cells are ignored.
func (n *Navigator[D]) Select(d D) Outcome {
	if !n.a.IsValid(d) {
		n.logIgnored(config.ReasonInvalid)
		return OutcomeIgnored
	}
	unit := n.state.Mode.Unit()
	if n.outOfBounds(d, unit) {
		n.logIgnored(config.ReasonOutOfBounds)
		return OutcomeIgnored
	}
	if n.disabled != nil && n.disabled(d, unit) {
		n.logIgnored(config.ReasonDisabled)
		return OutcomeIgnored
	}

	if n.state.Mode != n.target {
		next := n.target.finer(n.state.Mode)
		n.state = NavigationState[D]{Mode: next, ReferenceDate: n.clamp(next, d)}
		return OutcomeNavigated
	}

	v := d
	n.value = &v
	// A week row straddling the month start still belongs to the month.
	start, end := period(n.a, n.state.Mode, n.state.ReferenceDate, n.window)
	if n.a.IsBefore(d, start, unit) || n.a.IsBefore(end, d, unit) {
		n.state.ReferenceDate = n.clamp(n.state.Mode, d)
	}
	if n.onChange != nil {
		n.onChange(d)
	}
	return OutcomeSelected
}

func (n *Navigator[D]) logIgnored(reason string) {
	n.log.Debug(config.MsgSelectIgnored,
		config.LogKeyMode, n.state.Mode,
		config.LogKeyReason, reason)
}

func (n *Navigator[D]) outOfBounds(d D, u dates.Unit) bool {
	if n.min != nil && n.a.IsBefore(d, *n.min, u) {
		return true
	}
	return n.max != nil && n.a.IsBefore(*n.max, d, u)
}

// SetValue replaces the value without firing OnChange, as done when the
// value is controlled by the caller. Invalid values are ignored.
func (n *Navigator[D]) SetValue(d D) bool {
	if !n.a.IsValid(d) {
		n.log.Debug(config.MsgInvalidValue, config.LogKeyMode, n.target)
		return false
	}
	v := d
	n.value = &v
	return true
}

// ClearValue removes the selection without firing OnChange.
func (n *Navigator[D]) ClearValue() {
	n.value = nil
}

// SetReferenceDate moves the displayed period. Invalid dates keep the
// current reference.
func (n *Navigator[D]) SetReferenceDate(d D) bool {
	if !n.a.IsValid(d) {
		n.log.Debug(config.MsgInvalidRef, config.LogKeyMode, n.state.Mode)
		return false
	}
	n.state.ReferenceDate = n.clamp(n.state.Mode, d)
	return true
}

// Header returns the title of the displayed period: "Oct 2021" in day and
// week mode, "2021" in month, quarter and half-year mode, "2030-2039" in
// year mode.
func (n *Navigator[D]) Header() string {
	ref := n.state.ReferenceDate
	switch n.state.Mode {
	case ModeDay, ModeWeek:
		return fmt.Sprintf(config.HeaderMonthFmt, n.a.MonthShortName(n.a.Month(ref), n.locale), n.a.Year(ref))
	case ModeYear:
		return n.Window().String()
	default:
		return strconv.Itoa(n.a.Year(ref))
	}
}

// HeaderControls returns the header labels of the current mode together
// with the mode each of them switches to.
func (n *Navigator[D]) HeaderControls() []HeaderControl {
	ref := n.state.ReferenceDate
	year := strconv.Itoa(n.a.Year(ref))
	switch n.state.Mode {
	case ModeDay, ModeWeek:
		return []HeaderControl{
			{Label: n.a.MonthShortName(n.a.Month(ref), n.locale), Mode: ModeMonth},
			{Label: year, Mode: ModeYear},
		}
	case ModeYear:
		return []HeaderControl{{Label: n.Window().String(), Mode: ModeYear}}
	default:
		return []HeaderControl{{Label: year, Mode: ModeYear}}
	}
}

// Cells returns the grid of the current mode and reference date.
func (n *Navigator[D]) Cells() []UnitCell[D] {
	today := n.a.Today()
	return BuildGrid(n.state.Mode, n.state.ReferenceDate, n.a, GridOptions[D]{
		Disabled:   n.disabledPredicate(),
		InRange:    AnyOf(n.inRange, n.rangeMarks),
		Selected:   n.selected(),
		YearWindow: n.window,
		Locale:     n.locale,
		Today:      &today,
	})
}

func (n *Navigator[D]) disabledPredicate() Predicate[D] {
	var bounds Predicate[D]
	if n.min != nil || n.max != nil {
		bounds = n.outOfBounds
	}
	return AnyOf(bounds, n.disabled)
}

func (n *Navigator[D]) selected() []D {
	if n.marksSet {
		return n.marks
	}
	if n.value != nil {
		return []D{*n.value}
	}
	return nil
}

// setMarks overrides the active cells and adds a range highlight.
func (n *Navigator[D]) setMarks(marks []D, inRange Predicate[D]) {
	n.marks = marks
	n.marksSet = true
	n.rangeMarks = inRange
}
