package engine

import (
	"log/slog"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// Side identifies one end of a range calendar.
type Side int

const (
	SideNone Side = iota
	SideFrom
	SideTo
)

func (s Side) String() string {
	switch s {
	case SideFrom:
		return "from"
	case SideTo:
		return "to"
	default:
		return "none"
	}
}

func (s Side) other() Side {
	switch s {
	case SideFrom:
		return SideTo
	case SideTo:
		return SideFrom
	default:
		return SideNone
	}
}

// RangeState is the observable state of a two sided range calendar.
type RangeState[D any] struct {
	From, To   NavigationState[D]
	ActiveSide Side
}

// RangeValue is the selected range. An end is only meaningful when its Has
// flag is set.
type RangeValue[D any] struct {
	From, To       D
	HasFrom, HasTo bool
}

// RangeOptions configures a RangeCoordinator.
type RangeOptions[D any] struct {
	Target Mode
	// FromReference and ToReference default to the matching end of Value,
	// then to today.
	FromReference, ToReference D
	Value                      RangeValue[D]
	Min, Max                   *D
	Disabled                   Predicate[D]
	InRange                    Predicate[D]
	YearWindow                 int
	Locale                     string
	// OnChange fires after a selection when both ends are set.
	OnChange func(from, to D)
}

// RangeCoordinator drives the two navigators of a range calendar and keeps
// their values ordered. While one side is drilling through coarser modes
// the other side is inactive and rejects every action.
type RangeCoordinator[D any] struct {
	a        dates.Adapter[D]
	from, to *Navigator[D]
	active   Side
	inRange  Predicate[D]
	onChange func(from, to D)
	log      *slog.Logger
}

// NewRangeCoordinator returns a coordinator with both sides in the target mode.
func NewRangeCoordinator[D any](a dates.Adapter[D], opts RangeOptions[D]) *RangeCoordinator[D] {
	side := func(ref D, value D, has bool) *Navigator[D] {
		o := NavigatorOptions[D]{
			Target:     opts.Target,
			Reference:  ref,
			Min:        opts.Min,
			Max:        opts.Max,
			Disabled:   opts.Disabled,
			YearWindow: opts.YearWindow,
			Locale:     opts.Locale,
		}
		if has {
			o.Value = &value
		}
		return NewNavigator(a, o)
	}
	rc := &RangeCoordinator[D]{
		a:        a,
		from:     side(opts.FromReference, opts.Value.From, opts.Value.HasFrom),
		to:       side(opts.ToReference, opts.Value.To, opts.Value.HasTo),
		inRange:  opts.InRange,
		onChange: opts.OnChange,
		log:      slog.With(config.LogKeyComponent, config.CompRange),
	}
	rc.order(SideFrom)
	rc.refreshMarks()
	return rc
}

// Side returns the navigator of s for rendering. Actions must go through the
// coordinator.
func (rc *RangeCoordinator[D]) Side(s Side) *Navigator[D] {
	switch s {
	case SideFrom:
		return rc.from
	case SideTo:
		return rc.to
	default:
		return nil
	}
}

func (rc *RangeCoordinator[D]) State() RangeState[D] {
	return RangeState[D]{
		From:       rc.from.State(),
		To:         rc.to.State(),
		ActiveSide: rc.active,
	}
}

func (rc *RangeCoordinator[D]) ActiveSide() Side { return rc.active }

// Inactive reports whether s must reject interaction.
func (rc *RangeCoordinator[D]) Inactive(s Side) bool {
	return rc.active != SideNone && rc.active != s
}

// Values returns both ends of the range.
func (rc *RangeCoordinator[D]) Values() RangeValue[D] {
	var v RangeValue[D]
	v.From, v.HasFrom = rc.from.Value()
	v.To, v.HasTo = rc.to.Value()
	return v
}

func (rc *RangeCoordinator[D]) Next(s Side) Outcome {
	return rc.navigate(s, (*Navigator[D]).Next)
}

func (rc *RangeCoordinator[D]) Prev(s Side) Outcome {
	return rc.navigate(s, (*Navigator[D]).Prev)
}

func (rc *RangeCoordinator[D]) DoubleNext(s Side) Outcome {
	return rc.navigate(s, (*Navigator[D]).DoubleNext)
}

func (rc *RangeCoordinator[D]) DoublePrev(s Side) Outcome {
	return rc.navigate(s, (*Navigator[D]).DoublePrev)
}

// SetMode switches the mode of s and makes it the active side.
func (rc *RangeCoordinator[D]) SetMode(s Side, m Mode) Outcome {
	return rc.navigate(s, func(n *Navigator[D]) Outcome { return n.SetMode(m) })
}

// Select forwards a cell activation to s. A selection in the target mode sets
// the value of s; when that breaks from <= to, the other end is overwritten
// with the same value. OnChange fires once both ends are set.
func (rc *RangeCoordinator[D]) Select(s Side, d D) Outcome {
	n := rc.usable(s)
	if n == nil {
		return OutcomeIgnored
	}
	out := n.Select(d)
	switch out {
	case OutcomeNavigated:
		rc.track(s, n)
	case OutcomeSelected:
		rc.order(s)
		rc.refreshMarks()
		v := rc.Values()
		if v.HasFrom && v.HasTo && rc.onChange != nil {
			rc.onChange(v.From, v.To)
		}
	}
	return out
}

// SetValues replaces both ends without firing OnChange.
func (rc *RangeCoordinator[D]) SetValues(v RangeValue[D]) {
	set := func(n *Navigator[D], d D, has bool) {
		if !has || !n.SetValue(d) {
			n.ClearValue()
		}
	}
	set(rc.from, v.From, v.HasFrom)
	set(rc.to, v.To, v.HasTo)
	rc.order(SideFrom)
	rc.refreshMarks()
}

func (rc *RangeCoordinator[D]) navigate(s Side, action func(*Navigator[D]) Outcome) Outcome {
	n := rc.usable(s)
	if n == nil {
		return OutcomeIgnored
	}
	out := action(n)
	if out == OutcomeNavigated {
		rc.track(s, n)
	}
	return out
}

func (rc *RangeCoordinator[D]) usable(s Side) *Navigator[D] {
	n := rc.Side(s)
	if n == nil {
		return nil
	}
	if rc.Inactive(s) {
		rc.log.Debug(config.MsgSideInactive,
			config.LogKeySide, s,
			config.LogKeyReason, config.ReasonDisabled)
		return nil
	}
	return n
}

// track makes s the active side while it is away from its target mode.
func (rc *RangeCoordinator[D]) track(s Side, n *Navigator[D]) {
	if n.State().Mode == n.Target() {
		rc.active = SideNone
		return
	}
	rc.active = s
}

// order restores from <= to after s changed, keeping the value of s.
func (rc *RangeCoordinator[D]) order(s Side) {
	v := rc.Values()
	if !v.HasFrom || !v.HasTo {
		return
	}
	unit := rc.from.Target().Unit()
	if !rc.a.IsBefore(v.To, v.From, unit) {
		return
	}
	changed := rc.Side(s)
	kept, _ := changed.Value()
	rc.Side(s.other()).SetValue(kept)
	rc.log.Debug(config.MsgRangeReordered, config.LogKeySide, s)
}

func (rc *RangeCoordinator[D]) refreshMarks() {
	v := rc.Values()
	var marks []D
	if v.HasFrom {
		marks = append(marks, v.From)
	}
	if v.HasTo {
		marks = append(marks, v.To)
	}
	var span Predicate[D]
	if v.HasFrom && v.HasTo {
		span = Between(rc.a, v.From, v.To)
	}
	inRange := AnyOf(rc.inRange, span)
	rc.from.setMarks(marks, inRange)
	rc.to.setMarks(marks, inRange)
}
