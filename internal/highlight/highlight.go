// Package highlight turns external calendars into cell highlights.
//
// iCalendar events become day spans and vCard birthdays and anniversaries are
// projected onto the years around today. The resulting Set plugs into the
// engine as an InRange predicate.
package highlight

import (
	"time"

	"github.com/tartampluch/go-calendar/internal/dates"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// Span is an inclusive range of days, stored as midnights.
type Span struct {
	Start   time.Time
	End     time.Time
	Summary string
}

// Set is an immutable collection of spans.
type Set struct {
	spans []Span
}

// NewSet returns a Set of the given spans. Spans ending before they start are
// swapped.
func NewSet(spans ...Span) *Set {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.End.Before(s.Start) {
			s.Start, s.End = s.End, s.Start
		}
		out = append(out, s)
	}
	return &Set{spans: out}
}

func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.spans)
}

// Spans returns a copy of the spans.
func (s *Set) Spans() []Span {
	if s == nil {
		return nil
	}
	return append([]Span(nil), s.spans...)
}

// Predicate matches a cell when any span shares at least one day with the
// unit containing the cell value. A nil or empty Set yields a nil predicate.
func (s *Set) Predicate(a dates.Adapter[time.Time]) engine.Predicate[time.Time] {
	if s.Len() == 0 {
		return nil
	}
	return func(d time.Time, u dates.Unit) bool {
		first, last := a.StartOf(d, u), a.EndOf(d, u)
		for _, sp := range s.spans {
			if !a.IsBefore(sp.End, first, dates.UnitDay) && !a.IsBefore(last, sp.Start, dates.UnitDay) {
				return true
			}
		}
		return false
	}
}

// Summaries returns the summaries of the spans covering day d.
func (s *Set) Summaries(a dates.Adapter[time.Time], d time.Time) []string {
	if s == nil {
		return nil
	}
	var out []string
	for _, sp := range s.spans {
		if a.IsBetween(d, sp.Start, sp.End, dates.UnitDay, dates.Inclusive) && sp.Summary != "" {
			out = append(out, sp.Summary)
		}
	}
	return out
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
