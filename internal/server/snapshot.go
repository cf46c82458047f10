package server

import (
	"github.com/tartampluch/go-calendar/internal/engine"
)

// Cell is the wire form of engine.UnitCell.
type Cell struct {
	Date     string `json:"date"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled,omitempty"`
	InRange  bool   `json:"in_range,omitempty"`
	Active   bool   `json:"active,omitempty"`
	InView   bool   `json:"in_view"`
	Today    bool   `json:"today,omitempty"`
}

// View is the observable state of one calendar surface.
type View struct {
	Mode      string `json:"mode"`
	Reference string `json:"reference"`
	Header    string `json:"header"`
	CanPrev   bool   `json:"can_prev"`
	CanNext   bool   `json:"can_next"`
	Inactive  bool   `json:"inactive,omitempty"`
	Cells     []Cell `json:"cells"`
}

// Snapshot is the document served by GridServer. Single calendars have one
// view, range calendars two.
type Snapshot struct {
	Locale string   `json:"locale"`
	Values []string `json:"values,omitempty"`
	Views  []View   `json:"views"`
}

// NewView renders a navigator, formatting dates with format.
func NewView[D any](n *engine.Navigator[D], format func(D) string) View {
	st := n.State()
	cells := n.Cells()
	v := View{
		Mode:      string(st.Mode),
		Reference: format(st.ReferenceDate),
		Header:    n.Header(),
		CanPrev:   n.CanPrev(),
		CanNext:   n.CanNext(),
		Cells:     make([]Cell, 0, len(cells)),
	}
	for _, c := range cells {
		v.Cells = append(v.Cells, Cell{
			Date:     format(c.Value),
			Label:    c.Label,
			Disabled: c.Disabled,
			InRange:  c.InRange,
			Active:   c.Active,
			InView:   c.InView,
			Today:    c.Today,
		})
	}
	return v
}

// SingleSnapshot renders a single calendar.
func SingleSnapshot[D any](n *engine.Navigator[D], format func(D) string) Snapshot {
	snap := Snapshot{
		Locale: n.Locale(),
		Views:  []View{NewView(n, format)},
	}
	if v, ok := n.Value(); ok {
		snap.Values = []string{format(v)}
	}
	return snap
}

// RangeSnapshot renders both sides of a range calendar. Unset ends are empty
// strings.
func RangeSnapshot[D any](rc *engine.RangeCoordinator[D], format func(D) string) Snapshot {
	from := NewView(rc.Side(engine.SideFrom), format)
	from.Inactive = rc.Inactive(engine.SideFrom)
	to := NewView(rc.Side(engine.SideTo), format)
	to.Inactive = rc.Inactive(engine.SideTo)

	vals := rc.Values()
	values := make([]string, 2)
	if vals.HasFrom {
		values[0] = format(vals.From)
	}
	if vals.HasTo {
		values[1] = format(vals.To)
	}
	return Snapshot{
		Locale: rc.Side(engine.SideFrom).Locale(),
		Values: values,
		Views:  []View{from, to},
	}
}
