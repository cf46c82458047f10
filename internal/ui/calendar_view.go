package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// surface routes the actions of one rendered calendar to its engine.
type surface interface {
	navigator() *engine.Navigator[time.Time]
	inactive() bool
	next() engine.Outcome
	prev() engine.Outcome
	doubleNext() engine.Outcome
	doublePrev() engine.Outcome
	setMode(m engine.Mode) engine.Outcome
	pick(d time.Time) engine.Outcome
}

type singleSurface struct {
	nav *engine.Navigator[time.Time]
}

func (s singleSurface) navigator() *engine.Navigator[time.Time] { return s.nav }
func (s singleSurface) inactive() bool                          { return false }
func (s singleSurface) next() engine.Outcome                    { return s.nav.Next() }
func (s singleSurface) prev() engine.Outcome                    { return s.nav.Prev() }
func (s singleSurface) doubleNext() engine.Outcome              { return s.nav.DoubleNext() }
func (s singleSurface) doublePrev() engine.Outcome              { return s.nav.DoublePrev() }
func (s singleSurface) setMode(m engine.Mode) engine.Outcome    { return s.nav.SetMode(m) }
func (s singleSurface) pick(d time.Time) engine.Outcome         { return s.nav.Select(d) }

// rangeSurface is one side of a range calendar. Every action goes through
// the coordinator so that the other side can be locked.
type rangeSurface struct {
	rc   *engine.RangeCoordinator[time.Time]
	side engine.Side
}

func (s rangeSurface) navigator() *engine.Navigator[time.Time] { return s.rc.Side(s.side) }
func (s rangeSurface) inactive() bool                          { return s.rc.Inactive(s.side) }
func (s rangeSurface) next() engine.Outcome                    { return s.rc.Next(s.side) }
func (s rangeSurface) prev() engine.Outcome                    { return s.rc.Prev(s.side) }
func (s rangeSurface) doubleNext() engine.Outcome              { return s.rc.DoubleNext(s.side) }
func (s rangeSurface) doublePrev() engine.Outcome              { return s.rc.DoublePrev(s.side) }
func (s rangeSurface) setMode(m engine.Mode) engine.Outcome    { return s.rc.SetMode(s.side, m) }
func (s rangeSurface) pick(d time.Time) engine.Outcome         { return s.rc.Select(s.side, d) }

// CalendarView renders a surface as a header (paging buttons and mode
// controls) above a grid of cell buttons.
type CalendarView struct {
	Content *fyne.Container

	// OnAction runs after every action the engine did not ignore. When nil
	// the view only refreshes itself.
	OnAction func(engine.Outcome)

	surface   surface
	weekStart time.Weekday
	weekday   func(time.Weekday) string

	doublePrevBtn, prevBtn, nextBtn, doubleNextBtn *widget.Button
	controls                                       []*widget.Button
	cells                                          []*widget.Button
	cellDates                                      []time.Time
}

func newCalendarView(s surface, weekStart time.Weekday, weekday func(time.Weekday) string) *CalendarView {
	v := &CalendarView{
		Content:   container.NewStack(),
		surface:   s,
		weekStart: weekStart,
		weekday:   weekday,
	}
	v.doublePrevBtn = widget.NewButton(config.LabelDoublePrev, func() { v.act(s.doublePrev) })
	v.prevBtn = widget.NewButton(config.LabelPrev, func() { v.act(s.prev) })
	v.nextBtn = widget.NewButton(config.LabelNext, func() { v.act(s.next) })
	v.doubleNextBtn = widget.NewButton(config.LabelDoubleNext, func() { v.act(s.doubleNext) })
	v.Refresh()
	return v
}

func (v *CalendarView) act(action func() engine.Outcome) {
	out := action()
	if out == engine.OutcomeIgnored {
		return
	}
	if v.OnAction != nil {
		v.OnAction(out)
		return
	}
	v.Refresh()
}

// Refresh rebuilds the header and the grid from the engine state.
func (v *CalendarView) Refresh() {
	nav := v.surface.navigator()
	locked := v.surface.inactive()

	enable(v.doublePrevBtn, !locked && nav.CanDoublePrev())
	enable(v.prevBtn, !locked && nav.CanPrev())
	enable(v.nextBtn, !locked && nav.CanNext())
	enable(v.doubleNextBtn, !locked && nav.CanDoubleNext())

	v.controls = v.controls[:0]
	header := []fyne.CanvasObject{v.doublePrevBtn, v.prevBtn, layout.NewSpacer()}
	for _, hc := range nav.HeaderControls() {
		mode := hc.Mode
		b := widget.NewButton(hc.Label, func() {
			v.act(func() engine.Outcome { return v.surface.setMode(mode) })
		})
		b.Importance = widget.LowImportance
		enable(b, !locked && mode != nav.State().Mode)
		v.controls = append(v.controls, b)
		header = append(header, b)
	}
	header = append(header, layout.NewSpacer(), v.nextBtn, v.doubleNextBtn)

	mode := nav.State().Mode
	var grid []fyne.CanvasObject
	if mode == engine.ModeDay {
		for i := 0; i < config.DaysPerWeek; i++ {
			l := widget.NewLabel(v.weekday((v.weekStart + time.Weekday(i)) % config.DaysPerWeek))
			l.Alignment = fyne.TextAlignCenter
			l.TextStyle = fyne.TextStyle{Bold: true}
			grid = append(grid, l)
		}
	}

	cells := nav.Cells()
	v.cells = make([]*widget.Button, 0, len(cells))
	v.cellDates = make([]time.Time, 0, len(cells))
	for _, c := range cells {
		d := c.Value
		b := widget.NewButton(c.Label, func() {
			v.act(func() engine.Outcome { return v.surface.pick(d) })
		})
		b.Importance = importance(c)
		enable(b, !locked && !c.Disabled)
		v.cells = append(v.cells, b)
		v.cellDates = append(v.cellDates, d)
		grid = append(grid, b)
	}

	v.Content.Objects = []fyne.CanvasObject{container.NewBorder(
		container.NewHBox(header...), nil, nil, nil,
		container.NewGridWithColumns(columns(mode), grid...),
	)}
	v.Content.Refresh()
}

func importance(c engine.UnitCell[time.Time]) widget.Importance {
	switch {
	case c.Active:
		return widget.HighImportance
	case c.InRange:
		return widget.WarningImportance
	case c.Today:
		return widget.SuccessImportance
	case !c.InView:
		return widget.LowImportance
	}
	return widget.MediumImportance
}

func columns(m engine.Mode) int {
	switch m {
	case engine.ModeDay:
		return config.LayoutColsDay
	case engine.ModeWeek:
		return config.LayoutColsWeek
	case engine.ModeMonth:
		return config.LayoutColsMonth
	case engine.ModeQuarter, engine.ModeHalfYear:
		return config.LayoutColsYearPart
	}
	return config.LayoutColsYear
}

func enable(b *widget.Button, on bool) {
	if on {
		b.Enable()
	} else {
		b.Disable()
	}
}
