package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/dates"
	"github.com/tartampluch/go-calendar/internal/engine"
)

// ChangeRecorder records OnChange callbacks.
type ChangeRecorder struct {
	mock.Mock
}

func (r *ChangeRecorder) OnChange(d time.Time) {
	r.Called(d)
}

func (r *ChangeRecorder) OnRangeChange(from, to time.Time) {
	r.Called(from, to)
}

func newNavigator(target engine.Mode, ref time.Time, rec *ChangeRecorder) *engine.Navigator[time.Time] {
	return engine.NewNavigator[time.Time](newAdapter(), engine.NavigatorOptions[time.Time]{
		Target:    target,
		Reference: ref,
		OnChange:  rec.OnChange,
	})
}

func findCell(t *testing.T, cells []engine.UnitCell[time.Time], label string) engine.UnitCell[time.Time] {
	t.Helper()
	for _, c := range cells {
		if c.Label == label && c.InView {
			return c
		}
	}
	require.Failf(t, "Cell not found", "label %q", label)
	return engine.UnitCell[time.Time]{}
}

func TestNavigator_NextMonthTwice(t *testing.T) {
	rec := &ChangeRecorder{}
	nav := newNavigator(engine.ModeDay, day(2021, time.October, 20), rec)

	assert.Equal(t, engine.OutcomeNavigated, nav.Next())
	assert.Equal(t, engine.OutcomeNavigated, nav.Next())

	ref := nav.State().ReferenceDate
	assert.Equal(t, time.December, ref.Month())
	assert.Equal(t, 2021, ref.Year())
	assert.Equal(t, engine.ModeDay, nav.State().Mode)
	assert.Equal(t, "Dec 2021", nav.Header())
	rec.AssertNotCalled(t, "OnChange", mock.Anything)
}

func TestNavigator_YearWindowJump(t *testing.T) {
	rec := &ChangeRecorder{}
	nav := newNavigator(engine.ModeYear, day(2033, time.March, 3), rec)

	assert.Equal(t, engine.YearWindow{Start: 2030, End: 2039}, nav.Window())
	assert.Equal(t, "2030-2039", nav.Header())

	assert.Equal(t, engine.OutcomeNavigated, nav.Next())
	assert.Equal(t, engine.YearWindow{Start: 2040, End: 2049}, nav.Window())
	assert.Len(t, nav.Cells(), 10)
	assert.Equal(t, "2040", nav.Cells()[0].Label)

	nav.DoubleNext()
	assert.Equal(t, engine.YearWindow{Start: 2140, End: 2149}, nav.Window())
	nav.DoublePrev()
	nav.Prev()
	assert.Equal(t, engine.YearWindow{Start: 2030, End: 2039}, nav.Window())
	rec.AssertNotCalled(t, "OnChange", mock.Anything)
}

func TestNavigator_StepSizes(t *testing.T) {
	ref := day(2021, time.October, 20)

	tests := []struct {
		mode   engine.Mode
		double bool
		want   time.Time
	}{
		{engine.ModeDay, false, day(2021, time.November, 20)},
		{engine.ModeDay, true, day(2022, time.October, 20)},
		{engine.ModeWeek, false, day(2021, time.November, 20)},
		{engine.ModeMonth, false, day(2022, time.October, 20)},
		{engine.ModeMonth, true, day(2031, time.October, 20)},
		{engine.ModeQuarter, false, day(2022, time.October, 20)},
		{engine.ModeHalfYear, true, day(2031, time.October, 20)},
		{engine.ModeYear, false, day(2031, time.October, 20)},
		{engine.ModeYear, true, day(2121, time.October, 20)},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			nav := newNavigator(tt.mode, ref, &ChangeRecorder{})
			if tt.double {
				nav.DoubleNext()
			} else {
				nav.Next()
			}
			assert.Equal(t, tt.want, nav.State().ReferenceDate)
		})
	}
}

// Switching modes through header controls never selects, for every legal
// pair of modes.
func TestNavigator_SetModeNeverSelects(t *testing.T) {
	ref := day(2021, time.October, 20)
	all := []engine.Mode{engine.ModeDay, engine.ModeWeek, engine.ModeMonth, engine.ModeQuarter, engine.ModeHalfYear, engine.ModeYear}

	for _, target := range all {
		for _, from := range target.Path() {
			for _, to := range target.Path() {
				rec := &ChangeRecorder{}
				nav := newNavigator(target, ref, rec)
				nav.SetMode(from)
				nav.SetMode(to)

				assert.Equal(t, to, nav.State().Mode, "target %s: %s -> %s", target, from, to)
				_, ok := nav.Value()
				assert.False(t, ok)
				rec.AssertNotCalled(t, "OnChange", mock.Anything)
			}
		}
	}
}

func TestNavigator_SetModeOffPathIgnored(t *testing.T) {
	tests := []struct {
		target engine.Mode
		mode   engine.Mode
	}{
		{engine.ModeMonth, engine.ModeDay},
		{engine.ModeQuarter, engine.ModeMonth},
		{engine.ModeHalfYear, engine.ModeQuarter},
		{engine.ModeYear, engine.ModeMonth},
		{engine.ModeDay, engine.ModeWeek},
		{engine.ModeDay, engine.Mode("decade")},
	}

	for _, tt := range tests {
		t.Run(string(tt.target)+"/"+string(tt.mode), func(t *testing.T) {
			nav := newNavigator(tt.target, day(2021, time.October, 20), &ChangeRecorder{})
			assert.Equal(t, engine.OutcomeIgnored, nav.SetMode(tt.mode))
			assert.Equal(t, tt.target, nav.State().Mode)
		})
	}
}

func TestNavigator_SelectDayFiresOnce(t *testing.T) {
	want := day(2021, time.December, 15)
	a := newAdapter()
	rec := &ChangeRecorder{}
	rec.On("OnChange", mock.MatchedBy(func(d time.Time) bool {
		return a.IsSame(d, want, dates.UnitDay)
	})).Return().Once()

	nav := newNavigator(engine.ModeDay, want, rec)
	cell := findCell(t, nav.Cells(), "15")

	assert.Equal(t, engine.OutcomeSelected, nav.Select(cell.Value))

	rec.AssertExpectations(t)
	rec.AssertNumberOfCalls(t, "OnChange", 1)
	value, ok := nav.Value()
	require.True(t, ok)
	assert.Equal(t, want, value)
	assert.Equal(t, []int{17}, activeIndexes(nav.Cells()))
}

// Clicking a cell of the finest mode reports a value equal to the cell at the
// mode granularity.
func TestNavigator_SelectFinestModes(t *testing.T) {
	a := newAdapter()
	ref := day(2021, time.October, 20)

	for _, target := range []engine.Mode{engine.ModeWeek, engine.ModeMonth, engine.ModeQuarter, engine.ModeHalfYear, engine.ModeYear} {
		t.Run(string(target), func(t *testing.T) {
			rec := &ChangeRecorder{}
			nav := newNavigator(target, ref, rec)
			cell := nav.Cells()[1]
			rec.On("OnChange", mock.MatchedBy(func(d time.Time) bool {
				return a.IsSame(d, cell.Value, target.Unit())
			})).Return().Once()

			assert.Equal(t, engine.OutcomeSelected, nav.Select(cell.Value))
			rec.AssertExpectations(t)
		})
	}
}

// Selecting a leading or trailing cell keeps the displayed period unless the
// cell lies outside it.
func TestNavigator_SelectKeepsPeriod(t *testing.T) {
	a := newAdapter()
	ref := day(2021, time.October, 20)

	t.Run("First week row", func(t *testing.T) {
		rec := &ChangeRecorder{}
		rec.On("OnChange", mock.Anything).Return().Once()
		nav := newNavigator(engine.ModeWeek, ref, rec)
		first := nav.Cells()[0]
		require.True(t, a.IsSame(first.Value, day(2021, time.September, 26), dates.UnitDay))

		assert.Equal(t, engine.OutcomeSelected, nav.Select(first.Value))
		assert.Equal(t, "Oct 2021", nav.Header())
		assert.Equal(t, ref, nav.State().ReferenceDate)
		value, ok := nav.Value()
		require.True(t, ok)
		assert.True(t, a.IsSame(value, first.Value, dates.UnitWeek))
		rec.AssertExpectations(t)
	})

	t.Run("Day inside the month", func(t *testing.T) {
		rec := &ChangeRecorder{}
		rec.On("OnChange", mock.Anything).Return().Once()
		nav := newNavigator(engine.ModeDay, ref, rec)

		assert.Equal(t, engine.OutcomeSelected, nav.Select(day(2021, time.October, 3)))
		assert.Equal(t, "Oct 2021", nav.Header())
	})

	t.Run("Leading day of previous month", func(t *testing.T) {
		rec := &ChangeRecorder{}
		rec.On("OnChange", mock.Anything).Return().Once()
		nav := newNavigator(engine.ModeDay, ref, rec)

		assert.Equal(t, engine.OutcomeSelected, nav.Select(day(2021, time.September, 28)))
		assert.Equal(t, "Sep 2021", nav.Header())
	})
}

func TestNavigator_DrillDown(t *testing.T) {
	rec := &ChangeRecorder{}
	nav := newNavigator(engine.ModeDay, day(2021, time.October, 20), rec)

	require.Equal(t, engine.OutcomeNavigated, nav.SetMode(engine.ModeYear))
	require.Len(t, nav.Cells(), 10)

	year := findCell(t, nav.Cells(), "2024")
	assert.Equal(t, engine.OutcomeNavigated, nav.Select(year.Value))
	assert.Equal(t, engine.ModeMonth, nav.State().Mode)
	assert.Equal(t, "2024", nav.Header())

	feb := findCell(t, nav.Cells(), "Feb")
	assert.Equal(t, engine.OutcomeNavigated, nav.Select(feb.Value))
	assert.Equal(t, engine.ModeDay, nav.State().Mode)
	assert.Equal(t, "Feb 2024", nav.Header())
	assert.Len(t, nav.Cells(), 35)

	rec.AssertNotCalled(t, "OnChange", mock.Anything)
	_, ok := nav.Value()
	assert.False(t, ok)
}

func TestNavigator_DrillDownWeek(t *testing.T) {
	nav := newNavigator(engine.ModeWeek, day(2021, time.October, 20), &ChangeRecorder{})

	nav.SetMode(engine.ModeMonth)
	nav.Select(findCell(t, nav.Cells(), "Mar").Value)

	assert.Equal(t, engine.ModeWeek, nav.State().Mode)
	assert.Equal(t, time.March, nav.State().ReferenceDate.Month())
}

func TestNavigator_Bounds(t *testing.T) {
	a := newAdapter()
	rec := &ChangeRecorder{}
	minDate, maxDate := day(2021, time.October, 10), day(2021, time.December, 20)
	nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{
		Target:    engine.ModeDay,
		Reference: day(2021, time.October, 20),
		Min:       &minDate,
		Max:       &maxDate,
		OnChange:  rec.OnChange,
	})

	assert.False(t, nav.CanPrev())
	assert.False(t, nav.CanDoublePrev())
	assert.Equal(t, engine.OutcomeIgnored, nav.Prev())

	early := findCell(t, nav.Cells(), "5")
	assert.True(t, early.Disabled)
	assert.Equal(t, engine.OutcomeIgnored, nav.Select(early.Value))
	assert.False(t, findCell(t, nav.Cells(), "10").Disabled)

	assert.True(t, nav.CanNext())
	nav.Next()
	nav.Next()
	assert.Equal(t, time.December, nav.State().ReferenceDate.Month())
	assert.False(t, nav.CanNext())
	assert.Equal(t, engine.OutcomeIgnored, nav.Next())
	assert.True(t, findCell(t, nav.Cells(), "21").Disabled)

	rec.AssertNotCalled(t, "OnChange", mock.Anything)
}

func TestNavigator_BoundsClampReference(t *testing.T) {
	a := newAdapter()
	minDate, maxDate := day(2021, time.October, 10), day(2021, time.December, 20)

	nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{
		Reference: day(2030, time.January, 1),
		Min:       &minDate,
		Max:       &maxDate,
	})
	assert.Equal(t, maxDate, nav.State().ReferenceDate)

	// Reversed bounds are swapped.
	nav = engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{
		Reference: day(2021, time.November, 1),
		Min:       &maxDate,
		Max:       &minDate,
	})
	assert.Equal(t, day(2021, time.November, 1), nav.State().ReferenceDate)
	assert.True(t, nav.CanPrev())
	assert.Equal(t, engine.OutcomeNavigated, nav.DoubleNext())
	assert.Equal(t, maxDate, nav.State().ReferenceDate)
}

func TestNavigator_DisabledPredicate(t *testing.T) {
	a := newAdapter()
	rec := &ChangeRecorder{}
	weekend := func(d time.Time, u dates.Unit) bool {
		return u == dates.UnitDay && (d.Weekday() == time.Saturday || d.Weekday() == time.Sunday)
	}
	nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{
		Reference: day(2021, time.October, 20),
		Disabled:  weekend,
		OnChange:  rec.OnChange,
	})

	sat := findCell(t, nav.Cells(), "23")
	assert.True(t, sat.Disabled)
	assert.Equal(t, engine.OutcomeIgnored, nav.Select(sat.Value))
	rec.AssertNotCalled(t, "OnChange", mock.Anything)
	_, ok := nav.Value()
	assert.False(t, ok)
}

func TestNavigator_InvalidInputs(t *testing.T) {
	a := newAdapter()

	t.Run("Reference falls back to today", func(t *testing.T) {
		nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{})
		assert.Equal(t, day(2021, time.October, 20), nav.State().ReferenceDate)
		assert.Equal(t, engine.ModeDay, nav.Target())
	})

	t.Run("Reference falls back to value", func(t *testing.T) {
		v := day(2019, time.May, 4)
		nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{Value: &v})
		assert.Equal(t, v, nav.State().ReferenceDate)
	})

	t.Run("Invalid reference keeps last good one", func(t *testing.T) {
		nav := newNavigator(engine.ModeDay, day(2021, time.October, 20), &ChangeRecorder{})
		assert.False(t, nav.SetReferenceDate(time.Time{}))
		assert.Equal(t, day(2021, time.October, 20), nav.State().ReferenceDate)
		assert.True(t, nav.SetReferenceDate(day(2022, time.January, 2)))
		assert.Equal(t, "Jan 2022", nav.Header())
	})

	t.Run("Invalid value ignored", func(t *testing.T) {
		rec := &ChangeRecorder{}
		nav := newNavigator(engine.ModeDay, day(2021, time.October, 20), rec)
		assert.False(t, nav.SetValue(time.Time{}))
		_, ok := nav.Value()
		assert.False(t, ok)
		assert.Equal(t, engine.OutcomeIgnored, nav.Select(time.Time{}))
		rec.AssertNotCalled(t, "OnChange", mock.Anything)
	})

	t.Run("Controlled value does not notify", func(t *testing.T) {
		rec := &ChangeRecorder{}
		nav := newNavigator(engine.ModeMonth, day(2021, time.October, 20), rec)
		assert.True(t, nav.SetValue(day(2021, time.March, 9)))
		assert.Equal(t, []int{2}, activeIndexes(nav.Cells()))
		assert.Equal(t, day(2021, time.October, 20), nav.State().ReferenceDate)
		nav.ClearValue()
		assert.Empty(t, activeIndexes(nav.Cells()))
		rec.AssertNotCalled(t, "OnChange", mock.Anything)
	})
}

func TestNavigator_HeaderControls(t *testing.T) {
	nav := newNavigator(engine.ModeDay, day(2021, time.October, 20), &ChangeRecorder{})

	assert.Equal(t, []engine.HeaderControl{
		{Label: "Oct", Mode: engine.ModeMonth},
		{Label: "2021", Mode: engine.ModeYear},
	}, nav.HeaderControls())

	nav.SetMode(engine.ModeMonth)
	assert.Equal(t, "2021", nav.Header())
	assert.Equal(t, []engine.HeaderControl{{Label: "2021", Mode: engine.ModeYear}}, nav.HeaderControls())

	nav.SetMode(engine.ModeYear)
	assert.Equal(t, []engine.HeaderControl{{Label: "2020-2029", Mode: engine.ModeYear}}, nav.HeaderControls())
}

func TestNavigator_LocalizedHeader(t *testing.T) {
	a := newAdapter()
	a.Names = frenchNames{}
	nav := engine.NewNavigator[time.Time](a, engine.NavigatorOptions[time.Time]{
		Reference: day(2021, time.December, 1),
		Locale:    "fr",
	})

	assert.Equal(t, "déc. 2021", nav.Header())
	nav.SetMode(engine.ModeMonth)
	assert.Equal(t, "févr.", nav.Cells()[1].Label)
}

type frenchNames struct{}

func (frenchNames) MonthShortName(month int, locale string) string {
	if locale != "fr" {
		return ""
	}
	return []string{"janv.", "févr.", "mars", "avr.", "mai", "juin", "juil.", "août", "sept.", "oct.", "nov.", "déc."}[month]
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "ignored", engine.OutcomeIgnored.String())
	assert.Equal(t, "navigated", engine.OutcomeNavigated.String())
	assert.Equal(t, "selected", engine.OutcomeSelected.String())
}
