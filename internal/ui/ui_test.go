package ui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/highlight"
	"github.com/tartampluch/go-calendar/internal/locale"
	"github.com/tartampluch/go-calendar/internal/server"
)

// -----------------------------------------------------------------------------
// Mocks
// -----------------------------------------------------------------------------

// MockFetcher simulates the highlight feed download using testify/mock.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

const feedURL = "https://example.com/holidays.ics"

const holidayFeed = `BEGIN:VCALENDAR
VERSION:2.0
PRODID:-//Test//EN
BEGIN:VEVENT
UID:1@test
DTSTAMP:20211001T000000Z
DTSTART;VALUE=DATE:20211011
DTEND;VALUE=DATE:20211012
SUMMARY:Holiday
END:VEVENT
END:VCALENDAR
`

// -----------------------------------------------------------------------------
// Test Setup Helpers
// -----------------------------------------------------------------------------

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// setupTestApp builds a headless app showing October 2021 with default settings.
func setupTestApp(t *testing.T) (*CalendarApp, *MockFetcher) {
	a := test.NewApp()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	clock := MockClock{CurrentTime: time.Date(2021, time.October, 20, 12, 0, 0, 0, time.Local)}
	fetcher := new(MockFetcher)
	loader := &highlight.Loader{Fetcher: fetcher, Clock: clock, Location: time.Local}

	app := NewCalendarApp(a, ctx, locale.New(), server.NewGridServer("0"), loader)
	app.Clock = clock
	app.Settings = config.DefaultSettings()
	app.Build()

	return app, fetcher
}

// cellButton returns the button rendering date d.
func cellButton(t *testing.T, v *CalendarView, d time.Time) *widget.Button {
	t.Helper()
	for i, cd := range v.cellDates {
		if cd.Equal(d) {
			return v.cells[i]
		}
	}
	require.Failf(t, "Cell not found", "date %s", d)
	return nil
}

func labelTexts(v *CalendarView) []string {
	var out []string
	for _, b := range v.cells {
		out = append(out, b.Text)
	}
	return out
}

// -----------------------------------------------------------------------------
// Settings Loading
// -----------------------------------------------------------------------------

func TestLoadSettings(t *testing.T) {
	tests := []struct {
		name  string
		prefs func(p fyne.Preferences)
		want  config.Settings
	}{
		{
			name:  "Defaults",
			prefs: func(fyne.Preferences) {},
			want:  config.DefaultSettings(),
		},
		{
			name: "Stored",
			prefs: func(p fyne.Preferences) {
				p.SetString(config.PrefLocale, "fr")
				p.SetInt(config.PrefWeekStart, int(time.Monday))
				p.SetInt(config.PrefYearWindow, 20)
				p.SetString(config.PrefMode, "quarter")
				p.SetString(config.PrefServerPort, "9000")
				p.SetString(config.PrefFeedURL, feedURL)
			},
			want: config.Settings{
				Locale:     "fr",
				WeekStart:  time.Monday,
				YearWindow: 20,
				Mode:       "quarter",
				ServerPort: "9000",
				FeedURL:    feedURL,
			},
		},
		{
			name: "Week start follows locale",
			prefs: func(p fyne.Preferences) {
				p.SetString(config.PrefLocale, "de")
			},
			want: func() config.Settings {
				s := config.DefaultSettings()
				s.Locale = "de"
				s.WeekStart = time.Monday
				return s
			}(),
		},
		{
			name: "Invalid falls back to defaults",
			prefs: func(p fyne.Preferences) {
				p.SetString(config.PrefLocale, "fr")
				p.SetString(config.PrefMode, "decade")
			},
			want: config.DefaultSettings(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)
			tt.prefs(app.Preferences)
			assert.Equal(t, tt.want, app.LoadSettings())
		})
	}
}

// -----------------------------------------------------------------------------
// Single Calendar
// -----------------------------------------------------------------------------

func TestSingle_Layout(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.singleView

	assert.Len(t, v.cells, 42)
	require.Len(t, v.controls, 2)
	assert.Equal(t, "Oct", v.controls[0].Text)
	assert.Equal(t, "2021", v.controls[1].Text)
	assert.Equal(t, widget.SuccessImportance, cellButton(t, v, day(2021, time.October, 20)).Importance)
	assert.Equal(t, widget.LowImportance, cellButton(t, v, day(2021, time.September, 26)).Importance)
	assert.Equal(t, "Nothing selected", app.selectedLabel.Text)
}

func TestSingle_WeekdayHeader(t *testing.T) {
	app, _ := setupTestApp(t)
	app.Settings.Locale = "fr"
	app.Settings.WeekStart = time.Monday
	app.Build()

	border := app.singleView.Content.Objects[0].(*fyne.Container)
	grid := border.Objects[0].(*fyne.Container)

	var header []string
	for _, o := range grid.Objects[:config.DaysPerWeek] {
		header = append(header, o.(*widget.Label).Text)
	}
	assert.Equal(t, []string{"lu", "ma", "me", "je", "ve", "sa", "di"}, header)
	assert.Equal(t, "oct.", app.singleView.controls[0].Text)
}

func TestSingle_SelectDay(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Tap(cellButton(t, app.singleView, day(2021, time.October, 5)))

	v, ok := app.single.Value()
	require.True(t, ok)
	assert.Equal(t, day(2021, time.October, 5), v)
	assert.Equal(t, "Selected: 2021-10-05", app.selectedLabel.Text)
	assert.Equal(t, widget.HighImportance, cellButton(t, app.singleView, day(2021, time.October, 5)).Importance)
}

func TestSingle_Paging(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.singleView

	test.Tap(v.nextBtn)
	assert.Equal(t, "Nov", v.controls[0].Text)

	test.Tap(v.doublePrevBtn)
	assert.Equal(t, "Nov", v.controls[0].Text)
	assert.Equal(t, "2020", v.controls[1].Text)
}

func TestSingle_DrillDown(t *testing.T) {
	app, _ := setupTestApp(t)
	v := app.singleView

	test.Tap(v.controls[1])
	assert.Equal(t, engine.ModeYear, app.single.State().Mode)
	assert.Equal(t, []string{"2020", "2021", "2022", "2023", "2024", "2025", "2026", "2027", "2028", "2029"}, labelTexts(v))
	require.Len(t, v.controls, 1)
	assert.Equal(t, "2020-2029", v.controls[0].Text)
	assert.True(t, v.controls[0].Disabled(), "Current mode control is inert")

	test.Tap(cellButton(t, v, day(2025, time.January, 1)))
	assert.Equal(t, engine.ModeMonth, app.single.State().Mode)
	assert.Len(t, v.cells, 12)

	test.Tap(cellButton(t, v, day(2025, time.March, 1)))
	assert.Equal(t, engine.ModeDay, app.single.State().Mode)
	assert.Equal(t, "Mar", v.controls[0].Text)

	_, ok := app.single.Value()
	assert.False(t, ok, "Drilling down never selects")
}

// -----------------------------------------------------------------------------
// Range Calendar
// -----------------------------------------------------------------------------

func TestRange_InactiveSide(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Tap(app.fromView.controls[0])
	assert.Equal(t, engine.ModeMonth, app.rng.Side(engine.SideFrom).State().Mode)

	assert.True(t, app.toView.nextBtn.Disabled())
	assert.True(t, app.toView.controls[0].Disabled())
	for _, b := range app.toView.cells {
		assert.True(t, b.Disabled())
	}

	test.Tap(cellButton(t, app.fromView, day(2021, time.December, 1)))
	assert.Equal(t, engine.ModeDay, app.rng.Side(engine.SideFrom).State().Mode)
	assert.False(t, app.toView.nextBtn.Disabled())
	assert.False(t, cellButton(t, app.toView, day(2021, time.October, 5)).Disabled())
}

func TestRange_SelectBothEnds(t *testing.T) {
	app, _ := setupTestApp(t)

	test.Tap(cellButton(t, app.fromView, day(2021, time.October, 5)))
	assert.Equal(t, "Selected: 2021-10-05 - ", app.rangeLabel.Text)

	test.Tap(cellButton(t, app.toView, day(2021, time.October, 12)))

	r := app.rng.Values()
	require.True(t, r.HasFrom && r.HasTo)
	assert.Equal(t, day(2021, time.October, 5), r.From)
	assert.Equal(t, day(2021, time.October, 12), r.To)
	assert.Equal(t, "Selected: 2021-10-05 - 2021-10-12", app.rangeLabel.Text)

	for _, v := range []*CalendarView{app.fromView, app.toView} {
		assert.Equal(t, widget.HighImportance, cellButton(t, v, day(2021, time.October, 5)).Importance)
		assert.Equal(t, widget.WarningImportance, cellButton(t, v, day(2021, time.October, 8)).Importance)
		assert.Equal(t, widget.HighImportance, cellButton(t, v, day(2021, time.October, 12)).Importance)
	}
}

// -----------------------------------------------------------------------------
// Highlights
// -----------------------------------------------------------------------------

func TestApplyHighlights(t *testing.T) {
	app, _ := setupTestApp(t)
	holiday := day(2021, time.October, 11)

	app.ApplyHighlights(highlight.NewSet(highlight.Span{Start: holiday, End: holiday}))
	assert.Equal(t, widget.WarningImportance, cellButton(t, app.singleView, holiday).Importance)
	assert.Equal(t, widget.WarningImportance, cellButton(t, app.fromView, holiday).Importance)

	app.ApplyHighlights(nil)
	assert.Equal(t, widget.MediumImportance, cellButton(t, app.singleView, holiday).Importance)
}

func TestSyncFeed(t *testing.T) {
	app, fetcher := setupTestApp(t)
	holiday := day(2021, time.October, 11)

	fetcher.On("Fetch", mock.Anything, feedURL).
		Return(io.NopCloser(strings.NewReader(holidayFeed)), nil)

	app.Preferences.SetString(config.PrefFeedURL, feedURL)
	app.syncFeed()

	require.Eventually(t, func() bool {
		return app.highlights.Len() == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, widget.WarningImportance, cellButton(t, app.singleView, holiday).Importance)

	// Same URL: no second download.
	app.syncFeed()
	fetcher.AssertNumberOfCalls(t, "Fetch", 1)

	app.Preferences.SetString(config.PrefFeedURL, "")
	app.syncFeed()
	require.Eventually(t, func() bool {
		return app.highlights == nil
	}, time.Second, 10*time.Millisecond)
}

func TestSyncFeed_FailureRetries(t *testing.T) {
	app, fetcher := setupTestApp(t)

	fetcher.On("Fetch", mock.Anything, feedURL).
		Return(io.NopCloser(strings.NewReader("not a feed")), nil)

	app.Preferences.SetString(config.PrefFeedURL, feedURL)
	app.syncFeed()
	app.syncFeed()

	fetcher.AssertNumberOfCalls(t, "Fetch", 2)
	assert.Nil(t, app.highlights)
}

// -----------------------------------------------------------------------------
// Settings Window
// -----------------------------------------------------------------------------

func TestSettingsWindow_SingleInstance(t *testing.T) {
	app, _ := setupTestApp(t)

	app.ShowSettingsWindow()
	first := app.SettingsWindow
	require.NotNil(t, first)

	app.ShowSettingsWindow()
	assert.Same(t, first, app.SettingsWindow)

	first.Close()
	assert.Nil(t, app.SettingsWindow)
}

func TestSaveSettings(t *testing.T) {
	app, _ := setupTestApp(t)
	test.Tap(cellButton(t, app.singleView, day(2021, time.October, 5)))

	sw := app.newSettingsWidgets()
	assert.Equal(t, "en", sw.localeSelect.Selected)
	assert.Equal(t, "10", sw.windowEntry.Text)
	assert.Equal(t, config.DefaultPort, sw.portEntry.Text)

	sw.localeSelect.SetSelected("fr")
	sw.weekStartSelect.SetSelectedIndex(int(time.Monday))
	sw.feedEntry.SetText(feedURL)
	require.NoError(t, app.saveSettings(sw))

	assert.Equal(t, "fr", app.Preferences.String(config.PrefLocale))
	assert.Equal(t, int(time.Monday), app.Preferences.Int(config.PrefWeekStart))
	assert.Equal(t, feedURL, app.Preferences.String(config.PrefFeedURL))
	assert.Equal(t, app.LoadSettings(), app.Settings)

	v, ok := app.single.Value()
	require.True(t, ok, "Selection survives a rebuild")
	assert.Equal(t, day(2021, time.October, 5), v)
	assert.Equal(t, "oct.", app.singleView.controls[0].Text)
}

func TestSaveSettings_ModeChange(t *testing.T) {
	app, _ := setupTestApp(t)

	sw := app.newSettingsWidgets()
	sw.modeSelect.SetSelected("half-year")
	require.NoError(t, app.saveSettings(sw))

	assert.Equal(t, engine.ModeHalfYear, app.single.Target())
	assert.Equal(t, []string{"H1", "H2"}, labelTexts(app.singleView))

	test.Tap(app.singleView.cells[1])
	assert.Equal(t, "Selected: H2 2021", app.selectedLabel.Text)
}

func TestSaveSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		edit func(sw *settingsWidgets)
	}{
		{"Port out of range", func(sw *settingsWidgets) { sw.portEntry.SetText("70000") }},
		{"Empty year window", func(sw *settingsWidgets) { sw.windowEntry.SetText("") }},
		{"Feed scheme", func(sw *settingsWidgets) { sw.feedEntry.SetText("ftp://example.com/cal.ics") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)
			sw := app.newSettingsWidgets()
			tt.edit(sw)

			assert.Error(t, app.saveSettings(sw))
			assert.Empty(t, app.Preferences.String(config.PrefServerPort), "Nothing is stored")
			assert.Equal(t, config.DefaultSettings(), app.Settings)
		})
	}
}

func TestSaveSettings_PortDisabled(t *testing.T) {
	app, _ := setupTestApp(t)
	sw := app.newSettingsWidgets()
	sw.portEntry.SetText("")

	assert.NoError(t, sw.portEntry.Validate())
	require.NoError(t, app.saveSettings(sw))
	assert.Equal(t, "", app.Settings.ServerPort)
}

// -----------------------------------------------------------------------------
// Preview Endpoint
// -----------------------------------------------------------------------------

func TestPublish_Integration(t *testing.T) {
	const port = "18099"

	app, _ := setupTestApp(t)
	app.Server = server.NewGridServer(port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = app.Server.Start(ctx) }()

	url := "http://127.0.0.1:" + port + "/"
	get := func() server.Snapshot {
		resp, err := http.Get(url)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var snap server.Snapshot
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
		return snap
	}

	test.Tap(cellButton(t, app.singleView, day(2021, time.October, 5)))

	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 50*time.Millisecond)

	snap := get()
	assert.Equal(t, "en", snap.Locale)
	assert.Equal(t, []string{"2021-10-05"}, snap.Values)
	require.Len(t, snap.Views, 1)
	assert.Equal(t, "Oct 2021", snap.Views[0].Header)

	app.tabs.SelectIndex(tabRange)
	snap = get()
	assert.Len(t, snap.Views, 2)
	assert.Equal(t, []string{"", ""}, snap.Values)
}
