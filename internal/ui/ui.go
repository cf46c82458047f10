package ui

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
	"github.com/tartampluch/go-calendar/internal/engine"
	"github.com/tartampluch/go-calendar/internal/highlight"
	"github.com/tartampluch/go-calendar/internal/locale"
	"github.com/tartampluch/go-calendar/internal/server"
)

const (
	tabSingle = iota
	tabRange
)

// CalendarApp owns the main window: a single date picker and a range picker
// sharing the same settings and highlight feed.
type CalendarApp struct {
	App            fyne.App
	Window         fyne.Window
	SettingsWindow fyne.Window
	Preferences    fyne.Preferences
	Catalog        *locale.Catalog
	Ctx            context.Context

	Server *server.GridServer // nil disables the preview endpoint
	Loader *highlight.Loader
	Clock  dates.Clock

	// Settings are applied by Build. Run loads them from preferences when
	// they are still zero.
	Settings config.Settings

	adapter    dates.TimeAdapter
	highlights *highlight.Set
	inRange    engine.Predicate[time.Time]

	single     *engine.Navigator[time.Time]
	rng        *engine.RangeCoordinator[time.Time]
	singleView *CalendarView
	fromView   *CalendarView
	toView     *CalendarView

	tabs          *container.AppTabs
	selectedLabel *widget.Label
	rangeLabel    *widget.Label

	feedChan  chan struct{}
	loadedURL string // owned by highlightWorker
}

// NewCalendarApp wires the application dependencies.
func NewCalendarApp(a fyne.App, ctx context.Context, catalog *locale.Catalog, srv *server.GridServer, loader *highlight.Loader) *CalendarApp {
	return &CalendarApp{
		App:         a,
		Preferences: a.Preferences(),
		Catalog:     catalog,
		Ctx:         ctx,
		Server:      srv,
		Loader:      loader,
		Clock:       dates.RealClock{},
		feedChan:    make(chan struct{}, config.ChannelBufferSize),
	}
}

// Run starts the background services and blocks on the main window.
func (app *CalendarApp) Run() {
	if app.Settings == (config.Settings{}) {
		app.Settings = app.LoadSettings()
	}
	app.Build()
	app.watchPreferences()

	if app.Server != nil {
		go func() {
			if err := app.Server.Start(app.Ctx); err != nil {
				slog.Error(config.ErrServerStartup,
					config.LogKeyError, err,
					config.LogKeyComponent, config.CompUI)

				app.App.SendNotification(fyne.NewNotification(
					config.TitleStartupError,
					fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
			}
		}()
	}

	go app.highlightWorker()
	app.requestFeed()

	app.Window.ShowAndRun()
}

// LoadSettings reads the stored preferences. Invalid combinations fall back
// to the defaults as a whole.
func (app *CalendarApp) LoadSettings() config.Settings {
	def := config.DefaultSettings()
	lang := app.Preferences.StringWithFallback(config.PrefLocale, def.Locale)
	s := config.Settings{
		Locale:     lang,
		WeekStart:  time.Weekday(app.Preferences.IntWithFallback(config.PrefWeekStart, int(app.Catalog.FirstDayOfWeek(lang)))),
		YearWindow: app.Preferences.IntWithFallback(config.PrefYearWindow, def.YearWindow),
		Mode:       app.Preferences.StringWithFallback(config.PrefMode, def.Mode),
		ServerPort: app.Preferences.StringWithFallback(config.PrefServerPort, def.ServerPort),
		FeedURL:    app.Preferences.String(config.PrefFeedURL),
	}
	if err := s.Validate(); err != nil {
		slog.Warn(config.MsgSettingsInvalid,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
		return def
	}
	return s
}

// GetMsg translates key in the current locale.
func (app *CalendarApp) GetMsg(key string) string {
	return app.Catalog.Message(app.Settings.Locale, key, nil)
}

// Build (re)creates the engines and the window content from app.Settings.
// Selected values survive a rebuild.
func (app *CalendarApp) Build() {
	s := app.Settings
	app.adapter = dates.TimeAdapter{
		WeekStart: s.WeekStart,
		Clock:     app.Clock,
		Names:     app.Catalog,
	}
	app.inRange = app.highlights.Predicate(app.adapter)
	mode, err := engine.ParseMode(s.Mode)
	if err != nil {
		mode = engine.ModeDay
	}

	opts := engine.NavigatorOptions[time.Time]{
		Target:     mode,
		InRange:    app.highlightPredicate,
		YearWindow: s.YearWindow,
		Locale:     s.Locale,
		OnChange:   app.onSingleChange,
	}
	if app.single != nil {
		if v, ok := app.single.Value(); ok {
			opts.Value = &v
		}
	}
	app.single = engine.NewNavigator[time.Time](app.adapter, opts)

	var prev engine.RangeValue[time.Time]
	if app.rng != nil {
		prev = app.rng.Values()
	}
	app.rng = engine.NewRangeCoordinator[time.Time](app.adapter, engine.RangeOptions[time.Time]{
		Target:     mode,
		Value:      prev,
		InRange:    app.highlightPredicate,
		YearWindow: s.YearWindow,
		Locale:     s.Locale,
		OnChange:   app.onRangeChange,
	})

	weekday := func(d time.Weekday) string { return app.Catalog.WeekdayShortName(d, s.Locale) }
	app.singleView = newCalendarView(singleSurface{nav: app.single}, s.WeekStart, weekday)
	app.fromView = newCalendarView(rangeSurface{rc: app.rng, side: engine.SideFrom}, s.WeekStart, weekday)
	app.toView = newCalendarView(rangeSurface{rc: app.rng, side: engine.SideTo}, s.WeekStart, weekday)
	for _, v := range []*CalendarView{app.singleView, app.fromView, app.toView} {
		v.OnAction = func(engine.Outcome) { app.refresh() }
	}

	app.selectedLabel = widget.NewLabel("")
	app.rangeLabel = widget.NewLabel("")

	selected := tabSingle
	if app.tabs != nil {
		selected = app.tabs.SelectedIndex()
	}
	rangePane := container.NewGridWithColumns(config.LayoutColumnsDouble,
		widget.NewCard(app.GetMsg(config.TKeyLblFrom), "", app.fromView.Content),
		widget.NewCard(app.GetMsg(config.TKeyLblTo), "", app.toView.Content),
	)
	app.tabs = container.NewAppTabs(
		container.NewTabItem(app.GetMsg(config.TKeyTabSingle),
			container.NewBorder(nil, app.selectedLabel, nil, nil, app.singleView.Content)),
		container.NewTabItem(app.GetMsg(config.TKeyTabRange),
			container.NewBorder(nil, app.rangeLabel, nil, nil, rangePane)),
	)
	app.tabs.SelectIndex(selected)
	app.tabs.OnSelected = func(*container.TabItem) { app.publish() }

	settingsBtn := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSettings), theme.SettingsIcon(), app.ShowSettingsWindow)
	content := container.NewBorder(container.NewHBox(settingsBtn), nil, nil, nil, app.tabs)

	if app.Window == nil {
		app.Window = app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
		app.Window.Resize(fyne.NewSize(config.MainWindowWidth, config.MainWindowHeight))
		app.Window.SetMaster()
	} else {
		app.Window.SetTitle(app.GetMsg(config.TKeyWinTitle))
	}
	app.Window.SetContent(content)
	app.refresh()
}

// highlightPredicate reads app.inRange at call time so that a feed loaded
// after Build still shows up.
func (app *CalendarApp) highlightPredicate(d time.Time, u dates.Unit) bool {
	return app.inRange != nil && app.inRange(d, u)
}

func (app *CalendarApp) onSingleChange(v time.Time) {
	slog.Debug(config.MsgSelectionChange,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyValue, v.Format(config.DateFormatISO))
}

func (app *CalendarApp) onRangeChange(from, to time.Time) {
	slog.Debug(config.MsgSelectionChange,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyValue, from.Format(config.DateFormatISO)+config.RangeSeparator+to.Format(config.DateFormatISO))
}

// refresh re-renders every view, the value labels and the preview snapshot.
func (app *CalendarApp) refresh() {
	app.singleView.Refresh()
	app.fromView.Refresh()
	app.toView.Refresh()
	app.selectedLabel.SetText(app.singleText())
	app.rangeLabel.SetText(app.rangeText())
	app.publish()
}

func (app *CalendarApp) singleText() string {
	v, ok := app.single.Value()
	if !ok {
		return app.GetMsg(config.TKeyLblNone)
	}
	return app.Catalog.Message(app.Settings.Locale, config.TKeyLblSelected, map[string]any{
		"Value": app.formatValue(v),
	})
}

func (app *CalendarApp) rangeText() string {
	r := app.rng.Values()
	if !r.HasFrom && !r.HasTo {
		return app.GetMsg(config.TKeyLblNone)
	}
	parts := make([]string, 2)
	if r.HasFrom {
		parts[0] = app.formatValue(r.From)
	}
	if r.HasTo {
		parts[1] = app.formatValue(r.To)
	}
	return app.Catalog.Message(app.Settings.Locale, config.TKeyLblSelected, map[string]any{
		"Value": strings.Join(parts, config.RangeSeparator),
	})
}

// formatValue prints a value at the granularity of the picker.
func (app *CalendarApp) formatValue(v time.Time) string {
	a, year := app.adapter, v.Year()
	switch app.single.Target() {
	case engine.ModeWeek:
		return fmt.Sprintf(config.HeaderMonthFmt, fmt.Sprintf(config.LabelWeekFmt, a.Week(v)), year)
	case engine.ModeMonth:
		return fmt.Sprintf(config.HeaderMonthFmt, a.MonthShortName(a.Month(v), app.Settings.Locale), year)
	case engine.ModeQuarter:
		return fmt.Sprintf(config.HeaderMonthFmt, fmt.Sprintf(config.LabelQuarterFmt, a.Month(v)/config.MonthsPerQtr+1), year)
	case engine.ModeHalfYear:
		return fmt.Sprintf(config.HeaderMonthFmt, fmt.Sprintf(config.LabelHalfYearFmt, a.Month(v)/config.MonthsPerHalf+1), year)
	case engine.ModeYear:
		return strconv.Itoa(year)
	}
	return v.Format(config.DateFormatISO)
}

// publish sends the visible calendar to the preview endpoint.
func (app *CalendarApp) publish() {
	if app.Server == nil || app.tabs == nil {
		return
	}
	format := func(d time.Time) string { return d.Format(config.DateFormatISO) }
	snap := server.SingleSnapshot(app.single, format)
	if app.tabs.SelectedIndex() == tabRange {
		snap = server.RangeSnapshot(app.rng, format)
	}
	if err := app.Server.Publish(snap); err != nil {
		slog.Error(config.ErrSnapshotEncode,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyError, err)
	}
}

// ApplyHighlights replaces the highlighted spans and re-renders. A nil set
// clears them. Must run on the UI goroutine.
func (app *CalendarApp) ApplyHighlights(set *highlight.Set) {
	app.highlights = set
	app.inRange = set.Predicate(app.adapter)
	if app.single != nil {
		app.refresh()
	}
}

// watchPreferences wakes the highlight worker on every preference change.
func (app *CalendarApp) watchPreferences() {
	app.Preferences.AddChangeListener(app.requestFeed)
}

func (app *CalendarApp) requestFeed() {
	select {
	case app.feedChan <- struct{}{}:
	default:
	}
}

// highlightWorker downloads the highlight feed whenever its URL changes.
func (app *CalendarApp) highlightWorker() {
	for {
		select {
		case <-app.Ctx.Done():
			return
		case <-app.feedChan:
			app.syncFeed()
		}
	}
}

func (app *CalendarApp) syncFeed() {
	url := app.Preferences.String(config.PrefFeedURL)
	if url == app.loadedURL {
		return
	}
	app.loadedURL = url

	if url == "" || app.Loader == nil {
		slog.Info(config.MsgHighlightsClear, config.LogKeyComponent, config.CompUI)
		fyne.Do(func() { app.ApplyHighlights(nil) })
		return
	}

	set, err := app.Loader.Load(app.Ctx, url)
	if err != nil {
		slog.Warn(config.MsgFeedFailed,
			config.LogKeyComponent, config.CompUI,
			config.LogKeyURL, url,
			config.LogKeyError, err)
		// Retry on the next preference change.
		app.loadedURL = ""
		return
	}
	fyne.Do(func() { app.ApplyHighlights(set) })
}
