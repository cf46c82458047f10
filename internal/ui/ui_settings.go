package ui

import (
	"log/slog"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-calendar/internal/config"
)

// settingsWidgets holds references to the form fields read back on save.
type settingsWidgets struct {
	localeSelect    *widget.Select
	weekStartSelect *widget.Select
	windowEntry     *NumericalEntry
	modeSelect      *widget.Select
	feedEntry       *widget.Entry
	portEntry       *NumericalEntry
}

// ShowSettingsWindow opens the settings dialog, or focuses it when already open.
func (app *CalendarApp) ShowSettingsWindow() {
	if app.SettingsWindow != nil {
		slog.Debug(config.MsgSettingsFocus, config.LogKeyComponent, config.CompUI)
		app.SettingsWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUI)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinSettings))
	app.SettingsWindow = w

	sw := app.newSettingsWidgets()

	calendarForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblLocale), sw.localeSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblWeekStart), sw.weekStartSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblMode), sw.modeSelect),
		widget.NewFormItem(app.GetMsg(config.TKeyLblYearWindow), sw.windowEntry),
	)
	itemFeed := widget.NewFormItem(app.GetMsg(config.TKeyLblFeed), sw.feedEntry)
	itemFeed.HintText = config.PlaceholderFeedURL
	sourcesForm := widget.NewForm(
		itemFeed,
		widget.NewFormItem(app.GetMsg(config.TKeyLblPort), sw.portEntry),
	)

	btnSave := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.saveSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	btnSave.Importance = widget.HighImportance
	btnCancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), func() { w.Close() })

	footerLabel := widget.NewLabel(app.Catalog.Message(app.Settings.Locale, config.TKeyLblFooter, map[string]any{
		"Version": config.Version,
	}))
	footerLabel.Alignment = fyne.TextAlignCenter
	footerLabel.TextStyle = fyne.TextStyle{Italic: true}

	content := container.NewPadded(container.NewVBox(
		widget.NewCard(app.GetMsg(config.TKeyWinTitle), "", calendarForm),
		widget.NewCard("", "", sourcesForm),
		container.NewGridWithColumns(config.LayoutColumnsDouble, btnCancel, btnSave),
		footerLabel,
	))

	w.SetContent(content)
	w.Resize(fyne.NewSize(config.SettingsWindowWidth, content.MinSize().Height))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.SettingsWindow = nil })
	w.Show()
}

// newSettingsWidgets builds the form fields prefilled with the current settings.
func (app *CalendarApp) newSettingsWidgets() *settingsWidgets {
	s := app.Settings
	sw := &settingsWidgets{}

	sw.localeSelect = widget.NewSelect(app.Catalog.Languages(), nil)
	sw.localeSelect.SetSelected(app.Catalog.Resolve(s.Locale))

	days := make([]string, config.DaysPerWeek)
	for d := time.Sunday; d <= time.Saturday; d++ {
		days[d] = app.Catalog.WeekdayShortName(d, s.Locale)
	}
	sw.weekStartSelect = widget.NewSelect(days, nil)
	sw.weekStartSelect.SetSelectedIndex(int(s.WeekStart))

	sw.modeSelect = widget.NewSelect(config.Modes, nil)
	sw.modeSelect.SetSelected(s.Mode)

	sw.windowEntry = NewNumericalEntry()
	sw.windowEntry.MaxDigits = len(strconv.Itoa(config.MaxYearWindow))
	sw.windowEntry.SetText(strconv.Itoa(s.YearWindow))

	sw.feedEntry = widget.NewEntry()
	sw.feedEntry.PlaceHolder = config.PlaceholderFeedURL
	sw.feedEntry.SetText(s.FeedURL)

	// An empty port disables the preview endpoint.
	sw.portEntry = NewNumericalEntry()
	sw.portEntry.MaxDigits = len(strconv.Itoa(config.MaxPort))
	sw.portEntry.SetText(s.ServerPort)
	sw.portEntry.Validator = func(text string) error {
		if text == "" {
			return nil
		}
		return config.ValidatePort(text)
	}
	return sw
}

// read converts the form into Settings.
func (sw *settingsWidgets) read() config.Settings {
	window, _ := sw.windowEntry.Value()
	return config.Settings{
		Locale:     sw.localeSelect.Selected,
		WeekStart:  time.Weekday(sw.weekStartSelect.SelectedIndex()),
		YearWindow: window,
		Mode:       sw.modeSelect.Selected,
		ServerPort: sw.portEntry.Text,
		FeedURL:    sw.feedEntry.Text,
	}
}

// saveSettings validates the form, persists it and rebuilds the main window.
// Nothing is stored when validation fails.
func (app *CalendarApp) saveSettings(sw *settingsWidgets) error {
	s := sw.read()
	if err := s.Validate(); err != nil {
		return err
	}
	slog.Info(config.MsgSettingsSaved, config.LogKeyComponent, config.CompUI)

	app.Preferences.SetString(config.PrefLocale, s.Locale)
	app.Preferences.SetInt(config.PrefWeekStart, int(s.WeekStart))
	app.Preferences.SetInt(config.PrefYearWindow, s.YearWindow)
	app.Preferences.SetString(config.PrefMode, s.Mode)
	app.Preferences.SetString(config.PrefServerPort, s.ServerPort)
	app.Preferences.SetString(config.PrefFeedURL, s.FeedURL)

	// The port is bound once at startup; a new one takes effect on restart.
	app.Settings = s
	app.Build()
	return nil
}
