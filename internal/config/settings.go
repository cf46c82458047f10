package config

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"cloudeng.io/errors"
	"golang.org/x/text/language"
)

// Modes lists the picker granularities accepted by Settings.Mode.
var Modes = []string{"day", "week", "month", "quarter", "half-year", "year"}

// Settings holds the user-tunable options of the application.
// Values come from CLI flags first, then stored preferences.
type Settings struct {
	Locale     string
	WeekStart  time.Weekday
	YearWindow int
	Mode       string
	ServerPort string // Empty disables the preview endpoint.
	FeedURL    string // Optional iCalendar feed used for highlighting.
}

// DefaultSettings returns the settings used on first launch.
func DefaultSettings() Settings {
	return Settings{
		Locale:     DefaultLocale,
		WeekStart:  DefaultWeekStart,
		YearWindow: DefaultYearWindow,
		Mode:       DefaultMode,
		ServerPort: DefaultPort,
	}
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	errs := &errors.M{}

	if _, err := language.Parse(s.Locale); err != nil {
		errs.Append(fmt.Errorf("%s %q: %w", ErrLocaleTag, s.Locale, err))
	}
	if s.WeekStart < time.Sunday || s.WeekStart > time.Saturday {
		errs.Append(fmt.Errorf("%s: %d", ErrWeekStart, s.WeekStart))
	}
	if s.YearWindow < 1 || s.YearWindow > MaxYearWindow {
		errs.Append(fmt.Errorf("%s: %d", ErrYearWindow, s.YearWindow))
	}
	if !validMode(s.Mode) {
		errs.Append(fmt.Errorf("%s: %q", ErrUnknownMode, s.Mode))
	}
	if s.ServerPort != "" {
		errs.Append(ValidatePort(s.ServerPort))
	}
	if s.FeedURL != "" {
		u, err := url.Parse(s.FeedURL)
		if err != nil || (u.Scheme != SchemeHTTP && u.Scheme != SchemeHTTPS) {
			errs.Append(fmt.Errorf("%s: %q", ErrFeedURL, s.FeedURL))
		}
	}
	return errs.Err()
}

// ValidatePort checks that port is a decimal number in the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrPortNumber, err)
	}
	if n < MinPort || n > MaxPort {
		return fmt.Errorf("%s: %d", ErrPortRange, n)
	}
	return nil
}

func validMode(m string) bool {
	for _, v := range Modes {
		if v == m {
			return true
		}
	}
	return false
}
