// Package locale resolves locale tags to the bundled translations and serves
// the locale-keyed names used by the calendar (month abbreviations, first
// day of week, UI labels).
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-calendar/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog holds the loaded translations. It is safe for concurrent use.
type Catalog struct {
	bundle    *i18n.Bundle
	matcher   language.Matcher
	languages []string // languages[0] is the default

	mu         sync.Mutex
	localizers map[string]*i18n.Localizer
}

// New loads every embedded locale file. Files that fail to load are logged
// and skipped; the catalog always contains at least the default language.
func New() *Catalog {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	c := &Catalog{
		bundle:     bundle,
		languages:  []string{config.DefaultLocale},
		localizers: make(map[string]*i18n.Localizer),
	}

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		c.matcher = language.NewMatcher([]language.Tag{language.English})
		return c
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		langCode := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if langCode == "" {
			slog.Warn(config.MsgLocaleBadName,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, langCode,
			config.LogKeyFile, name,
		)
		if langCode != config.DefaultLocale {
			c.languages = append(c.languages, langCode)
		}
	}

	tags := make([]language.Tag, 0, len(c.languages))
	for _, l := range c.languages {
		tags = append(tags, language.Make(l))
	}
	c.matcher = language.NewMatcher(tags)
	return c
}

// Languages returns the loaded languages, default first.
func (c *Catalog) Languages() []string {
	return append([]string(nil), c.languages...)
}

// Resolve maps any BCP 47 tag to the closest loaded language.
// Malformed or unsupported tags resolve to the default language.
func (c *Catalog) Resolve(locale string) string {
	tag, err := language.Parse(locale)
	if err != nil {
		return c.languages[0]
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf == language.No || idx >= len(c.languages) {
		return c.languages[0]
	}
	return c.languages[idx]
}

func (c *Catalog) localizer(locale string) *i18n.Localizer {
	lang := c.Resolve(locale)
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.localizers[lang]
	if !ok {
		l = i18n.NewLocalizer(c.bundle, lang)
		c.localizers[lang] = l
	}
	return l
}

// Message translates key for locale, returning key itself when missing.
func (c *Catalog) Message(locale, key string, data map[string]any) string {
	msg, err := c.localizer(locale).Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// MonthShortName returns the abbreviated 0-based month, or "" when the
// locale has no entry so that date adapters can apply their own fallback.
func (c *Catalog) MonthShortName(month int, locale string) string {
	if month < 0 || month >= config.MonthsPerYear {
		return ""
	}
	key := fmt.Sprintf(config.TKeyMonthShortFmt, month+1)
	if msg := c.Message(locale, key, nil); msg != key {
		return msg
	}
	return ""
}

// WeekdayShortName returns the abbreviated weekday, falling back to the
// first two letters of its English name.
func (c *Catalog) WeekdayShortName(day time.Weekday, locale string) string {
	key := fmt.Sprintf(config.TKeyWeekdayShortFmt, int(day))
	if msg := c.Message(locale, key, nil); msg != key {
		return msg
	}
	return day.String()[:2]
}

// FirstDayOfWeek returns the conventional first weekday of locale.
func (c *Catalog) FirstDayOfWeek(locale string) time.Weekday {
	n, err := strconv.Atoi(c.Message(locale, config.TKeyFirstDay, nil))
	if err != nil || n < int(time.Sunday) || n > int(time.Saturday) {
		return config.DefaultWeekStart
	}
	return time.Weekday(n)
}
