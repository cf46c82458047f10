package highlight

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"cloudeng.io/datetime"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-calendar/internal/config"
)

// FromVCard projects the BDAY and ANNIVERSARY fields of every card onto the
// given years, one single day span per field and year. Cards with a known
// year produce nothing before that year. February 29th falls on the 28th in
// common years.
func FromVCard(r io.Reader, years []int, loc *time.Location) ([]Span, error) {
	if loc == nil {
		loc = time.Local
	}
	log := slog.With(config.LogKeyComponent, config.CompHighlight)

	var spans []Span
	dec := vcard.NewDecoder(r)
	for {
		card, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// A broken card usually breaks the stream; keep what was read.
			log.Warn(config.MsgSkippedCard, config.LogKeyError, err)
			if len(spans) == 0 {
				return nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
			}
			break
		}

		name := card.PreferredValue(vcard.FieldFormattedName)
		if name == "" {
			name = card.PreferredValue(vcard.FieldName)
		}

		for _, field := range []string{vcard.FieldBirthday, vcard.FieldAnniversary} {
			value := card.PreferredValue(field)
			if value == "" {
				continue
			}
			date, yearKnown, err := parseDate(value)
			if err != nil {
				log.Debug(config.MsgSkippedDate, config.LogKeyValue, value)
				continue
			}
			for _, y := range years {
				if yearKnown && y < date.Year() {
					continue
				}
				d := onYear(date, y, loc)
				spans = append(spans, Span{Start: d, End: d, Summary: name})
			}
		}
	}
	return spans, nil
}

// onYear returns the month and day of date in year y, clamped to the length
// of the month.
func onYear(date time.Time, y int, loc *time.Location) time.Time {
	day := date.Day()
	if last := datetime.DaysInMonth(y, datetime.Month(date.Month())); day > last {
		day = last
	}
	return time.Date(y, date.Month(), day, 0, 0, 0, 0, loc)
}

// parseDate handles the vCard date forms, with or without a year.
func parseDate(value string) (time.Time, bool, error) {
	withYear := []string{
		config.DateFormatISO,
		config.DateFormatFullBasic,
		time.RFC3339,
		config.DateFormatFullT,
	}
	for _, f := range withYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// time.Parse fails on 02-29 without a year, so parse against a leap year.
	for _, f := range []string{config.DateFormatNoYearD, config.DateFormatNoYearB} {
		if t, err := time.Parse("2006"+f, "2000"+value); err == nil {
			return t, false, nil
		}
	}
	return time.Time{}, false, errors.New(config.ErrDateParse)
}
