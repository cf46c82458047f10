package highlight

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-calendar/internal/config"
)

// FromICal reads every VEVENT of an iCalendar stream as a day span.
// Floating and all-day dates are read in loc. DTEND is exclusive, so an
// all-day event on 2021-12-24 yields the single day span [24, 24].
// Malformed events are skipped and logged.
func FromICal(r io.Reader, loc *time.Location) ([]Span, error) {
	if loc == nil {
		loc = time.Local
	}
	log := slog.With(config.LogKeyComponent, config.CompHighlight)

	var spans []Span
	dec := ical.NewDecoder(r)
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return spans, fmt.Errorf("%s: %w", config.ErrICalParse, err)
		}

		for _, ev := range cal.Events() {
			start, err := ev.DateTimeStart(loc)
			if err != nil || start.IsZero() {
				log.Debug(config.MsgSkippedEvent, config.LogKeyError, err)
				continue
			}
			end, err := ev.DateTimeEnd(loc)
			if err != nil {
				log.Debug(config.MsgSkippedEvent, config.LogKeyError, err)
				continue
			}

			last := start
			if end.After(start) {
				last = end.Add(-time.Nanosecond)
			}
			summary, _ := ev.Props.Text(ical.PropSummary)
			spans = append(spans, Span{
				Start:   midnight(start.In(loc)),
				End:     midnight(last.In(loc)),
				Summary: summary,
			})
		}
	}
	return spans, nil
}
