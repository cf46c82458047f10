package highlight

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// Format is the kind of a highlight feed.
type Format string

const (
	FormatICal  Format = "ical"
	FormatVCard Format = "vcard"
)

// Loader downloads a feed and turns it into a Set.
type Loader struct {
	Fetcher  Fetcher
	Clock    dates.Clock
	Location *time.Location
}

// Load fetches url and parses it as iCalendar or vCard depending on its
// first line.
func (l *Loader) Load(ctx context.Context, url string) (*Set, error) {
	if l.Fetcher == nil {
		return nil, errors.New(config.ErrFetcherMissing)
	}
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompHighlight,
		config.LogKeyURL, url,
	)

	rc, err := l.Fetcher.Fetch(ctx, url)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		log.Warn(config.MsgFeedFailed, config.LogKeyError, err)
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	set, format, err := l.Parse(rc)
	if err != nil {
		log.Warn(config.MsgFeedFailed, config.LogKeyError, err)
		return nil, err
	}
	log.Info(config.MsgFeedLoaded,
		config.LogKeyFormat, format,
		config.LogKeyCount, set.Len(),
		config.LogKeyDuration, time.Since(start).Milliseconds())
	return set, nil
}

// Parse detects the feed format and parses r.
func (l *Loader) Parse(r io.Reader) (*Set, Format, error) {
	br := bufio.NewReader(r)
	format, err := sniff(br)
	if err != nil {
		return nil, "", err
	}

	loc := l.Location
	if loc == nil {
		loc = time.Local
	}

	var spans []Span
	switch format {
	case FormatICal:
		spans, err = FromICal(br, loc)
	default:
		spans, err = FromVCard(br, l.years(loc), loc)
	}
	if err != nil {
		return nil, format, err
	}
	return NewSet(spans...), format, nil
}

func (l *Loader) years(loc *time.Location) []int {
	var clock dates.Clock = dates.RealClock{}
	if l.Clock != nil {
		clock = l.Clock
	}
	now := clock.Now().In(loc).Year()
	years := make([]int, 0, config.FeedYearsBack+config.FeedYearsAhead+1)
	for y := now - config.FeedYearsBack; y <= now+config.FeedYearsAhead; y++ {
		years = append(years, y)
	}
	return years
}

// sniff peeks at the first non blank line without consuming it.
func sniff(br *bufio.Reader) (Format, error) {
	for size := 64; ; size *= 2 {
		head, err := br.Peek(size)
		trimmed := bytes.TrimLeft(head, "\ufeff \t\r\n")
		if line, _, found := bytes.Cut(trimmed, []byte("\n")); found || err != nil {
			line = bytes.ToUpper(bytes.TrimSpace(line))
			switch {
			case bytes.HasPrefix(line, []byte(config.FeedBeginICal)):
				return FormatICal, nil
			case bytes.HasPrefix(line, []byte(config.FeedBeginVCard)):
				return FormatVCard, nil
			}
			if err != nil && !errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%s: %w", config.ErrFeedRead, err)
			}
			return "", errors.New(config.ErrFeedFormat)
		}
		if size >= br.Size() {
			return "", errors.New(config.ErrFeedFormat)
		}
	}
}
