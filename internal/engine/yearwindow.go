package engine

import (
	"fmt"

	"github.com/tartampluch/go-calendar/internal/config"
	"github.com/tartampluch/go-calendar/internal/dates"
)

// YearWindow is a fixed width span of years aligned on a multiple of its
// width, e.g. 2030-2039 for a width of 10.
type YearWindow struct {
	Start int
	End   int
}

// BucketYear returns the window of the given width containing year.
// Widths below one fall back to config.DefaultYearWindow.
func BucketYear(year, width int) YearWindow {
	if width <= 0 {
		width = config.DefaultYearWindow
	}
	start := dates.FloorDiv(year, width) * width
	return YearWindow{Start: start, End: start + width - 1}
}

func (w YearWindow) Width() int {
	return w.End - w.Start + 1
}

func (w YearWindow) Next() YearWindow {
	return YearWindow{Start: w.Start + w.Width(), End: w.End + w.Width()}
}

func (w YearWindow) Prev() YearWindow {
	return YearWindow{Start: w.Start - w.Width(), End: w.End - w.Width()}
}

func (w YearWindow) Contains(year int) bool {
	return year >= w.Start && year <= w.End
}

// Years lists every year of the window in ascending order.
func (w YearWindow) Years() []int {
	years := make([]int, 0, w.Width())
	for y := w.Start; y <= w.End; y++ {
		years = append(years, y)
	}
	return years
}

func (w YearWindow) String() string {
	return fmt.Sprintf(config.HeaderWindowFmt, w.Start, w.End)
}
