package ui

import (
	"strconv"

	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"
)

// NumericalEntry is an Entry that only accepts typed digits.
// Pasted text bypasses the filter; attach a Validator for that case.
type NumericalEntry struct {
	widget.Entry

	// MaxDigits caps typed input when positive.
	MaxDigits int
}

func NewNumericalEntry() *NumericalEntry {
	entry := &NumericalEntry{}
	entry.ExtendBaseWidget(entry)
	return entry
}

// TypedRune drops non-digits and digits beyond MaxDigits.
func (e *NumericalEntry) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	if e.MaxDigits > 0 && len(e.Text) >= e.MaxDigits {
		return
	}
	e.Entry.TypedRune(r)
}

// Value parses the text. ok is false for empty or non numeric text.
func (e *NumericalEntry) Value() (n int, ok bool) {
	n, err := strconv.Atoi(e.Text)
	return n, err == nil
}

// Keyboard requests a numeric keypad on mobile devices.
func (e *NumericalEntry) Keyboard() mobile.KeyboardType {
	return mobile.NumberKeyboard
}
