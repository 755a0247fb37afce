// Package chrono normalizes source-local timestamps into timezone-aware
// instants.
package chrono

import (
	"fmt"
	"time"
)

// MustLoad returns the named IANA location or panics. Every grid source
// publishes in a single fixed operator timezone, so a missing zone entry
// is unrecoverable.
func MustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

// ParseError reports a timestamp that did not match its declared layout.
type ParseError struct {
	Text   string
	Layout string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %q with layout %q: %s", e.Text, e.Layout, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseLocal parses a zone-less timestamp per layout and attaches loc.
func ParseLocal(text, layout string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(layout, text, loc)
	if err != nil {
		return time.Time{}, &ParseError{Text: text, Layout: layout, Err: err}
	}
	return t, nil
}

// HourBucket resolves a 1-based hour-of-day index against midnight of
// date in loc. Price tables label hours 1..24 for a calendar day; hour 1
// is the interval starting at 00:00 local time.
func HourBucket(date time.Time, hourIndex int, loc *time.Location) (time.Time, error) {
	if hourIndex < 1 || hourIndex > 24 {
		return time.Time{}, fmt.Errorf("hour index %d out of range 1..24", hourIndex)
	}
	return time.Date(date.Year(), date.Month(), date.Day(), hourIndex-1, 0, 0, 0, loc), nil
}

// NowIn is the current instant in the source's operating timezone.
// Sources that publish no timestamp of their own (the AESO interchange
// table) stamp records with this.
func NowIn(loc *time.Location) time.Time {
	return time.Now().In(loc)
}
