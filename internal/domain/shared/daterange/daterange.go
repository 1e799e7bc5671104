package daterange

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Layout is the calendar date wire format (HTML date inputs, remote API).
const Layout = "2006-01-02"

var (
	ErrInvalidRange = errors.New("daterange: end must be after start")
	ErrInvalidDate  = errors.New("daterange: invalid calendar date")
)

// ParseDate reads a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	t, err := time.ParseInLocation(Layout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return t, nil
}

// FormatDate is the inverse of ParseDate; zero times format as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(Layout)
}

// MonthsBetween counts calendar-month boundaries crossed from start to end,
// clamped at zero. Jan 31 -> Feb 1 counts as one month.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months < 0 {
		return 0
	}
	return months
}

// YearsBetween is the difference of calendar years; months and days are ignored.
func YearsBetween(start, end time.Time) int {
	return end.Year() - start.Year()
}

// DateRange represents a half-open interval [Start, End) of calendar dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: start.UTC(), End: end.UTC()}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

func (dr DateRange) Validate() error {
	if dr.End.IsZero() || dr.Start.IsZero() {
		return ErrInvalidRange
	}
	if !dr.End.After(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Months() int {
	return MonthsBetween(dr.Start, dr.End)
}

func (dr DateRange) Years() int {
	return YearsBetween(dr.Start, dr.End)
}
