package kernel

import (
	"fmt"
	"time"

	"depot/internal/pkg/errs"
)

// DateLayout is the ISO 8601 calendar date layout used on the wire.
const DateLayout = "2006-01-02"

// compactLayout is the layout of the day component of an order number.
const compactLayout = "20060102"

// ErrDateIsNotConstructed is returned by Validate for the zero Date.
var ErrDateIsNotConstructed = errs.NewValueIsRequiredError("date")

// Date is a calendar day. It carries no time of day and no time zone: two
// dates are equal when year, month and day match.
type Date struct {
	t time.Time
}

// NewDate builds a date from its components. Overflowing components are
// rejected instead of being normalised the way time.Date does.
func NewDate(year int, month time.Month, day int) (Date, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return Date{}, errs.NewValueIsInvalidErrorWithCause(
			"date is invalid",
			fmt.Errorf("%04d-%02d-%02d is not a calendar day", year, month, day),
		)
	}
	return Date{t: t}, nil
}

// MustNewDate is NewDate for literals known to be valid.
func MustNewDate(year int, month time.Month, day int) Date {
	d, err := NewDate(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t as observed in t's own location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses "YYYY-MM-DD".
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date is invalid", err)
	}
	return DateOf(t), nil
}

// ParseCompactDate parses "YYYYMMDD", the day prefix of an order number.
func ParseCompactDate(s string) (Date, error) {
	t, err := time.Parse(compactLayout, s)
	if err != nil {
		return Date{}, errs.NewValueIsInvalidErrorWithCause("date is invalid", err)
	}
	return DateOf(t), nil
}

// Time returns midnight UTC of the day.
func (d Date) Time() time.Time {
	return d.t
}

// String returns "YYYY-MM-DD".
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateLayout)
}

// Compact returns "YYYYMMDD".
func (d Date) Compact() string {
	return d.t.Format(compactLayout)
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.t.IsZero()
}

// Before reports whether d is an earlier day than other.
func (d Date) Before(other Date) bool {
	return d.t.Before(other.t)
}

// After reports whether d is a later day than other.
func (d Date) After(other Date) bool {
	return d.t.After(other.t)
}

// IsEqual reports whether both values name the same day.
func (d Date) IsEqual(other Date) bool {
	return d.t.Equal(other.t)
}

// AddDays shifts the date by n days.
func (d Date) AddDays(n int) Date {
	return Date{t: d.t.AddDate(0, 0, n)}
}

// Validate rejects the zero value.
func (d Date) Validate() error {
	if d.IsZero() {
		return ErrDateIsNotConstructed
	}
	return nil
}
