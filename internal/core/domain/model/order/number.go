package order

import (
	"fmt"
	"regexp"
	"strconv"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"
)

const (
	// MinSequence is the first sequence of every day.
	MinSequence = 1

	// MaxSequence is the largest sequence that fits the four digit suffix.
	MaxSequence = 9999

	sequenceDigits = 4
)

var numberPattern = regexp.MustCompile(`^\d{8}\d{4}$`)

// ErrNumberIsNotConstructed is returned by Validate for the zero Number.
var ErrNumberIsNotConstructed = errs.NewValueIsRequiredError("order number")

// Number is the human-facing order identifier YYYYMMDDSSSS: the day the order
// was created followed by a four digit, zero padded sequence that restarts
// every day.
type Number struct {
	day kernel.Date
	seq int
}

// NewNumber builds the number of the seq-th order of day.
func NewNumber(day kernel.Date, seq int) (Number, error) {
	if err := day.Validate(); err != nil {
		return Number{}, err
	}
	if seq < MinSequence || seq > MaxSequence {
		return Number{}, errs.NewValueIsOutOfRangeError("sequence", seq, MinSequence, MaxSequence)
	}
	return Number{day: day, seq: seq}, nil
}

// ParseNumber validates a number supplied by a caller or read from storage.
func ParseNumber(s string) (Number, error) {
	if !numberPattern.MatchString(s) {
		return Number{}, errs.NewValueIsInvalidErrorWithCause(
			"order number is invalid",
			fmt.Errorf("%q does not match YYYYMMDDSSSS", s),
		)
	}

	day, err := kernel.ParseCompactDate(s[:8])
	if err != nil {
		return Number{}, errs.NewValueIsInvalidErrorWithCause("order number is invalid", err)
	}

	seq, _ := strconv.Atoi(s[8:])
	return NewNumber(day, seq)
}

// SequenceSuffix extracts the sequence from the last four characters of a
// stored number without validating the rest of it.
func SequenceSuffix(raw string) (int, error) {
	if len(raw) < sequenceDigits {
		return 0, fmt.Errorf("%q is shorter than %d characters", raw, sequenceDigits)
	}

	suffix := raw[len(raw)-sequenceDigits:]
	for _, r := range suffix {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("suffix %q is not numeric", suffix)
		}
	}

	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// String returns the YYYYMMDDSSSS form.
func (n Number) String() string {
	if n.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s%0*d", n.day.Compact(), sequenceDigits, n.seq)
}

// Day returns the calendar day encoded in the number.
func (n Number) Day() kernel.Date {
	return n.day
}

// Sequence returns the daily sequence.
func (n Number) Sequence() int {
	return n.seq
}

// Next returns the number that follows n on the same day.
func (n Number) Next() (Number, error) {
	return NewNumber(n.day, n.seq+1)
}

func (n Number) IsZero() bool {
	return n.seq == 0
}

func (n Number) IsEqual(other Number) bool {
	return n.seq == other.seq && n.day.IsEqual(other.day)
}

func (n Number) Validate() error {
	if n.IsZero() {
		return ErrNumberIsNotConstructed
	}
	return nil
}
