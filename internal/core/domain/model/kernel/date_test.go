package kernel_test

import (
	"testing"
	"time"

	"depot/internal/core/domain/model/kernel"
	"depot/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDate(t *testing.T) {
	t.Run("should build a calendar day", func(t *testing.T) {
		d, err := kernel.NewDate(2024, time.March, 5)

		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", d.String())
		assert.Equal(t, "20240305", d.Compact())
	})

	t.Run("should reject overflowing components", func(t *testing.T) {
		_, err := kernel.NewDate(2023, time.February, 29)

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestDateOf(t *testing.T) {
	t.Run("should use the calendar day of the instant's location", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)
		instant := time.Date(2024, time.March, 6, 1, 30, 0, 0, time.UTC).In(loc)

		d := kernel.DateOf(instant)

		assert.Equal(t, "2024-03-05", d.String())
	})

	t.Run("should drop time of day", func(t *testing.T) {
		a := kernel.DateOf(time.Date(2024, time.March, 5, 0, 0, 1, 0, time.UTC))
		b := kernel.DateOf(time.Date(2024, time.March, 5, 23, 59, 59, 0, time.UTC))

		assert.True(t, a.IsEqual(b))
	})
}

func TestParseDate(t *testing.T) {
	d, err := kernel.ParseDate("2024-12-31")
	require.NoError(t, err)
	assert.Equal(t, kernel.MustNewDate(2024, time.December, 31), d)

	_, err = kernel.ParseDate("31/12/2024")
	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestParseCompactDate(t *testing.T) {
	d, err := kernel.ParseCompactDate("20240305")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-05", d.String())

	_, err = kernel.ParseCompactDate("20241305")
	assert.Error(t, err)
}

func TestDate_Ordering(t *testing.T) {
	d := kernel.MustNewDate(2024, time.March, 5)
	next := d.AddDays(1)

	assert.True(t, d.Before(next))
	assert.True(t, next.After(d))
	assert.False(t, d.Before(d))
	assert.Equal(t, "2024-03-06", next.String())
}

func TestDate_Validate(t *testing.T) {
	var zero kernel.Date

	assert.True(t, zero.IsZero())
	assert.Equal(t, "", zero.String())
	assert.ErrorIs(t, zero.Validate(), errs.ErrValueIsRequired)
	assert.NoError(t, kernel.MustNewDate(2024, time.January, 1).Validate())
}

func TestClock(t *testing.T) {
	t.Run("fixed clock reports its instant", func(t *testing.T) {
		at := time.Date(2024, time.March, 5, 10, 0, 0, 0, time.UTC)

		assert.Equal(t, at, kernel.FixedClock{At: at}.Now())
		assert.Equal(t, "2024-03-05", kernel.Today(kernel.FixedClock{At: at}).String())
	})

	t.Run("system clock reports in its location", func(t *testing.T) {
		loc := time.FixedZone("BRT", -3*60*60)

		assert.Equal(t, loc, kernel.NewSystemClock(loc).Now().Location())
		assert.Equal(t, time.UTC, kernel.NewSystemClock(nil).Now().Location())
	})
}
