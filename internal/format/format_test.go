package format

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateRoundTripKeepsCalendarDay(t *testing.T) {
	zones := []string{"UTC", "America/Sao_Paulo", "America/Los_Angeles", "Pacific/Kiritimati", "Pacific/Pago_Pago", "Asia/Tokyo"}
	days := []string{"2024-01-01", "2024-02-29", "2024-10-20", "2025-12-31"}

	for _, zone := range zones {
		loc, err := time.LoadLocation(zone)
		require.NoError(t, err)

		for _, iso := range days {
			for _, l := range []Locale{LocalePTBR, LocaleENUS} {
				parsed, err := ParseISODate(iso, loc)
				require.NoError(t, err)

				display, err := FormatDisplayDate(ToISODate(parsed), l)
				require.NoError(t, err)

				back, err := ParseDisplayDate(display, l)
				require.NoError(t, err)
				assert.Equal(t, iso, back, "zone=%s locale=%s", zone, l)
			}
		}
	}
}

func TestParseISODate(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")

	t.Run("date only is local midnight", func(t *testing.T) {
		got, err := ParseISODate("2024-03-05", loc)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Day())
		assert.Equal(t, 0, got.Hour())
		assert.Equal(t, loc, got.Location())
	})

	t.Run("timestamp keeps its date part", func(t *testing.T) {
		got, err := ParseISODate("2024-03-05T00:00:00Z", loc)
		require.NoError(t, err)
		assert.Equal(t, "2024-03-05", ToISODate(got))
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseISODate("05/03/2024", loc)
		assert.Error(t, err)
	})
}

func TestFormatDisplayDate(t *testing.T) {
	got, err := FormatDisplayDate("2024-03-05", LocalePTBR)
	require.NoError(t, err)
	assert.Equal(t, "05/03/2024", got)

	got, err = FormatDisplayDate("2024-03-05", LocaleENUS)
	require.NoError(t, err)
	assert.Equal(t, "03/05/2024", got)
}

func TestDisplayTimestamp(t *testing.T) {
	loc, _ := time.LoadLocation("America/Sao_Paulo")
	// 01:30 UTC ainda é o dia anterior em São Paulo.
	ts := time.Date(2024, 3, 6, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "05/03/2024", DisplayTimestamp(ts, loc, LocalePTBR))
	assert.Equal(t, "", DisplayTimestamp(time.Time{}, loc, LocalePTBR))
}

func TestCurrency(t *testing.T) {
	cases := []struct {
		value  string
		locale Locale
		want   string
	}{
		{"200", LocalePTBR, "R$ 200,00"},
		{"1234.5", LocalePTBR, "R$ 1.234,50"},
		{"1234567.891", LocalePTBR, "R$ 1.234.567,89"},
		{"-80", LocalePTBR, "-R$ 80,00"},
		{"1234.5", LocaleENUS, "$1,234.50"},
		{"0", LocaleENUS, "$0.00"},
		{"1234567.891", LocaleENUS, "$1,234,567.89"},
		{"-0.001", LocalePTBR, "R$ 0,00"},
	}

	for _, tc := range cases {
		v := decimal.RequireFromString(tc.value)
		got := FormatCurrency(v, tc.locale)
		assert.Equal(t, tc.want, got)

		back, err := ParseCurrency(got, tc.locale)
		require.NoError(t, err)
		assert.True(t, v.Round(2).Equal(back), "%s -> %s", got, back)
	}

	_, err := ParseCurrency("abc", LocalePTBR)
	assert.Error(t, err)
}

func TestFormatPhone(t *testing.T) {
	assert.Equal(t, "(11) 99999-8888", FormatPhone("11999998888"))
	assert.Equal(t, "(11) 99999-8888", FormatPhone("(11) 99999-8888"))
	assert.Equal(t, "(11) 3333-4444", FormatPhone("1133334444"))
	assert.Equal(t, "12345", FormatPhone("12-345"))

	assert.True(t, IsValidPhone("11 99999 8888"))
	assert.False(t, IsValidPhone("9999"))
}

func TestIsClockTime(t *testing.T) {
	assert.True(t, IsClockTime("09:30"))
	assert.False(t, IsClockTime("9:30"))
	assert.False(t, IsClockTime("25:00"))
}

func TestParseLocale(t *testing.T) {
	assert.Equal(t, LocaleENUS, ParseLocale("en-us"))
	assert.Equal(t, LocalePTBR, ParseLocale("fr-FR"))
}
