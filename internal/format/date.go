package format

import (
	"fmt"
	"strings"
	"time"
)

const (
	ISODateLayout = "2006-01-02"
	ClockLayout   = "15:04"
)

type Locale string

const (
	LocalePTBR Locale = "pt-BR"
	LocaleENUS Locale = "en-US"
)

// ParseLocale cai para pt-BR em qualquer valor desconhecido.
func ParseLocale(s string) Locale {
	if strings.EqualFold(strings.TrimSpace(s), string(LocaleENUS)) {
		return LocaleENUS
	}
	return LocalePTBR
}

func displayLayout(l Locale) string {
	if l == LocaleENUS {
		return "01/02/2006"
	}
	return "02/01/2006"
}

// ParseISODate interpreta "YYYY-MM-DD" como meia-noite local em loc.
// Timestamps completos têm apenas a parte de data considerada, para que o
// dia do calendário nunca seja deslocado por uma conversão de fuso.
func ParseISODate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(ISODateLayout) && (s[10] == 'T' || s[10] == ' ') {
		s = s[:len(ISODateLayout)]
	}
	if loc == nil {
		loc = time.Local
	}

	t, err := time.ParseInLocation(ISODateLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid iso date %q: %w", s, err)
	}
	return t, nil
}

// ToISODate usa os campos de calendário do próprio fuso de t.
func ToISODate(t time.Time) string {
	return t.Format(ISODateLayout)
}

func FormatDisplayDate(iso string, l Locale) (string, error) {
	t, err := ParseISODate(iso, time.UTC)
	if err != nil {
		return "", err
	}
	return t.Format(displayLayout(l)), nil
}

func ParseDisplayDate(display string, l Locale) (string, error) {
	t, err := time.ParseInLocation(displayLayout(l), strings.TrimSpace(display), time.UTC)
	if err != nil {
		return "", fmt.Errorf("invalid display date %q: %w", display, err)
	}
	return ToISODate(t), nil
}

// DisplayTimestamp mostra um instante como data local do negócio.
func DisplayTimestamp(t time.Time, loc *time.Location, l Locale) string {
	if t.IsZero() {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(displayLayout(l))
}

func IsClockTime(s string) bool {
	_, err := time.Parse(ClockLayout, strings.TrimSpace(s))
	return err == nil && len(strings.TrimSpace(s)) == len(ClockLayout)
}
