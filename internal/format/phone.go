package format

import (
	"fmt"
	"strings"
	"unicode"
)

func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone aplica a máscara brasileira: (11) 99999-8888 ou (11) 3333-4444.
// Outros tamanhos voltam apenas com os dígitos.
func FormatPhone(raw string) string {
	d := Digits(raw)
	switch len(d) {
	case 11:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:7], d[7:])
	case 10:
		return fmt.Sprintf("(%s) %s-%s", d[:2], d[2:6], d[6:])
	default:
		return d
	}
}

func IsValidPhone(raw string) bool {
	n := len(Digits(raw))
	return n == 10 || n == 11
}
