package format

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type currencyStyle struct {
	tag  language.Tag
	unit currency.Unit
	// pt-BR separa o símbolo do valor: "R$ 10,00"; en-US não: "$10.00"
	gap string
}

func styleFor(l Locale) currencyStyle {
	if l == LocaleENUS {
		return currencyStyle{tag: language.AmericanEnglish, unit: currency.USD}
	}
	return currencyStyle{tag: language.BrazilianPortuguese, unit: currency.BRL, gap: " "}
}

func (st currencyStyle) printer() *message.Printer {
	return message.NewPrinter(st.tag)
}

func (st currencyStyle) symbol() string {
	return st.printer().Sprint(currency.NarrowSymbol(st.unit))
}

// separadores do locale, lidos do próprio printer
func (st currencyStyle) separators() (thousands, dec string) {
	sample := st.printer().Sprintf("%.1f", 1000.5)
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return -1
		}
		return r
	}, sample)
	runes := []rune(digits)
	if len(runes) < 2 {
		return "", string(runes)
	}
	return string(runes[:len(runes)-1]), string(runes[len(runes)-1])
}

// FormatCurrency: pt-BR "R$ 1.234,56", en-US "$1,234.56".
func FormatCurrency(v decimal.Decimal, l Locale) string {
	st := styleFor(l)

	rounded := v.Round(2)
	amount := st.printer().Sprintf("%.2f", rounded.Abs().InexactFloat64())
	// alguns locales agrupam com espaço fixo
	amount = strings.ReplaceAll(amount, "\u00a0", " ")

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
	}
	return sign + st.symbol() + st.gap + amount
}

func ParseCurrency(s string, l Locale) (decimal.Decimal, error) {
	st := styleFor(l)
	thousands, dec := st.separators()

	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, st.symbol(), "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, " ", "")
	if thousands != "" {
		clean = strings.ReplaceAll(clean, thousands, "")
	}
	clean = strings.Replace(clean, dec, ".", 1)

	v, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid currency %q: %w", s, err)
	}
	return v, nil
}
