package form

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/service-desk/internal/format"
)

// Rule devolve a mensagem de erro do campo, ou "" quando o valor é aceito.
type Rule func(value string) string

const (
	MsgRequired = "Campo obrigatório."
	MsgEmail    = "E-mail inválido."
	MsgPhone    = "Telefone deve ter DDD e 8 ou 9 dígitos."
	MsgDate     = "Data inválida."
	MsgTime     = "Horário inválido."
	MsgPositive = "Informe um valor maior que zero."
	MsgOption   = "Opção inválida."
)

func Required() Rule {
	return func(v string) string {
		if strings.TrimSpace(v) == "" {
			return MsgRequired
		}
		return ""
	}
}

// As regras abaixo só avaliam valores preenchidos; combine com Required.

func Email() Rule {
	return optional(func(v string) string {
		addr, err := mail.ParseAddress(v)
		if err != nil || addr.Address != v || !strings.Contains(v[strings.LastIndex(v, "@")+1:], ".") {
			return MsgEmail
		}
		return ""
	})
}

func Phone() Rule {
	return optional(func(v string) string {
		if !format.IsValidPhone(v) {
			return MsgPhone
		}
		return ""
	})
}

func ISODate() Rule {
	return optional(func(v string) string {
		if _, err := format.ParseISODate(v, nil); err != nil || len(v) != len(format.ISODateLayout) {
			return MsgDate
		}
		return ""
	})
}

func ClockTime() Rule {
	return optional(func(v string) string {
		if !format.IsClockTime(v) {
			return MsgTime
		}
		return ""
	})
}

func PositiveDecimal() Rule {
	return optional(func(v string) string {
		d, err := decimal.NewFromString(v)
		if err != nil || !d.IsPositive() {
			return MsgPositive
		}
		return ""
	})
}

func OneOf(options ...string) Rule {
	return optional(func(v string) string {
		for _, o := range options {
			if v == o {
				return ""
			}
		}
		return MsgOption
	})
}

func optional(r Rule) Rule {
	return func(v string) string {
		v = strings.TrimSpace(v)
		if v == "" {
			return ""
		}
		return r(v)
	}
}
