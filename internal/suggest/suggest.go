// Package suggest filters autocomplete candidates for free-text inputs.
package suggest

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold normaliza para comparação: minúsculas, sem acentos, sem espaços nas pontas.
func Fold(s string) string {
	// transform.Chain guarda estado; um por chamada.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Filter devolve os candidatos que contêm query, prefixos primeiro,
// mantendo a ordem original dentro de cada grupo. Duplicatas (após Fold)
// aparecem uma vez. limit <= 0 não limita.
func Filter(candidates []string, query string, limit int) []string {
	q := Fold(query)
	if q == "" {
		return []string{}
	}

	seen := make(map[string]struct{}, len(candidates))
	var prefix, contains []string

	for _, c := range candidates {
		folded := Fold(c)
		if folded == "" {
			continue
		}
		if _, dup := seen[folded]; dup {
			continue
		}

		switch {
		case strings.HasPrefix(folded, q):
			prefix = append(prefix, c)
		case strings.Contains(folded, q):
			contains = append(contains, c)
		default:
			continue
		}
		seen[folded] = struct{}{}
	}

	out := append(prefix, contains...)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []string{}
	}
	return out
}

func Matches(candidate, query string) bool {
	q := Fold(query)
	return q == "" || strings.Contains(Fold(candidate), q)
}
