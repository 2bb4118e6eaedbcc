package client

import (
	"sort"
	"strings"

	"github.com/BruksfildServices01/service-desk/internal/format"
	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByCreatedAt SortField = "created_at"
)

type Filter struct {
	Status Status
	Query  string
	Sort   SortField
	Desc   bool
}

// Apply devolve uma nova lista; a original não é alterada.
func (f Filter) Apply(in []models.Client) []models.Client {
	out := make([]models.Client, 0, len(in))
	for _, c := range in {
		if f.Status != "" && Status(c.Status) != f.Status {
			continue
		}
		if f.Query != "" && !matchesQuery(c, f.Query) {
			continue
		}
		out = append(out, c)
	}

	switch f.Sort {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			a, b := suggest.Fold(out[i].Name), suggest.Fold(out[j].Name)
			if f.Desc {
				return a > b
			}
			return a < b
		})
	case SortByCreatedAt:
		sort.SliceStable(out, func(i, j int) bool {
			if f.Desc {
				return out[i].CreatedAt.After(out[j].CreatedAt)
			}
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	}
	return out
}

func matchesQuery(c models.Client, q string) bool {
	if suggest.Matches(c.Name, q) || suggest.Matches(c.Email, q) {
		return true
	}
	digits := format.Digits(q)
	return digits != "" && strings.Contains(format.Digits(c.Phone), digits)
}
