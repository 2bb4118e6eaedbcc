package serviceorder

import (
	"sort"

	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
)

const (
	SortCreatedAt = "created_at"
	SortTotal     = "total_value"
	SortName      = "name"
)

type Filter struct {
	Status        Status
	AppointmentID uint
	Query         string
	Sort          string
	Desc          bool
}

func (f Filter) Apply(in []models.ServiceOrder) []models.ServiceOrder {
	out := make([]models.ServiceOrder, 0, len(in))
	for _, o := range in {
		if f.Status != "" && Status(o.Status) != f.Status {
			continue
		}
		if f.AppointmentID != 0 && (o.AppointmentID == nil || *o.AppointmentID != f.AppointmentID) {
			continue
		}
		if f.Query != "" && !suggest.Matches(o.Name, f.Query) && !suggest.Matches(o.Description, f.Query) {
			continue
		}
		out = append(out, o)
	}

	less := func(a, b models.ServiceOrder) bool {
		switch f.Sort {
		case SortTotal:
			return a.TotalValue.LessThan(b.TotalValue)
		case SortName:
			return suggest.Fold(a.Name) < suggest.Fold(b.Name)
		default:
			if a.CreatedAt.Equal(b.CreatedAt) {
				return a.ID < b.ID
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if f.Desc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}
