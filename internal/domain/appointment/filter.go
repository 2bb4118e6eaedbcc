package appointment

import (
	"sort"

	"github.com/BruksfildServices01/service-desk/internal/models"
	"github.com/BruksfildServices01/service-desk/internal/suggest"
)

type Filter struct {
	Status   Status
	ClientID uint
	// Intervalo inclusivo de datas ISO; vazio não limita.
	From  string
	To    string
	Query string

	// NeedsOrder seleciona agendamentos sem OS ativa.
	NeedsOrder bool

	Desc bool
}

// Apply filtra e ordena por data e hora. As datas ISO comparam em ordem
// lexicográfica, sem passar por conversão de fuso.
func (f Filter) Apply(in []models.Appointment) []models.Appointment {
	out := make([]models.Appointment, 0, len(in))
	for _, ap := range in {
		if f.Status != "" && Status(ap.Status) != f.Status {
			continue
		}
		if f.ClientID != 0 && ap.ClientID != f.ClientID {
			continue
		}
		if f.From != "" && ap.Date < f.From {
			continue
		}
		if f.To != "" && ap.Date > f.To {
			continue
		}
		if f.NeedsOrder && (ap.ServiceOrderGenerated || Status(ap.Status) == StatusCancelled) {
			continue
		}
		if f.Query != "" && !suggest.Matches(ap.ClientName, f.Query) && !suggest.Matches(ap.Service, f.Query) {
			continue
		}
		out = append(out, ap)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a := out[i].Date + " " + out[i].Time
		b := out[j].Date + " " + out[j].Time
		if f.Desc {
			return a > b
		}
		return a < b
	})
	return out
}
