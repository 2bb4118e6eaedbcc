package localstore

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/collection"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

const AppointmentsKey = "appointments"

// AppointmentStore guarda todos os agendamentos numa única entrada KV,
// regravada a cada mutação e relida ao abrir.
type AppointmentStore struct {
	kv   KV
	key  string
	feed changefeed.Feed

	mu sync.Mutex
}

func NewAppointmentStore(kv KV, feed changefeed.Feed) *AppointmentStore {
	return &AppointmentStore{kv: kv, key: AppointmentsKey, feed: feed}
}

// snapshot guarda a lista e o próximo id. NextID só cresce: um agendamento
// excluído nunca tem o id reaproveitado, senão herdaria as ordens do antigo.
type snapshot struct {
	NextID uint                 `json:"next_id"`
	Items  []models.Appointment `json:"items"`
}

func (s *AppointmentStore) load(ctx context.Context) (snapshot, error) {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		return snapshot{}, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return snapshot{NextID: 1, Items: []models.Appointment{}}, nil
	}

	var snap snapshot
	if strings.HasPrefix(strings.TrimSpace(raw), "[") {
		// formato antigo: só a lista
		if err := json.Unmarshal([]byte(raw), &snap.Items); err != nil {
			return snapshot{}, fmt.Errorf("decode %s snapshot: %w", s.key, err)
		}
	} else if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return snapshot{}, fmt.Errorf("decode %s snapshot: %w", s.key, err)
	}

	if snap.Items == nil {
		snap.Items = []models.Appointment{}
	}
	for _, it := range snap.Items {
		if it.ID >= snap.NextID {
			snap.NextID = it.ID + 1
		}
	}
	if snap.NextID == 0 {
		snap.NextID = 1
	}
	return snap, nil
}

func (s *AppointmentStore) save(ctx context.Context, snap snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.kv.Put(ctx, s.key, string(b))
}

func (s *AppointmentStore) FetchAll(ctx context.Context) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Items, nil
}

func (s *AppointmentStore) Insert(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	snap, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	now := time.Now()
	ap.ID = snap.NextID
	ap.CreatedAt = now
	ap.UpdatedAt = now

	snap.NextID++
	snap.Items = append(snap.Items, *ap)

	err = s.save(ctx, snap)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionInsert, ap.ID)
	return nil
}

func (s *AppointmentStore) Update(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	snap, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	list := snap.Items

	found := false
	for i := range list {
		if list[i].ID == ap.ID {
			ap.CreatedAt = list[i].CreatedAt
			ap.UpdatedAt = time.Now()
			list[i] = *ap
			found = true
			break
		}
	}
	if !found {
		s.mu.Unlock()
		return collection.ErrMissing
	}

	err = s.save(ctx, snap)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionUpdate, ap.ID)
	return nil
}

func (s *AppointmentStore) Delete(ctx context.Context, id uint) error {
	s.mu.Lock()
	snap, err := s.load(ctx)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	list := snap.Items

	kept := list[:0]
	for _, it := range list {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if len(kept) == len(list) {
		s.mu.Unlock()
		return collection.ErrMissing
	}

	snap.Items = kept
	err = s.save(ctx, snap)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.publish(ctx, changefeed.ActionDelete, id)
	return nil
}

// o evento sai depois do unlock: o feed em memória entrega na mesma goroutine
// e a coleção relê o snapshot.
func (s *AppointmentStore) publish(ctx context.Context, action changefeed.Action, id uint) {
	if s.feed == nil {
		return
	}
	ev := changefeed.Event{Topic: changefeed.TopicAppointments, Action: action, ID: id, At: time.Now()}
	if err := s.feed.Publish(ctx, ev); err != nil {
		log.Printf("[localstore] publish %s %d: %v", action, id, err)
	}
}
