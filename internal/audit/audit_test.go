package audit

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/models"
)

type memorySink struct {
	mu     sync.Mutex
	events []Event
}

func (s *memorySink) Log(ev Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return nil
}

func TestRecordCarriesActor(t *testing.T) {
	sink := &memorySink{}
	d := NewDispatcher(sink)

	ctx := WithActor(context.Background(), 7)
	d.Record(ctx, "client_created", "client", 3, map[string]string{"name": "Ana"})
	d.Close()

	require.Len(t, sink.events, 1)
	ev := sink.events[0]
	require.NotNil(t, ev.UserID)
	assert.Equal(t, uint(7), *ev.UserID)
	assert.Equal(t, uint(3), *ev.EntityID)
	assert.Equal(t, "client_created", ev.Action)

	// depois do Close não entra mais nada
	d.Record(ctx, "late", "client", 1, nil)
	d.Close()
	assert.Len(t, sink.events, 1)
}

func TestNilDispatcherIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Record(context.Background(), "x", "y", 1, nil)
		d.Close()
	})
	assert.Nil(t, ActorFrom(context.Background()))
}

func TestLoggerPersists(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.AuditLog{}))

	id := uint(9)
	require.NoError(t, New(db).Log(Event{Action: "service_order_deleted", Entity: "service_order", EntityID: &id, Metadata: map[string]int{"items": 2}}))

	var got models.AuditLog
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "service_order_deleted", got.Action)
	assert.JSONEq(t, `{"items":2}`, got.Metadata)
}
