package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/collection"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Business{},
		&models.User{},
		&models.Client{},
		&models.Appointment{},
		&models.ServiceOrder{},
		&models.ServiceOrderItem{},
		&models.AuditLog{},
	))
	return db
}

type recorder struct {
	mu     sync.Mutex
	events []changefeed.Event
}

func record(feed changefeed.Feed) *recorder {
	r := &recorder{}
	feed.Subscribe(changefeed.TopicAll, func(ev changefeed.Event) {
		r.mu.Lock()
		r.events = append(r.events, ev)
		r.mu.Unlock()
	})
	return r
}

func (r *recorder) actions() []changefeed.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]changefeed.Action, 0, len(r.events))
	for _, ev := range r.events {
		out = append(out, ev.Action)
	}
	return out
}

func TestGormStoreCRUDPublishesEvents(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	feed := changefeed.NewMemoryFeed()
	rec := record(feed)

	store := NewGormStore[models.Client](db, changefeed.TopicClients, feed)

	c := models.Client{Name: "Ana", Status: "Ativo"}
	require.NoError(t, store.Insert(ctx, &c))
	assert.NotZero(t, c.ID)

	c.Name = "Ana Costa"
	require.NoError(t, store.Update(ctx, &c))

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Ana Costa", all[0].Name)

	require.NoError(t, store.Delete(ctx, c.ID))
	assert.Equal(t, []changefeed.Action{
		changefeed.ActionInsert, changefeed.ActionUpdate, changefeed.ActionDelete,
	}, rec.actions())
}

func TestGormStoreMissingRows(t *testing.T) {
	ctx := context.Background()
	store := NewGormStore[models.Client](setupTestDB(t), changefeed.TopicClients, nil)

	ghost := models.Client{ID: 99, Name: "Ninguém"}
	assert.ErrorIs(t, store.Update(ctx, &ghost), collection.ErrMissing)
	assert.ErrorIs(t, store.Delete(ctx, 99), collection.ErrMissing)
}

func TestServiceOrderStoreSyncsItems(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewServiceOrderStore(db, nil)

	apID := uint(1)
	o := models.ServiceOrder{
		AppointmentID: &apID,
		Name:          "Revisão",
		Status:        "Pendente",
		Items: []models.ServiceOrderItem{
			{Description: "Peça", Value: decimal.NewFromInt(120)},
			{Description: "Mão de obra", Value: decimal.NewFromInt(80)},
		},
		TotalValue: decimal.NewFromInt(200),
	}
	require.NoError(t, store.Insert(ctx, &o))
	require.NotZero(t, o.Items[0].ID)

	o.Items = []models.ServiceOrderItem{
		o.Items[1],
		{Description: "Filtro", Value: decimal.NewFromInt(30)},
	}
	o.TotalValue = decimal.NewFromInt(110)
	require.NoError(t, store.Update(ctx, &o))

	all, err := store.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Len(t, all[0].Items, 2)
	assert.Equal(t, "Mão de obra", all[0].Items[0].Description)
	assert.Equal(t, "Filtro", all[0].Items[1].Description)
	assert.True(t, all[0].TotalValue.Equal(decimal.NewFromInt(110)))

	o.Items = nil
	o.TotalValue = decimal.Zero
	require.NoError(t, store.Update(ctx, &o))
	var count int64
	db.Model(&models.ServiceOrderItem{}).Count(&count)
	assert.Zero(t, count)

	require.NoError(t, store.Delete(ctx, o.ID))
	assert.ErrorIs(t, store.Delete(ctx, o.ID), collection.ErrMissing)
}

func TestBusinessRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewBusinessGormRepository(setupTestDB(t))

	b, err := repo.GetBusiness(ctx)
	require.NoError(t, err)
	assert.Nil(t, b)

	n, err := repo.CountUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	u := &models.User{Name: "Dona", Email: "dona@oficina.com", PasswordHash: "x"}
	require.NoError(t, repo.CreateOwner(ctx, u, &models.Business{Name: "Oficina"}))

	b, err = repo.GetBusiness(ctx)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Oficina", b.Name)

	found, err := repo.FindUserByEmail(ctx, "dona@oficina.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

func TestListAuditLogsFiltersAndPages(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	repo := NewBusinessGormRepository(db)

	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&models.AuditLog{Action: "client_created", Entity: "client"}).Error)
	}
	require.NoError(t, db.Create(&models.AuditLog{Action: "service_order_deleted", Entity: "service_order"}).Error)

	logs, total, err := repo.ListAuditLogs(ctx, AuditLogFilter{Entity: "client", Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, logs, 2)

	logs, total, err = repo.ListAuditLogs(ctx, AuditLogFilter{Action: "service_order_deleted"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, logs, 1)
	assert.Equal(t, "service_order", logs[0].Entity)
}
