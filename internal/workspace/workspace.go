// Package workspace owns the live collections of one running process and
// wires the guard and linker over them.
package workspace

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/collection"
	"github.com/BruksfildServices01/service-desk/internal/domain/appointment"
	"github.com/BruksfildServices01/service-desk/internal/domain/client"
	"github.com/BruksfildServices01/service-desk/internal/domain/guard"
	"github.com/BruksfildServices01/service-desk/internal/domain/linker"
	"github.com/BruksfildServices01/service-desk/internal/domain/serviceorder"
	"github.com/BruksfildServices01/service-desk/internal/infra/localstore"
	"github.com/BruksfildServices01/service-desk/internal/infra/repository"
	"github.com/BruksfildServices01/service-desk/internal/models"
)

type Stores struct {
	Clients       collection.Store[models.Client]
	Appointments  collection.Store[models.Appointment]
	ServiceOrders collection.Store[models.ServiceOrder]
	Catalog       collection.Store[models.CatalogService]
}

// GormStores grava tudo no banco relacional.
func GormStores(db *gorm.DB, feed changefeed.Feed) Stores {
	return Stores{
		Clients:       repository.NewGormStore[models.Client](db, changefeed.TopicClients, feed),
		Appointments:  repository.NewGormStore[models.Appointment](db, changefeed.TopicAppointments, feed),
		ServiceOrders: repository.NewServiceOrderStore(db, feed),
		Catalog:       repository.NewGormStore[models.CatalogService](db, changefeed.TopicCatalog, feed),
	}
}

// DemoStores mantém os agendamentos como snapshot na tabela kv_entries.
func DemoStores(db *gorm.DB, feed changefeed.Feed) Stores {
	s := GormStores(db, feed)
	s.Appointments = localstore.NewAppointmentStore(localstore.NewGormKV(db), feed)
	return s
}

type Workspace struct {
	Clients       *collection.Collection[models.Client]
	Appointments  *collection.Collection[models.Appointment]
	ServiceOrders *collection.Collection[models.ServiceOrder]
	Catalog       *collection.Collection[models.CatalogService]

	Guard  *guard.Guard
	Linker *linker.Linker

	Feed changefeed.Feed
}

func New(stores Stores, feed changefeed.Feed) *Workspace {
	w := &Workspace{
		Clients:       collection.New("client", changefeed.TopicClients, stores.Clients, feed),
		Appointments:  collection.New("appointment", changefeed.TopicAppointments, stores.Appointments, feed),
		ServiceOrders: collection.New("service_order", changefeed.TopicServiceOrders, stores.ServiceOrders, feed),
		Catalog:       collection.New("catalog_service", changefeed.TopicCatalog, stores.Catalog, feed),
		Feed:          feed,
	}

	w.Guard = guard.New(w.Appointments, w.ServiceOrders)
	w.Linker = linker.New(w.Appointments, w.ServiceOrders)

	w.Clients.
		WithValidator(client.Validate).
		WithDeleteGuard(func(c models.Client, _ bool) error {
			return w.Guard.CheckClientDeletion(c.ID)
		})

	w.Appointments.
		WithValidator(appointment.Validate).
		WithDeleteGuard(func(ap models.Appointment, _ bool) error {
			return w.Guard.CheckAppointmentDeletion(ap)
		})

	w.ServiceOrders.
		WithValidator(serviceorder.Validate).
		WithDeleteGuard(w.Guard.CheckServiceOrderDeletion)

	return w
}

// Open carrega as coleções e passa a ouvir o feed. Em caso de erro as
// coleções já abertas são fechadas.
func (w *Workspace) Open(ctx context.Context) error {
	loaders := []struct {
		name string
		load func(context.Context) error
	}{
		{"clients", w.Clients.Load},
		{"appointments", w.Appointments.Load},
		{"service orders", w.ServiceOrders.Load},
		{"catalog", w.Catalog.Load},
	}

	for _, l := range loaders {
		if err := l.load(ctx); err != nil {
			w.Close()
			return fmt.Errorf("load %s: %w", l.name, err)
		}
	}

	log.Printf(
		"[workspace] loaded %d clients, %d appointments, %d service orders",
		len(w.Clients.List()), len(w.Appointments.List()), len(w.ServiceOrders.List()),
	)
	return nil
}

func (w *Workspace) Close() {
	w.Clients.Close()
	w.Appointments.Close()
	w.ServiceOrders.Close()
	w.Catalog.Close()
}
