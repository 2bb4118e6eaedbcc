// Package changefeed notifies subscribers whenever a table changes.
package changefeed

import (
	"context"
	"time"
)

type Action string

const (
	ActionInsert Action = "INSERT"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
)

// Tópicos, um por tabela.
const (
	TopicClients       = "clients"
	TopicAppointments  = "appointments"
	TopicServiceOrders = "service_orders"
	TopicCatalog       = "catalog_services"

	// TopicAll recebe os eventos de todas as tabelas.
	TopicAll = "*"
)

type Event struct {
	Topic  string    `json:"topic"`
	Action Action    `json:"action"`
	ID     uint      `json:"id"`
	At     time.Time `json:"at"`
}

type Handler func(Event)

type Feed interface {
	Publish(ctx context.Context, ev Event) error

	// Subscribe registra fn para o tópico; a função devolvida cancela a
	// inscrição e pode ser chamada mais de uma vez.
	Subscribe(topic string, fn Handler) (unsubscribe func())
}
