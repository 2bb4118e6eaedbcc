package audit

import (
	"context"
	"log"
	"sync"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

type actorKey struct{}

// WithActor guarda no contexto o usuário autenticado da requisição.
func WithActor(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, actorKey{}, userID)
}

func ActorFrom(ctx context.Context) *uint {
	if id, ok := ctx.Value(actorKey{}).(uint); ok {
		return &id
	}
	return nil
}

// Dispatcher grava a auditoria fora do caminho da requisição. Um
// Dispatcher nil descarta tudo.
type Dispatcher struct {
	sink  Sink
	queue chan Event

	closeOnce sync.Once
	done      chan struct{}
}

func NewDispatcher(sink Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Log(ev); err != nil {
			log.Println("audit error:", err)
		}
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	defer func() {
		// Dispatch depois do Close
		if recover() != nil {
			log.Println("audit dispatcher closed, dropping event")
		}
	}()

	select {
	case d.queue <- ev:
	default:
		// fila cheia: a auditoria nunca derruba a API
		log.Println("audit queue full, dropping event")
	}
}

// Record monta o evento com o usuário do contexto.
func (d *Dispatcher) Record(ctx context.Context, action, entity string, entityID uint, meta any) {
	if d == nil {
		return
	}
	id := entityID
	d.Dispatch(Event{
		UserID:   ActorFrom(ctx),
		Action:   action,
		Entity:   entity,
		EntityID: &id,
		Metadata: meta,
	})
}

// Close esvazia a fila e espera o worker terminar.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() { close(d.queue) })
	<-d.done
}
