// Package collection keeps the in-memory copy of one table, mirrored from
// the remote store and refreshed on every change-feed notification.
package collection

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/BruksfildServices01/service-desk/internal/changefeed"
	"github.com/BruksfildServices01/service-desk/internal/httperr"
)

// ErrMissing deve ser envolvido pelo Store quando o id não existe mais.
var ErrMissing = errors.New("record missing")

// ErrStale indica que escritas locais venceram todas as buscas do Refresh.
var ErrStale = errors.New("collection changed during every refresh attempt")

const refreshAttempts = 3

type Record interface {
	GetID() uint
}

type Store[T Record] interface {
	FetchAll(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, rec *T) error
	Update(ctx context.Context, rec *T) error
	Delete(ctx context.Context, id uint) error
}

type Validator[T Record] func(rec T) error

// DeleteGuard recebe o registro atual e se o usuário confirmou a exclusão.
type DeleteGuard[T Record] func(rec T, confirmed bool) error

const refreshTimeout = 15 * time.Second

type Collection[T Record] struct {
	entity string
	topic  string
	store  Store[T]
	feed   changefeed.Feed

	validate Validator[T]
	guard    DeleteGuard[T]

	mu          sync.RWMutex
	items       []T
	version     uint64
	closed      bool
	unsubscribe func()
}

func New[T Record](entity, topic string, store Store[T], feed changefeed.Feed) *Collection[T] {
	return &Collection[T]{
		entity: entity,
		topic:  topic,
		store:  store,
		feed:   feed,
	}
}

func (c *Collection[T]) WithValidator(v Validator[T]) *Collection[T] {
	c.validate = v
	return c
}

func (c *Collection[T]) WithDeleteGuard(g DeleteGuard[T]) *Collection[T] {
	c.guard = g
	return c
}

func (c *Collection[T]) Entity() string { return c.entity }

// Load busca a coleção inteira e passa a ouvir o tópico da tabela.
func (c *Collection[T]) Load(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.unsubscribe == nil && c.feed != nil && !c.closed {
		c.unsubscribe = c.feed.Subscribe(c.topic, c.onChange)
	}
	return nil
}

func (c *Collection[T]) onChange(ev changefeed.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if err := c.Refresh(ctx); err != nil {
		log.Printf("collection %s: refresh after %s %d failed: %v", c.topic, ev.Action, ev.ID, err)
	}
}

// Refresh substitui a coleção pelo conteúdo do store. Se houver escrita
// local durante a busca, busca de novo para não perder o registro recém
// confirmado.
func (c *Collection[T]) Refresh(ctx context.Context) error {
	for attempt := 0; attempt < refreshAttempts; attempt++ {
		c.mu.RLock()
		start := c.version
		c.mu.RUnlock()

		items, err := c.store.FetchAll(ctx)
		if err != nil {
			return &httperr.RemoteError{Op: "fetch " + c.topic, Err: err}
		}

		c.mu.Lock()
		if c.closed {
			c.mu.Unlock()
			return nil
		}
		if c.version == start {
			c.items = items
			c.version++
			c.mu.Unlock()
			return nil
		}
		c.mu.Unlock()
	}

	log.Printf("collection %s: refresh gave up after %d attempts, keeping local copy", c.topic, refreshAttempts)
	return &httperr.RemoteError{Op: "refresh " + c.topic, Err: ErrStale}
}

// List devolve uma cópia, na ordem de busca/inserção.
func (c *Collection[T]) List() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Collection[T]) Get(id uint) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Collection[T]) Filter(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []T
	for _, it := range c.items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Create grava no store e só então inclui na lista.
func (c *Collection[T]) Create(ctx context.Context, rec T) (T, error) {
	var zero T

	if c.validate != nil {
		if err := c.validate(rec); err != nil {
			return zero, err
		}
	}

	if err := c.store.Insert(ctx, &rec); err != nil {
		return zero, &httperr.RemoteError{Op: "insert " + c.topic, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.upsertLocked(rec)
	}
	return rec, nil
}

// Update aplica mutate numa cópia do registro; a lista só muda depois da
// escrita confirmada.
func (c *Collection[T]) Update(ctx context.Context, id uint, mutate func(*T) error) (T, error) {
	var zero T

	current, err := c.lookup(ctx, id)
	if err != nil {
		return zero, err
	}

	next := current
	if err := mutate(&next); err != nil {
		return zero, err
	}

	if c.validate != nil {
		if err := c.validate(next); err != nil {
			return zero, err
		}
	}

	if err := c.store.Update(ctx, &next); err != nil {
		if errors.Is(err, ErrMissing) {
			c.forget(id)
			return zero, &httperr.NotFoundError{Entity: c.entity, ID: id}
		}
		return zero, &httperr.RemoteError{Op: "update " + c.topic, Err: err}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.upsertLocked(next)
	}
	return next, nil
}

type DeleteOption func(*deleteOptions)

type deleteOptions struct {
	confirmed bool
}

// Confirmed registra a confirmação explícita do usuário para o guard.
func Confirmed(ok bool) DeleteOption {
	return func(o *deleteOptions) { o.confirmed = ok }
}

// Delete consulta o guard com o estado atual da coleção antes de excluir.
func (c *Collection[T]) Delete(ctx context.Context, id uint, opts ...DeleteOption) (T, error) {
	var zero T

	var o deleteOptions
	for _, opt := range opts {
		opt(&o)
	}

	current, err := c.lookup(ctx, id)
	if err != nil {
		return zero, err
	}

	if c.guard != nil {
		if err := c.guard(current, o.confirmed); err != nil {
			return zero, err
		}
	}

	if err := c.store.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrMissing) {
			c.forget(id)
			return zero, &httperr.NotFoundError{Entity: c.entity, ID: id}
		}
		return zero, &httperr.RemoteError{Op: "delete " + c.topic, Err: err}
	}

	c.forget(id)
	return current, nil
}

// Close cancela a inscrição; buscas em andamento são descartadas.
func (c *Collection[T]) Close() {
	c.mu.Lock()
	unsub := c.unsubscribe
	c.unsubscribe = nil
	c.closed = true
	c.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

// Find é o Get com nova busca no store quando o id não está na lista.
func (c *Collection[T]) Find(ctx context.Context, id uint) (T, error) {
	return c.lookup(ctx, id)
}

// lookup procura localmente e, se não achar, força uma nova busca antes de
// responder NotFound (o registro pode ter sido criado em outra sessão).
func (c *Collection[T]) lookup(ctx context.Context, id uint) (T, error) {
	if rec, ok := c.Get(id); ok {
		return rec, nil
	}

	var zero T
	if err := c.Refresh(ctx); err != nil {
		return zero, err
	}
	if rec, ok := c.Get(id); ok {
		return rec, nil
	}
	return zero, &httperr.NotFoundError{Entity: c.entity, ID: id}
}

func (c *Collection[T]) forget(id uint) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i := c.indexOf(id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		c.version++
	}
}

func (c *Collection[T]) upsertLocked(rec T) {
	if i := c.indexOf(rec.GetID()); i >= 0 {
		c.items[i] = rec
	} else {
		c.items = append(c.items, rec)
	}
	c.version++
}

func (c *Collection[T]) indexOf(id uint) int {
	for i, it := range c.items {
		if it.GetID() == id {
			return i
		}
	}
	return -1
}
