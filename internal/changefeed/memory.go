package changefeed

import (
	"context"
	"sync"
	"time"
)

// MemoryFeed entrega os eventos no mesmo processo, de forma síncrona,
// na goroutine de quem publica.
type MemoryFeed struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler
}

func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{subs: make(map[string]map[int]Handler)}
}

func (f *MemoryFeed) Publish(_ context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	f.dispatch(ev)
	return nil
}

func (f *MemoryFeed) dispatch(ev Event) {
	f.mu.RLock()
	handlers := make([]Handler, 0, len(f.subs[ev.Topic])+len(f.subs[TopicAll]))
	for _, h := range f.subs[ev.Topic] {
		handlers = append(handlers, h)
	}
	if ev.Topic != TopicAll {
		for _, h := range f.subs[TopicAll] {
			handlers = append(handlers, h)
		}
	}
	f.mu.RUnlock()

	// fora do lock: um handler pode publicar ou se desinscrever
	for _, h := range handlers {
		h(ev)
	}
}

func (f *MemoryFeed) Subscribe(topic string, fn Handler) func() {
	f.mu.Lock()
	id := f.nextID
	f.nextID++
	if f.subs[topic] == nil {
		f.subs[topic] = make(map[int]Handler)
	}
	f.subs[topic][id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs[topic], id)
			if len(f.subs[topic]) == 0 {
				delete(f.subs, topic)
			}
			f.mu.Unlock()
		})
	}
}

// Subscribers conta as inscrições ativas de um tópico.
func (f *MemoryFeed) Subscribers(topic string) int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs[topic])
}
