package changefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const DefaultRedisPrefix = "servicedesk:changes:"

// RedisFeed propaga eventos entre instâncias via pub/sub do redis.
// Os eventos publicados aqui voltam pela inscrição e são entregues
// localmente de forma assíncrona.
type RedisFeed struct {
	client *redis.Client
	prefix string
	local  *MemoryFeed
	pubsub *redis.PubSub
	done   chan struct{}
}

func NewRedisFeed(ctx context.Context, client *redis.Client, prefix string) (*RedisFeed, error) {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}

	pubsub := client.PSubscribe(ctx, prefix+"*")
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("redis subscribe: %w", err)
	}

	f := &RedisFeed{
		client: client,
		prefix: prefix,
		local:  NewMemoryFeed(),
		pubsub: pubsub,
		done:   make(chan struct{}),
	}

	go f.listen()
	return f, nil
}

func (f *RedisFeed) listen() {
	defer close(f.done)

	for msg := range f.pubsub.Channel() {
		var ev Event
		if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
			log.Printf("changefeed: invalid payload on %s: %v", msg.Channel, err)
			continue
		}
		if ev.Topic == "" {
			ev.Topic = strings.TrimPrefix(msg.Channel, f.prefix)
		}
		f.local.dispatch(ev)
	}
}

func (f *RedisFeed) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	if err := f.client.Publish(ctx, f.prefix+ev.Topic, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", ev.Topic, err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(topic string, fn Handler) func() {
	return f.local.Subscribe(topic, fn)
}

func (f *RedisFeed) Close() error {
	err := f.pubsub.Close()
	<-f.done
	return err
}
