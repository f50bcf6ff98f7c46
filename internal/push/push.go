// Package push is the topic-based message channel feeding the
// notification stream and carrying outbound location updates.
package push

import (
	"context"
	"sync"
)

// Handler consumes one message payload on a subscribed topic.
type Handler func(payload string)

// Channel is the transport abstraction. The service only needs
// subscribe and publish; delivery guarantees are the transport's
// business.
type Channel interface {
	// Subscribe registers a handler for a topic and returns a cancel
	// func that unregisters it.
	Subscribe(topic string, h Handler) (cancel func())
	Publish(ctx context.Context, topic, payload string) error
	Close() error
}

// Bus is the in-process Channel used when no external push endpoint is
// configured. Handlers run on the publisher's goroutine.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[string]map[int]Handler
}

func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]Handler)}
}

func (b *Bus) Subscribe(topic string, h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subs[topic] == nil {
		b.subs[topic] = make(map[int]Handler)
	}
	id := b.next
	b.next++
	b.subs[topic][id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[topic], id)
	}
}

func (b *Bus) Publish(_ context.Context, topic, payload string) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[topic]))
	for _, h := range b.subs[topic] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(payload)
	}
	return nil
}

func (b *Bus) Close() error { return nil }
