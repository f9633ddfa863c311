// Package pubsub provides a small generic broker used to fan out
// application events (status messages, background refreshes) to the TUI.
package pubsub

import (
	"context"
	"log/slog"
	"sync"
)

const subscriberBufferSize = 64

type Broker[T any] struct {
	mu     sync.RWMutex
	subs   map[chan Event[T]]context.CancelFunc
	closed bool
}

func NewBroker[T any]() *Broker[T] {
	return &Broker[T]{
		subs: make(map[chan Event[T]]context.CancelFunc),
	}
}

// Subscribe returns a channel that receives every event published after the
// call. The subscription is removed and the channel closed when ctx is
// cancelled or the broker shuts down.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	subCtx, cancel := context.WithCancel(ctx)
	ch := make(chan Event[T], subscriberBufferSize)
	b.subs[ch] = cancel

	go func() {
		<-subCtx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subs[ch]; ok {
			close(ch)
			delete(b.subs, ch)
		}
	}()

	return ch
}

// Publish delivers the event to every subscriber without blocking the
// publisher. A subscriber whose buffer is full misses the event.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{Type: eventType, Payload: payload}
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
			slog.Warn("pubsub: dropped event for slow subscriber", "type", eventType)
		}
	}
}

// Shutdown cancels all subscriptions and closes their channels.
func (b *Broker[T]) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for ch, cancel := range b.subs {
		cancel()
		close(ch)
		delete(b.subs, ch)
	}
}

func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
