package mq

import (
	"context"
	"strconv"
	"sync"
)

// MemoryBackend delivers messages in process. Published messages are kept in
// order per channel and handed to subscribers of that channel.
type MemoryBackend struct {
	mu          sync.Mutex
	seq         int
	messages    map[string][]Message
	subscribers map[string][]chan Message
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		messages:    make(map[string][]Message),
		subscribers: make(map[string][]chan Message),
	}
}

func (b *MemoryBackend) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	msg := Message{ID: strconv.Itoa(b.seq), Data: append([]byte(nil), data...), Attributes: attrs}
	b.messages[channel] = append(b.messages[channel], msg)
	for _, ch := range b.subscribers[channel] {
		select {
		case ch <- msg:
		default:
		}
	}
	return msg.ID, nil
}

func (b *MemoryBackend) Subscribe(ctx context.Context, channel string, handler Handler) error {
	ch := make(chan Message, 64)
	b.mu.Lock()
	b.subscribers[channel] = append(b.subscribers[channel], ch)
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		subs := b.subscribers[channel]
		for i, c := range subs {
			if c == ch {
				b.subscribers[channel] = append(subs[:i], subs[i+1:]...)
				break
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-ch:
			_ = handler(ctx, msg)
		}
	}
}

// Messages returns the messages published to channel so far.
func (b *MemoryBackend) Messages(channel string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.messages[channel]...)
}

func (b *MemoryBackend) Close() error { return nil }
