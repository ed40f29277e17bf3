package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Message represents a broker-agnostic payload delivered to subscribers.
type Message struct {
	ID         string
	Data       []byte
	Attributes map[string]string
}

// Handler processes a message. Return an error to signal a retry/nack.
type Handler func(ctx context.Context, msg Message) error

// Backend defines the broker-agnostic operations used by the app.
type Backend interface {
	Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error)
	Subscribe(ctx context.Context, channel string, handler Handler) error
	Close() error
}

// Publisher is the narrow view the services depend on.
type Publisher interface {
	PublishJSON(ctx context.Context, channel string, v any) error
}

// MQ wraps a backend with a stable API. Channel names are prefixed with the
// configured prefix, "dakokun.request.created" for a prefix of "dakokun".
type MQ struct {
	backend Backend
	prefix  string
}

// New constructs an MQ wrapper for the provided backend.
func New(backend Backend, prefix string) *MQ {
	return &MQ{backend: backend, prefix: strings.TrimSuffix(prefix, ".")}
}

func (m *MQ) channel(name string) string {
	if m.prefix == "" {
		return name
	}
	return m.prefix + "." + name
}

// Publish sends a message to the named channel.
func (m *MQ) Publish(ctx context.Context, channel string, data []byte, attrs map[string]string) (string, error) {
	return m.backend.Publish(ctx, m.channel(channel), data, attrs)
}

// PublishJSON encodes v and sends it to the named channel.
func (m *MQ) PublishJSON(ctx context.Context, channel string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s message: %w", channel, err)
	}
	_, err = m.Publish(ctx, channel, data, map[string]string{"content-type": "application/json"})
	if err != nil {
		return fmt.Errorf("publish %s message: %w", channel, err)
	}
	return nil
}

// Subscribe consumes messages from the named channel.
func (m *MQ) Subscribe(ctx context.Context, channel string, handler Handler) error {
	return m.backend.Subscribe(ctx, m.channel(channel), handler)
}

// Close closes the underlying backend.
func (m *MQ) Close() error {
	return m.backend.Close()
}
