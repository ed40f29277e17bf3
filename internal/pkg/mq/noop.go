package mq

import "context"

// NoopBackend drops every message. Subscribe blocks until ctx is done.
type NoopBackend struct{}

func (NoopBackend) Publish(context.Context, string, []byte, map[string]string) (string, error) {
	return "", nil
}

func (NoopBackend) Subscribe(ctx context.Context, _ string, _ Handler) error {
	<-ctx.Done()
	return ctx.Err()
}

func (NoopBackend) Close() error { return nil }
