package events

import "context"

// NoopPublisher is a Publisher that does nothing (used when no broker is configured).
type NoopPublisher struct{}

func (n *NoopPublisher) Publish(ctx context.Context, event string, data any) error {
	return nil
}

func (n *NoopPublisher) Close() error {
	return nil
}
