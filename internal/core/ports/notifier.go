package ports

import "context"

// NotificationPublisher hands a derived username to the downstream
// verification pipeline over a durable queue. Publish returns once the
// broker has acknowledged the message (at-least-once delivery); it never
// waits for consumption.
type NotificationPublisher interface {
	Publish(ctx context.Context, username string) error

	// Close releases the broker connection.
	Close()
}
