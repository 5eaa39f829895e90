package memqueue

import (
	"IdentityIntake/internal/core/ports"
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// Publisher implements the NotificationPublisher interface in-process.
// It is selected when no broker URL is configured (local development) and
// keeps the published usernames so they can be inspected.
type Publisher struct {
	log      zerolog.Logger
	mu       sync.Mutex
	messages []string
}

var _ ports.NotificationPublisher = (*Publisher)(nil) // Ensure compliance

// NewPublisher creates a new, empty in-process publisher.
func NewPublisher(baseLogger *zerolog.Logger) *Publisher {
	return &Publisher{
		log: baseLogger.With().Str("component", "mem_publisher").Logger(),
	}
}

// Publish records the username. It never fails, which makes the workflow's
// best-effort publish policy a no-op locally.
func (p *Publisher) Publish(ctx context.Context, username string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.messages = append(p.messages, username)
	p.log.Info().Str("username", username).Int("queued", len(p.messages)).Msg("Username queued in-process")
	return nil
}

// Published returns a copy of everything published so far.
func (p *Publisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, len(p.messages))
	copy(out, p.messages)
	return out
}

// Close is a no-op for the in-process publisher.
func (p *Publisher) Close() {}
