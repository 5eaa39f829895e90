package natsqueue

import (
	"context"
	"fmt"
	"time"

	"IdentityIntake/internal/core/ports"
	sc "IdentityIntake/internal/shared/config"

	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"
)

// publisher implements the NotificationPublisher interface on NATS
// JetStream. The stream is declared with file storage at construction so
// published usernames survive a broker restart; Publish blocks until the
// broker acknowledges the message (at-least-once delivery).
type publisher struct {
	conn    *nats.Conn
	js      jetstream.JetStream
	subject string
	timeout time.Duration
	log     zerolog.Logger
}

var _ ports.NotificationPublisher = (*publisher)(nil) // Ensure compliance

// NewPublisher connects to the broker and ensures the target stream exists.
func NewPublisher(ctx context.Context, cfg sc.QueueConfig, timeout time.Duration, baseLogger *zerolog.Logger) (ports.NotificationPublisher, error) {
	log := baseLogger.With().Str("component", "notification_publisher").Logger()

	conn, err := nats.Connect(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("create JetStream context: %w", err)
	}

	// Declare-before-publish: create the stream if it doesn't exist yet.
	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.Stream,
		Subjects: []string{cfg.Subject},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare stream %s: %w", cfg.Stream, err)
	}

	log.Info().Str("url", cfg.URL).Str("stream", cfg.Stream).Str("subject", cfg.Subject).Msg("Connected to NATS, stream declared")
	return &publisher{
		conn:    conn,
		js:      js,
		subject: cfg.Subject,
		timeout: timeout,
		log:     log,
	}, nil
}

// Publish sends the derived username to the stream and waits for the ack.
func (p *publisher) Publish(ctx context.Context, username string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	if _, err := p.js.Publish(ctx, p.subject, []byte(username)); err != nil {
		p.log.Error().Err(err).Str("username", username).Msg("Failed to publish username")
		return fmt.Errorf("publish username: %w", err)
	}

	p.log.Info().Str("username", username).Msg("Username published")
	return nil
}

// Close drains the broker connection.
func (p *publisher) Close() {
	if p.conn != nil {
		p.conn.Close()
		p.log.Info().Msg("NATS connection closed")
	}
}
