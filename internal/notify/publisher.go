package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/rs/zerolog"

	"github.com/Sanjeev-Kumar78/TicketDot/internal/core"
	"github.com/Sanjeev-Kumar78/TicketDot/internal/observability"
)

// OutboundPublisher pushes committed notifications to NATS for downstream
// consumers (wallets, indexers, mailers). Subjects follow the pattern
// ticketdot.events.{kind}.
type OutboundPublisher struct {
	js        jetstream.JetStream
	inputChan <-chan core.Output
	log       zerolog.Logger
	metrics   *observability.Metrics
}

// PublishedNotification is the wire shape of one outbound message.
type PublishedNotification struct {
	Sequence  uint64      `json:"sequence"`
	Kind      string      `json:"kind"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

func NewOutboundPublisher(js jetstream.JetStream, inputChan <-chan core.Output, log zerolog.Logger, metrics *observability.Metrics) *OutboundPublisher {
	return &OutboundPublisher{
		js:        js,
		inputChan: inputChan,
		log:       log,
		metrics:   metrics,
	}
}

// Run drains the publish channel until the context ends or the channel
// closes. Publish failures are non-fatal: consumers can re-read the
// notification log from Postgres.
func (p *OutboundPublisher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case out, ok := <-p.inputChan:
			if !ok {
				return nil
			}
			if err := p.publish(ctx, out); err != nil {
				p.log.Warn().Err(err).Uint64("sequence", out.Envelope.Sequence).Msg("outbound publish failed")
				if p.metrics != nil {
					p.metrics.PublishErrors.Inc()
				}
			}
		}
	}
}

func (p *OutboundPublisher) publish(ctx context.Context, out core.Output) error {
	msg := PublishedNotification{
		Sequence:  out.Envelope.Sequence,
		Kind:      out.Envelope.Kind.String(),
		Timestamp: out.Envelope.Timestamp,
		Payload:   out.Envelope.Payload,
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	subject := fmt.Sprintf("ticketdot.events.%s", out.Envelope.Kind)
	_, err = p.js.Publish(ctx, subject, data)
	return err
}

// EnsureStream creates the outbound notification stream.
func EnsureStream(ctx context.Context, js jetstream.JetStream) error {
	_, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      "TICKETDOT_EVENTS",
		Subjects:  []string{"ticketdot.events.>"},
		Storage:   jetstream.FileStorage,
		Retention: jetstream.LimitsPolicy,
		MaxAge:    72 * time.Hour,
		Replicas:  1,
	})
	if err != nil {
		return fmt.Errorf("create outbound stream: %w", err)
	}
	return nil
}
