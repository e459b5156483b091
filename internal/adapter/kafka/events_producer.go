package kafka

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/port"
	"github.com/niksmo/storefront/pkg/schema"
	"github.com/twmb/franz-go/pkg/kgo"
)

var _ port.EventPublisher = (*EventsProducer)(nil)

type EventsProducer struct {
	cl      ProducerClient
	encoder Encoder
}

// NewEventsProducer requires both a client and an encoder option.
func NewEventsProducer(opts ...ProducerOpt) (EventsProducer, error) {
	const op = "NewEventsProducer"

	if len(opts) != 2 {
		return EventsProducer{}, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}

	var options producerOpts
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return EventsProducer{}, fmt.Errorf("%s: %w", op, err)
		}
	}
	if options.cl == nil || options.encoder == nil {
		return EventsProducer{}, fmt.Errorf("%s: %w", op, ErrTooFewOpts)
	}
	return EventsProducer{options.cl, options.encoder}, nil
}

func (p EventsProducer) Close() {
	const op = "EventsProducer.Close"
	log := slog.With("op", op)
	log.Info("closing producer...")
	p.cl.Close()
	log.Info("producer is closed")
}

func (p EventsProducer) Publish(ctx context.Context, ev domain.Event) error {
	const op = "EventsProducer.Publish"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	v, err := p.encoder.Encode(eventToSchemaV1(ev))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r := &kgo.Record{Key: recordKey(ev), Value: v}
	if err := p.cl.ProduceSync(ctx, r).FirstErr(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// recordKey keeps the events of one product on one partition.
func recordKey(ev domain.Event) []byte {
	if ev.ProductID != "" {
		return []byte(ev.ProductID)
	}
	return []byte(ev.Type)
}

func eventToSchemaV1(ev domain.Event) (s schema.StorefrontEventV1) {
	s.Type = string(ev.Type)
	s.ProductID = ev.ProductID
	s.Quantity = int64(ev.Quantity)
	s.Search = ev.Search
	s.Category = ev.Category
	s.TotalQuantity = int64(ev.TotalQuantity)
	s.Subtotal = ev.Subtotal
	s.OccurredAt = ev.OccurredAt
	return
}

// Noop drops every event. Used when activity events are disabled.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Event) error {
	return nil
}

func (Noop) Close() {}
