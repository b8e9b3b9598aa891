package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/NimalpudiAshrita/smartloan/internal/domain/event"
)

// LogEventPublisher writes events to the structured log. It stands in for
// Kafka when no brokers are configured.
type LogEventPublisher struct {
	logger *slog.Logger
}

func NewLogEventPublisher(logger *slog.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	for _, evt := range events {
		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", evt.EventType(), err)
		}

		p.logger.InfoContext(ctx, "domain event",
			"event_type", evt.EventType(),
			"event_id", evt.EventID(),
			"aggregate_id", evt.AggregateID(),
			"payload", json.RawMessage(payload),
		)
	}
	return nil
}
